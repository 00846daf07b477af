package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	bindingdomain "github.com/jinford/scansheet/internal/module/binding/domain"
)

// SheetResolveAction はテンプレートのバインド先シートを解決して表示するアクション
func SheetResolveAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	templateName := cmd.String("template")
	resolution, err := appCtx.Container.Bindings.Resolve(ctx, templateName, cmd.String("sheet"))
	if err != nil {
		return fmt.Errorf("シートバインディングの解決に失敗: %w", err)
	}

	switch resolution.State {
	case bindingdomain.StateResolved:
		fmt.Printf("テンプレート「%s」のバインド先: %s\n", templateName, resolution.SpreadsheetID)
	case bindingdomain.StateUnresolved:
		fmt.Printf("テンプレート「%s」にはシートがバインドされていません。\n", templateName)
	case bindingdomain.StateUnavailable:
		fmt.Printf("バインド先を確認できませんでした: %s\n", resolution.Detail)
		return cli.Exit("", 1)
	}
	return nil
}

// SheetSetDefaultAction はユーザーの既定スプレッドシートを登録するアクション
func SheetSetDefaultAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if err := appCtx.Container.Bindings.SetDefaultSheet(ctx, cmd.String("sheet")); err != nil {
		return fmt.Errorf("既定シートの保存に失敗: %w", err)
	}

	fmt.Println("既定のスプレッドシートを保存しました。")
	return nil
}

// SheetDefaultAction はユーザーの既定スプレッドシートを表示するアクション
func SheetDefaultAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	id, err := appCtx.Container.Bindings.DefaultSheet(ctx)
	if err != nil {
		return fmt.Errorf("既定シートの取得に失敗: %w", err)
	}

	if id == "" {
		fmt.Println("既定のスプレッドシートは設定されていません。")
		return nil
	}
	fmt.Println(id)
	return nil
}
