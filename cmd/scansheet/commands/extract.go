package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	bindingdomain "github.com/jinford/scansheet/internal/module/binding/domain"
	"github.com/jinford/scansheet/internal/module/ingestion/domain"
)

// ExtractAction はドキュメント抽出ワークフローを実行するアクション
func ExtractAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	templateName := cmd.String("template")
	job := domain.NewUploadJob(domain.KindExtractDocuments, templateName)
	job.PromptHints = cmd.String("hints")

	if paths := cmd.StringSlice("files"); len(paths) > 0 {
		blobs, err := loadFiles(ctx, paths)
		if err != nil {
			return err
		}
		job.Files = blobs
	}

	// バインド先の解決は送信前に済ませる。解決不能は送信せずに報告する
	resolution, err := appCtx.Container.Bindings.Resolve(ctx, templateName, cmd.String("sheet"))
	if err != nil {
		return fmt.Errorf("シートバインディングの解決に失敗: %w", err)
	}
	switch resolution.State {
	case bindingdomain.StateResolved:
		job.SpreadsheetID = resolution.SpreadsheetID
	case bindingdomain.StateUnresolved:
		// バインディングが無い場合はサーバー側の解決に委ねる
		appCtx.Logger.Info("no sheet binding; deferring to server", "template", templateName)
	case bindingdomain.StateUnavailable:
		fmt.Printf("バインド先シートを確認できませんでした: %s\n", resolution.Detail)
		return cli.Exit("", 1)
	}

	result := appCtx.Container.ExtractSurface.ExtractDocuments(ctx, job)
	fmt.Println(result.Message)
	if !result.OK {
		return cli.Exit("", 1)
	}
	return nil
}
