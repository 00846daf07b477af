package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/scansheet/internal/module/ingestion/domain"
	templatedomain "github.com/jinford/scansheet/internal/module/template/domain"
)

// TemplateCreateAction はテンプレート作成ワークフローを実行するアクション
func TemplateCreateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	job := domain.NewUploadJob(domain.KindCreateTemplate, cmd.String("name"))
	job.SpreadsheetURL = cmd.String("sheet-url")

	if path := cmd.String("file"); path != "" {
		blobs, err := loadFiles(ctx, []string{path})
		if err != nil {
			return err
		}
		job.Files = blobs
	}

	result := appCtx.Container.TemplateSurface.CreateTemplate(ctx, job)
	fmt.Println(result.Message)
	if !result.OK {
		return cli.Exit("", 1)
	}
	return nil
}

// TemplateListAction はレジストリを更新してテンプレート一覧を表示するアクション
func TemplateListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	registry := appCtx.Container.Registry
	names, err := registry.Refresh(ctx)
	if err != nil {
		if errors.Is(err, templatedomain.ErrRegistryUnavailable) {
			fmt.Println("テンプレート一覧を取得できませんでした。時間をおいて再実行してください。")
			return cli.Exit("", 1)
		}
		return err
	}

	if len(names) == 0 {
		fmt.Println("テンプレートはまだ登録されていません。")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Template", "Spreadsheet ID", "Created At")
	for _, name := range names {
		template, ok := registry.Get(name)
		if !ok {
			continue
		}
		sheetID := template.SpreadsheetID
		if sheetID == "" {
			sheetID = "(未設定)"
		}
		table.Append(template.Name, sheetID, template.CreatedAt.Format("2006-01-02 15:04"))
	}
	table.Render()
	return nil
}

// TemplateShowAction はテンプレート1件の詳細を表示するアクション
func TemplateShowAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	registry := appCtx.Container.Registry
	if _, err := registry.Refresh(ctx); err != nil {
		return fmt.Errorf("テンプレート一覧の取得に失敗: %w", err)
	}

	name := cmd.String("name")
	template, ok := registry.Get(name)
	if !ok {
		fmt.Printf("テンプレート「%s」が見つかりません。\n", name)
		return cli.Exit("", 1)
	}

	fmt.Printf("\n=== テンプレート詳細 ===\n\n")
	fmt.Printf("名前:              %s\n", template.Name)
	fmt.Printf("スプレッドシートID: %s\n", template.SpreadsheetID)
	fmt.Printf("作成日時:          %s\n", template.CreatedAt.Format("2006-01-02 15:04"))
	if template.Items != "" {
		fmt.Printf("\n質問項目:\n%s\n", template.Items)
	}
	return nil
}
