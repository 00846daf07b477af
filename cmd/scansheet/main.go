package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/scansheet/cmd/scansheet/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定（AppContext生成時に設定値で上書きされる）
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	envFlag := &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}

	app := &cli.Command{
		Name:  "scansheet",
		Usage: "スキャン文書をOCR抽出してスプレッドシートへ書き込むクライアント",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "サインイン",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{
						Name:  "email",
						Usage: "メールアドレス（省略時は対話入力）",
					},
				},
				Action: commands.LoginAction,
			},
			{
				Name:   "logout",
				Usage:  "サインアウト",
				Flags:  []cli.Flag{envFlag},
				Action: commands.LogoutAction,
			},
			{
				Name:   "whoami",
				Usage:  "現在のセッションを表示",
				Flags:  []cli.Flag{envFlag},
				Action: commands.WhoamiAction,
			},
			{
				Name:  "template",
				Usage: "テンプレート管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "create",
						Usage: "帳票ファイルからテンプレートを作成",
						Flags: []cli.Flag{
							envFlag,
							&cli.StringFlag{
								Name:     "name",
								Usage:    "テンプレート名",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "file",
								Usage:    "帳票ファイル（PDFまたは画像）",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "sheet-url",
								Usage: "書き込み先スプレッドシートのURL",
							},
						},
						Action: commands.TemplateCreateAction,
					},
					{
						Name:   "list",
						Usage:  "テンプレート一覧を表示",
						Flags:  []cli.Flag{envFlag},
						Action: commands.TemplateListAction,
					},
					{
						Name:  "show",
						Usage: "テンプレート詳細を表示",
						Flags: []cli.Flag{
							envFlag,
							&cli.StringFlag{
								Name:     "name",
								Usage:    "テンプレート名",
								Required: true,
							},
						},
						Action: commands.TemplateShowAction,
					},
				},
			},
			{
				Name:  "extract",
				Usage: "テンプレートを使ってスキャン文書から回答を抽出",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{
						Name:     "template",
						Usage:    "テンプレート名",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "files",
						Usage:    "スキャン文書ファイル（複数指定可）",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sheet",
						Usage: "書き込み先スプレッドシートのURLまたはID（embedded方式）",
					},
					&cli.StringFlag{
						Name:  "hints",
						Usage: "抽出のヒントになる自由記述",
					},
				},
				Action: commands.ExtractAction,
			},
			{
				Name:  "sheet",
				Usage: "シートバインディング管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "resolve",
						Usage: "テンプレートのバインド先シートを解決",
						Flags: []cli.Flag{
							envFlag,
							&cli.StringFlag{
								Name:     "template",
								Usage:    "テンプレート名",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "sheet",
								Usage: "シートURLまたはID（embedded方式のとき）",
							},
						},
						Action: commands.SheetResolveAction,
					},
					{
						Name:  "set-default",
						Usage: "既定のスプレッドシートを登録",
						Flags: []cli.Flag{
							envFlag,
							&cli.StringFlag{
								Name:     "sheet",
								Usage:    "スプレッドシートのURLまたはID",
								Required: true,
							},
						},
						Action: commands.SheetSetDefaultAction,
					},
					{
						Name:   "default",
						Usage:  "既定のスプレッドシートを表示",
						Flags:  []cli.Flag{envFlag},
						Action: commands.SheetDefaultAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
