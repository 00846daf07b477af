package commands

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"
)

// LoginAction はIDプロバイダへサインインするコマンドのアクション
func LoginAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	email := cmd.String("email")
	if email == "" {
		promptEmail := promptui.Prompt{
			Label: "メールアドレス",
		}
		email, err = promptEmail.Run()
		if err != nil {
			return fmt.Errorf("入力エラー: %w", err)
		}
	}

	promptPassword := promptui.Prompt{
		Label: "パスワード",
		Mask:  '*',
	}
	password, err := promptPassword.Run()
	if err != nil {
		return fmt.Errorf("入力エラー: %w", err)
	}

	session, err := appCtx.Container.Sessions.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("サインインに失敗しました: %w", err)
	}

	name := session.DisplayName
	if name == "" {
		name = session.Email
	}
	fmt.Printf("%s としてサインインしました。\n", name)
	return nil
}

// LogoutAction はサインアウトするコマンドのアクション。
// セッションと一緒にテンプレートキャッシュも同期的に破棄される
func LogoutAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if err := appCtx.Container.Sessions.SignOut(); err != nil {
		return fmt.Errorf("サインアウトに失敗しました: %w", err)
	}

	fmt.Println("サインアウトしました。")
	return nil
}

// WhoamiAction は現在のセッションを表示するコマンドのアクション
func WhoamiAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	session := appCtx.Container.Sessions.CurrentUser()
	if session == nil {
		fmt.Println("サインインしていません。")
		return nil
	}

	fmt.Printf("ユーザーID:   %s\n", session.UserID)
	fmt.Printf("メール:      %s\n", session.Email)
	if session.DisplayName != "" {
		fmt.Printf("表示名:      %s\n", session.DisplayName)
	}
	fmt.Printf("サインイン:  %s\n", session.SignedInAt.Format("2006-01-02 15:04"))
	return nil
}
