package domain

import "errors"

var (
	// ErrUnauthenticated は有効なセッションが存在しない場合のエラー
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrSignInFailed はIDプロバイダがサインインを拒否した場合のエラー
	ErrSignInFailed = errors.New("sign in failed")

	// ErrTokenMintFailed はトークン発行に失敗した場合のエラー
	ErrTokenMintFailed = errors.New("token mint failed")
)
