package domain

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Session は認証済みユーザーのセッションを表します。
// プロセス全体で同時に有効なセッションは最大1つです。
type Session struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	RefreshToken string    `json:"refreshToken"`
	SignedInAt   time.Time `json:"signedInAt"`
}

// Authenticator は外部IDプロバイダへの対話的サインインを行います
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
}

// TokenMinter はリフレッシュトークンから短命のIDトークンを発行します。
// 発行されたトークンはリクエスト単位で使い捨てます（キャッシュ禁止）。
type TokenMinter interface {
	MintToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// SessionStore はCLI実行をまたいでセッションを保持します
type SessionStore interface {
	Load() (*Session, error)
	Save(session *Session) error
	Delete() error
}
