package domain

import "context"

// ResolutionState はシートバインディング解決の観測可能な結果を表します
type ResolutionState string

const (
	// StateResolved はバインド先スプレッドシートIDが確定した状態
	StateResolved ResolutionState = "resolved"
	// StateUnresolved はバインディングが明示的に存在しない状態
	// （lookupが成功し spreadsheetId が null/空だった場合を含む）
	StateUnresolved ResolutionState = "unresolved"
	// StateUnavailable は解決処理そのものに失敗し判定不能だった状態。
	// Unresolved とは別物としてユーザーに提示します。
	StateUnavailable ResolutionState = "unavailable"
)

// Resolution はシートバインディング解決の結果です
type Resolution struct {
	State         ResolutionState
	SpreadsheetID string
	// Detail は Unavailable 時の失敗理由（ユーザー向けメッセージの材料）
	Detail string
}

// Resolved はResolved状態の結果を作成します
func Resolved(spreadsheetID string) Resolution {
	return Resolution{State: StateResolved, SpreadsheetID: spreadsheetID}
}

// Unresolved はUnresolved状態の結果を作成します
func Unresolved() Resolution {
	return Resolution{State: StateUnresolved}
}

// Unavailable はUnavailable状態の結果を作成します
func Unavailable(detail string) Resolution {
	return Resolution{State: StateUnavailable, Detail: detail}
}

// Resolver はテンプレート名からバインド先シートを解決します
type Resolver interface {
	Resolve(ctx context.Context, templateName string) (Resolution, error)
}

// TokenProvider は解決リクエストに添える新鮮なベアラートークンを発行します
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// SettingsRepository はユーザーごとの既定バインディングレコードを読み書きします
type SettingsRepository interface {
	UpsertDefaultSheet(ctx context.Context, userID, spreadsheetID string) error
	// DefaultSheet は未設定の場合に空文字列を返します
	DefaultSheet(ctx context.Context, userID string) (string, error)
}
