package domain

import "context"

// FormValue はmultipartフォームのテキストフィールド1件です。
// スライスで持つことで送信順を決定的にします。
type FormValue struct {
	Key   string
	Value string
}

// FormFile はmultipartフォームのファイルフィールド1件です
type FormFile struct {
	Field string
	Blob  FileBlob
}

// FormPayload はリモート処理エンドポイントへ送るmultipartフォーム全体です
type FormPayload struct {
	Values []FormValue
	Files  []FormFile
}

// Result はリモートエンドポイントの応答を正規化したものです。
// 本文はサーバーが所有するプレーンテキストで、クライアントは成否判定以外の
// 解釈をしません。
type Result struct {
	OK         bool
	StatusCode int
	Body       string
}

// Transport は認証付きmultipart POSTを発行する境界です。リトライせず、
// 呼び出し側の状態も変更しません。テストではこの境界を差し替えます。
type Transport interface {
	Send(ctx context.Context, endpoint, token string, payload FormPayload) (Result, error)
}

// TokenProvider は送信直前に新鮮なベアラートークンを発行します
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// RegistryRefresher はテンプレート作成成功後のレジストリ更新に使います
type RegistryRefresher interface {
	Refresh(ctx context.Context) ([]string, error)
}
