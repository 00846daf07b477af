package domain

import "errors"

var (
	// ErrRegistryUnavailable はテンプレート一覧の取得に失敗した場合のエラー。
	// 呼び出し側は空集合とともにこのエラーを受け取り、リトライ可能として扱います。
	ErrRegistryUnavailable = errors.New("template registry unavailable")

	// ErrTemplateNotFound は指定テンプレートが存在しない場合のエラー
	ErrTemplateNotFound = errors.New("template not found")
)
