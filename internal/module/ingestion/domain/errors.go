package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy は同一サーフェスで別のジョブが送信中の場合のエラー。
	// 二重クリックによる重複書き込みを防ぐ唯一の並行性ガードです。
	ErrBusy = errors.New("another job is in flight")

	// ErrValidationFailed は構造チェックに失敗した場合のエラー。
	// このエラーで終わるジョブはトークンを消費せず、ネットワークにも触れません。
	ErrValidationFailed = errors.New("validation failed")

	// ErrTransportFailed はレスポンスを得る前にネットワークレベルで失敗した場合のエラー
	ErrTransportFailed = errors.New("transport failed")
)

// ValidationError は検証失敗の詳細を運ぶエラーです
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidationFailed, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
