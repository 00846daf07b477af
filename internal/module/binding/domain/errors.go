package domain

import "errors"

var (
	// ErrResolutionUnavailable はバインディング解決が失敗または判定不能だった場合のエラー
	ErrResolutionUnavailable = errors.New("sheet binding resolution unavailable")
)
