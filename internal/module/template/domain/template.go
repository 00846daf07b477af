package domain

import (
	"context"
	"time"
)

// Template はユーザーが登録した抽出テンプレートを表します。
// 名前はユーザーごとに一意で、ドキュメントストアのキーを兼ねます。
// 作成後、クライアント側からは読み取り専用です。
type Template struct {
	Name          string    `firestore:"-" json:"name"`
	Items         string    `firestore:"items" json:"items"`
	SpreadsheetID string    `firestore:"spreadsheetId" json:"spreadsheetId"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}

// Repository はリモートのテンプレートストアへの読み取りアクセスを提供します
type Repository interface {
	// ListByUser はストアの列挙順のままテンプレートを返します（順序は保証外）
	ListByUser(ctx context.Context, userID string) ([]*Template, error)
	GetByName(ctx context.Context, userID, name string) (*Template, error)
}
