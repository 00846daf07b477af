// Package firestore はユーザーごとの既定バインディングレコードを
// users/{uid}/settings/binding に読み書きするアダプターを実装します。
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection    = "users"
	settingsCollection = "settings"
	bindingDocument    = "binding"
)

// SettingsRepository はFirestore上の設定レコードを読み書きします
type SettingsRepository struct {
	client *firestore.Client
}

// NewSettingsRepository は新しいSettingsRepositoryを作成します
func NewSettingsRepository(client *firestore.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) bindingDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(settingsCollection).Doc(bindingDocument)
}

// UpsertDefaultSheet は既定のスプレッドシートIDをマージ書き込みします
func (r *SettingsRepository) UpsertDefaultSheet(ctx context.Context, userID, spreadsheetID string) error {
	_, err := r.bindingDoc(userID).Set(ctx, map[string]any{
		"spreadsheetId": spreadsheetID,
		"updatedAt":     firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to upsert default sheet: %w", err)
	}
	return nil
}

// DefaultSheet は既定のスプレッドシートIDを返します。未設定なら空文字列です
func (r *SettingsRepository) DefaultSheet(ctx context.Context, userID string) (string, error) {
	snap, err := r.bindingDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to read default sheet: %w", err)
	}

	value, err := snap.DataAt("spreadsheetId")
	if err != nil {
		return "", nil
	}
	id, _ := value.(string)
	return id, nil
}
