// Package firestore はFirestoreをバックエンドとするテンプレートストアの
// アダプターを実装します。ドキュメントは users/{uid}/templates/{name} に
// 置かれ、ドキュメントIDがテンプレート名です。
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jinford/scansheet/internal/module/template/domain"
)

const (
	usersCollection     = "users"
	templatesCollection = "templates"
)

// TemplateRepository はFirestore上のテンプレートコレクションを読み取ります
type TemplateRepository struct {
	client *firestore.Client
}

// NewTemplateRepository は新しいTemplateRepositoryを作成します
func NewTemplateRepository(client *firestore.Client) *TemplateRepository {
	return &TemplateRepository{client: client}
}

func (r *TemplateRepository) templates(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(templatesCollection)
}

// ListByUser はユーザーのテンプレートをストアの列挙順のまま返します
func (r *TemplateRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Template, error) {
	iter := r.templates(userID).Documents(ctx)
	defer iter.Stop()

	var templates []*domain.Template
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list templates: %w", err)
		}

		template, err := templateFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

// GetByName はテンプレートを1件取得します
func (r *TemplateRepository) GetByName(ctx context.Context, userID, name string) (*domain.Template, error) {
	snap, err := r.templates(userID).Doc(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("failed to get template %q: %w", name, err)
	}
	return templateFromSnapshot(snap)
}

func templateFromSnapshot(snap *firestore.DocumentSnapshot) (*domain.Template, error) {
	var template domain.Template
	if err := snap.DataTo(&template); err != nil {
		return nil, fmt.Errorf("failed to decode template %q: %w", snap.Ref.ID, err)
	}
	template.Name = snap.Ref.ID
	return &template, nil
}
