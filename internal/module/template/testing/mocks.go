package testing

import (
	"context"
	"time"

	"github.com/jinford/scansheet/internal/module/template/domain"
)

// MockTemplateRepository はテスト用のモックRepositoryです
type MockTemplateRepository struct {
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Template, error)
	GetByNameFunc  func(ctx context.Context, userID, name string) (*domain.Template, error)
}

func (m *MockTemplateRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Template, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTemplateRepository) GetByName(ctx context.Context, userID, name string) (*domain.Template, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, userID, name)
	}
	return nil, domain.ErrTemplateNotFound
}

// TestTemplate はテスト用のテンプレートを作成します
func TestTemplate(name, spreadsheetID string) *domain.Template {
	return &domain.Template{
		Name:          name,
		Items:         "氏名\n年齢\n満足度",
		SpreadsheetID: spreadsheetID,
		CreatedAt:     time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}
