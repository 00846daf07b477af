package testing

import (
	"context"

	"github.com/jinford/scansheet/internal/module/binding/domain"
)

// MockResolver はテスト用のモックResolverです
type MockResolver struct {
	ResolveFunc func(ctx context.Context, templateName string) (domain.Resolution, error)
}

func (m *MockResolver) Resolve(ctx context.Context, templateName string) (domain.Resolution, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, templateName)
	}
	return domain.Unresolved(), nil
}

// MockSettingsRepository はテスト用のインメモリSettingsRepositoryです
type MockSettingsRepository struct {
	UpsertDefaultSheetFunc func(ctx context.Context, userID, spreadsheetID string) error
	DefaultSheetFunc       func(ctx context.Context, userID string) (string, error)

	Sheets map[string]string
}

func (m *MockSettingsRepository) UpsertDefaultSheet(ctx context.Context, userID, spreadsheetID string) error {
	if m.UpsertDefaultSheetFunc != nil {
		return m.UpsertDefaultSheetFunc(ctx, userID, spreadsheetID)
	}
	if m.Sheets == nil {
		m.Sheets = map[string]string{}
	}
	m.Sheets[userID] = spreadsheetID
	return nil
}

func (m *MockSettingsRepository) DefaultSheet(ctx context.Context, userID string) (string, error) {
	if m.DefaultSheetFunc != nil {
		return m.DefaultSheetFunc(ctx, userID)
	}
	return m.Sheets[userID], nil
}

// StaticTokenProvider は固定トークンを返すテスト用TokenProviderです
type StaticTokenProvider struct {
	TokenValue string
	Err        error
}

func (p *StaticTokenProvider) Token(ctx context.Context) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	return p.TokenValue, nil
}
