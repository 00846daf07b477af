package testing

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/jinford/scansheet/internal/module/identity/domain"
)

// MockAuthenticator はテスト用のモックAuthenticatorです
type MockAuthenticator struct {
	SignInFunc func(ctx context.Context, email, password string) (*domain.Session, error)
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return nil, nil
}

// MockTokenMinter はテスト用のモックTokenMinterです
type MockTokenMinter struct {
	MintTokenFunc func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

func (m *MockTokenMinter) MintToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if m.MintTokenFunc != nil {
		return m.MintTokenFunc(ctx, refreshToken)
	}
	return &oauth2.Token{AccessToken: "mock-token", TokenType: "Bearer"}, nil
}

// MockSessionStore はテスト用のインメモリSessionStoreです
type MockSessionStore struct {
	LoadFunc   func() (*domain.Session, error)
	SaveFunc   func(session *domain.Session) error
	DeleteFunc func() error

	Session *domain.Session
}

func (m *MockSessionStore) Load() (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return m.Session, nil
}

func (m *MockSessionStore) Save(session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(session)
	}
	m.Session = session
	return nil
}

func (m *MockSessionStore) Delete() error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc()
	}
	m.Session = nil
	return nil
}

// TestSession はテスト用のセッションを作成します
func TestSession(userID string) *domain.Session {
	return &domain.Session{
		UserID:       userID,
		Email:        userID + "@example.com",
		DisplayName:  "テストユーザー",
		RefreshToken: "refresh-" + userID,
	}
}
