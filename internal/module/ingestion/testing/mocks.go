package testing

import (
	"context"
	"sync"

	"github.com/jinford/scansheet/internal/module/ingestion/domain"
)

// MockTransport はテスト用のモックTransportです。呼び出し回数と
// 最後のペイロードを記録します。
type MockTransport struct {
	SendFunc func(ctx context.Context, endpoint, token string, payload domain.FormPayload) (domain.Result, error)

	mu          sync.Mutex
	calls       int
	LastToken   string
	LastPayload domain.FormPayload
}

func (m *MockTransport) Send(ctx context.Context, endpoint, token string, payload domain.FormPayload) (domain.Result, error) {
	m.mu.Lock()
	m.calls++
	m.LastToken = token
	m.LastPayload = payload
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, endpoint, token, payload)
	}
	return domain.Result{OK: true, StatusCode: 200, Body: "ok"}, nil
}

// Calls は Send の呼び出し回数を返します
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockTokenProvider はテスト用のモックTokenProviderです
type MockTokenProvider struct {
	TokenFunc func(ctx context.Context) (string, error)

	mu    sync.Mutex
	calls int
}

func (m *MockTokenProvider) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.TokenFunc != nil {
		return m.TokenFunc(ctx)
	}
	return "mock-token", nil
}

// Calls は Token の呼び出し回数を返します
func (m *MockTokenProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockRegistryRefresher はテスト用のモックRegistryRefresherです
type MockRegistryRefresher struct {
	RefreshFunc func(ctx context.Context) ([]string, error)

	mu    sync.Mutex
	calls int
}

func (m *MockRegistryRefresher) Refresh(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil, nil
}

// Calls は Refresh の呼び出し回数を返します
func (m *MockRegistryRefresher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// TestFile はテスト用のファイルを作成します
func TestFile(name string) domain.FileBlob {
	return domain.FileBlob{
		Name:        name,
		ContentType: "image/jpeg",
		Data:        []byte("fake image bytes"),
	}
}
