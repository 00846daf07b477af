package lookup_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/scansheet/internal/module/binding/adapter/lookup"
	"github.com/jinford/scansheet/internal/module/binding/domain"
	testutil "github.com/jinford/scansheet/internal/module/binding/testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestResolver_Resolve_Resolved(t *testing.T) {
	// Setup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "summer-fest", r.URL.Query().Get("template"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId": "abc123"}`))
	}))
	defer server.Close()

	resolver := lookup.NewResolver(server.URL, &testutil.StaticTokenProvider{TokenValue: "tok"}, 5*time.Second, testLogger())

	// Execute
	resolution, err := resolver.Resolve(context.Background(), "summer-fest")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.StateResolved, resolution.State)
	assert.Equal(t, "abc123", resolution.SpreadsheetID)
}

func TestResolver_Resolve_UnresolvedNullBinding(t *testing.T) {
	// Setup: バインディングが明示的に存在しないケース
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId": null}`))
	}))
	defer server.Close()

	resolver := lookup.NewResolver(server.URL, &testutil.StaticTokenProvider{TokenValue: "tok"}, 5*time.Second, testLogger())

	// Execute
	resolution, err := resolver.Resolve(context.Background(), "summer-fest")

	// Assert: Unavailable ではなく Unresolved
	require.NoError(t, err)
	assert.Equal(t, domain.StateUnresolved, resolution.State)
}

func TestResolver_Resolve_NotFoundIsUnavailable(t *testing.T) {
	// Setup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("テンプレート「summer-fest」が見つかりません。"))
	}))
	defer server.Close()

	resolver := lookup.NewResolver(server.URL, &testutil.StaticTokenProvider{TokenValue: "tok"}, 5*time.Second, testLogger())

	// Execute
	resolution, err := resolver.Resolve(context.Background(), "summer-fest")

	// Assert: 404 は「判定不能」であり「バインディング無し」とは区別される
	require.NoError(t, err)
	assert.Equal(t, domain.StateUnavailable, resolution.State)
	assert.Contains(t, resolution.Detail, "見つかりません")
}

func TestResolver_Resolve_NetworkFailureIsUnavailable(t *testing.T) {
	// Setup: 先にサーバーを落としておく
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resolver := lookup.NewResolver(server.URL, &testutil.StaticTokenProvider{TokenValue: "tok"}, time.Second, testLogger())

	// Execute
	resolution, err := resolver.Resolve(context.Background(), "summer-fest")

	// Assert: 解決失敗は致命的ではない
	require.NoError(t, err)
	assert.Equal(t, domain.StateUnavailable, resolution.State)
	assert.NotEmpty(t, resolution.Detail)
}

func TestResolver_Resolve_TokenFailure(t *testing.T) {
	// Setup
	tokenErr := errors.New("no session")
	resolver := lookup.NewResolver("http://example.invalid", &testutil.StaticTokenProvider{Err: tokenErr}, time.Second, testLogger())

	// Execute
	_, err := resolver.Resolve(context.Background(), "summer-fest")

	// Assert
	assert.ErrorIs(t, err, tokenErr)
}
