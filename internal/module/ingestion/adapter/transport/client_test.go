package transport_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/scansheet/internal/module/ingestion/adapter/transport"
	"github.com/jinford/scansheet/internal/module/ingestion/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testPayload() domain.FormPayload {
	return domain.FormPayload{
		Values: []domain.FormValue{
			{Key: "template_name", Value: "summer-fest"},
			{Key: "spreadsheet_id", Value: "abc123"},
		},
		Files: []domain.FormFile{
			{Field: "files", Blob: domain.FileBlob{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("aaa")}},
			{Field: "files", Blob: domain.FileBlob{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("bbb")}},
		},
	}
}

func TestClient_Send_Success(t *testing.T) {
	// Setup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "summer-fest", r.FormValue("template_name"))
		assert.Equal(t, "abc123", r.FormValue("spreadsheet_id"))
		assert.Len(t, r.MultipartForm.File["files"], 2)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Processed 2 files\n"))
	}))
	defer server.Close()

	client := transport.NewClient(5*time.Second, testLogger())

	// Execute
	result, err := client.Send(context.Background(), server.URL, "fresh-token", testPayload())

	// Assert
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, "Processed 2 files", result.Body)
}

func TestClient_Send_RemoteRejected(t *testing.T) {
	// Setup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("テンプレート名が指定されていません。"))
	}))
	defer server.Close()

	client := transport.NewClient(5*time.Second, testLogger())

	// Execute
	result, err := client.Send(context.Background(), server.URL, "fresh-token", testPayload())

	// Assert: 非2xxはエラーではなく、本文付きの失敗Resultになる
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, 400, result.StatusCode)
	assert.Equal(t, "テンプレート名が指定されていません。", result.Body)
}

func TestClient_Send_NetworkFailure(t *testing.T) {
	// Setup: 先にサーバーを落としておく
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := transport.NewClient(time.Second, testLogger())

	// Execute
	_, err := client.Send(context.Background(), server.URL, "fresh-token", testPayload())

	// Assert
	assert.ErrorIs(t, err, domain.ErrTransportFailed)
}

func TestClient_Send_ContextCancelled(t *testing.T) {
	// Setup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := transport.NewClient(5*time.Second, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Execute
	_, err := client.Send(ctx, server.URL, "fresh-token", testPayload())

	// Assert
	assert.ErrorIs(t, err, domain.ErrTransportFailed)
}
