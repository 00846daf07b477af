// Package transport はリモート処理エンドポイントへの認証付き
// multipart POSTを実装します。成功/失敗をResultに正規化する以外のことは
// しない、純粋なリクエスト/レスポンス境界です。
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/jinford/scansheet/internal/module/ingestion/domain"
)

// Client はHTTPによるTransport実装です
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient は新しいClientを作成します。timeoutはリクエスト全体に適用されます
func NewClient(timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Send はmultipartフォームを組み立てて送信し、応答を正規化して返します。
// エラーを返すのはレスポンスを得られなかった場合のみで、非2xxは
// Result.OK=false として返します。リトライはしません。
func (c *Client) Send(ctx context.Context, endpoint, token string, payload domain.FormPayload) (domain.Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, value := range payload.Values {
		if err := writer.WriteField(value.Key, value.Value); err != nil {
			return domain.Result{}, fmt.Errorf("failed to write form field %q: %w", value.Key, err)
		}
	}
	for _, file := range payload.Files {
		part, err := writer.CreateFormFile(file.Field, file.Blob.Name)
		if err != nil {
			return domain.Result{}, fmt.Errorf("failed to create form file %q: %w", file.Blob.Name, err)
		}
		if _, err := part.Write(file.Blob.Data); err != nil {
			return domain.Result{}, fmt.Errorf("failed to write form file %q: %w", file.Blob.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return domain.Result{}, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return domain.Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrTransportFailed, err)
	}

	result := domain.Result{
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	c.log.Debug("request completed", "endpoint", endpoint, "status", resp.StatusCode, "ok", result.OK)
	return result, nil
}
