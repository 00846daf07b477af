// Package lookup はリモートのシートID参照エンドポイントに対する
// 認証付きGETでバインディングを解決するアダプターを実装します。
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jinford/scansheet/internal/module/binding/domain"
)

// Resolver はlookupエンドポイントへの問い合わせでシートIDを解決します
type Resolver struct {
	endpoint   string
	tokens     domain.TokenProvider
	httpClient *http.Client
	log        *slog.Logger
}

// NewResolver は新しいResolverを作成します
func NewResolver(endpoint string, tokens domain.TokenProvider, timeout time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		endpoint:   endpoint,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type lookupResponse struct {
	SpreadsheetID *string `json:"spreadsheetId"`
}

// Resolve はテンプレート名をキーにバインド先シートIDを取得します。
// ネットワーク失敗と非2xxは Unavailable、成功レスポンスで spreadsheetId が
// null/空の場合は Unresolved になります。失敗は致命的ではありません。
func (r *Resolver) Resolve(ctx context.Context, templateName string) (domain.Resolution, error) {
	token, err := r.tokens.Token(ctx)
	if err != nil {
		return domain.Resolution{}, err
	}

	endpoint := r.endpoint + "?template=" + url.QueryEscape(templateName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Warn("sheet binding lookup failed", "template", templateName, "error", err)
		return domain.Unavailable(err.Error()), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Unavailable(err.Error()), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.log.Warn("sheet binding lookup rejected", "template", templateName, "status", resp.StatusCode)
		return domain.Unavailable(strings.TrimSpace(string(body))), nil
	}

	var lookup lookupResponse
	if err := json.Unmarshal(body, &lookup); err != nil {
		return domain.Unavailable(fmt.Sprintf("invalid lookup response: %v", err)), nil
	}

	if lookup.SpreadsheetID == nil || *lookup.SpreadsheetID == "" {
		return domain.Unresolved(), nil
	}
	return domain.Resolved(*lookup.SpreadsheetID), nil
}
