// Package googleauth はGoogle Identity Toolkit REST APIによるサインインと
// 短命IDトークンの発行を実装します。トークンの検証はバックエンド側の責務であり、
// クライアント側ではクレームの取り出しのみを行います。
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/jinford/scansheet/internal/module/identity/domain"
)

const (
	defaultSignInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	defaultTokenURL  = "https://securetoken.googleapis.com/v1/token"
)

// Client はIdentity Toolkitへのクライアントです
type Client struct {
	apiKey     string
	signInURL  string
	tokenURL   string
	httpClient *http.Client
	log        *slog.Logger
}

// Option はClient構築時のオプション
type Option func(*Client)

// WithEndpoints はサインイン/トークン発行エンドポイントを差し替える（テスト用）
func WithEndpoints(signInURL, tokenURL string) Option {
	return func(c *Client) {
		c.signInURL = signInURL
		c.tokenURL = tokenURL
	}
}

// WithHTTPClient はHTTPクライアントを差し替える
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient は新しいClientを作成します
func NewClient(apiKey string, timeout time.Duration, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		signInURL:  defaultSignInURL,
		tokenURL:   defaultTokenURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	DisplayName  string `json:"displayName"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn はメールアドレスとパスワードでサインインし、セッションを作成します
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	payload, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign in request: %w", err)
	}

	endpoint := c.signInURL + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSignInFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sign in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrSignInFailed, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrSignInFailed, resp.StatusCode)
	}

	var signIn signInResponse
	if err := json.Unmarshal(body, &signIn); err != nil {
		return nil, fmt.Errorf("failed to decode sign in response: %w", err)
	}

	session := &domain.Session{
		UserID:       signIn.LocalID,
		Email:        signIn.Email,
		DisplayName:  signIn.DisplayName,
		RefreshToken: signIn.RefreshToken,
		SignedInAt:   time.Now(),
	}

	// displayName が未設定のアカウントではIDトークンのクレームから補完する
	if session.DisplayName == "" {
		if name, _, err := ClaimsFromIDToken(signIn.IDToken); err == nil {
			session.DisplayName = name
		}
	}

	c.log.Info("signed in", "userID", session.UserID, "email", session.Email)
	return session, nil
}

type mintResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id"`
}

// MintToken はリフレッシュトークンと引き換えに新しいIDトークンを発行します。
// 呼び出しのたびにIDプロバイダへ問い合わせ、常に新鮮なトークンを返します。
func (c *Client) MintToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	endpoint := c.tokenURL + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenMintFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrTokenMintFailed, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrTokenMintFailed, resp.StatusCode)
	}

	var mint mintResponse
	if err := json.Unmarshal(body, &mint); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	expiresIn, err := strconv.Atoi(mint.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}

	return &oauth2.Token{
		AccessToken:  mint.IDToken,
		TokenType:    "Bearer",
		RefreshToken: mint.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}

// ClaimsFromIDToken はIDトークンから表示名とユーザーIDを取り出します。
// 署名検証は行いません（バックエンドが検証するため、表示用途に限る）。
func ClaimsFromIDToken(idToken string) (name string, userID string, err error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return "", "", fmt.Errorf("failed to parse id token: %w", err)
	}
	if v, ok := claims["name"].(string); ok {
		name = v
	}
	if v, ok := claims["user_id"].(string); ok {
		userID = v
	} else if v, ok := claims["sub"].(string); ok {
		userID = v
	}
	return name, userID, nil
}
