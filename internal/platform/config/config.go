package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// リモート処理エンドポイント
	Endpoints EndpointsConfig

	// IDプロバイダ設定
	Auth AuthConfig

	// ドキュメントストア設定
	Firestore FirestoreConfig

	// Resolver はシートバインディングの解決方式（"lookup" または "embedded"）
	Resolver string

	// SessionFile はセッションを永続化するファイルパス
	SessionFile string

	// HTTPTimeout はリモート呼び出し1回あたりのタイムアウト
	HTTPTimeout time.Duration

	// LogLevel / LogFormat はロガー設定
	LogLevel  string
	LogFormat string
}

// EndpointsConfig はリモート処理エンドポイントのURL設定
type EndpointsConfig struct {
	CreateTemplateURL   string
	ExtractDocumentsURL string
	SheetLookupURL      string
}

// AuthConfig はIdentity Toolkit設定
type AuthConfig struct {
	APIKey    string
	SignInURL string
	TokenURL  string
}

// FirestoreConfig はFirestore接続設定
type FirestoreConfig struct {
	ProjectID string
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Endpoints: EndpointsConfig{
			CreateTemplateURL:   getEnv("SCANSHEET_CREATE_TEMPLATE_URL", ""),
			ExtractDocumentsURL: getEnv("SCANSHEET_EXTRACT_DOCUMENTS_URL", ""),
			SheetLookupURL:      getEnv("SCANSHEET_SHEET_LOOKUP_URL", ""),
		},
		Auth: AuthConfig{
			APIKey:    getEnv("SCANSHEET_AUTH_API_KEY", ""),
			SignInURL: getEnv("SCANSHEET_AUTH_SIGNIN_URL", ""),
			TokenURL:  getEnv("SCANSHEET_AUTH_TOKEN_URL", ""),
		},
		Firestore: FirestoreConfig{
			ProjectID: getEnv("SCANSHEET_FIRESTORE_PROJECT", ""),
		},
		Resolver:    getEnv("SCANSHEET_RESOLVER", "lookup"),
		SessionFile: getEnv("SCANSHEET_SESSION_FILE", defaultSessionFile()),
		HTTPTimeout: getEnvAsDuration("SCANSHEET_HTTP_TIMEOUT", 60*time.Second),
		LogLevel:    getEnv("SCANSHEET_LOG_LEVEL", "info"),
		LogFormat:   getEnv("SCANSHEET_LOG_FORMAT", "json"),
	}

	return cfg, nil
}

// Validate は必須設定が揃っているかを確認します
func (c *Config) Validate() error {
	if c.Auth.APIKey == "" {
		return fmt.Errorf("SCANSHEET_AUTH_API_KEY is required")
	}
	if c.Endpoints.CreateTemplateURL == "" {
		return fmt.Errorf("SCANSHEET_CREATE_TEMPLATE_URL is required")
	}
	if c.Endpoints.ExtractDocumentsURL == "" {
		return fmt.Errorf("SCANSHEET_EXTRACT_DOCUMENTS_URL is required")
	}
	if c.Resolver == "lookup" && c.Endpoints.SheetLookupURL == "" {
		return fmt.Errorf("SCANSHEET_SHEET_LOOKUP_URL is required for the lookup resolver")
	}
	if c.Firestore.ProjectID == "" {
		return fmt.Errorf("SCANSHEET_FIRESTORE_PROJECT is required")
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scansheet/session.json"
	}
	return filepath.Join(home, ".scansheet", "session.json")
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration は環境変数をtime.Durationとして取得します
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
