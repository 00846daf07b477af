package container

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	bindingfs "github.com/jinford/scansheet/internal/module/binding/adapter/firestore"
	"github.com/jinford/scansheet/internal/module/binding/adapter/lookup"
	bindingapp "github.com/jinford/scansheet/internal/module/binding/application"
	bindingdomain "github.com/jinford/scansheet/internal/module/binding/domain"
	"github.com/jinford/scansheet/internal/module/identity/adapter/googleauth"
	"github.com/jinford/scansheet/internal/module/identity/adapter/sessionfile"
	identityapp "github.com/jinford/scansheet/internal/module/identity/application"
	identitydomain "github.com/jinford/scansheet/internal/module/identity/domain"
	"github.com/jinford/scansheet/internal/module/ingestion/adapter/transport"
	ingestionapp "github.com/jinford/scansheet/internal/module/ingestion/application"
	ingestiondomain "github.com/jinford/scansheet/internal/module/ingestion/domain"
	templatefs "github.com/jinford/scansheet/internal/module/template/adapter/firestore"
	templateapp "github.com/jinford/scansheet/internal/module/template/application"
	templatedomain "github.com/jinford/scansheet/internal/module/template/domain"
	"github.com/jinford/scansheet/internal/platform/config"
)

// Container はアプリケーションの依存関係を束ねます。
// テンプレート作成と抽出は別のUIサーフェスなので、オーケストレーターは
// サーフェスごとに1つ持ちます（送信中ガードはサーフェス単位）。
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Sessions *identityapp.SessionService
	Registry *templateapp.RegistryService
	Bindings *bindingapp.BindingService

	// TemplateSurface はテンプレート作成ワークフローのサーフェス
	TemplateSurface *ingestionapp.Orchestrator
	// ExtractSurface はドキュメント抽出ワークフローのサーフェス
	ExtractSurface *ingestionapp.Orchestrator

	firestoreClient *firestore.Client
}

type options struct {
	authenticator identitydomain.Authenticator
	minter        identitydomain.TokenMinter
	sessionStore  identitydomain.SessionStore
	templateRepo  templatedomain.Repository
	settingsRepo  bindingdomain.SettingsRepository
	lookupRes     bindingdomain.Resolver
	transport     ingestiondomain.Transport
}

// Option はContainer構築時のオプション（テストでの差し替え用）
type Option func(*options)

// WithAuthenticator はAuthenticatorを差し替える
func WithAuthenticator(a identitydomain.Authenticator) Option {
	return func(o *options) { o.authenticator = a }
}

// WithTokenMinter はTokenMinterを差し替える
func WithTokenMinter(m identitydomain.TokenMinter) Option {
	return func(o *options) { o.minter = m }
}

// WithSessionStore はSessionStoreを差し替える
func WithSessionStore(s identitydomain.SessionStore) Option {
	return func(o *options) { o.sessionStore = s }
}

// WithTemplateRepository はテンプレートリポジトリを差し替える
func WithTemplateRepository(r templatedomain.Repository) Option {
	return func(o *options) { o.templateRepo = r }
}

// WithSettingsRepository は設定リポジトリを差し替える
func WithSettingsRepository(r bindingdomain.SettingsRepository) Option {
	return func(o *options) { o.settingsRepo = r }
}

// WithLookupResolver はlookupリゾルバを差し替える
func WithLookupResolver(r bindingdomain.Resolver) Option {
	return func(o *options) { o.lookupRes = r }
}

// WithTransport はTransportを差し替える
func WithTransport(t ingestiondomain.Transport) Option {
	return func(o *options) { o.transport = t }
}

// New は設定に従って依存関係を組み立てます
func New(ctx context.Context, log *slog.Logger, cfg *config.Config, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Identity
	if o.authenticator == nil || o.minter == nil {
		var authOpts []googleauth.Option
		if cfg.Auth.SignInURL != "" && cfg.Auth.TokenURL != "" {
			authOpts = append(authOpts, googleauth.WithEndpoints(cfg.Auth.SignInURL, cfg.Auth.TokenURL))
		}
		authClient := googleauth.NewClient(cfg.Auth.APIKey, cfg.HTTPTimeout, log, authOpts...)
		if o.authenticator == nil {
			o.authenticator = authClient
		}
		if o.minter == nil {
			o.minter = authClient
		}
	}
	if o.sessionStore == nil {
		o.sessionStore = sessionfile.NewStore(cfg.SessionFile)
	}
	sessions := identityapp.NewSessionService(o.authenticator, o.minter, o.sessionStore, log)

	c := &Container{
		Config:   cfg,
		Logger:   log,
		Sessions: sessions,
	}

	// ドキュメントストア（Firestore）。リポジトリが注入済みならクライアントは作らない
	if o.templateRepo == nil || o.settingsRepo == nil {
		client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, option.WithTokenSource(sessions.TokenSource(ctx)))
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		c.firestoreClient = client
		if o.templateRepo == nil {
			o.templateRepo = templatefs.NewTemplateRepository(client)
		}
		if o.settingsRepo == nil {
			o.settingsRepo = bindingfs.NewSettingsRepository(client)
		}
	}

	// テンプレートレジストリ（サインアウトで同期的に破棄される）
	registry := templateapp.NewRegistryService(o.templateRepo, sessions, log)
	sessions.OnSignOut(registry.Clear)
	c.Registry = registry

	// シートバインディング
	strategy, err := bindingapp.ParseStrategy(cfg.Resolver)
	if err != nil {
		return nil, err
	}
	if o.lookupRes == nil {
		o.lookupRes = lookup.NewResolver(cfg.Endpoints.SheetLookupURL, sessions, cfg.HTTPTimeout, log)
	}
	c.Bindings = bindingapp.NewBindingService(strategy, o.lookupRes, o.settingsRepo, sessions, log)

	// 取り込みオーケストレーター
	if o.transport == nil {
		o.transport = transport.NewClient(cfg.HTTPTimeout, log)
	}
	endpoints := ingestionapp.Endpoints{
		CreateTemplate:   cfg.Endpoints.CreateTemplateURL,
		ExtractDocuments: cfg.Endpoints.ExtractDocumentsURL,
	}
	c.TemplateSurface = ingestionapp.NewOrchestrator(sessions, o.transport, registry, endpoints, log)
	c.ExtractSurface = ingestionapp.NewOrchestrator(sessions, o.transport, nil, endpoints, log)

	return c, nil
}

// Close はContainerが保持するリソースを解放します
func (c *Container) Close() {
	if c.firestoreClient != nil {
		if err := c.firestoreClient.Close(); err != nil {
			c.Logger.Warn("failed to close firestore client", "error", err)
		}
	}
}
