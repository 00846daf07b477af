package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/jinford/scansheet/internal/module/identity/domain"
)

// SessionService はセッションのライフサイクルを管理するユースケースを提供します。
// セッションの存在が配下のすべての操作（レジストリ、解決、送信）のゲートになります。
type SessionService struct {
	auth   domain.Authenticator
	minter domain.TokenMinter
	store  domain.SessionStore
	log    *slog.Logger

	mu        sync.Mutex
	current   *domain.Session
	loaded    bool
	onSignOut []func()
}

// NewSessionService は新しいSessionServiceを作成します
func NewSessionService(auth domain.Authenticator, minter domain.TokenMinter, store domain.SessionStore, log *slog.Logger) *SessionService {
	return &SessionService{
		auth:   auth,
		minter: minter,
		store:  store,
		log:    log,
	}
}

// OnSignOut はサインアウト時に同期実行されるフックを登録します。
// レジストリのキャッシュ破棄はこのフック経由で行われます。
func (s *SessionService) OnSignOut(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignOut = append(s.onSignOut, hook)
}

// SignIn はIDプロバイダへサインインし、セッションを保存します。
// 既存セッションがある場合は先に破棄し、前ユーザーのキャッシュが残らないようにします。
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if current := s.CurrentUser(); current != nil {
		if err := s.SignOut(); err != nil {
			return nil, fmt.Errorf("failed to discard previous session: %w", err)
		}
	}

	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err := s.store.Save(session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.current = session
	s.loaded = true
	s.mu.Unlock()

	s.log.Info("session established", "userID", session.UserID)
	return session, nil
}

// SignOut はセッションを同期的に破棄します。フック（キャッシュ破棄）が
// 完了してから制御を返すため、以後の読み取りに前セッションの状態は現れません。
func (s *SessionService) SignOut() error {
	s.mu.Lock()
	s.current = nil
	s.loaded = true
	hooks := make([]func(), len(s.onSignOut))
	copy(hooks, s.onSignOut)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	if err := s.store.Delete(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.log.Info("signed out")
	return nil
}

// CurrentUser は現在のセッションを返します。存在しない場合は nil
func (s *SessionService) CurrentUser() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		session, err := s.store.Load()
		if err != nil {
			s.log.Warn("failed to load session", "error", err)
		}
		s.current = session
		s.loaded = true
	}
	return s.current
}

// Token は送信直前に使う新しいベアラートークンを発行します。
// 毎回IDプロバイダへ問い合わせるため、期限切れトークンを掴むことはありません。
func (s *SessionService) Token(ctx context.Context) (string, error) {
	session := s.CurrentUser()
	if session == nil {
		return "", domain.ErrUnauthenticated
	}

	token, err := s.minter.MintToken(ctx, session.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to mint token: %w", err)
	}
	return token.AccessToken, nil
}

// TokenSource はFirestoreクライアント等に渡す oauth2.TokenSource を返します
func (s *SessionService) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &sessionTokenSource{ctx: ctx, svc: s}
}

type sessionTokenSource struct {
	ctx context.Context
	svc *SessionService
}

func (ts *sessionTokenSource) Token() (*oauth2.Token, error) {
	session := ts.svc.CurrentUser()
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	return ts.svc.minter.MintToken(ts.ctx, session.RefreshToken)
}
