package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	identitydomain "github.com/jinford/scansheet/internal/module/identity/domain"
	"github.com/jinford/scansheet/internal/module/template/domain"
)

// SessionReader は現在のセッションを参照するための最小インターフェース
type SessionReader interface {
	CurrentUser() *identitydomain.Session
}

// RegistryService はユーザーのテンプレート集合をインメモリにキャッシュします。
// キャッシュはセッションの寿命に紐づく唯一の長命な共有状態で、Refresh による
// 全置換でのみ更新されます（差分マージはしない）。
type RegistryService struct {
	repo    domain.Repository
	session SessionReader
	log     *slog.Logger

	mu    sync.RWMutex
	cache []*domain.Template
}

// NewRegistryService は新しいRegistryServiceを作成します
func NewRegistryService(repo domain.Repository, session SessionReader, log *slog.Logger) *RegistryService {
	return &RegistryService{
		repo:    repo,
		session: session,
		log:     log,
	}
}

// Refresh はストアからテンプレート一覧を取得し、キャッシュを丸ごと置き換えます。
// 取得に失敗した場合は空集合と ErrRegistryUnavailable を返し、キャッシュは
// 変更しません（呼び出し側が直前の表示を維持できるように）。
func (s *RegistryService) Refresh(ctx context.Context) ([]string, error) {
	session := s.session.CurrentUser()
	if session == nil {
		return nil, identitydomain.ErrUnauthenticated
	}

	templates, err := s.repo.ListByUser(ctx, session.UserID)
	if err != nil {
		s.log.Warn("template registry refresh failed", "userID", session.UserID, "error", err)
		return []string{}, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}

	s.mu.Lock()
	s.cache = templates
	s.mu.Unlock()

	names := namesOf(templates)
	s.log.Info("template registry refreshed", "userID", session.UserID, "count", len(names))
	return names, nil
}

// Names はキャッシュ済みのテンプレート名を返します
func (s *RegistryService) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return namesOf(s.cache)
}

// Get はキャッシュからテンプレートを引きます
func (s *RegistryService) Get(name string) (*domain.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, template := range s.cache {
		if template.Name == name {
			return template, true
		}
	}
	return nil, false
}

// Clear はキャッシュを破棄します。サインアウトフックから同期的に呼ばれます
func (s *RegistryService) Clear() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
	s.log.Info("template registry cleared")
}

func namesOf(templates []*domain.Template) []string {
	names := make([]string, 0, len(templates))
	for _, template := range templates {
		names = append(names, template.Name)
	}
	return names
}
