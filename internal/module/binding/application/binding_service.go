package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/scansheet/internal/module/binding/domain"
	identitydomain "github.com/jinford/scansheet/internal/module/identity/domain"
	"github.com/jinford/scansheet/pkg/sheeturl"
)

// Strategy はデプロイごとに選択するバインディング解決方式です
type Strategy string

const (
	// StrategyEmbedded は送信時に呼び出し側がシートID/URLを与える方式
	StrategyEmbedded Strategy = "embedded"
	// StrategyLookup はリモートの参照エンドポイントに問い合わせる方式
	StrategyLookup Strategy = "lookup"
)

// ParseStrategy は設定値をStrategyに変換します
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(raw) {
	case StrategyEmbedded:
		return StrategyEmbedded, nil
	case StrategyLookup, Strategy(""):
		return StrategyLookup, nil
	default:
		return "", fmt.Errorf("unknown resolver strategy: %q", raw)
	}
}

// SessionReader は現在のセッションを参照するための最小インターフェース
type SessionReader interface {
	CurrentUser() *identitydomain.Session
}

// BindingService はテンプレートとスプレッドシートの対応を解決し、
// ユーザーの既定バインディングレコードを管理します。
type BindingService struct {
	strategy Strategy
	lookup   domain.Resolver
	settings domain.SettingsRepository
	session  SessionReader
	log      *slog.Logger
}

// NewBindingService は新しいBindingServiceを作成します
func NewBindingService(strategy Strategy, lookup domain.Resolver, settings domain.SettingsRepository, session SessionReader, log *slog.Logger) *BindingService {
	return &BindingService{
		strategy: strategy,
		lookup:   lookup,
		settings: settings,
		session:  session,
		log:      log,
	}
}

// Strategy は構成済みの解決方式を返します
func (s *BindingService) Strategy() Strategy {
	return s.strategy
}

// Resolve はテンプレートのバインド先シートIDを解決します。
// embedded 方式では supplied（シートIDまたはURL）をそのまま採用し、
// lookup 方式ではリモートに問い合わせます。解決失敗は Unavailable として
// 返し、Unresolved（バインディングが明示的に無い）とは区別します。
func (s *BindingService) Resolve(ctx context.Context, templateName, supplied string) (domain.Resolution, error) {
	if s.session.CurrentUser() == nil {
		return domain.Resolution{}, identitydomain.ErrUnauthenticated
	}

	switch s.strategy {
	case StrategyEmbedded:
		id := sheeturl.ExtractID(supplied)
		if id == "" {
			return domain.Unresolved(), nil
		}
		return domain.Resolved(id), nil
	default:
		return s.lookup.Resolve(ctx, templateName)
	}
}

// SetDefaultSheet はユーザーの既定スプレッドシートをアップサートします
func (s *BindingService) SetDefaultSheet(ctx context.Context, raw string) error {
	session := s.session.CurrentUser()
	if session == nil {
		return identitydomain.ErrUnauthenticated
	}

	id := sheeturl.ExtractID(raw)
	if id == "" {
		return fmt.Errorf("スプレッドシートURLまたはIDを指定してください")
	}

	if err := s.settings.UpsertDefaultSheet(ctx, session.UserID, id); err != nil {
		return fmt.Errorf("failed to save default sheet: %w", err)
	}

	s.log.Info("default sheet updated", "userID", session.UserID, "spreadsheetID", id)
	return nil
}

// DefaultSheet はユーザーの既定スプレッドシートIDを返します（未設定は空文字列）
func (s *BindingService) DefaultSheet(ctx context.Context) (string, error) {
	session := s.session.CurrentUser()
	if session == nil {
		return "", identitydomain.ErrUnauthenticated
	}
	return s.settings.DefaultSheet(ctx, session.UserID)
}
