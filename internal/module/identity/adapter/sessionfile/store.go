// Package sessionfile はセッションをローカルファイルに保存するストアを実装します。
// CLIはプロセスをまたいで同一セッションを使い回すため、リフレッシュトークンと
// プロフィールをJSONで永続化します。
package sessionfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinford/scansheet/internal/module/identity/domain"
)

// Store はセッションファイルの読み書きを行います
type Store struct {
	path string
}

// NewStore は新しいStoreを作成します
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load は保存済みセッションを読み込みます。未保存の場合は nil を返します
func (s *Store) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	if session.RefreshToken == "" {
		return nil, nil
	}
	return &session, nil
}

// Save はセッションを保存します。トークンを含むため 0600 で書き込みます
func (s *Store) Save(session *domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Delete はセッションファイルを削除します。存在しない場合もエラーにしません
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
