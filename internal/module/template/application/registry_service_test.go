package application_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitydomain "github.com/jinford/scansheet/internal/module/identity/domain"
	identitytest "github.com/jinford/scansheet/internal/module/identity/testing"
	"github.com/jinford/scansheet/internal/module/template/application"
	"github.com/jinford/scansheet/internal/module/template/domain"
	testutil "github.com/jinford/scansheet/internal/module/template/testing"
)

type stubSessionReader struct {
	session *identitydomain.Session
}

func (s *stubSessionReader) CurrentUser() *identitydomain.Session {
	return s.session
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRegistryService_Refresh_Success(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := &testutil.MockTemplateRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]*domain.Template, error) {
			assert.Equal(t, "user-1", userID)
			// ストアの列挙順をそのまま返す（アルファベット順とは限らない）
			return []*domain.Template{
				testutil.TestTemplate("winter-sale", "sheet-2"),
				testutil.TestTemplate("summer-fest", "sheet-1"),
			}, nil
		},
	}
	session := &stubSessionReader{session: identitytest.TestSession("user-1")}

	service := application.NewRegistryService(repo, session, testLogger())

	// Execute
	names, err := service.Refresh(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"winter-sale", "summer-fest"}, names)
	assert.Equal(t, []string{"winter-sale", "summer-fest"}, service.Names())

	template, ok := service.Get("summer-fest")
	require.True(t, ok)
	assert.Equal(t, "sheet-1", template.SpreadsheetID)
}

func TestRegistryService_Refresh_Idempotent(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := &testutil.MockTemplateRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]*domain.Template, error) {
			return []*domain.Template{testutil.TestTemplate("summer-fest", "sheet-1")}, nil
		},
	}
	session := &stubSessionReader{session: identitytest.TestSession("user-1")}
	service := application.NewRegistryService(repo, session, testLogger())

	// Execute
	first, err1 := service.Refresh(ctx)
	second, err2 := service.Refresh(ctx)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestRegistryService_Refresh_Unavailable(t *testing.T) {
	// Setup
	ctx := context.Background()
	calls := 0
	repo := &testutil.MockTemplateRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]*domain.Template, error) {
			calls++
			if calls == 1 {
				return []*domain.Template{testutil.TestTemplate("summer-fest", "sheet-1")}, nil
			}
			return nil, errors.New("firestore unavailable")
		},
	}
	session := &stubSessionReader{session: identitytest.TestSession("user-1")}
	service := application.NewRegistryService(repo, session, testLogger())

	_, err := service.Refresh(ctx)
	require.NoError(t, err)

	// Execute: 2回目は取得失敗
	names, err := service.Refresh(ctx)

	// Assert: 空集合+リトライ可能エラー、キャッシュは直前の状態を保つ
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	assert.Empty(t, names)
	assert.Equal(t, []string{"summer-fest"}, service.Names())
}

func TestRegistryService_Refresh_Unauthenticated(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := &testutil.MockTemplateRepository{}
	session := &stubSessionReader{session: nil}
	service := application.NewRegistryService(repo, session, testLogger())

	// Execute
	_, err := service.Refresh(ctx)

	// Assert
	assert.ErrorIs(t, err, identitydomain.ErrUnauthenticated)
}

func TestRegistryService_Clear(t *testing.T) {
	// Setup
	ctx := context.Background()
	repo := &testutil.MockTemplateRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]*domain.Template, error) {
			return []*domain.Template{testutil.TestTemplate("summer-fest", "sheet-1")}, nil
		},
	}
	session := &stubSessionReader{session: identitytest.TestSession("user-1")}
	service := application.NewRegistryService(repo, session, testLogger())

	_, err := service.Refresh(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, service.Names())

	// Execute: サインアウト時のフックに相当
	service.Clear()

	// Assert
	assert.Empty(t, service.Names())
	_, ok := service.Get("summer-fest")
	assert.False(t, ok)
}
