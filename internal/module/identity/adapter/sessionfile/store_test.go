package sessionfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/scansheet/internal/module/identity/adapter/sessionfile"
	testutil "github.com/jinford/scansheet/internal/module/identity/testing"
)

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	// Setup
	path := filepath.Join(t.TempDir(), "session.json")
	store := sessionfile.NewStore(path)
	session := testutil.TestSession("user-1")

	// Execute
	require.NoError(t, store.Save(session))
	loaded, err := store.Load()

	// Assert
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.UserID, loaded.UserID)
	assert.Equal(t, session.RefreshToken, loaded.RefreshToken)

	// トークンを含むファイルはオーナーのみ読める
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_LoadMissingFile(t *testing.T) {
	// Setup
	store := sessionfile.NewStore(filepath.Join(t.TempDir(), "absent.json"))

	// Execute
	session, err := store.Load()

	// Assert: 未サインインはエラーではない
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	// Setup
	path := filepath.Join(t.TempDir(), "session.json")
	store := sessionfile.NewStore(path)
	require.NoError(t, store.Save(testutil.TestSession("user-1")))

	// Execute
	require.NoError(t, store.Delete())
	err := store.Delete()

	// Assert
	require.NoError(t, err)
	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}
