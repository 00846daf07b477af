package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/scansheet/internal/platform/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SCANSHEET_AUTH_API_KEY", "test-key")
	t.Setenv("SCANSHEET_CREATE_TEMPLATE_URL", "https://example.com/analyze")
	t.Setenv("SCANSHEET_EXTRACT_DOCUMENTS_URL", "https://example.com/ocr")
	t.Setenv("SCANSHEET_SHEET_LOOKUP_URL", "https://example.com/sheet")
	t.Setenv("SCANSHEET_FIRESTORE_PROJECT", "test-project")
}

func TestLoad_Defaults(t *testing.T) {
	// Setup
	setRequiredEnv(t)

	// Execute
	cfg, err := config.Load("")

	// Assert
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "lookup", cfg.Resolver)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.SessionFile, "session.json")
}

func TestLoad_Overrides(t *testing.T) {
	// Setup
	setRequiredEnv(t)
	t.Setenv("SCANSHEET_RESOLVER", "embedded")
	t.Setenv("SCANSHEET_HTTP_TIMEOUT", "90s")
	t.Setenv("SCANSHEET_SESSION_FILE", "/tmp/scansheet-session.json")

	// Execute
	cfg, err := config.Load("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "embedded", cfg.Resolver)
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/scansheet-session.json", cfg.SessionFile)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	// Setup
	setRequiredEnv(t)
	t.Setenv("SCANSHEET_HTTP_TIMEOUT", "soon")

	// Execute
	cfg, err := config.Load("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
}

func TestValidate_MissingAPIKey(t *testing.T) {
	// Setup
	setRequiredEnv(t)
	t.Setenv("SCANSHEET_AUTH_API_KEY", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	// Execute
	err = cfg.Validate()

	// Assert
	assert.ErrorContains(t, err, "SCANSHEET_AUTH_API_KEY")
}

func TestValidate_LookupRequiresLookupURL(t *testing.T) {
	// Setup
	setRequiredEnv(t)
	t.Setenv("SCANSHEET_SHEET_LOOKUP_URL", "")

	cfg, err := config.Load("")
	require.NoError(t, err)

	// Execute
	err = cfg.Validate()

	// Assert: embedded方式ではlookup URLは不要
	assert.ErrorContains(t, err, "SCANSHEET_SHEET_LOOKUP_URL")

	t.Setenv("SCANSHEET_RESOLVER", "embedded")
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
