package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, float64(144), config.Raster.DPI)
	assert.Equal(t, 6, config.Terms.MinLength)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
}

func TestLoadFromFilesLaterFilesOverride(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte("[server]\nport = 9000\nhost = \"0.0.0.0\"\n"), 0o600))

	local := filepath.Join(dir, "local.toml")
	require.NoError(t, os.WriteFile(local, []byte("[server]\nport = 9100\nhost = \"0.0.0.0\"\n"), 0o600))

	config, err := LoadFromFiles(base, local)
	require.NoError(t, err)

	assert.Equal(t, 9100, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadFromFilesValidation(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[raster]\ndpi = 72.0\n"), 0o600))

	_, err := LoadFromFiles(bad)
	require.Error(t, err, "render resolution below the OCR floor must be rejected")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LUMEN_SERVER_PORT", "9999")
	t.Setenv("LUMEN_LLM_PROVIDER", "claude")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, 7070, "127.0.0.1")

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 7070, config.Server.Port, "zero values leave config untouched")
}

func TestParseDurationOr(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationOr("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationOr("not-a-duration", time.Minute))
}

func TestResolveAPIKeyEnvAndConfigFallback(t *testing.T) {
	t.Setenv("LUMEN_TEST_SERVICE_KEY", "from-env")

	value, err := ResolveAPIKey(context.Background(), nil, "test_service_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	value, err = ResolveAPIKey(context.Background(), nil, "other_service_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-config", value)

	_, err = ResolveAPIKey(context.Background(), nil, "missing_service_key", "")
	require.Error(t, err)
}

func TestNewUploadID(t *testing.T) {
	a := NewUploadID()
	b := NewUploadID()

	assert.True(t, len(a) > 4 && a[:4] == "upl_")
	assert.NotEqual(t, a, b)
}
