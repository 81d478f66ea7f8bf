package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panyam/vecalc/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the settings for the duration of a test. godotenv never
// overrides variables that are already set, so they must be absent.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VECALC_LOG_LEVEL", "VECALC_SEED", "VECALC_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".env"), false)
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: runtime.LogLevelWarn}, cfg)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VECALC_LOG_LEVEL=debug\nVECALC_SEED=42\nVECALC_FORMAT=JSON\n"), 0o644))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: runtime.LogLevelDebug, Seed: 42, HasSeed: true, JSON: true}, cfg)
}

func TestLoadConfigEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("VECALC_SEED", "7")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VECALC_SEED=42\n"), 0o644))

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"), true)
	assert.ErrorContains(t, err, "loading env file")

	t.Setenv("VECALC_SEED", "-1")
	_, err = LoadConfig("", false)
	assert.ErrorContains(t, err, `invalid VECALC_SEED "-1"`)

	t.Setenv("VECALC_SEED", "")
	t.Setenv("VECALC_LOG_LEVEL", "loud")
	_, err = LoadConfig("", false)
	assert.Error(t, err)
}
