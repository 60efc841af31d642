package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(DataDirEnv, "")
	return dir
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	isolate(t)
	assert.False(t, Exists())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 3*time.Second, cfg.NotificationDuration())
	assert.Equal(t, 5*time.Second, cfg.GoalReachedDuration())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	cfg.General.CurrencySymbol = "$"
	cfg.Appearance.Theme = "tokyo-night"

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[appearance]\ntheme = \"terminal\"\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
	assert.Equal(t, "₽", cfg.General.CurrencySymbol)
}

func TestLoadRejectsBadToml(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600))

	_, err := Load()
	assert.ErrorContains(t, err, "parsing config")
}

func TestDataPathResolution(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(dir, "data", "planbook", "planbook.db"), cfg.DataPath())

	cfg.General.DataDir = filepath.Join(dir, "custom")
	assert.Equal(t, filepath.Join(dir, "custom", "planbook.db"), cfg.DataPath())

	t.Setenv(DataDirEnv, filepath.Join(dir, "env"))
	assert.Equal(t, filepath.Join(dir, "env", "planbook.db"), cfg.DataPath())
}
