package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Interval)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 0.5, cfg.Split)
	assert.Equal(t, 40, cfg.FontSize)
	assert.True(t, cfg.Border)
	assert.Equal(t, "auto", cfg.Decoder)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.History)
	assert.Empty(t, cfg.FontPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FLIPBOOK_INTERVAL", "0.05")
	t.Setenv("FLIPBOOK_WIDTH", "1200")
	t.Setenv("FLIPBOOK_SPLIT", "0.3")
	t.Setenv("FLIPBOOK_BORDER", "false")
	t.Setenv("FLIPBOOK_DECODER", "mpeg1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Interval)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 0.3, cfg.Split)
	assert.False(t, cfg.Border)
	assert.Equal(t, "mpeg1", cfg.Decoder)
}

func TestLoadRejectsMalformedNumber(t *testing.T) {
	t.Setenv("FLIPBOOK_WIDTH", "wide")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabasePath(t *testing.T) {
	cfg := &Config{DBPath: "/tmp/runs.db"}
	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/runs.db", path)

	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg = &Config{}
	path, err = cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "flipbook-cli", "data.db"), path)
}
