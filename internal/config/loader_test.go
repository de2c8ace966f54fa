package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "blogctl.json"))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().BaseURL, cfg.BaseURL)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.Logging.File)
	assert.NotEmpty(t, cfg.Cache.Path)
}

func TestLoadReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogctl.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "https://blog.example.com",
		"timeout_seconds": 30,
		"logging": {"level": "debug"}
	}`), 0644))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", cfg.BaseURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep defaults
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogctl.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blogctl.json")
	loader := NewLoader(path)

	cfg := DefaultConfig()
	cfg.BaseURL = "https://blog.example.com"
	cfg.TimeoutSeconds = 60
	cfg.Cache.Enabled = false

	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", loaded.BaseURL)
	assert.Equal(t, 60, loaded.TimeoutSeconds)
	assert.False(t, loaded.Cache.Enabled)
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogctl.json")
	got, err := NewLoader(path).ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
