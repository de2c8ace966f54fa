package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:4000", cfg.BaseURL)
	assert.Equal(t, 15, cfg.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Redaction)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15, cfg.Cache.TTLMinutes)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing base url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseURL = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "base_url")
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseURL = "ftp://example.com"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "http or https")
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BaseURL = "http://"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TimeoutSeconds = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Level = "verbose"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log level")
	})

	t.Run("negative cache ttl", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Cache.TTLMinutes = -1
		assert.Error(t, cfg.Validate())
	})
}
