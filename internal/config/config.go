package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config represents the main blogctl configuration
type Config struct {
	// Base URL of the remote blog API
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// HTTP timeout for API requests, in seconds
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`

	// Data directory (session record, cache, logs)
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Local post cache
	Cache CacheConfig `json:"cache" mapstructure:"cache"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	MaxSize   int    `json:"max_size" mapstructure:"max_size"` // MB
	MaxAge    int    `json:"max_age" mapstructure:"max_age"`   // days
	Compress  bool   `json:"compress" mapstructure:"compress"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// CacheConfig holds local post cache configuration
type CacheConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Path       string `json:"path" mapstructure:"path"`
	TTLMinutes int    `json:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:4000",
		TimeoutSeconds: 15,
		Logging: LoggingConfig{
			Level:     "info",
			MaxSize:   10,
			MaxAge:    7,
			Compress:  true,
			Redaction: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 15,
		},
	}
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for values the client cannot run with
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url is missing a host")
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}

	if level := strings.ToLower(c.Logging.Level); !validLevels[level] {
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache ttl_minutes cannot be negative, got %d", c.Cache.TTLMinutes)
	}

	return nil
}
