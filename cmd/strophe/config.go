package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the full strophe service configuration.
type Config struct {
	Addr             string `yaml:"addr"`
	DBPath           string `yaml:"db_path"`
	TokenHash        string `yaml:"token_hash"` // bcrypt hash of the API bearer token; empty disables auth
	MaxUploadMB      int    `yaml:"max_upload_mb"`
	UploadsPerMinute int    `yaml:"uploads_per_minute"`
	LogLevel         string `yaml:"log_level"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:             ":8090",
		DBPath:           "data/anthology.db",
		MaxUploadMB:      64,
		UploadsPerMinute: 30,
		LogLevel:         "info",
	}
}

// LoadConfig resolves configuration in three layers: defaults, then the
// YAML file when present, then STROPHE_* environment overrides. A
// missing file is not an error, so env-only deployments need no file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STROPHE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("STROPHE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("STROPHE_TOKEN_HASH"); v != "" {
		c.TokenHash = v
	}
	if v := os.Getenv("STROPHE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("STROPHE_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxUploadMB = n
		}
	}
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0")
	}
	if c.UploadsPerMinute < 0 {
		return fmt.Errorf("uploads_per_minute must be >= 0")
	}
	return nil
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) * 1024 * 1024 }
