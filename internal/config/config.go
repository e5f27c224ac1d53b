// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all client configuration loaded from defaults, an optional
// YAML config file, and environment variables.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values for every optional setting
//  2. Config file: optional YAML file (filmmatch.yaml)
//  3. Environment variables: override any setting (FM_* prefix)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	API       APIConfig       `koanf:"api"`
	CredStore CredStoreConfig `koanf:"credstore"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// APIConfig holds connection settings for the FilmMatch backend.
//
// Environment variables:
//   - FM_API_BASE_URL: backend base URL including the /api/v1 prefix
//   - FM_API_TIMEOUT: per-request HTTP timeout (default: 30s)
//   - FM_API_MAX_RETRIES: extra attempts for create/refine (default: 2)
//   - FM_API_RETRY_BASE_DELAY: first retry delay, grows linearly (default: 1s)
//   - FM_API_CIRCUIT_BREAKER: wrap create/refine in a circuit breaker (default: true)
//   - FM_API_RATE_LIMIT: client-side requests per second cap, 0 disables (default: 0)
type APIConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	CircuitBreaker bool          `koanf:"circuit_breaker"`
	RateLimit      float64       `koanf:"rate_limit"`
	RateBurst      int           `koanf:"rate_burst"`
}

// CredStoreConfig holds settings for the local credential store.
//
// Environment variables:
//   - FM_CREDSTORE_PATH: BadgerDB directory for tokens and flags
//     (default: ~/.filmmatch)
type CredStoreConfig struct {
	Path string `koanf:"path"`
}

// LoggingConfig holds logging settings.
//
// Environment variables:
//   - FM_LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - FM_LOG_FORMAT: json or console (default: console)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for missing or malformed values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required (set FM_API_BASE_URL)")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must be non-negative, got %d", c.API.MaxRetries)
	}
	if c.API.RetryBaseDelay < 0 {
		return fmt.Errorf("api.retry_base_delay must be non-negative, got %s", c.API.RetryBaseDelay)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be non-negative, got %f", c.API.RateLimit)
	}
	if c.CredStore.Path == "" {
		return fmt.Errorf("credstore.path is required")
	}
	return nil
}
