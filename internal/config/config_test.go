// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	return &cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url is required",
		},
		{
			name:    "malformed base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "://nope" },
			wantErr: "not a valid URL",
		},
		{
			name:    "non-http scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://example.com/api/v1" },
			wantErr: "scheme must be http or https",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.API.MaxRetries = -1 },
			wantErr: "api.max_retries must be non-negative",
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.API.RetryBaseDelay = -time.Second },
			wantErr: "api.retry_base_delay must be non-negative",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.API.RateLimit = -1 },
			wantErr: "api.rate_limit must be non-negative",
		},
		{
			name:    "missing credstore path",
			mutate:  func(c *Config) { c.CredStore.Path = "" },
			wantErr: "credstore.path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key      string
		expected string
	}{
		{"FM_API_BASE_URL", "api.base_url"},
		{"FM_API_MAX_RETRIES", "api.max_retries"},
		{"FM_API_RETRY_BASE_DELAY", "api.retry_base_delay"},
		{"FM_CREDSTORE_PATH", "credstore.path"},
		{"FM_LOG_LEVEL", "logging.level"},
		{"FM_LOG_FORMAT", "logging.format"},
		{"FM_API_TIMEOUT", "api.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfigRetryPolicy(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.API.MaxRetries != 2 {
		t.Errorf("default max retries = %d, want 2", cfg.API.MaxRetries)
	}
	if cfg.API.RetryBaseDelay != time.Second {
		t.Errorf("default retry base delay = %s, want 1s", cfg.API.RetryBaseDelay)
	}
}
