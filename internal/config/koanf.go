// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority.
var DefaultConfigPaths = []string{
	"filmmatch.yaml",
	"filmmatch.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "FM_CONFIG_PATH"

// envPrefix is the prefix shared by all FilmMatch environment variables.
const envPrefix = "FM_"

// defaultConfig returns built-in defaults for every setting.
func defaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api/v1",
			Timeout:        30 * time.Second,
			MaxRetries:     2,
			RetryBaseDelay: time.Second,
			CircuitBreaker: true,
			RateLimit:      0, // Disabled unless configured
			RateBurst:      5,
		},
		CredStore: CredStoreConfig{
			Path: filepath.Join(home, ".filmmatch"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (if it exists)
//  3. Environment variables: FM_* overrides (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// FM_API_BASE_URL -> api.base_url, FM_LOG_LEVEL -> logging.level
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - FM_API_BASE_URL -> api.base_url
//   - FM_API_MAX_RETRIES -> api.max_retries
//   - FM_CREDSTORE_PATH -> credstore.path
//   - FM_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Fixed mappings where the section name differs from the variable prefix
	// or the field name contains underscores.
	envMappings := map[string]string{
		"api_base_url":         "api.base_url",
		"api_timeout":          "api.timeout",
		"api_max_retries":      "api.max_retries",
		"api_retry_base_delay": "api.retry_base_delay",
		"api_circuit_breaker":  "api.circuit_breaker",
		"api_rate_limit":       "api.rate_limit",
		"api_rate_burst":       "api.rate_burst",
		"credstore_path":       "credstore.path",
		"log_level":            "logging.level",
		"log_format":           "logging.format",
		"log_caller":           "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Fallback: first underscore separates section from field.
	return strings.Replace(key, "_", ".", 1)
}
