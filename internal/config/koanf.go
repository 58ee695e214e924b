// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/splatfolio/config.yaml",
	"/etc/splatfolio/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultMaxUploadBytes matches the 500 MiB body limit the portfolio frontend expects.
const DefaultMaxUploadBytes int64 = 500 << 20

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     5 * time.Minute,
			WriteTimeout:    5 * time.Minute,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  DefaultMaxUploadBytes,
			Environment:     "development",
		},
		Storage: StorageConfig{
			Root:            "static",
			AlignmentPolicy: "strict",
		},
		Database: DatabaseConfig{
			Backend: "mongo",
			Mongo: MongoConfig{
				URI:                "mongodb://localhost:27017",
				Database:           "Portfolio",
				ConnectTimeout:     10 * time.Second,
				BreakerMaxFailures: 5,
				BreakerTimeout:     30 * time.Second,
			},
			Badger: BadgerConfig{
				Path:     "data/badger",
				InMemory: false,
			},
			CategoryCacheTTL: time.Minute,
		},
		Security: SecurityConfig{
			TokenTTL:        24 * time.Hour,
			CORSOrigins:     []string{"*"},
			LoginRateLimit:  10,
			LoginRateWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 64,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: defaults, the
// optional config file, then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
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

// findConfigFile returns the first existing config file, or "" when none exists.
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

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env values into slices.
// Values that are already slices (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak
// into configuration.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"max_upload_bytes":      "server.max_upload_bytes",
	"environment":           "server.environment",

	"storage_root":           "storage.root",
	"splat_alignment_policy": "storage.alignment_policy",

	"db_backend":                   "database.backend",
	"mongodb_uri":                  "database.mongo.uri",
	"mongodb_database":             "database.mongo.database",
	"mongodb_connect_timeout":      "database.mongo.connect_timeout",
	"mongodb_breaker_max_failures": "database.mongo.breaker_max_failures",
	"mongodb_breaker_timeout":      "database.mongo.breaker_timeout",
	"badger_path":                  "database.badger.path",
	"badger_in_memory":             "database.badger.in_memory",
	"category_cache_ttl":           "database.category_cache_ttl",

	"jwt_secret":          "security.jwt_secret",
	"token_ttl":           "security.token_ttl",
	"admin_username":      "security.admin_username",
	"admin_password_hash": "security.admin_password_hash",
	"admin_password":      "security.admin_password",
	"cors_origins":        "security.cors_origins",
	"login_rate_limit":    "security.login_rate_limit",
	"login_rate_window":   "security.login_rate_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"events_enabled":     "events.enabled",
	"events_buffer_size": "events.buffer_size",
}

// envTransformFunc maps an environment variable name to its koanf path.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - MONGODB_URI -> database.mongo.uri
//   - SPLAT_ALIGNMENT_POLICY -> storage.alignment_policy
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
