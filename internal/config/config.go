// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Events   EventsConfig   `koanf:"events"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig controls where uploaded files live and how stored
// point-cloud files are checked before being served.
type StorageConfig struct {
	// Root is the directory holding the photos, models and videos folders.
	Root string `koanf:"root"`

	// AlignmentPolicy is "strict" (reject misaligned splat files) or
	// "lenient" (serve only the whole-record prefix).
	AlignmentPolicy string `koanf:"alignment_policy"`
}

// DatabaseConfig selects and configures the metadata store.
type DatabaseConfig struct {
	Backend string       `koanf:"backend"` // "mongo" or "badger"
	Mongo   MongoConfig  `koanf:"mongo"`
	Badger  BadgerConfig `koanf:"badger"`
	// CategoryCacheTTL bounds how long category reads are served from
	// memory. Zero disables the cache.
	CategoryCacheTTL time.Duration `koanf:"category_cache_ttl"`
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	// Breaker settings for the store circuit breaker.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// BadgerConfig holds embedded store settings
type BadgerConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// SecurityConfig holds authentication settings
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPasswordHash string        `koanf:"admin_password_hash"`
	AdminPassword     string        `koanf:"admin_password"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	LoginRateLimit    int           `koanf:"login_rate_limit"`
	LoginRateWindow   time.Duration `koanf:"login_rate_window"`
}

// HasConfiguredAdmin reports whether admin credentials come from configuration
// rather than the database admin collection.
func (s SecurityConfig) HasConfiguredAdmin() bool {
	return s.AdminUsername != "" && (s.AdminPasswordHash != "" || s.AdminPassword != "")
}

// LoggingConfig holds logging settings for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// EventsConfig controls the live asset event feed.
type EventsConfig struct {
	Enabled    bool  `koanf:"enabled"`
	BufferSize int64 `koanf:"buffer_size"`
}

// Load reads configuration using the layered koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
