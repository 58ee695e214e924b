// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinJWTSecretLength is the minimum accepted HMAC secret length.
const MinJWTSecretLength = 32

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.Root) == "" {
		return fmt.Errorf("STORAGE_ROOT is required")
	}
	switch strings.ToLower(c.Storage.AlignmentPolicy) {
	case "strict", "lenient":
		return nil
	default:
		return fmt.Errorf("SPLAT_ALIGNMENT_POLICY must be one of: strict, lenient (got %q)", c.Storage.AlignmentPolicy)
	}
}

func (c *Config) validateDatabase() error {
	if c.Database.CategoryCacheTTL < 0 {
		return fmt.Errorf("CATEGORY_CACHE_TTL must not be negative")
	}
	switch c.Database.Backend {
	case "mongo":
		return c.validateMongo()
	case "badger":
		return c.validateBadger()
	default:
		return fmt.Errorf("DB_BACKEND must be one of: mongo, badger (got %q)", c.Database.Backend)
	}
}

func (c *Config) validateMongo() error {
	if c.Database.Mongo.URI == "" {
		return fmt.Errorf("MONGODB_URI is required when DB_BACKEND=mongo")
	}
	if c.Database.Mongo.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required when DB_BACKEND=mongo")
	}
	if c.Database.Mongo.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGODB_CONNECT_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateBadger() error {
	if !c.Database.Badger.InMemory && c.Database.Badger.Path == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if err := c.validateAdminCredentials(); err != nil {
		return err
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateLoginRateLimit()
}

func (c *Config) validateJWTSecret() error {
	if len(c.Security.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// validateAdminCredentials checks the optional configured admin. When no
// username is configured, logins are checked against the admin collection.
func (c *Config) validateAdminCredentials() error {
	s := c.Security
	if s.AdminUsername == "" {
		if s.AdminPasswordHash != "" || s.AdminPassword != "" {
			return fmt.Errorf("ADMIN_USERNAME is required when an admin password is configured")
		}
		return nil
	}
	if s.AdminPasswordHash == "" && s.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required when ADMIN_USERNAME is set")
	}
	if s.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(s.AdminPasswordHash)); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH is not a valid bcrypt hash: %w", err)
		}
	}
	return nil
}

// validateCORS rejects wildcard origins in production, where mutating
// endpoints accept bearer tokens from any page otherwise.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; " +
			"set explicit origins, e.g. CORS_ORIGINS=https://portfolio.example.com")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true when CORS is wide open.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

const (
	minLoginRateLimit  = 1
	maxLoginRateLimit  = 10000
	minLoginRateWindow = time.Second
	maxLoginRateWindow = time.Hour
)

func (c *Config) validateLoginRateLimit() error {
	if c.Security.LoginRateLimit < minLoginRateLimit || c.Security.LoginRateLimit > maxLoginRateLimit {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be between %d and %d", minLoginRateLimit, maxLoginRateLimit)
	}
	if c.Security.LoginRateWindow < minLoginRateWindow || c.Security.LoginRateWindow > maxLoginRateWindow {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be between %v and %v", minLoginRateWindow, maxLoginRateWindow)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}
