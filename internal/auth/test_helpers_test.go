// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/splatfolio/internal/config"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

// testSecurityConfig returns a standard test security config.
func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
	}
}

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	m, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

// hashForTest hashes with bcrypt.MinCost; production hashes use BcryptCost.
func hashForTest(t *testing.T, password string) string {
	t.Helper()

	hash, err := hashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword() error = %v", err)
	}
	return hash
}
