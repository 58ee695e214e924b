// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/store"
)

// ErrInvalidCredentials is returned for any username or password mismatch.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AdminLookup is the slice of store.Store the Authenticator needs.
type AdminLookup interface {
	FindAdmin(ctx context.Context, username string) (*store.Admin, error)
}

// Authenticator verifies admin credentials.
//
// A configured admin (username plus bcrypt hash from the environment) is
// checked first; every other username is looked up in the store.
type Authenticator struct {
	admins         AdminLookup
	configuredUser string
	configuredHash string
	dummyHashOnce  sync.Once
	dummyHash      []byte
	dummyHashCost  int
}

// NewAuthenticator returns an Authenticator backed by admins. configuredUser
// and configuredHash may be empty.
func NewAuthenticator(admins AdminLookup, configuredUser, configuredHash string) *Authenticator {
	return &Authenticator{
		admins:         admins,
		configuredUser: configuredUser,
		configuredHash: configuredHash,
		dummyHashCost:  BcryptCost,
	}
}

// Authenticate returns nil when password is correct for username.
// Mismatches return ErrInvalidCredentials; store failures are returned
// wrapped so callers can tell them apart.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) error {
	if a.configuredUser != "" &&
		subtle.ConstantTimeCompare([]byte(username), []byte(a.configuredUser)) == 1 {
		if CheckPassword(a.configuredHash, password) {
			return nil
		}
		return ErrInvalidCredentials
	}

	admin, err := a.admins.FindAdmin(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		a.burnComparison(password)
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}

	if !IsHash(admin.PasswordHash) {
		logging.Ctx(ctx).Warn().Err(errNotHash).Str("username", logging.Sanitize(username)).
			Msg("Rejecting login: rehash the admin password with splatctl hash-password")
		a.burnComparison(password)
		return ErrInvalidCredentials
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// burnComparison spends one bcrypt comparison so unknown usernames take as
// long as wrong passwords.
func (a *Authenticator) burnComparison(password string) {
	a.dummyHashOnce.Do(func() {
		a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("splatfolio-placeholder"), a.dummyHashCost)
	})
	_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
}
