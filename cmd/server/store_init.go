// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/config"
	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/store"
	"github.com/tomtom215/splatfolio/internal/store/badgerstore"
	"github.com/tomtom215/splatfolio/internal/store/mongostore"
)

// openStore opens the configured metadata backend, instrumented with
// per-operation metrics and, when CategoryCacheTTL is set, fronted by the
// category cache.
func openStore(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	var backend store.Store
	switch cfg.Backend {
	case "mongo":
		s, err := mongostore.Connect(ctx, &cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		backend = s

	case "badger":
		s, err := badgerstore.Open(cfg.Badger.Path, cfg.Badger.InMemory)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		logging.Info().Str("path", cfg.Badger.Path).Bool("in_memory", cfg.Badger.InMemory).Msg("Badger store opened")
		backend = s

	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}

	var s store.Store = store.WithMetrics(backend, cfg.Backend)
	if cfg.CategoryCacheTTL <= 0 {
		return s, nil
	}
	cached, err := store.WithCategoryCache(s, cfg.CategoryCacheTTL)
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return cached, nil
}

// seedAdmin writes the configured admin account to the store and returns
// its bcrypt hash. A plaintext ADMIN_PASSWORD is hashed first. With no
// configured admin it does nothing and logins use the admin collection.
func seedAdmin(ctx context.Context, s store.Store, sec *config.SecurityConfig) (string, error) {
	if !sec.HasConfiguredAdmin() {
		logging.Info().Msg("No configured admin; logins are checked against the admin collection")
		return "", nil
	}

	hash := sec.AdminPasswordHash
	if hash == "" {
		var err error
		if hash, err = auth.HashPassword(sec.AdminPassword); err != nil {
			return "", fmt.Errorf("hash admin password: %w", err)
		}
		logging.Warn().Msg("ADMIN_PASSWORD is plaintext; prefer ADMIN_PASSWORD_HASH")
	}

	if err := s.UpsertAdmin(ctx, store.Admin{Username: sec.AdminUsername, PasswordHash: hash}); err != nil {
		return "", fmt.Errorf("seed admin %q: %w", sec.AdminUsername, err)
	}
	logging.Info().Str("username", sec.AdminUsername).Msg("Admin account seeded")
	return hash, nil
}
