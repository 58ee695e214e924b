// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/config"
	"github.com/tomtom215/splatfolio/internal/store"
)

func openMemoryStore(t *testing.T) store.Store {
	t.Helper()
	s, err := openStore(context.Background(), &config.DatabaseConfig{
		Backend: "badger",
		Badger:  config.BadgerConfig{InMemory: true},
	})
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestOpenStoreBackends(t *testing.T) {
	t.Parallel()

	s := openMemoryStore(t)
	if _, ok := s.(*store.Instrumented); !ok {
		t.Errorf("openStore returned %T, want *store.Instrumented", s)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	cached, err := openStore(context.Background(), &config.DatabaseConfig{
		Backend:          "badger",
		Badger:           config.BadgerConfig{InMemory: true},
		CategoryCacheTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("openStore with cache: %v", err)
	}
	defer func() { _ = cached.Close(context.Background()) }()
	if _, ok := cached.(*store.CachedCategories); !ok {
		t.Errorf("openStore returned %T, want *store.CachedCategories", cached)
	}

	if _, err := openStore(context.Background(), &config.DatabaseConfig{Backend: "sqlite"}); err == nil {
		t.Error("openStore accepted an unknown backend")
	}
}

func TestSeedAdmin(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		sec      config.SecurityConfig
		wantUser string
	}{
		{"none configured", config.SecurityConfig{}, ""},
		{"hash configured", config.SecurityConfig{AdminUsername: "ada", AdminPasswordHash: string(hash)}, "ada"},
		{"plaintext configured", config.SecurityConfig{AdminUsername: "grace", AdminPassword: "hunter22"}, "grace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := openMemoryStore(t)

			got, err := seedAdmin(ctx, s, &tt.sec)
			if err != nil {
				t.Fatalf("seedAdmin: %v", err)
			}
			if tt.wantUser == "" {
				if got != "" {
					t.Errorf("hash = %q, want empty", got)
				}
				return
			}
			if !auth.CheckPassword(got, "hunter22") {
				t.Errorf("returned hash does not match the password")
			}
			admin, err := s.FindAdmin(ctx, tt.wantUser)
			if err != nil {
				t.Fatalf("FindAdmin: %v", err)
			}
			if admin.PasswordHash != got {
				t.Errorf("stored hash %q, returned %q", admin.PasswordHash, got)
			}
		})
	}
}
