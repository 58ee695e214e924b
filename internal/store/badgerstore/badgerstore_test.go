// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package badgerstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/tomtom215/splatfolio/internal/store"
	"github.com/tomtom215/splatfolio/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	s := New(db)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestBadgerStore(t *testing.T) {
	t.Parallel()

	storetest.Run(t, storetest.Backend{
		New:         func(t *testing.T) store.Store { return newTestStore(t) },
		UnusedID:    func() string { return uuid.New().String() },
		MalformedID: "not-a-uuid",
	})
}

func TestBadgerStoreWithMetrics(t *testing.T) {
	t.Parallel()

	storetest.Run(t, storetest.Backend{
		New: func(t *testing.T) store.Store {
			return store.WithMetrics(newTestStore(t), "badger")
		},
		UnusedID:    func() string { return uuid.New().String() },
		MalformedID: "../../etc/passwd",
	})
}

func TestBadgerStoreWithCategoryCache(t *testing.T) {
	t.Parallel()

	storetest.Run(t, storetest.Backend{
		New: func(t *testing.T) store.Store {
			cached, err := store.WithCategoryCache(newTestStore(t), time.Minute)
			if err != nil {
				t.Fatalf("WithCategoryCache: %v", err)
			}
			t.Cleanup(func() { _ = cached.Close(context.Background()) })
			return cached
		},
		UnusedID:    func() string { return uuid.New().String() },
		MalformedID: "not-a-uuid",
	})
}

func TestOpenOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cat, err := s.CreateCategory(ctx, "Persisted")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(dir, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close(ctx) }()

	got, err := reopened.GetCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("GetCategory after reopen: %v", err)
	}
	if got.Name != "Persisted" {
		t.Errorf("category name = %q, want Persisted", got.Name)
	}
}

func TestPingAfterClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := Open("", true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	_ = s.Close(ctx)
	if err := s.Ping(ctx); !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Ping after close error = %v, want ErrUnavailable", err)
	}
}

func TestInsertAssetRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.InsertAsset(context.Background(), &store.Asset{Kind: "audio", Name: "x", Filename: "x"})
	if err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}
