// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/splatfolio/internal/metrics"
)

// Instrumented wraps a Store and records per-operation latency and error
// metrics labelled with backend.
type Instrumented struct {
	next    Store
	backend string
}

// WithMetrics returns s wrapped with Prometheus instrumentation.
func WithMetrics(s Store, backend string) *Instrumented {
	return &Instrumented{next: s, backend: backend}
}

// Unwrap returns the wrapped store.
func (s *Instrumented) Unwrap() Store { return s.next }

func (s *Instrumented) observe(op string, start time.Time, err error) {
	// Lookups that miss are answers, not failures.
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
		err = nil
	}
	metrics.RecordStoreOperation(s.backend, op, time.Since(start), err)
}

func (s *Instrumented) InsertAsset(ctx context.Context, asset *Asset) (err error) {
	defer func(start time.Time) { s.observe("insert_asset", start, err) }(time.Now())
	return s.next.InsertAsset(ctx, asset)
}

func (s *Instrumented) ListAssets(ctx context.Context, kind Kind) (_ []Asset, err error) {
	defer func(start time.Time) { s.observe("list_assets", start, err) }(time.Now())
	return s.next.ListAssets(ctx, kind)
}

func (s *Instrumented) GetAsset(ctx context.Context, kind Kind, id string) (_ *Asset, err error) {
	defer func(start time.Time) { s.observe("get_asset", start, err) }(time.Now())
	return s.next.GetAsset(ctx, kind, id)
}

func (s *Instrumented) DeleteAsset(ctx context.Context, kind Kind, id string) (_ *Asset, err error) {
	defer func(start time.Time) { s.observe("delete_asset", start, err) }(time.Now())
	return s.next.DeleteAsset(ctx, kind, id)
}

func (s *Instrumented) CountAssets(ctx context.Context, kind Kind) (_ int64, err error) {
	defer func(start time.Time) { s.observe("count_assets", start, err) }(time.Now())
	return s.next.CountAssets(ctx, kind)
}

func (s *Instrumented) CreateCategory(ctx context.Context, name string) (_ *Category, err error) {
	defer func(start time.Time) { s.observe("create_category", start, err) }(time.Now())
	return s.next.CreateCategory(ctx, name)
}

func (s *Instrumented) ListCategories(ctx context.Context) (_ []Category, err error) {
	defer func(start time.Time) { s.observe("list_categories", start, err) }(time.Now())
	return s.next.ListCategories(ctx)
}

func (s *Instrumented) GetCategory(ctx context.Context, id string) (_ *Category, err error) {
	defer func(start time.Time) { s.observe("get_category", start, err) }(time.Now())
	return s.next.GetCategory(ctx, id)
}

func (s *Instrumented) FindAdmin(ctx context.Context, username string) (_ *Admin, err error) {
	defer func(start time.Time) { s.observe("find_admin", start, err) }(time.Now())
	return s.next.FindAdmin(ctx, username)
}

func (s *Instrumented) UpsertAdmin(ctx context.Context, admin Admin) (err error) {
	defer func(start time.Time) { s.observe("upsert_admin", start, err) }(time.Now())
	return s.next.UpsertAdmin(ctx, admin)
}

func (s *Instrumented) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("ping", start, err) }(time.Now())
	return s.next.Ping(ctx)
}

func (s *Instrumented) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
