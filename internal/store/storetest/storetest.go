// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storetest is a behavioural test suite every store.Store backend
// must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomtom215/splatfolio/internal/store"
)

// Backend describes the store under test.
type Backend struct {
	// New returns an empty store. It is called once per subtest.
	New func(t *testing.T) store.Store
	// UnusedID returns a well-formed id that names no record.
	UnusedID func() string
	// MalformedID is an id the backend must reject with store.ErrInvalidID.
	MalformedID string
}

// Run executes the suite.
func Run(t *testing.T, b Backend) {
	t.Helper()

	t.Run("categories", func(t *testing.T) { testCategories(t, b) })
	t.Run("assets", func(t *testing.T) { testAssets(t, b) })
	t.Run("delete", func(t *testing.T) { testDelete(t, b) })
	t.Run("admins", func(t *testing.T) { testAdmins(t, b) })
	t.Run("details and stats", func(t *testing.T) { testDetailsAndStats(t, b) })
}

func testCategories(t *testing.T, b Backend) {
	ctx := context.Background()
	s := b.New(t)

	sculpture, err := s.CreateCategory(ctx, "Sculpture")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if sculpture.ID == "" || sculpture.Name != "Sculpture" {
		t.Fatalf("CreateCategory returned %+v", sculpture)
	}
	if _, err := s.CreateCategory(ctx, "Architecture"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	got, err := s.GetCategory(ctx, sculpture.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if diff := cmp.Diff(sculpture, got); diff != "" {
		t.Errorf("GetCategory mismatch (-want +got):\n%s", diff)
	}

	list, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListCategories returned %d categories, want 2", len(list))
	}

	if _, err := s.GetCategory(ctx, b.UnusedID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetCategory(unused) error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetCategory(ctx, b.MalformedID); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("GetCategory(malformed) error = %v, want ErrInvalidID", err)
	}
}

func testAssets(t *testing.T, b Backend) {
	ctx := context.Background()
	s := b.New(t)

	cat, err := s.CreateCategory(ctx, "Scans")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := &store.Asset{Kind: store.KindModel, Name: "Bust", Filename: "b.splat", CategoryID: cat.ID, CreatedAt: base.Add(time.Minute)}
	first := &store.Asset{Kind: store.KindModel, Name: "Statue", Filename: "a.splat", CategoryID: cat.ID, CreatedAt: base}
	photo := &store.Asset{Kind: store.KindPhoto, Name: "Sunset", Filename: "c.jpg", CategoryID: cat.ID}

	for _, a := range []*store.Asset{second, first, photo} {
		if err := s.InsertAsset(ctx, a); err != nil {
			t.Fatalf("InsertAsset(%s): %v", a.Name, err)
		}
		if a.ID == "" {
			t.Errorf("InsertAsset(%s) did not assign an ID", a.Name)
		}
	}
	if photo.CreatedAt.IsZero() {
		t.Error("InsertAsset did not assign CreatedAt")
	}

	models, err := s.ListAssets(ctx, store.KindModel)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	want := []store.Asset{*first, *second}
	if diff := cmp.Diff(want, models, timeApprox()); diff != "" {
		t.Errorf("ListAssets(model) mismatch (-want +got):\n%s", diff)
	}

	videos, err := s.ListAssets(ctx, store.KindVideo)
	if err != nil {
		t.Fatalf("ListAssets(video): %v", err)
	}
	if videos == nil || len(videos) != 0 {
		t.Errorf("ListAssets(video) = %v, want empty non-nil slice", videos)
	}

	got, err := s.GetAsset(ctx, store.KindPhoto, photo.ID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if diff := cmp.Diff(photo, got, timeApprox()); diff != "" {
		t.Errorf("GetAsset mismatch (-want +got):\n%s", diff)
	}

	// An id of one kind does not resolve under another.
	if _, err := s.GetAsset(ctx, store.KindVideo, photo.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetAsset(wrong kind) error = %v, want ErrNotFound", err)
	}

	n, err := s.CountAssets(ctx, store.KindModel)
	if err != nil || n != 2 {
		t.Errorf("CountAssets(model) = %d, %v; want 2", n, err)
	}
}

func testDelete(t *testing.T, b Backend) {
	ctx := context.Background()
	s := b.New(t)

	a := &store.Asset{Kind: store.KindVideo, Name: "Walkthrough", Filename: "w.mp4", CategoryID: b.UnusedID()}
	if err := s.InsertAsset(ctx, a); err != nil {
		t.Fatalf("InsertAsset: %v", err)
	}

	deleted, err := s.DeleteAsset(ctx, store.KindVideo, a.ID)
	if err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if deleted.Filename != "w.mp4" {
		t.Errorf("DeleteAsset returned %+v, want the removed record", deleted)
	}

	if _, err := s.DeleteAsset(ctx, store.KindVideo, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second DeleteAsset error = %v, want ErrNotFound", err)
	}
	if _, err := s.DeleteAsset(ctx, store.KindVideo, b.MalformedID); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("DeleteAsset(malformed) error = %v, want ErrInvalidID", err)
	}
	if n, _ := s.CountAssets(ctx, store.KindVideo); n != 0 {
		t.Errorf("CountAssets after delete = %d, want 0", n)
	}
}

func testAdmins(t *testing.T, b Backend) {
	ctx := context.Background()
	s := b.New(t)

	if _, err := s.FindAdmin(ctx, "admin"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindAdmin(missing) error = %v, want ErrNotFound", err)
	}

	admin := store.Admin{Username: "admin", PasswordHash: "$2a$12$abcdefghijklmnopqrstuv"}
	if err := s.UpsertAdmin(ctx, admin); err != nil {
		t.Fatalf("UpsertAdmin: %v", err)
	}
	admin.PasswordHash = "$2a$12$replacedreplacedreplac"
	if err := s.UpsertAdmin(ctx, admin); err != nil {
		t.Fatalf("UpsertAdmin (replace): %v", err)
	}

	got, err := s.FindAdmin(ctx, "admin")
	if err != nil {
		t.Fatalf("FindAdmin: %v", err)
	}
	if diff := cmp.Diff(&admin, got); diff != "" {
		t.Errorf("FindAdmin mismatch (-want +got):\n%s", diff)
	}
}

func testDetailsAndStats(t *testing.T, b Backend) {
	ctx := context.Background()
	s := b.New(t)

	cat, err := s.CreateCategory(ctx, "Portraits")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	inserts := []*store.Asset{
		{Kind: store.KindPhoto, Name: "Known", Filename: "k.jpg", CategoryID: cat.ID},
		{Kind: store.KindPhoto, Name: "Orphan", Filename: "o.jpg", CategoryID: b.UnusedID(), CreatedAt: time.Now().Add(time.Hour)},
		{Kind: store.KindModel, Name: "Model", Filename: "m.splat", CategoryID: cat.ID},
	}
	for _, a := range inserts {
		if err := s.InsertAsset(ctx, a); err != nil {
			t.Fatalf("InsertAsset: %v", err)
		}
	}

	details, err := store.Details(ctx, s, store.KindPhoto)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("Details returned %d entries, want 2", len(details))
	}
	if details[0].CategoryName != "Portraits" || details[0].URL != "/static/photos/k.jpg" {
		t.Errorf("details[0] = %+v", details[0])
	}
	if details[1].CategoryName != store.UnknownCategory {
		t.Errorf("details[1].CategoryName = %q, want %q", details[1].CategoryName, store.UnknownCategory)
	}

	stats, err := store.ComputeStats(ctx, s)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if diff := cmp.Diff(store.Stats{PhotosCount: 2, ModelsCount: 1}, stats); diff != "" {
		t.Errorf("ComputeStats mismatch (-want +got):\n%s", diff)
	}
}

// timeApprox tolerates backends that store timestamps at millisecond precision.
func timeApprox() cmp.Option {
	return cmpopts.EquateApproxTime(time.Millisecond)
}
