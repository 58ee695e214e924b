// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"slices"
	"time"

	"github.com/tomtom215/splatfolio/internal/cache"
)

const (
	categoryCacheSize = 4096
	allCategoriesKey  = "all"
)

// CachedCategories serves category reads from memory. Categories are never
// renamed or deleted, so a cached category stays correct; the full list is
// dropped whenever this process creates a category and otherwise lags other
// writers by at most ttl.
type CachedCategories struct {
	Store
	byID *cache.Cache[Category]
	list *cache.Cache[[]Category]
}

// WithCategoryCache wraps s with a category cache whose entries live for ttl.
func WithCategoryCache(s Store, ttl time.Duration) (*CachedCategories, error) {
	byID, err := cache.New[Category]("categories", categoryCacheSize, ttl)
	if err != nil {
		return nil, err
	}
	list, err := cache.New[[]Category]("category_list", 1, ttl)
	if err != nil {
		byID.Close()
		return nil, err
	}
	return &CachedCategories{Store: s, byID: byID, list: list}, nil
}

// Unwrap returns the wrapped store.
func (s *CachedCategories) Unwrap() Store { return s.Store }

// CreateCategory implements Store.
func (s *CachedCategories) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c, err := s.Store.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	s.list.Delete(allCategoriesKey)
	s.byID.Set(c.ID, *c)
	return c, nil
}

// ListCategories implements Store. Callers get their own copy.
func (s *CachedCategories) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.list.Get(allCategoriesKey); ok {
		return slices.Clone(cached), nil
	}
	categories, err := s.Store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.list.Set(allCategoriesKey, slices.Clone(categories))
	for _, c := range categories {
		s.byID.Set(c.ID, c)
	}
	return categories, nil
}

// GetCategory implements Store. Misses are not cached.
func (s *CachedCategories) GetCategory(ctx context.Context, id string) (*Category, error) {
	if c, ok := s.byID.Get(id); ok {
		return &c, nil
	}
	c, err := s.Store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	s.byID.Set(c.ID, *c)
	return c, nil
}

// Close implements Store.
func (s *CachedCategories) Close(ctx context.Context) error {
	s.byID.Close()
	s.list.Close()
	return s.Store.Close(ctx)
}
