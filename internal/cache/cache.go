// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides a typed in-memory TTL cache on top of ristretto.
//
// Every entry costs 1, so maxEntries bounds the number of keys. Lookups are
// counted in the cache_lookups_total metric under the cache name.
//
//	c, err := cache.New[store.Category]("categories", 1024, time.Minute)
//	c.Set(cat.ID, cat)
//	if cat, ok := c.Get(id); ok {
//	    ...
//	}
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/tomtom215/splatfolio/internal/metrics"
)

// Cache is a thread-safe string-keyed cache whose entries expire after ttl.
type Cache[V any] struct {
	name string
	ttl  time.Duration
	c    *ristretto.Cache[string, V]
}

// New creates a cache holding up to maxEntries values for ttl each.
func New[V any](name string, maxEntries int64, ttl time.Duration) (*Cache[V], error) {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		// ristretto recommends ten counters per expected entry.
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// Costs count entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s cache: %w", name, err)
	}
	return &Cache[V]{name: name, ttl: ttl, c: c}, nil
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.c.Get(key)
	metrics.RecordCacheLookup(c.name, ok)
	return v, ok
}

// Set stores value under key and waits until it is visible to Get.
// ristretto may still refuse the entry under memory pressure, in which
// case later lookups simply miss.
func (c *Cache[V]) Set(key string, value V) {
	c.c.SetWithTTL(key, value, 1, c.ttl)
	c.c.Wait()
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.c.Del(key)
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.c.Clear()
}

// Close stops ristretto's background goroutines. The cache must not be
// used afterwards.
func (c *Cache[V]) Close() {
	c.c.Close()
}
