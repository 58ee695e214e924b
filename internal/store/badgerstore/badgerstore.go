// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package badgerstore implements store.Store on an embedded Badger database.
// It needs no external service, which makes it the backend for single-node
// deployments and for tests.
//
// Key layout:
//
//	asset:<kind>:<id>  -> Asset (JSON)
//	category:<id>      -> Category (JSON)
//	admin:<username>   -> Admin (JSON)
//
// Identifiers are UUIDs.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/store"
)

const (
	assetKeyPrefix    = "asset:"
	categoryKeyPrefix = "category:"
	adminKeyPrefix    = "admin:"
)

// Store is a Badger-backed store.Store.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) a database at path. With inMemory set, path is
// ignored and nothing is persisted.
func Open(path string, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{})
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{})
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return New(db), nil
}

// New wraps an already open database.
func New(db *badger.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func assetKey(kind store.Kind, id string) []byte {
	return []byte(assetKeyPrefix + string(kind) + ":" + id)
}

func assetPrefix(kind store.Kind) []byte {
	return []byte(assetKeyPrefix + string(kind) + ":")
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return nil
}

// InsertAsset implements store.Store.
func (s *Store) InsertAsset(_ context.Context, asset *store.Asset) error {
	if !asset.Kind.Valid() {
		return fmt.Errorf("insert asset: unknown kind %q", asset.Kind)
	}
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = s.now().UTC()
	}

	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("marshal asset: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(assetKey(asset.Kind, asset.ID), data)
	})
}

// ListAssets implements store.Store.
func (s *Store) ListAssets(_ context.Context, kind store.Kind) ([]store.Asset, error) {
	assets := []store.Asset{}
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, assetPrefix(kind), func(val []byte) error {
			var a store.Asset
			if err := json.Unmarshal(val, &a); err != nil {
				return fmt.Errorf("unmarshal asset: %w", err)
			}
			assets = append(assets, a)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(assets, func(i, j int) bool {
		if !assets[i].CreatedAt.Equal(assets[j].CreatedAt) {
			return assets[i].CreatedAt.Before(assets[j].CreatedAt)
		}
		return assets[i].ID < assets[j].ID
	})
	return assets, nil
}

// GetAsset implements store.Store.
func (s *Store) GetAsset(_ context.Context, kind store.Kind, id string) (*store.Asset, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var a store.Asset
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, assetKey(kind, id), &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAsset implements store.Store.
func (s *Store) DeleteAsset(_ context.Context, kind store.Kind, id string) (*store.Asset, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var a store.Asset
	err := s.db.Update(func(txn *badger.Txn) error {
		key := assetKey(kind, id)
		if err := getJSON(txn, key, &a); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CountAssets implements store.Store.
func (s *Store) CountAssets(_ context.Context, kind store.Kind) (int64, error) {
	var count int64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = assetPrefix(kind)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// CreateCategory implements store.Store.
func (s *Store) CreateCategory(_ context.Context, name string) (*store.Category, error) {
	c := &store.Category{ID: uuid.New().String(), Name: name}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal category: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(categoryKeyPrefix+c.ID), data)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories implements store.Store. Categories are ordered by name.
func (s *Store) ListCategories(_ context.Context) ([]store.Category, error) {
	categories := []store.Category{}
	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(categoryKeyPrefix), func(val []byte) error {
			var c store.Category
			if err := json.Unmarshal(val, &c); err != nil {
				return fmt.Errorf("unmarshal category: %w", err)
			}
			categories = append(categories, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// GetCategory implements store.Store.
func (s *Store) GetCategory(_ context.Context, id string) (*store.Category, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var c store.Category
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(categoryKeyPrefix+id), &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAdmin implements store.Store.
func (s *Store) FindAdmin(_ context.Context, username string) (*store.Admin, error) {
	var a store.Admin
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(adminKeyPrefix+username), &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAdmin implements store.Store.
func (s *Store) UpsertAdmin(_ context.Context, admin store.Admin) error {
	if admin.Username == "" {
		return errors.New("upsert admin: empty username")
	}
	data, err := json.Marshal(admin)
	if err != nil {
		return fmt.Errorf("marshal admin: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(adminKeyPrefix+admin.Username), data)
	})
}

// Ping implements store.Store.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return fmt.Errorf("badger: %w", store.ErrUnavailable)
	}
	return nil
}

// Close implements store.Store. Closing twice is a no-op.
func (s *Store) Close(_ context.Context) error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func scanPrefix(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// badgerLogger routes badger's internal logging into zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Str("component", "badger").Msg(trimNewline(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Str("component", "badger").Msg(trimNewline(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Str("component", "badger").Msg(trimNewline(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Debugf(string, ...interface{}) {}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\n")
}
