// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store defines the metadata repository for uploaded assets,
// categories and admin accounts. Backends live in sub-packages:
// mongostore (MongoDB) and badgerstore (embedded Badger).
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidID is returned when an identifier is malformed for the backend.
	ErrInvalidID = errors.New("store: invalid id")

	// ErrUnavailable is returned when the backend is refusing requests,
	// for example while a circuit breaker is open.
	ErrUnavailable = errors.New("store: unavailable")
)

// UnknownCategory is the display name used when an asset's category no
// longer resolves.
const UnknownCategory = "Unknown Category"

// Asset is the metadata record of one stored file. Assets are immutable
// once inserted.
type Asset struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Category groups assets for display.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssetDetail is an asset joined with its public URL and category name.
type AssetDetail struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stats counts stored assets per kind.
type Stats struct {
	PhotosCount int64 `json:"photos_count"`
	ModelsCount int64 `json:"models_count"`
	VideosCount int64 `json:"videos_count"`
}

// Admin is an account allowed to mutate the portfolio. PasswordHash is a
// bcrypt hash.
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Store is the metadata repository.
type Store interface {
	// InsertAsset stores a new asset, assigning ID and CreatedAt when unset.
	InsertAsset(ctx context.Context, asset *Asset) error
	// ListAssets returns every asset of kind, oldest first.
	ListAssets(ctx context.Context, kind Kind) ([]Asset, error)
	// GetAsset returns one asset or ErrNotFound.
	GetAsset(ctx context.Context, kind Kind, id string) (*Asset, error)
	// DeleteAsset removes an asset and returns what was removed, or ErrNotFound.
	DeleteAsset(ctx context.Context, kind Kind, id string) (*Asset, error)
	// CountAssets returns the number of assets of kind.
	CountAssets(ctx context.Context, kind Kind) (int64, error)

	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	// GetCategory returns ErrNotFound or ErrInvalidID for ids that do not resolve.
	GetCategory(ctx context.Context, id string) (*Category, error)

	// FindAdmin looks an admin up by username, or returns ErrNotFound.
	FindAdmin(ctx context.Context, username string) (*Admin, error)
	// UpsertAdmin creates or replaces an admin account.
	UpsertAdmin(ctx context.Context, admin Admin) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
