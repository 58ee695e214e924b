// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"context"
	"time"

	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/store"
)

// PublishingStore is a store.Store that publishes an event after every
// successful asset insert, asset delete and category creation.
type PublishingStore struct {
	store.Store
	publisher Publisher
	now       func() time.Time
}

// WithPublishing wraps s so that its mutations are published.
func WithPublishing(s store.Store, publisher Publisher) *PublishingStore {
	return &PublishingStore{Store: s, publisher: publisher, now: time.Now}
}

// Unwrap returns the decorated store.
func (p *PublishingStore) Unwrap() store.Store {
	return p.Store
}

// InsertAsset implements store.Store.
func (p *PublishingStore) InsertAsset(ctx context.Context, asset *store.Asset) error {
	if err := p.Store.InsertAsset(ctx, asset); err != nil {
		return err
	}
	p.publish(ctx, AssetEvent(TypeAssetCreated, asset, p.now()))
	return nil
}

// DeleteAsset implements store.Store.
func (p *PublishingStore) DeleteAsset(ctx context.Context, kind store.Kind, id string) (*store.Asset, error) {
	asset, err := p.Store.DeleteAsset(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	p.publish(ctx, AssetEvent(TypeAssetDeleted, asset, p.now()))
	return asset, nil
}

// CreateCategory implements store.Store.
func (p *PublishingStore) CreateCategory(ctx context.Context, name string) (*store.Category, error) {
	category, err := p.Store.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	p.publish(ctx, CategoryEvent(category, p.now()))
	return category, nil
}

func (p *PublishingStore) publish(ctx context.Context, event Event) {
	if err := p.publisher.Publish(ctx, event); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event_type", event.Type).Str("id", event.ID).
			Msg("Failed to publish asset event")
	}
}
