// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package events carries asset change notifications from the API to live
// websocket subscribers over an in-process watermill pub/sub.
//
//	PublishingStore --publish--> Bus (gochannel, topic asset-events) --> Forwarder --> websocket.Hub
//
// Publishing is best effort: a failed publish is logged and never fails the
// write that triggered it.
package events

import (
	"time"

	"github.com/tomtom215/splatfolio/internal/store"
)

// Topic is the watermill topic asset events are published on.
const Topic = "asset-events"

// Event types.
const (
	TypeAssetCreated    = "asset.created"
	TypeAssetDeleted    = "asset.deleted"
	TypeCategoryCreated = "category.created"
)

// Event is the payload of one asset change.
type Event struct {
	Type      string     `json:"type"`
	Kind      store.Kind `json:"kind,omitempty"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Filename  string     `json:"filename,omitempty"`
	URL       string     `json:"url,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// AssetEvent builds an event describing asset.
func AssetEvent(eventType string, asset *store.Asset, now time.Time) Event {
	return Event{
		Type:      eventType,
		Kind:      asset.Kind,
		ID:        asset.ID,
		Name:      asset.Name,
		Filename:  asset.Filename,
		URL:       asset.Kind.URL(asset.Filename),
		Timestamp: now.UTC(),
	}
}

// CategoryEvent builds a category.created event.
func CategoryEvent(category *store.Category, now time.Time) Event {
	return Event{
		Type:      TypeCategoryCreated,
		ID:        category.ID,
		Name:      category.Name,
		Timestamp: now.UTC(),
	}
}
