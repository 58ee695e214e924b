// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"fmt"
)

// Details lists assets of kind joined with their category names. Assets
// whose category no longer exists get UnknownCategory.
func Details(ctx context.Context, s Store, kind Kind) ([]AssetDetail, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	assets, err := s.ListAssets(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Collection(), err)
	}

	details := make([]AssetDetail, 0, len(assets))
	for i := range assets {
		details = append(details, Detail(&assets[i], names))
	}
	return details, nil
}

// Detail builds the detail view of a single asset.
func Detail(a *Asset, categoryNames map[string]string) AssetDetail {
	name, ok := categoryNames[a.CategoryID]
	if !ok {
		name = UnknownCategory
	}
	return AssetDetail{
		ID:           a.ID,
		Name:         a.Name,
		Filename:     a.Filename,
		URL:          a.Kind.URL(a.Filename),
		CategoryID:   a.CategoryID,
		CategoryName: name,
		CreatedAt:    a.CreatedAt,
	}
}

// ComputeStats counts assets of every kind.
func ComputeStats(ctx context.Context, s Store) (Stats, error) {
	var stats Stats
	for _, k := range Kinds {
		n, err := s.CountAssets(ctx, k)
		if err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", k.Collection(), err)
		}
		switch k {
		case KindPhoto:
			stats.PhotosCount = n
		case KindModel:
			stats.ModelsCount = n
		case KindVideo:
			stats.VideosCount = n
		}
	}
	return stats, nil
}
