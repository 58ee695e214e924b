// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mongostore implements store.Store on MongoDB.
//
// One collection per asset kind ("photos", "models", "videos") plus
// "category" and "admin", matching the layout existing portfolio databases
// already use. Identifiers are ObjectIDs rendered as 24-character hex.
// Every round trip runs through a circuit breaker so a dead database fails
// requests fast instead of stacking up connection timeouts.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/tomtom215/splatfolio/internal/config"
	"github.com/tomtom215/splatfolio/internal/logging"
	"github.com/tomtom215/splatfolio/internal/store"
)

const (
	categoryCollection = "category"
	adminCollection    = "admin"
)

// assetDoc is the stored shape of an asset. category_id holds an ObjectID
// reference into the category collection.
type assetDoc struct {
	ID         bson.ObjectID `bson:"_id"`
	Name       string        `bson:"name"`
	Filename   string        `bson:"filename"`
	CategoryID bson.ObjectID `bson:"category_id"`
	CreatedAt  time.Time     `bson:"created_at"`
}

type categoryDoc struct {
	ID   bson.ObjectID `bson:"_id"`
	Name string        `bson:"name"`
}

// adminDoc keeps the historical field names. Password holds a bcrypt hash.
type adminDoc struct {
	Username string `bson:"Username"`
	Password string `bson:"Password"`
}

// Store is a MongoDB-backed store.Store.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	breaker *breaker
	now     func() time.Time
}

var _ store.Store = (*Store)(nil)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logging.Info().Str("database", cfg.Database).Msg("Connected to MongoDB")
	return New(client, cfg), nil
}

// New wraps a connected client.
func New(client *mongo.Client, cfg *config.MongoConfig) *Store {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Store{
		client:  client,
		db:      client.Database(cfg.Database),
		breaker: newBreaker("mongodb", maxFailures, timeout),
		now:     time.Now,
	}
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

func assetCollection(s *Store, kind store.Kind) (*mongo.Collection, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown asset kind %q", kind)
	}
	return s.db.Collection(kind.Collection()), nil
}

func toAsset(kind store.Kind, d *assetDoc) *store.Asset {
	return &store.Asset{
		ID:         d.ID.Hex(),
		Kind:       kind,
		Name:       d.Name,
		Filename:   d.Filename,
		CategoryID: d.CategoryID.Hex(),
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// InsertAsset implements store.Store.
func (s *Store) InsertAsset(ctx context.Context, asset *store.Asset) error {
	coll, err := assetCollection(s, asset.Kind)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}

	categoryID, err := parseID(asset.CategoryID)
	if err != nil {
		return fmt.Errorf("insert asset: category: %w", err)
	}

	doc := assetDoc{
		Name:       asset.Name,
		Filename:   asset.Filename,
		CategoryID: categoryID,
		CreatedAt:  asset.CreatedAt,
	}
	if asset.ID == "" {
		doc.ID = bson.NewObjectID()
	} else if doc.ID, err = parseID(asset.ID); err != nil {
		return err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}

	err = exec(s.breaker, func() error {
		_, err := coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	asset.ID = doc.ID.Hex()
	asset.CreatedAt = doc.CreatedAt
	return nil
}

// ListAssets implements store.Store.
func (s *Store) ListAssets(ctx context.Context, kind store.Kind) ([]store.Asset, error) {
	coll, err := assetCollection(s, kind)
	if err != nil {
		return nil, err
	}

	docs, err := run(s.breaker, func() ([]assetDoc, error) {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
		cur, err := coll.Find(ctx, bson.D{}, opts)
		if err != nil {
			return nil, err
		}
		var docs []assetDoc
		if err := cur.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Collection(), err)
	}

	assets := make([]store.Asset, 0, len(docs))
	for i := range docs {
		assets = append(assets, *toAsset(kind, &docs[i]))
	}
	return assets, nil
}

// GetAsset implements store.Store.
func (s *Store) GetAsset(ctx context.Context, kind store.Kind, id string) (*store.Asset, error) {
	coll, err := assetCollection(s, kind)
	if err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	doc, err := run(s.breaker, func() (*assetDoc, error) {
		var d assetDoc
		err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return &d, err
	})
	if err != nil {
		return nil, err
	}
	return toAsset(kind, doc), nil
}

// DeleteAsset implements store.Store.
func (s *Store) DeleteAsset(ctx context.Context, kind store.Kind, id string) (*store.Asset, error) {
	coll, err := assetCollection(s, kind)
	if err != nil {
		return nil, err
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	doc, err := run(s.breaker, func() (*assetDoc, error) {
		var d assetDoc
		err := coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return &d, err
	})
	if err != nil {
		return nil, err
	}
	return toAsset(kind, doc), nil
}

// CountAssets implements store.Store.
func (s *Store) CountAssets(ctx context.Context, kind store.Kind) (int64, error) {
	coll, err := assetCollection(s, kind)
	if err != nil {
		return 0, err
	}
	n, err := run(s.breaker, func() (int64, error) {
		return coll.CountDocuments(ctx, bson.D{})
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind.Collection(), err)
	}
	return n, nil
}

// CreateCategory implements store.Store.
func (s *Store) CreateCategory(ctx context.Context, name string) (*store.Category, error) {
	doc := categoryDoc{ID: bson.NewObjectID(), Name: name}
	err := exec(s.breaker, func() error {
		_, err := s.db.Collection(categoryCollection).InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &store.Category{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

// ListCategories implements store.Store. Categories are ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]store.Category, error) {
	docs, err := run(s.breaker, func() ([]categoryDoc, error) {
		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
		cur, err := s.db.Collection(categoryCollection).Find(ctx, bson.D{}, opts)
		if err != nil {
			return nil, err
		}
		var docs []categoryDoc
		if err := cur.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]store.Category, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, store.Category{ID: d.ID.Hex(), Name: d.Name})
	}
	return categories, nil
}

// GetCategory implements store.Store.
func (s *Store) GetCategory(ctx context.Context, id string) (*store.Category, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := run(s.breaker, func() (*categoryDoc, error) {
		var d categoryDoc
		err := s.db.Collection(categoryCollection).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return &d, err
	})
	if err != nil {
		return nil, err
	}
	return &store.Category{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

// FindAdmin implements store.Store.
func (s *Store) FindAdmin(ctx context.Context, username string) (*store.Admin, error) {
	doc, err := run(s.breaker, func() (*adminDoc, error) {
		var d adminDoc
		err := s.db.Collection(adminCollection).FindOne(ctx, bson.D{{Key: "Username", Value: username}}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return &d, err
	})
	if err != nil {
		return nil, err
	}
	return &store.Admin{Username: doc.Username, PasswordHash: doc.Password}, nil
}

// UpsertAdmin implements store.Store.
func (s *Store) UpsertAdmin(ctx context.Context, admin store.Admin) error {
	if admin.Username == "" {
		return errors.New("upsert admin: empty username")
	}
	doc := adminDoc{Username: admin.Username, Password: admin.PasswordHash}
	return exec(s.breaker, func() error {
		_, err := s.db.Collection(adminCollection).ReplaceOne(ctx,
			bson.D{{Key: "Username", Value: admin.Username}}, doc,
			options.Replace().SetUpsert(true))
		return err
	})
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return exec(s.breaker, func() error {
		return s.client.Ping(ctx, readpref.Primary())
	})
}

// Close implements store.Store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
