// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is the MongoDB image used by StartMongo.
const DefaultMongoImage = "mongo:7"

// MongoContainer is a running MongoDB container.
type MongoContainer struct {
	*mongodb.MongoDBContainer
	URI string
}

// MongoOption configures StartMongo.
type MongoOption func(*mongoConfig)

type mongoConfig struct {
	image        string
	startTimeout time.Duration
}

// WithMongoImage sets a custom MongoDB image.
func WithMongoImage(image string) MongoOption {
	return func(c *mongoConfig) {
		c.image = image
	}
}

// WithMongoStartTimeout bounds how long StartMongo waits for the server.
func WithMongoStartTimeout(timeout time.Duration) MongoOption {
	return func(c *mongoConfig) {
		c.startTimeout = timeout
	}
}

// StartMongo starts a MongoDB container and registers its cleanup on t.
func StartMongo(t *testing.T, opts ...MongoOption) *MongoContainer {
	t.Helper()

	cfg := &mongoConfig{
		image:        DefaultMongoImage,
		startTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.startTimeout)
	defer cancel()

	container, err := mongodb.Run(ctx, cfg.image,
		testcontainers.WithLogger(NewContainerLogger(t)),
	)
	if err != nil {
		CleanupContainer(t, context.Background(), container)
		t.Fatalf("start mongodb container: %v", err)
	}
	t.Cleanup(func() { CleanupContainer(t, context.Background(), container) })

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongodb connection string: %v", err)
	}

	return &MongoContainer{MongoDBContainer: container, URI: uri}
}

var databaseSeq atomic.Uint64

// UniqueDatabase returns a database name no other test in this process uses,
// so subtests can share one container without seeing each other's data.
func UniqueDatabase(t *testing.T) string {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", ".", "_").Replace(t.Name())
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("%s_%d", name, databaseSeq.Add(1))
}
