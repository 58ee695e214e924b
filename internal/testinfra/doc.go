// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package testinfra provides container-backed infrastructure for
// integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # MongoDB Container
//
// StartMongo runs a disposable MongoDB and returns its connection URI:
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    mongo := testinfra.StartMongo(t)
//
//	    s, err := mongostore.Connect(ctx, &config.MongoConfig{
//	        URI:      mongo.URI,
//	        Database: testinfra.UniqueDatabase(t),
//	    })
//	    // ...
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// image; later runs use the local cache.
package testinfra
