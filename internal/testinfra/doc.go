// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package testinfra starts MongoDB and Redis containers for integration
// tests with testcontainers-go.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/mongostore/ ./internal/cache/
//
// Example:
//
//	func TestStoreAgainstMongo(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//	    // connect to mongo.URI
//	}
//
// Tests are skipped when no Docker daemon is reachable. The first run
// pulls the images; later runs use the local cache.
package testinfra
