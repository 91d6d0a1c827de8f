// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/recommend"
	"github.com/tomtom215/pinewood/internal/testinfra"
)

func TestRedisResults_Container(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()

	rc, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, rc)

	t.Run("round trip", func(t *testing.T) {
		testRedisRoundTrip(t, rc.Addr)
	})

	t.Run("factory", func(t *testing.T) {
		cache, closeFn, err := NewResultCache(ctx, &config.CacheConfig{
			Enabled:   true,
			Backend:   "redis",
			TTL:       time.Minute,
			RedisAddr: rc.Addr,
		})
		if err != nil {
			t.Fatalf("NewResultCache() error = %v", err)
		}
		defer func() { _ = closeFn() }()

		results, ok := cache.(*RedisResults)
		if !ok {
			t.Fatalf("NewResultCache() = %T, want *RedisResults", cache)
		}
		if err := results.Ping(ctx); err != nil {
			t.Errorf("Ping() error = %v", err)
		}

		results.Set(ctx, "factory", &recommend.Result{MovieID: 2, Title: "Jumanji"})
		got, ok := results.Get(ctx, "factory")
		if !ok || got.Title != "Jumanji" {
			t.Errorf("Get() = %+v, %v, want Jumanji", got, ok)
		}
	})
}
