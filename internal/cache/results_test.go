// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/recommend"
)

func TestMemoryResults(t *testing.T) {
	ctx := context.Background()
	var rc recommend.ResultCache = NewMemoryResults(NewLRU[*recommend.Result](2, time.Minute))

	if _, ok := rc.Get(ctx, "k"); ok {
		t.Fatal("Get() on empty cache found a value")
	}

	want := &recommend.Result{MovieID: 10, Title: "Heat", Score: 4.5}
	rc.Set(ctx, "k", want)

	got, ok := rc.Get(ctx, "k")
	if !ok || got.MovieID != 10 || got.Title != "Heat" {
		t.Errorf("Get() = %+v, %v, want movie 10", got, ok)
	}
}

func TestNewResultCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		wantNil bool
		wantErr bool
	}{
		{name: "disabled", cfg: config.CacheConfig{Enabled: false}, wantNil: true},
		{name: "memory", cfg: config.CacheConfig{Enabled: true, Backend: "memory", Capacity: 10, TTL: time.Minute}},
		{name: "unknown backend", cfg: config.CacheConfig{Enabled: true, Backend: "memcached"}, wantNil: true, wantErr: true},
		{
			name:    "unreachable redis",
			cfg:     config.CacheConfig{Enabled: true, Backend: "redis", RedisAddr: "127.0.0.1:1", TTL: time.Minute},
			wantNil: true,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, closeFn, err := NewResultCache(ctx, &tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewResultCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if closeFn == nil {
				t.Fatal("close function is nil")
			}
			defer func() { _ = closeFn() }()
			if (rc == nil) != tt.wantNil {
				t.Errorf("NewResultCache() cache = %v, wantNil %v", rc, tt.wantNil)
			}
		})
	}
}

// TestRedisResults runs against a live server when REDIS_ADDR is set.
func TestRedisResults(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	testRedisRoundTrip(t, addr)
}

func testRedisRoundTrip(t *testing.T, addr string) {
	t.Helper()
	ctx := context.Background()

	r, err := NewRedis(ctx, RedisOptions{Addr: addr, Prefix: "pinewood:test:", TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	rc := NewRedisResults(r)
	key := "results-" + time.Now().Format(time.RFC3339Nano)
	if _, ok := rc.Get(ctx, key); ok {
		t.Fatal("Get() on fresh key found a value")
	}

	rc.Set(ctx, key, &recommend.Result{MovieID: 7, Title: "Se7en", Neighbors: []recommend.Neighbor{{UserID: 3, Similarity: 1}}})
	got, ok := rc.Get(ctx, key)
	if !ok {
		t.Fatal("Get() after Set found nothing")
	}
	if got.MovieID != 7 || len(got.Neighbors) != 1 || got.Neighbors[0].UserID != 3 {
		t.Errorf("Get() = %+v", got)
	}
}
