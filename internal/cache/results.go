// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package cache

import (
	"context"
	"fmt"

	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/recommend"
)

// redisKeyPrefix namespaces recommendation results in a shared Redis.
const redisKeyPrefix = "pinewood:rec:"

// MemoryResults is an in-process recommend.ResultCache.
type MemoryResults struct {
	lru *LRU[*recommend.Result]
}

// NewMemoryResults wraps lru.
func NewMemoryResults(lru *LRU[*recommend.Result]) *MemoryResults {
	return &MemoryResults{lru: lru}
}

// Get implements recommend.ResultCache.
func (m *MemoryResults) Get(_ context.Context, key string) (*recommend.Result, bool) {
	return m.lru.Get(key)
}

// Set implements recommend.ResultCache.
func (m *MemoryResults) Set(_ context.Context, key string, r *recommend.Result) {
	m.lru.Set(key, r)
}

// Stats exposes the LRU counters.
func (m *MemoryResults) Stats() LRUStats {
	return m.lru.Stats()
}

// CleanupExpired drops expired results.
func (m *MemoryResults) CleanupExpired() int {
	return m.lru.CleanupExpired()
}

// RedisResults is a recommend.ResultCache shared through Redis. Redis
// failures degrade to cache misses and are logged.
type RedisResults struct {
	redis *Redis
}

// NewRedisResults wraps r.
func NewRedisResults(r *Redis) *RedisResults {
	return &RedisResults{redis: r}
}

// Get implements recommend.ResultCache.
func (c *RedisResults) Get(ctx context.Context, key string) (*recommend.Result, bool) {
	var out recommend.Result
	found, err := c.redis.GetJSON(ctx, key, &out)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Redis cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &out, true
}

// Set implements recommend.ResultCache.
func (c *RedisResults) Set(ctx context.Context, key string, r *recommend.Result) {
	if err := c.redis.SetJSON(ctx, key, r); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Redis cache write failed")
	}
}

// Ping checks the Redis connection.
func (c *RedisResults) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx)
}

// NewResultCache builds the cache selected by cfg. It returns a nil cache
// when caching is disabled. The returned close function is never nil.
func NewResultCache(ctx context.Context, cfg *config.CacheConfig) (recommend.ResultCache, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Enabled {
		return nil, noop, nil
	}

	switch cfg.Backend {
	case "redis":
		r, err := NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   redisKeyPrefix,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, noop, err
		}
		logging.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis result cache")
		return NewRedisResults(r), r.Close, nil
	case "memory", "":
		logging.Info().Int("capacity", cfg.Capacity).Dur("ttl", cfg.TTL).Msg("Using in-memory result cache")
		return NewMemoryResults(NewLRU[*recommend.Result](cfg.Capacity, cfg.TTL)), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
