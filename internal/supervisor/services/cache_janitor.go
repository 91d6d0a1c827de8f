// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package services

import (
	"context"
	"time"

	"github.com/tomtom215/pinewood/internal/logging"
)

// ExpiringCache drops expired entries on demand.
type ExpiringCache interface {
	CleanupExpired() int
}

// CacheJanitor periodically purges expired result cache entries so idle
// keys do not hold memory until they are next looked up.
type CacheJanitor struct {
	cache    ExpiringCache
	interval time.Duration
}

// NewCacheJanitor sweeps cache every interval (default one minute).
func NewCacheJanitor(cache ExpiringCache, interval time.Duration) *CacheJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitor{cache: cache, interval: interval}
}

// Serve implements suture.Service.
func (j *CacheJanitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.cache.CleanupExpired(); n > 0 {
				logging.Debug().Int("removed", n).Msg("Purged expired cache entries")
			}
		}
	}
}

// String names the service in supervisor events.
func (j *CacheJanitor) String() string {
	return "cache-janitor"
}
