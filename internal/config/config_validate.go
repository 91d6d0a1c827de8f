// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/tomtom215/pinewood/internal/validation"
)

// Rate limiting bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks struct-level rules first, then the cross-field rules
// the tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateMongo(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

// validateMongo validates MongoDB settings (only for the mongo source)
func (c *Config) validateMongo() error {
	if c.Dataset.Source != "mongo" {
		return nil
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required when DATASET_SOURCE=mongo")
	}
	u, err := url.Parse(c.Mongo.URI)
	if err != nil {
		return fmt.Errorf("MONGO_URI is invalid: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("MONGO_URI scheme must be mongodb or mongodb+srv, got: %s", u.Scheme)
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DB is required when DATASET_SOURCE=mongo")
	}
	return nil
}

// validateRecommend validates the engine's cross-field rules
func (c *Config) validateRecommend() error {
	if c.Recommend.MaxK < c.Recommend.K {
		return fmt.Errorf("RECOMMEND_MAX_K (%d) must be >= RECOMMEND_K (%d)", c.Recommend.MaxK, c.Recommend.K)
	}
	if c.Recommend.UnfavoriteRating >= c.Recommend.FavoriteRating {
		return fmt.Errorf("RECOMMEND_UNFAVORITE_RATING (%v) must be below RECOMMEND_FAVORITE_RATING (%v)",
			c.Recommend.UnfavoriteRating, c.Recommend.FavoriteRating)
	}
	return nil
}

// validateCache validates Redis settings (only for the redis backend)
func (c *Config) validateCache() error {
	if !c.Cache.Enabled || c.Cache.Backend != "redis" {
		return nil
	}
	if c.Cache.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	return nil
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
