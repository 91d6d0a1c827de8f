// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import "fmt"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// K is the number of neighbors consulted when a request does not set one.
	K int `json:"k"`

	// MaxK caps the neighbor count a request may ask for.
	MaxK int `json:"max_k"`

	// FavoriteRating is written into the synthetic user's column for
	// every favorite movie.
	FavoriteRating float64 `json:"favorite_rating"`

	// UnfavoriteRating is written for every unfavorite movie.
	UnfavoriteRating float64 `json:"unfavorite_rating"`

	// ExcludeRated removes the requester's own favorites and unfavorites
	// from the candidate movies. Off by default, so a favorite can come
	// back as the recommendation.
	ExcludeRated bool `json:"exclude_rated"`
}

// DefaultConfig returns the engine defaults: five neighbors, 5/1 preference
// scores and no exclusion of already-rated movies.
func DefaultConfig() *Config {
	return &Config{
		K:                5,
		MaxK:             100,
		FavoriteRating:   DefaultFavoriteRating,
		UnfavoriteRating: DefaultUnfavoriteRating,
		ExcludeRated:     false,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if c.MaxK < c.K {
		return fmt.Errorf("max_k (%d) must be >= k (%d)", c.MaxK, c.K)
	}
	if c.FavoriteRating <= 0 || c.UnfavoriteRating <= 0 {
		return fmt.Errorf("preference ratings must be positive, got favorite=%v unfavorite=%v",
			c.FavoriteRating, c.UnfavoriteRating)
	}
	if c.UnfavoriteRating >= c.FavoriteRating {
		return fmt.Errorf("unfavorite_rating (%v) must be below favorite_rating (%v)",
			c.UnfavoriteRating, c.FavoriteRating)
	}
	return nil
}
