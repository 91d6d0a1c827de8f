// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import (
	"context"
	"time"
)

// Request describes a recommendation query.
type Request struct {
	// Favorites are titles the requester likes.
	Favorites []string `json:"favorites"`

	// Unfavorites are titles the requester dislikes.
	Unfavorites []string `json:"unfavorites"`

	// K is the number of neighbors to consult. Zero uses the configured default.
	K int `json:"k,omitempty"`

	// ExcludeRated overrides Config.ExcludeRated when set.
	ExcludeRated *bool `json:"exclude_rated,omitempty"`

	// RequestID for tracing (optional).
	RequestID string `json:"request_id,omitempty"`
}

// Result is the single recommendation produced for a Request.
type Result struct {
	// MovieID of the recommended movie.
	MovieID int `json:"movie_id"`

	// Title is the display title. Empty when the catalog has no entry.
	Title string `json:"title"`

	// Score is the mean rating the movie received from the consulted users.
	Score float64 `json:"score"`

	// Raters is the number of consulted users that rated the movie.
	Raters int `json:"raters"`

	// Fallback is true when no neighbor shared a rated movie with the
	// requester and the population-wide mean was used.
	Fallback bool `json:"fallback"`

	// Neighbors are the users the recommendation was drawn from.
	Neighbors []Neighbor `json:"neighbors"`

	// Favorites and Unfavorites are the resolved movie ids.
	Favorites   []int `json:"favorites"`
	Unfavorites []int `json:"unfavorites"`

	// Unmatched lists the titles that matched no catalog entry.
	Unmatched []string `json:"unmatched,omitempty"`

	// Metadata contains request metadata.
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata contains diagnostic information about a query.
type ResultMetadata struct {
	RequestID    string    `json:"request_id,omitempty"`
	K            int       `json:"k"`
	ExcludeRated bool      `json:"exclude_rated"`
	CacheHit     bool      `json:"cache_hit"`
	LatencyMS    int64     `json:"latency_ms"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// TitleIndex resolves user-facing titles to movie ids and back.
type TitleIndex interface {
	// ResolveAll maps titles to movie ids, returning the titles that
	// matched nothing separately.
	ResolveAll(titles []string) (ids []int, unmatched []string)

	// Title returns the display title of a movie.
	Title(movieID int) (string, bool)
}

// ResultCache stores recommendation results by query key.
type ResultCache interface {
	Get(ctx context.Context, key string) (*Result, bool)
	Set(ctx context.Context, key string, r *Result)
}

// Stats summarizes the engine state.
type Stats struct {
	Users       int   `json:"users"`
	Movies      int   `json:"movies"`
	Ratings     int   `json:"ratings"`
	Requests    int64 `json:"requests"`
	Errors      int64 `json:"errors"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}
