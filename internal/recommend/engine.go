// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pinewood/internal/metrics"
)

// Engine answers recommendation queries against a read-only base matrix.
// It is safe for concurrent use: every query injects its synthetic user
// into its own clone of the base matrix.
type Engine struct {
	config *Config
	logger zerolog.Logger

	base   *Matrix
	titles TitleIndex
	cache  ResultCache

	requestCount atomic.Int64
	errorCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache enables result caching.
func WithCache(c ResultCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// NewEngine creates an engine over base. base must not be modified after
// this call.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(base *Matrix, titles TitleIndex, cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if base == nil {
		return nil, errors.New("base matrix is required")
	}
	if titles == nil {
		return nil, errors.New("title index is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		base:   base,
		titles: titles,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Recommend resolves the request's titles, injects them as a synthetic
// user, finds the nearest neighbors and returns the movie they rate
// highest.
//
// ErrEmptyStore and ErrNoRatableMovies are returned wrapped; use errors.Is.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	k, exclude := e.prepareRequest(req)

	favorites, unmatchedFav := e.titles.ResolveAll(req.Favorites)
	unfavorites, unmatchedUnfav := e.titles.ResolveAll(req.Unfavorites)
	unmatched := append(unmatchedFav, unmatchedUnfav...)
	metrics.RecordUnmatchedTitles(len(unmatched))

	log := e.logger.With().Str("request_id", req.RequestID).Logger()
	if len(unmatched) > 0 {
		log.Debug().Strs("titles", unmatched).Msg("Ignoring titles not found in catalog")
	}

	key := cacheKey(favorites, unfavorites, k, exclude)
	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, key); ok {
			e.cacheHits.Add(1)
			metrics.RecordRecommendCacheHit()
			out := *cached
			out.Unmatched = unmatched
			out.Metadata.RequestID = req.RequestID
			out.Metadata.CacheHit = true
			out.Metadata.LatencyMS = time.Since(start).Milliseconds()
			metrics.RecordRecommendation(metrics.OutcomeOK, time.Since(start), len(out.Neighbors), out.Fallback)
			return &out, nil
		}
		e.cacheMisses.Add(1)
		metrics.RecordRecommendCacheMiss()
	}

	result, err := e.compute(ctx, favorites, unfavorites, k, exclude)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(outcomeOf(err), time.Since(start), 0, false)
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(ctx, key, result)
	}

	out := *result
	out.Unmatched = unmatched
	out.Metadata.RequestID = req.RequestID
	out.Metadata.LatencyMS = time.Since(start).Milliseconds()
	metrics.RecordRecommendation(metrics.OutcomeOK, time.Since(start), len(out.Neighbors), out.Fallback)

	log.Info().
		Int("movie_id", out.MovieID).
		Str("title", out.Title).
		Float64("score", out.Score).
		Int("neighbors", len(out.Neighbors)).
		Bool("fallback", out.Fallback).
		Int64("latency_ms", out.Metadata.LatencyMS).
		Msg("Recommendation generated")

	return &out, nil
}

// compute runs the inject, neighbor and aggregate stages. The returned
// result carries no per-request fields so it can be cached.
func (e *Engine) compute(ctx context.Context, favorites, unfavorites []int, k int, exclude bool) (*Result, error) {
	matrix, userID, err := Inject(e.base, Profile{
		Favorites:        favorites,
		Unfavorites:      unfavorites,
		FavoriteRating:   e.config.FavoriteRating,
		UnfavoriteRating: e.config.UnfavoriteRating,
	})
	if err != nil {
		return nil, fmt.Errorf("inject profile: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	neighbors := FindNeighbors(matrix, userID, k)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var excludeSet map[int]struct{}
	if exclude {
		excludeSet = make(map[int]struct{}, len(favorites)+len(unfavorites))
		for _, id := range favorites {
			excludeSet[id] = struct{}{}
		}
		for _, id := range unfavorites {
			excludeSet[id] = struct{}{}
		}
	}

	pick, err := Aggregate(matrix, userID, NeighborIDs(neighbors), excludeSet)
	if err != nil {
		return nil, fmt.Errorf("aggregate neighbors: %w", err)
	}

	title, ok := e.titles.Title(pick.MovieID)
	if !ok {
		e.logger.Warn().Int("movie_id", pick.MovieID).Msg("Recommended movie has no catalog title")
	}

	if neighbors == nil {
		neighbors = []Neighbor{}
	}
	return &Result{
		MovieID:     pick.MovieID,
		Title:       title,
		Score:       pick.Mean,
		Raters:      pick.Raters,
		Fallback:    pick.Fallback,
		Neighbors:   neighbors,
		Favorites:   favorites,
		Unfavorites: unfavorites,
		Metadata: ResultMetadata{
			K:            k,
			ExcludeRated: exclude,
			GeneratedAt:  time.Now().UTC(),
		},
	}, nil
}

// prepareRequest applies defaults and limits to a request.
func (e *Engine) prepareRequest(req Request) (k int, exclude bool) {
	k = req.K
	if k <= 0 {
		k = e.config.K
	}
	if k > e.config.MaxK {
		k = e.config.MaxK
	}
	exclude = e.config.ExcludeRated
	if req.ExcludeRated != nil {
		exclude = *req.ExcludeRated
	}
	return k, exclude
}

// Stats returns matrix sizes and request counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Users:       e.base.NumUsers(),
		Movies:      e.base.NumMovies(),
		Ratings:     e.base.NumRatings(),
		Requests:    e.requestCount.Load(),
		Errors:      e.errorCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
}

// cacheKey identifies a query by its resolved ids. Order and duplicates in
// the preference lists do not change the answer, so both are normalized.
func cacheKey(favorites, unfavorites []int, k int, exclude bool) string {
	var sb strings.Builder
	sb.WriteString("rec:k=")
	sb.WriteString(strconv.Itoa(k))
	sb.WriteString(":x=")
	sb.WriteString(strconv.FormatBool(exclude))
	sb.WriteString(":f=")
	writeIDs(&sb, favorites)
	sb.WriteString(":u=")
	writeIDs(&sb, unfavorites)
	return sb.String()
}

func writeIDs(sb *strings.Builder, ids []int) {
	sorted := slices.Compact(slices.Sorted(slices.Values(ids)))
	for i, id := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrNoRatableMovies):
		return metrics.OutcomeNoRatable
	case errors.Is(err, ErrEmptyStore):
		return metrics.OutcomeEmptyStore
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
