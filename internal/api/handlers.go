// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/pinewood/internal/recommend"
)

// Recommender is the engine surface the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	Stats() recommend.Stats
}

// TitleResolver maps titles to movie ids and back.
type TitleResolver interface {
	Resolve(title string) (int, bool)
	Title(movieID int) (string, bool)
}

// ReadinessCheck reports whether dependencies can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Handler serves the API endpoints.
type Handler struct {
	engine    Recommender
	titles    TitleResolver
	maxK      int
	ready     ReadinessCheck
	startTime time.Time
}

// NewHandler wires the handlers. ready may be nil.
func NewHandler(engine Recommender, titles TitleResolver, maxK int, ready ReadinessCheck) *Handler {
	return &Handler{
		engine:    engine,
		titles:    titles,
		maxK:      maxK,
		ready:     ready,
		startTime: time.Now(),
	}
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"status":         "alive",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			rw.ServiceUnavailable("not ready: " + err.Error())
			return
		}
	}

	stats := h.engine.Stats()
	if stats.Users == 0 {
		rw.ServiceUnavailable("rating store is empty")
		return
	}
	rw.Success(map[string]any{"status": "ready", "users": stats.Users, "movies": stats.Movies})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Stats())
}

// MovieMatch is the body of a successful title lookup.
type MovieMatch struct {
	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
}

// ResolveMovie handles GET /api/v1/movies/resolve?title=...
func (h *Handler) ResolveMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		rw.BadRequest("title query parameter is required")
		return
	}

	id, ok := h.titles.Resolve(title)
	if !ok {
		rw.NotFound("no movie titled " + title)
		return
	}
	display, _ := h.titles.Title(id)
	rw.Success(MovieMatch{MovieID: id, Title: display})
}
