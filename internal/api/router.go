// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package api exposes the recommender over HTTP using the chi router.
//
// Routes:
//
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	POST /api/v1/recommendations
//	GET  /api/v1/movies/resolve?title=...
//	GET  /api/v1/stats
//	GET  /metrics
//
// Every JSON response uses the APIResponse envelope.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/pinewood/internal/middleware"
)

// NewRouter builds the HTTP handler. requestTimeout bounds each API call;
// zero disables the limit.
func NewRouter(h *Handler, mw *ChiMiddleware, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		if requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(requestTimeout))
		}

		r.Post("/recommendations", h.Recommend)
		r.Get("/movies/resolve", h.ResolveMovie)
		r.Get("/stats", h.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
