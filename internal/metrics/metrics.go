// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeNoRatable  = "no_ratable"
	OutcomeEmptyStore = "empty_store"
	OutcomeCanceled   = "canceled"
	OutcomeError      = "error"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinewood_recommend_requests_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pinewood_recommend_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	RecommendNeighbors = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pinewood_recommend_neighbors",
			Help:    "Number of neighbors consulted per recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pinewood_recommend_fallback_total",
			Help: "Recommendations answered from the population-wide mean",
		},
	)

	RecommendUnmatchedTitles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pinewood_recommend_unmatched_titles_total",
			Help: "Preference titles that did not match any catalog entry",
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pinewood_recommend_cache_hits_total",
			Help: "Recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pinewood_recommend_cache_misses_total",
			Help: "Recommendation result cache misses",
		},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pinewood_dataset_load_duration_seconds",
			Help:    "Time spent loading the rating dataset",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	DatasetUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pinewood_dataset_users",
			Help: "Number of users in the loaded rating matrix",
		},
	)

	DatasetMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pinewood_dataset_movies",
			Help: "Number of movies in the loaded rating matrix",
		},
	)

	DatasetRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pinewood_dataset_ratings",
			Help: "Number of ratings in the loaded rating matrix",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)
)

// RecordRecommendation records the outcome of one recommendation query.
// neighbors and fallback are ignored unless outcome is OutcomeOK.
func RecordRecommendation(outcome string, duration time.Duration, neighbors int, fallback bool) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if outcome != OutcomeOK {
		return
	}
	RecommendNeighbors.Observe(float64(neighbors))
	if fallback {
		RecommendFallbacks.Inc()
	}
}

// RecordUnmatchedTitles adds n unresolved preference titles.
func RecordUnmatchedTitles(n int) {
	if n > 0 {
		RecommendUnmatchedTitles.Add(float64(n))
	}
}

// RecordRecommendCacheHit records a result cache hit
func RecordRecommendCacheHit() {
	RecommendCacheHits.Inc()
}

// RecordRecommendCacheMiss records a result cache miss
func RecordRecommendCacheMiss() {
	RecommendCacheMisses.Inc()
}

// RecordDatasetLoad records how long a dataset load took and the size of
// the resulting matrix.
func RecordDatasetLoad(source string, duration time.Duration, users, movies, ratings int) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	DatasetUsers.Set(float64(users))
	DatasetMovies.Set(float64(movies))
	DatasetRatings.Set(float64(ratings))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

// classifyDBError maps a DuckDB error to a low-cardinality label.
func classifyDBError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such file"), strings.Contains(msg, "no files found"):
		return "missing_file"
	case strings.Contains(msg, "context"):
		return "canceled"
	case strings.Contains(msg, "conversion"), strings.Contains(msg, "could not convert"):
		return "conversion"
	case strings.Contains(msg, "parser"), strings.Contains(msg, "syntax"):
		return "syntax"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
