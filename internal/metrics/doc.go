// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
are exposed by the HTTP server at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - pinewood_recommend_requests_total: Queries by outcome (counter)
    Labels: outcome (ok, no_ratable, empty_store, canceled, error)
  - pinewood_recommend_duration_seconds: Query latency (histogram)
  - pinewood_recommend_neighbors: Neighbors used per query (histogram)
  - pinewood_recommend_fallback_total: Queries answered by the population mean (counter)
  - pinewood_recommend_unmatched_titles_total: Titles that did not resolve (counter)
  - pinewood_recommend_cache_hits_total / _misses_total: Result cache efficiency

Dataset Metrics:
  - pinewood_dataset_load_duration_seconds: Load time per source (histogram)
    Labels: source
  - pinewood_dataset_users / _movies / _ratings: Matrix size (gauges)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)

HTTP Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: Requests in flight (gauge)

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("SELECT", "ratings", time.Since(start), err)
*/
package metrics
