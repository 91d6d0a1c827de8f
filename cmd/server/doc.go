// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

/*
Package main is the entry point for the Pinewood HTTP server.

The server loads the rating dataset once at startup, keeps it in memory and
answers recommendation queries over a JSON API. Each query injects the
requester's favorites and unfavorites as a synthetic user into a private
copy of the rating matrix, so concurrent requests never observe each other.

# Application Architecture

	RootSupervisor ("pinewood")
	├── DataSupervisor ("data-layer")
	│   └── Cache janitor (in-memory cache only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with .env, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Dataset: MovieLens CSV files through DuckDB, or MongoDB
 4. Result cache: in-memory LRU or Redis (optional)
 5. Engine and API handlers: Chi router with CORS, rate limiting and metrics
 6. Supervisor Tree: Suture v4 process supervision

# Endpoints

	POST /api/v1/recommendations   recommend one movie
	GET  /api/v1/movies/resolve    look up a title
	GET  /api/v1/stats             dataset and engine counters
	GET  /api/v1/health/live       liveness
	GET  /api/v1/health/ready      readiness
	GET  /metrics                  Prometheus metrics

# Graceful Shutdown

SIGINT or SIGTERM cancels the root context. The HTTP server drains
in-flight requests within SERVER_SHUTDOWN_TIMEOUT and services that fail to
stop in time are logged.
*/
package main
