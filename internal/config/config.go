// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package config loads application configuration with Koanf v2.
//
// Configuration Loading Order:
//  1. Defaults: Built-in defaults for every setting
//  2. .env file: Optional, loaded into the process environment with godotenv
//  3. Config File: Optional YAML config file (config.yaml)
//  4. Environment Variables: Override any setting
//
// Only explicitly mapped environment variables are read (see envTransformFunc),
// so unrelated variables never leak into the configuration.
package config

import (
	"time"

	"github.com/tomtom215/pinewood/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig selects where ratings and titles come from.
//
// Environment Variables:
//   - DATASET_SOURCE: csv or mongo (default: csv)
//   - RATINGS_PATH, METADATA_PATH, LINKS_PATH: CSV file locations
type DatasetConfig struct {
	// Source is csv (MovieLens + TMDB files through DuckDB) or mongo.
	Source string `koanf:"source" validate:"oneof=csv mongo"`

	// RatingsPath is a MovieLens ratings file (userId,movieId,rating,timestamp).
	RatingsPath string `koanf:"ratings_path" validate:"required_if=Source csv"`

	// MetadataPath is the TMDB movies_metadata file providing original_title.
	MetadataPath string `koanf:"metadata_path" validate:"required_if=Source csv"`

	// LinksPath maps MovieLens movieId to imdbId.
	LinksPath string `koanf:"links_path" validate:"required_if=Source csv"`
}

// DatabaseConfig tunes the in-memory DuckDB instance used to read the CSV files.
type DatabaseConfig struct {
	MaxMemory string `koanf:"max_memory" validate:"required"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = use NumCPU
}

// MongoConfig holds MongoDB connection settings for the mongo dataset source.
type MongoConfig struct {
	URI               string        `koanf:"uri"`
	Database          string        `koanf:"database"`
	RatingsCollection string        `koanf:"ratings_collection"`
	MoviesCollection  string        `koanf:"movies_collection"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_K: neighbors per query (default: 5)
//   - RECOMMEND_EXCLUDE_RATED: never recommend a movie the requester listed (default: false)
type RecommendConfig struct {
	K                int     `koanf:"k" validate:"gte=1"`
	MaxK             int     `koanf:"max_k" validate:"gte=1"`
	FavoriteRating   float64 `koanf:"favorite_rating" validate:"gt=0"`
	UnfavoriteRating float64 `koanf:"unfavorite_rating" validate:"gt=0"`
	ExcludeRated     bool    `koanf:"exclude_rated"`
}

// EngineConfig converts the settings into the engine's configuration.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		K:                r.K,
		MaxK:             r.MaxK,
		FavoriteRating:   r.FavoriteRating,
		UnfavoriteRating: r.UnfavoriteRating,
		ExcludeRated:     r.ExcludeRated,
	}
}

// CacheConfig controls the recommendation result cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Backend string        `koanf:"backend" validate:"oneof=memory redis"`
	TTL     time.Duration `koanf:"ttl" validate:"gt=0"`

	// Capacity bounds the in-memory backend.
	Capacity int `koanf:"capacity" validate:"gte=1"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db" validate:"gte=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SecurityConfig holds HTTP rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}
