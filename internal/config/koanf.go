// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pinewood/config.yaml",
	"/etc/pinewood/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the location of the optional .env file.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:       "csv",
			RatingsPath:  "data/ratings_small.csv",
			MetadataPath: "data/movies_metadata.csv",
			LinksPath:    "data/links.csv",
		},
		Database: DatabaseConfig{
			MaxMemory: "1GB",
			Threads:   0,
		},
		Mongo: MongoConfig{
			URI:               "mongodb://localhost:27017",
			Database:          "pinewood",
			RatingsCollection: "ratings",
			MoviesCollection:  "movies",
			Timeout:           10 * time.Second,
		},
		Recommend: RecommendConfig{
			K:                5,
			MaxK:             100,
			FavoriteRating:   5,
			UnfavoriteRating: 1,
			ExcludeRated:     false,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   "memory",
			TTL:       10 * time.Minute,
			Capacity:  1000,
			RedisAddr: "localhost:6379",
			RedisDB:   0,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load is the entry point used by the binaries.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables, including those from an optional .env file
//
// Precedence is ENV > File > Defaults. Variables already present in the
// process environment win over the .env file.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// RATINGS_PATH -> dataset.ratings_path, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads DOTENV_PATH (or ./.env) into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Dataset mappings
	"dataset_source": "dataset.source",
	"ratings_path":   "dataset.ratings_path",
	"metadata_path":  "dataset.metadata_path",
	"links_path":     "dataset.links_path",

	// Database mappings
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// MongoDB mappings
	"mongo_uri":                "mongo.uri",
	"mongo_db":                 "mongo.database",
	"mongo_ratings_collection": "mongo.ratings_collection",
	"mongo_movies_collection":  "mongo.movies_collection",
	"mongo_timeout":            "mongo.timeout",

	// Recommendation engine mappings
	"recommend_k":                 "recommend.k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_favorite_rating":   "recommend.favorite_rating",
	"recommend_unfavorite_rating": "recommend.unfavorite_rating",
	"recommend_exclude_rated":     "recommend.exclude_rated",

	// Cache mappings
	"cache_enabled":  "cache.enabled",
	"cache_backend":  "cache.backend",
	"cache_ttl":      "cache.ttl",
	"cache_capacity": "cache.capacity",
	"redis_addr":     "cache.redis_addr",
	"redis_password": "cache.redis_password",
	"redis_db":       "cache.redis_db",

	// Server mappings
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - RATINGS_PATH -> dataset.ratings_path
//   - RECOMMEND_K -> recommend.k
//   - REDIS_ADDR -> cache.redis_addr
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// Unmapped keys are skipped so random environment variables never
	// pollute the configuration.
	return ""
}
