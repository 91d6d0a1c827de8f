// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package dataset loads the configured rating source.
package dataset

import (
	"context"
	"fmt"

	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/database"
	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/mongostore"
)

// Load reads ratings and titles from the source named by
// cfg.Dataset.Source. Connections are released before it returns; the
// Dataset lives entirely in memory.
func Load(ctx context.Context, cfg *config.Config) (*database.Dataset, error) {
	switch cfg.Dataset.Source {
	case "csv", "":
		return loadCSV(ctx, cfg)
	case "mongo":
		return loadMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

func loadCSV(ctx context.Context, cfg *config.Config) (*database.Dataset, error) {
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close DuckDB")
		}
	}()

	logging.Info().
		Str("ratings", cfg.Dataset.RatingsPath).
		Str("metadata", cfg.Dataset.MetadataPath).
		Str("links", cfg.Dataset.LinksPath).
		Msg("Loading CSV dataset")
	return db.LoadDataset(ctx, &cfg.Dataset)
}

func loadMongo(ctx context.Context, cfg *config.Config) (*database.Dataset, error) {
	store, err := mongostore.Connect(ctx, &cfg.Mongo)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}()
	return store.LoadDataset(ctx)
}
