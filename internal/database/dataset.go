// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package database

import (
	"time"

	"github.com/tomtom215/pinewood/internal/catalog"
	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/metrics"
	"github.com/tomtom215/pinewood/internal/recommend"
)

// Dataset is a fully loaded rating matrix and title catalog.
type Dataset struct {
	Source   string
	Matrix   *recommend.Matrix
	Catalog  *catalog.Catalog
	LoadTime time.Duration
}

// NewDataset builds the matrix and catalog from raw rows, then logs and
// records the load. started is when reading began.
func NewDataset(source string, ratings []recommend.Rating, titles []catalog.Entry, started time.Time) *Dataset {
	ds := &Dataset{
		Source:  source,
		Matrix:  recommend.Load(ratings),
		Catalog: catalog.New(titles),
	}
	ds.LoadTime = time.Since(started)

	metrics.RecordDatasetLoad(source, ds.LoadTime,
		ds.Matrix.NumUsers(), ds.Matrix.NumMovies(), ds.Matrix.NumRatings())

	logging.Info().
		Str("source", source).
		Int("users", ds.Matrix.NumUsers()).
		Int("movies", ds.Matrix.NumMovies()).
		Int("ratings", ds.Matrix.NumRatings()).
		Int("titles", ds.Catalog.Len()).
		Dur("took", ds.LoadTime).
		Msg("Dataset loaded")

	return ds
}
