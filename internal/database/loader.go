// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/pinewood/internal/catalog"
	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/metrics"
	"github.com/tomtom215/pinewood/internal/recommend"
)

// ratingsQuery reads a MovieLens ratings file
// (userId,movieId,rating,timestamp). Rows come back in file order.
const ratingsQuery = `
SELECT CAST(movieId AS INTEGER), CAST(userId AS INTEGER), CAST(rating AS DOUBLE)
FROM read_csv(%s, header = true, auto_detect = true)`

// titlesQuery joins TMDB metadata with MovieLens links on the IMDb id.
// links.imdbId is numeric and loses its leading zeros, so it is rebuilt as
// 'tt' followed by at least seven digits. Ids already seven digits or
// longer are kept as-is (lpad would truncate them). The metadata file has
// free text columns with embedded newlines and stray rows, so it is read
// as text and unparsable rows are skipped.
const titlesQuery = `
WITH meta AS (
	SELECT imdb_id, original_title, row_number() OVER () AS pos
	FROM read_csv(%s, header = true, all_varchar = true, ignore_errors = true)
),
links AS (
	SELECT TRY_CAST(movieId AS INTEGER) AS movie_id,
	       CAST(TRY_CAST(imdbId AS BIGINT) AS VARCHAR) AS digits
	FROM read_csv(%s, header = true, all_varchar = true)
)
SELECT l.movie_id, m.original_title
FROM meta m
JOIN links l
  ON m.imdb_id = 'tt' || CASE WHEN length(l.digits) >= 7 THEN l.digits ELSE lpad(l.digits, 7, '0') END
WHERE l.movie_id IS NOT NULL
  AND m.original_title IS NOT NULL
ORDER BY m.pos, l.movie_id`

// LoadRatings reads every (movie, user, rating) triple from a ratings CSV.
func (db *DB) LoadRatings(ctx context.Context, path string) ([]recommend.Rating, error) {
	if db.conn == nil {
		return nil, ErrClosed
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(ratingsQuery, quoteLiteral(path)))
	if err != nil {
		metrics.RecordDBQuery("read_csv", "ratings", time.Since(start), err)
		return nil, fmt.Errorf("read ratings %s: %w", path, err)
	}
	defer closeQuietly(rows)

	var out []recommend.Rating
	for rows.Next() {
		var r recommend.Rating
		if err := rows.Scan(&r.MovieID, &r.UserID, &r.Rating); err != nil {
			metrics.RecordDBQuery("read_csv", "ratings", time.Since(start), err)
			return nil, fmt.Errorf("scan ratings %s: %w", path, err)
		}
		out = append(out, r)
	}
	err = rows.Err()
	metrics.RecordDBQuery("read_csv", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read ratings %s: %w", path, err)
	}
	return out, nil
}

// LoadTitles returns (movieId, original_title) pairs for every metadata row
// whose IMDb id appears in the links file, in metadata row order.
func (db *DB) LoadTitles(ctx context.Context, metadataPath, linksPath string) ([]catalog.Entry, error) {
	if db.conn == nil {
		return nil, ErrClosed
	}

	start := time.Now()
	query := fmt.Sprintf(titlesQuery, quoteLiteral(metadataPath), quoteLiteral(linksPath))
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		metrics.RecordDBQuery("join", "titles", time.Since(start), err)
		return nil, fmt.Errorf("read titles %s + %s: %w", metadataPath, linksPath, err)
	}
	defer closeQuietly(rows)

	var out []catalog.Entry
	for rows.Next() {
		var (
			e     catalog.Entry
			title sql.NullString
		)
		if err := rows.Scan(&e.MovieID, &title); err != nil {
			metrics.RecordDBQuery("join", "titles", time.Since(start), err)
			return nil, fmt.Errorf("scan titles: %w", err)
		}
		e.Title = title.String
		out = append(out, e)
	}
	err = rows.Err()
	metrics.RecordDBQuery("join", "titles", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read titles %s + %s: %w", metadataPath, linksPath, err)
	}
	return out, nil
}

// LoadDataset reads ratings and titles from the CSV files named in cfg.
func (db *DB) LoadDataset(ctx context.Context, cfg *config.DatasetConfig) (*Dataset, error) {
	start := time.Now()

	ratings, err := db.LoadRatings(ctx, cfg.RatingsPath)
	if err != nil {
		return nil, err
	}
	titles, err := db.LoadTitles(ctx, cfg.MetadataPath, cfg.LinksPath)
	if err != nil {
		return nil, err
	}
	return NewDataset("csv", ratings, titles, start), nil
}

// quoteLiteral renders s as a SQL string literal. read_csv takes its file
// argument at bind time, so the path cannot be a query parameter.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
