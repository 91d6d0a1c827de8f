// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/pinewood/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Dataset: config.DatasetConfig{
			Source:       "csv",
			RatingsPath:  writeFile(t, dir, "ratings.csv", "userId,movieId,rating,timestamp\n1,1,4.5,0\n2,1,3.0,0\n"),
			MetadataPath: writeFile(t, dir, "movies_metadata.csv", "imdb_id,original_title\ntt0114709,Toy Story\n"),
			LinksPath:    writeFile(t, dir, "links.csv", "movieId,imdbId,tmdbId\n1,114709,862\n"),
		},
		Database: config.DatabaseConfig{MaxMemory: "256MB", Threads: 1},
	}

	ds, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Source != "csv" || ds.Matrix.NumUsers() != 2 || ds.Catalog.Len() != 1 {
		t.Errorf("dataset = source %q, %d users, %d titles", ds.Source, ds.Matrix.NumUsers(), ds.Catalog.Len())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"unknown source", config.Config{Dataset: config.DatasetConfig{Source: "sqlite"}}},
		{"missing csv", config.Config{
			Dataset:  config.DatasetConfig{Source: "csv", RatingsPath: "/nonexistent/ratings.csv"},
			Database: config.DatabaseConfig{MaxMemory: "256MB"},
		}},
		{"bad mongo uri", config.Config{
			Dataset: config.DatasetConfig{Source: "mongo"},
			Mongo:   config.MongoConfig{URI: "bogus://", Timeout: time.Second},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(context.Background(), &tt.cfg); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}
