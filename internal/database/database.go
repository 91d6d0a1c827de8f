// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package database reads the rating and title datasets through an
// in-memory DuckDB instance.
//
// DuckDB parses the CSV files (read_csv) and performs the links/metadata
// join in SQL, so the Go side only scans typed rows. Nothing is persisted:
// the database lives for the duration of the load and is closed afterwards.
//
//	db, err := database.Open(&cfg.Database)
//	if err != nil { ... }
//	defer db.Close()
//	ds, err := db.LoadDataset(ctx, &cfg.Dataset)
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/pinewood/internal/config"
)

// ErrClosed is returned by operations on a closed DB.
var ErrClosed = errors.New("database is closed")

// DB wraps an in-memory DuckDB connection pool.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// Open creates an in-memory DuckDB instance tuned by cfg.
func Open(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is nil")
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Extensions are never needed for CSV parsing; disabling autoload keeps
	// startup from reaching the network in restricted environments.
	connStr := fmt.Sprintf(":memory:?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(threads)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{conn: conn, cfg: cfg}, nil
}

// Ping checks that the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return ErrClosed
	}
	return db.conn.PingContext(ctx)
}

// Close releases the DuckDB instance. Calling Close twice is harmless.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	return err
}

// closeQuietly closes a resource in error paths where the Close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
