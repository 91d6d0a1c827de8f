// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package mongostore loads ratings and titles from MongoDB collections
// holding MovieLens documents:
//
//	ratings: {userId, movieId, rating, timestamp}
//	movies:  {movieId, title, ...}
//
// Numeric fields are accepted as int32, int64 or double since importers
// disagree on the encoding.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/pinewood/internal/catalog"
	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/database"
	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/recommend"
)

// Store reads the dataset collections.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	ratings string
	movies  string
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("mongo config is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logging.Info().Str("database", cfg.Database).Msg("Connected to MongoDB")

	return &Store{
		client:  client,
		db:      client.Database(cfg.Database),
		ratings: cfg.RatingsCollection,
		movies:  cfg.MoviesCollection,
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Ratings reads every rating document. Documents without a usable
// userId, movieId or rating are skipped.
func (s *Store) Ratings(ctx context.Context) ([]recommend.Rating, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "userId": 1, "movieId": 1, "rating": 1})
	cur, err := s.db.Collection(s.ratings).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.ratings, err)
	}
	defer cur.Close(ctx)

	var (
		out     []recommend.Rating
		skipped int
	)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.ratings, err)
		}
		r, ok := ratingFromDoc(raw)
		if !ok {
			skipped++
			continue
		}
		out = append(out, r)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.ratings, err)
	}
	if skipped > 0 {
		logging.Warn().Int("skipped", skipped).Str("collection", s.ratings).Msg("Ignored malformed rating documents")
	}
	return out, nil
}

// Titles reads (movieId, title) pairs ordered by movieId.
func (s *Store) Titles(ctx context.Context) ([]catalog.Entry, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "movieId": 1, "title": 1}).
		SetSort(bson.D{{Key: "movieId", Value: 1}})
	cur, err := s.db.Collection(s.movies).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.movies, err)
	}
	defer cur.Close(ctx)

	var out []catalog.Entry
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.movies, err)
		}
		if e, ok := entryFromDoc(raw); ok {
			out = append(out, e)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.movies, err)
	}
	return out, nil
}

// LoadDataset reads both collections into a Dataset.
func (s *Store) LoadDataset(ctx context.Context) (*database.Dataset, error) {
	start := time.Now()
	ratings, err := s.Ratings(ctx)
	if err != nil {
		return nil, err
	}
	titles, err := s.Titles(ctx)
	if err != nil {
		return nil, err
	}
	return database.NewDataset("mongo", ratings, titles, start), nil
}

func ratingFromDoc(raw bson.M) (recommend.Rating, bool) {
	user, okU := asInt(raw["userId"])
	movie, okM := asInt(raw["movieId"])
	rating, okR := asFloat64(raw["rating"])
	if !okU || !okM || !okR {
		return recommend.Rating{}, false
	}
	return recommend.Rating{MovieID: movie, UserID: user, Rating: rating}, true
}

func entryFromDoc(raw bson.M) (catalog.Entry, bool) {
	id, ok := asInt(raw["movieId"])
	if !ok {
		return catalog.Entry{}, false
	}
	title, ok := raw["title"].(string)
	if !ok || title == "" {
		return catalog.Entry{}, false
	}
	return catalog.Entry{MovieID: id, Title: title}, true
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
