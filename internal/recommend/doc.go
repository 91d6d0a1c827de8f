// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package recommend implements a user-based nearest-neighbor movie recommender.
//
// # Pipeline
//
// A query runs four stages over a sparse movie x user rating matrix:
//
//  1. Inject: the requester's favorites and unfavorites become a synthetic
//     user column (5 and 1 by default, unfavorites win on overlap).
//  2. FindNeighbors: every other user sharing at least one rated movie is
//     scored by Euclidean distance over the shared movies, normalized to a
//     similarity in [0, 1], and the top k are kept.
//  3. Aggregate: the movie with the highest mean rating among the
//     neighbors wins, ties going to the lowest movie id. Without neighbors
//     the whole population is consulted.
//  4. Title lookup through a TitleIndex.
//
// # Isolation
//
// The base matrix is never mutated after load. Inject works on a Clone,
// which shares user columns with the base and copies a column only when it
// is written, so concurrent queries never see each other's synthetic users.
//
// # Usage
//
//	base := recommend.Load(ratings)
//	engine, err := recommend.NewEngine(base, catalog, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	res, err := engine.Recommend(ctx, recommend.Request{
//	    Favorites:   []string{"toy story"},
//	    Unfavorites: []string{"heat"},
//	})
//	if errors.Is(err, recommend.ErrNoRatableMovies) {
//	    // nothing to suggest
//	}
package recommend
