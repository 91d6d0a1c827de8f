// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import "errors"

var (
	// ErrEmptyStore is returned when the rating matrix has no users, so no
	// synthetic user id can be allocated.
	ErrEmptyStore = errors.New("rating store has no users")

	// ErrNoRatableMovies is returned when no candidate movie carries a
	// rating from the consulted user set.
	ErrNoRatableMovies = errors.New("no ratable movies")
)
