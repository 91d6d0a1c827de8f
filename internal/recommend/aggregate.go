// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import "slices"

// Pick is the movie chosen by Aggregate.
type Pick struct {
	MovieID int
	// Mean is the average rating over the users that rated the movie.
	Mean float64
	// Raters is how many of the consulted users rated the movie.
	Raters int
	// Fallback is true when no neighbors were given and the whole
	// population was consulted instead.
	Fallback bool
}

type meanAcc struct {
	sum   float64
	count int
}

// Aggregate picks the movie with the highest mean rating among
// neighborIDs. Each movie's mean only counts the neighbors that rated it.
// With no neighbors, every user in m (the target included) is consulted.
// Ties go to the lowest movie id. Movies in exclude are never picked.
// The target's own ratings only count in the fallback case.
func Aggregate(m *Matrix, targetUserID int, neighborIDs []int, exclude map[int]struct{}) (Pick, error) {
	users := neighborIDs
	fallback := len(neighborIDs) == 0
	if fallback {
		users = m.Users()
	} else if slices.Contains(users, targetUserID) {
		users = slices.DeleteFunc(slices.Clone(users), func(id int) bool { return id == targetUserID })
	}

	acc := make(map[int]*meanAcc)
	for _, userID := range users {
		for movieID, v := range m.column(userID) {
			if _, skip := exclude[movieID]; skip {
				continue
			}
			a, ok := acc[movieID]
			if !ok {
				a = &meanAcc{}
				acc[movieID] = a
			}
			a.sum += v
			a.count++
		}
	}

	best := Pick{Fallback: fallback}
	found := false
	for movieID, a := range acc {
		mean := a.sum / float64(a.count)
		if !found || mean > best.Mean || (mean == best.Mean && movieID < best.MovieID) {
			best.MovieID = movieID
			best.Mean = mean
			best.Raters = a.count
			found = true
		}
	}
	if !found {
		return Pick{}, ErrNoRatableMovies
	}
	return best, nil
}
