// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import (
	"maps"
	"slices"
)

// Rating is a single (movie, user, rating) observation.
type Rating struct {
	MovieID int     `json:"movie_id"`
	UserID  int     `json:"user_id"`
	Rating  float64 `json:"rating"`
}

// Matrix is a sparse movie x user rating matrix stored column-major: one
// map of movie -> rating per user. A missing key means "not rated"; zero
// is a valid rating and is never used as a placeholder.
//
// A Matrix is not safe for concurrent mutation. The base matrix built at
// load time is treated as read-only; per-query matrices are obtained with
// Clone, which shares columns until they are written to.
type Matrix struct {
	columns map[int]map[int]float64
	movies  map[int]struct{}

	// shared marks columns still owned by the matrix this one was cloned
	// from. They are copied on first write.
	shared       map[int]bool
	moviesShared bool
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{
		columns: make(map[int]map[int]float64),
		movies:  make(map[int]struct{}),
	}
}

// Load builds a matrix from ordered rating records. Duplicate
// (movie, user) pairs keep the last value.
func Load(rows []Rating) *Matrix {
	m := NewMatrix()
	for _, r := range rows {
		m.Set(r.MovieID, r.UserID, r.Rating)
	}
	return m
}

// Set stores a rating, creating the user column and movie row as needed.
// An existing cell is overwritten.
func (m *Matrix) Set(movieID, userID int, rating float64) {
	col, ok := m.columns[userID]
	switch {
	case !ok:
		col = make(map[int]float64)
		m.columns[userID] = col
	case m.shared[userID]:
		col = maps.Clone(col)
		m.columns[userID] = col
		delete(m.shared, userID)
	}
	col[movieID] = rating

	if _, ok := m.movies[movieID]; !ok {
		if m.moviesShared {
			m.movies = maps.Clone(m.movies)
			m.moviesShared = false
		}
		m.movies[movieID] = struct{}{}
	}
}

// Rating returns the rating user gave movie, if any.
func (m *Matrix) Rating(movieID, userID int) (float64, bool) {
	v, ok := m.columns[userID][movieID]
	return v, ok
}

// Column returns a copy of the ratings given by userID, keyed by movie id.
// Unknown users yield an empty map.
func (m *Matrix) Column(userID int) map[int]float64 {
	return maps.Clone(m.columns[userID])
}

// column returns the live column without copying. Callers must not
// modify it.
func (m *Matrix) column(userID int) map[int]float64 {
	return m.columns[userID]
}

// HasUser reports whether userID has a column.
func (m *Matrix) HasUser(userID int) bool {
	_, ok := m.columns[userID]
	return ok
}

// HasMovie reports whether movieID is a row of the matrix.
func (m *Matrix) HasMovie(movieID int) bool {
	_, ok := m.movies[movieID]
	return ok
}

// Users returns all user ids in ascending order.
func (m *Matrix) Users() []int {
	return slices.Sorted(maps.Keys(m.columns))
}

// Movies returns all movie ids in ascending order.
func (m *Matrix) Movies() []int {
	return slices.Sorted(maps.Keys(m.movies))
}

// NumUsers returns the number of user columns.
func (m *Matrix) NumUsers() int { return len(m.columns) }

// NumMovies returns the number of movie rows.
func (m *Matrix) NumMovies() int { return len(m.movies) }

// NumRatings returns the number of stored cells.
func (m *Matrix) NumRatings() int {
	n := 0
	for _, col := range m.columns {
		n += len(col)
	}
	return n
}

// MaxUserID returns the largest user id in the matrix.
func (m *Matrix) MaxUserID() (int, error) {
	if len(m.columns) == 0 {
		return 0, ErrEmptyStore
	}
	first := true
	maxID := 0
	for id := range m.columns {
		if first || id > maxID {
			maxID = id
			first = false
		}
	}
	return maxID, nil
}

// Clone returns a matrix with the same contents. Columns and the movie set
// are shared with m until the clone writes to them, so cloning costs
// O(users) and writes to the clone never reach m. m itself must not be
// mutated while clones are alive.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		columns:      make(map[int]map[int]float64, len(m.columns)+1),
		movies:       m.movies,
		shared:       make(map[int]bool, len(m.columns)),
		moviesShared: true,
	}
	for id, col := range m.columns {
		c.columns[id] = col
		c.shared[id] = true
	}
	return c
}
