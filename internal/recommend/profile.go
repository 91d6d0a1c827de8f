// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

// Default preference scores written into the synthetic user's column.
const (
	DefaultFavoriteRating   = 5.0
	DefaultUnfavoriteRating = 1.0
)

// Profile is the resolved preference set of the person asking for a
// recommendation.
type Profile struct {
	Favorites   []int
	Unfavorites []int

	// FavoriteRating and UnfavoriteRating override the default scores
	// when non-zero.
	FavoriteRating   float64
	UnfavoriteRating float64
}

// Inject adds a synthetic user built from p to a copy of m and returns the
// copy together with the new user id (max existing id + 1). m is not
// modified.
//
// Favorites are written first and unfavorites second, so a movie present
// in both lists ends up with the unfavorite rating. Movie ids that are not
// rows of m are skipped. Empty lists still allocate an (empty) user.
func Inject(m *Matrix, p Profile) (*Matrix, int, error) {
	maxID, err := m.MaxUserID()
	if err != nil {
		return nil, 0, err
	}
	userID := maxID + 1

	fav := p.FavoriteRating
	if fav == 0 {
		fav = DefaultFavoriteRating
	}
	unfav := p.UnfavoriteRating
	if unfav == 0 {
		unfav = DefaultUnfavoriteRating
	}

	out := m.Clone()
	out.columns[userID] = make(map[int]float64, len(p.Favorites)+len(p.Unfavorites))

	for _, id := range p.Favorites {
		if out.HasMovie(id) {
			out.Set(id, userID, fav)
		}
	}
	for _, id := range p.Unfavorites {
		if out.HasMovie(id) {
			out.Set(id, userID, unfav)
		}
	}
	return out, userID, nil
}
