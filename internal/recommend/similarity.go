// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Neighbor is a user scored against the target user.
type Neighbor struct {
	// UserID identifies the neighbor.
	UserID int `json:"user_id"`

	// Distance is the Euclidean distance over the co-rated movies.
	Distance float64 `json:"distance"`

	// Similarity is 1 - Distance/maxDistance over all candidates, in [0, 1].
	Similarity float64 `json:"similarity"`

	// Overlap is the number of movies rated by both users.
	Overlap int `json:"overlap"`
}

// FindNeighbors scores every other user against targetUserID and returns
// the k most similar, ordered by similarity descending and user id
// ascending on ties. Users sharing no rated movie with the target are
// never scored. k <= 0 returns every scored user.
//
// Distances are normalized by the largest distance among the candidates;
// when that is zero every candidate gets similarity 1.
func FindNeighbors(m *Matrix, targetUserID, k int) []Neighbor {
	target := m.column(targetUserID)
	if len(target) == 0 {
		return nil
	}

	var (
		candidates []Neighbor
		a, b       []float64
		maxDist    float64
	)
	for userID, col := range m.columns {
		if userID == targetUserID {
			continue
		}
		a, b = a[:0], b[:0]
		for movieID, tv := range target {
			if ov, ok := col[movieID]; ok {
				a = append(a, tv)
				b = append(b, ov)
			}
		}
		if len(a) == 0 {
			continue
		}
		d := floats.Distance(a, b, 2)
		if d > maxDist {
			maxDist = d
		}
		candidates = append(candidates, Neighbor{UserID: userID, Distance: d, Overlap: len(a)})
	}

	for i := range candidates {
		if maxDist == 0 {
			candidates[i].Similarity = 1
		} else {
			candidates[i].Similarity = 1 - candidates[i].Distance/maxDist
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].UserID < candidates[j].UserID
	})

	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// NeighborIDs extracts the user ids of ns in order.
func NeighborIDs(ns []Neighbor) []int {
	ids := make([]int, len(ns))
	for i, n := range ns {
		ids[i] = n.UserID
	}
	return ids
}
