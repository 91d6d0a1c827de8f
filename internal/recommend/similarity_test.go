// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import (
	"math"
	"slices"
	"testing"
)

func TestFindNeighbors_Scenario(t *testing.T) {
	m, target, err := Inject(scenarioMatrix(), Profile{Favorites: []int{10}})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	got := FindNeighbors(m, target, 5)
	if len(got) != 2 {
		t.Fatalf("len(neighbors) = %d, want 2", len(got))
	}

	want := []Neighbor{
		{UserID: 1, Distance: 0, Similarity: 1, Overlap: 1},
		{UserID: 2, Distance: 4, Similarity: 0, Overlap: 1},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbors[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFindNeighbors_AllZeroDistance(t *testing.T) {
	m := Load([]Rating{
		{MovieID: 1, UserID: 1, Rating: 4},
		{MovieID: 1, UserID: 2, Rating: 4},
		{MovieID: 1, UserID: 3, Rating: 4},
		{MovieID: 2, UserID: 3, Rating: 1},
	})

	got := FindNeighbors(m, 1, 0)
	if len(got) != 2 {
		t.Fatalf("len(neighbors) = %d, want 2", len(got))
	}
	for _, n := range got {
		if n.Similarity != 1 {
			t.Errorf("user %d similarity = %v, want 1 when max distance is 0", n.UserID, n.Similarity)
		}
	}
	if got[0].UserID != 2 || got[1].UserID != 3 {
		t.Errorf("order = %v, want [2 3] (ties by ascending id)", NeighborIDs(got))
	}
}

func TestFindNeighbors_ExcludesZeroOverlap(t *testing.T) {
	m := Load([]Rating{
		{MovieID: 1, UserID: 1, Rating: 5},
		{MovieID: 2, UserID: 2, Rating: 5},
		{MovieID: 1, UserID: 3, Rating: 2},
	})

	got := FindNeighbors(m, 1, 10)
	if ids := NeighborIDs(got); !slices.Equal(ids, []int{3}) {
		t.Errorf("neighbors = %v, want [3]", ids)
	}
}

func TestFindNeighbors_EmptyTarget(t *testing.T) {
	m, target, err := Inject(scenarioMatrix(), Profile{})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if got := FindNeighbors(m, target, 5); len(got) != 0 {
		t.Errorf("neighbors = %v, want none", got)
	}
}

func TestFindNeighbors_MultiDimensionalDistance(t *testing.T) {
	m := Load([]Rating{
		{MovieID: 1, UserID: 1, Rating: 5},
		{MovieID: 2, UserID: 1, Rating: 1},
		{MovieID: 1, UserID: 2, Rating: 2},
		{MovieID: 2, UserID: 2, Rating: 5},
		{MovieID: 1, UserID: 3, Rating: 4},
	})

	got := FindNeighbors(m, 1, 0)
	if len(got) != 2 {
		t.Fatalf("len(neighbors) = %d, want 2", len(got))
	}
	// user 3: overlap {1}, distance 1. user 2: overlap {1,2}, distance 5.
	if got[0].UserID != 3 || got[0].Overlap != 1 {
		t.Errorf("first = %+v, want user 3 with overlap 1", got[0])
	}
	if math.Abs(got[1].Distance-5) > 1e-9 {
		t.Errorf("user 2 distance = %v, want 5", got[1].Distance)
	}
	if math.Abs(got[0].Similarity-0.8) > 1e-9 {
		t.Errorf("user 3 similarity = %v, want 0.8", got[0].Similarity)
	}
	if got[1].Similarity != 0 {
		t.Errorf("user 2 similarity = %v, want 0", got[1].Similarity)
	}
}

func TestFindNeighbors_Properties(t *testing.T) {
	var rows []Rating
	for user := 1; user <= 40; user++ {
		for movie := 1; movie <= 12; movie++ {
			if (user*7+movie*3)%4 == 0 {
				continue
			}
			rows = append(rows, Rating{MovieID: movie, UserID: user, Rating: float64((user*movie)%5 + 1)})
		}
	}
	m := Load(rows)

	for _, k := range []int{1, 3, 5, 50} {
		for _, target := range []int{1, 17, 40} {
			got := FindNeighbors(m, target, k)

			if len(got) > k {
				t.Errorf("k=%d target=%d: len = %d, want <= k", k, target, len(got))
			}
			for i, n := range got {
				if n.UserID == target {
					t.Errorf("k=%d: target %d returned as its own neighbor", k, target)
				}
				if n.Similarity < 0 || n.Similarity > 1 {
					t.Errorf("similarity %v out of [0,1]", n.Similarity)
				}
				if n.Overlap == 0 {
					t.Errorf("user %d has zero overlap", n.UserID)
				}
				if i == 0 {
					continue
				}
				prev := got[i-1]
				if prev.Similarity < n.Similarity ||
					(prev.Similarity == n.Similarity && prev.UserID >= n.UserID) {
					t.Errorf("order violated at %d: %+v before %+v", i, prev, n)
				}
			}
		}
	}
}

func TestNeighborIDs(t *testing.T) {
	got := NeighborIDs([]Neighbor{{UserID: 4}, {UserID: 2}})
	if !slices.Equal(got, []int{4, 2}) {
		t.Errorf("NeighborIDs() = %v, want [4 2]", got)
	}
	if got := NeighborIDs(nil); len(got) != 0 {
		t.Errorf("NeighborIDs(nil) = %v, want empty", got)
	}
}
