// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package recommend

import (
	"errors"
	"slices"
	"testing"
)

func TestLoad(t *testing.T) {
	m := Load([]Rating{
		{MovieID: 10, UserID: 1, Rating: 5},
		{MovieID: 10, UserID: 2, Rating: 1},
		{MovieID: 20, UserID: 1, Rating: 3},
		{MovieID: 20, UserID: 1, Rating: 4}, // duplicate overwrites
		{MovieID: 30, UserID: 3, Rating: 0},
	})

	if got := m.NumUsers(); got != 3 {
		t.Errorf("NumUsers() = %d, want 3", got)
	}
	if got := m.NumMovies(); got != 3 {
		t.Errorf("NumMovies() = %d, want 3", got)
	}
	if got := m.NumRatings(); got != 4 {
		t.Errorf("NumRatings() = %d, want 4", got)
	}
	if v, ok := m.Rating(20, 1); !ok || v != 4 {
		t.Errorf("Rating(20, 1) = %v, %v, want 4, true", v, ok)
	}
	if v, ok := m.Rating(30, 3); !ok || v != 0 {
		t.Errorf("Rating(30, 3) = %v, %v, want 0, true (zero is a rating)", v, ok)
	}
	if _, ok := m.Rating(30, 1); ok {
		t.Error("Rating(30, 1) present, want absent")
	}
	if got, want := m.Users(), []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Users() = %v, want %v", got, want)
	}
	if got, want := m.Movies(), []int{10, 20, 30}; !slices.Equal(got, want) {
		t.Errorf("Movies() = %v, want %v", got, want)
	}
}

func TestMatrix_Column(t *testing.T) {
	m := Load([]Rating{{MovieID: 10, UserID: 1, Rating: 5}})

	col := m.Column(1)
	col[99] = 1
	if _, ok := m.Rating(99, 1); ok {
		t.Error("modifying Column() result leaked into matrix")
	}

	if got := m.Column(42); len(got) != 0 {
		t.Errorf("Column(unknown) = %v, want empty", got)
	}
}

func TestMatrix_MaxUserID(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Rating
		want    int
		wantErr error
	}{
		{name: "empty store", rows: nil, wantErr: ErrEmptyStore},
		{name: "single user", rows: []Rating{{MovieID: 1, UserID: 7, Rating: 3}}, want: 7},
		{
			name: "unordered ids",
			rows: []Rating{
				{MovieID: 1, UserID: 3, Rating: 3},
				{MovieID: 1, UserID: 671, Rating: 3},
				{MovieID: 1, UserID: 12, Rating: 3},
			},
			want: 671,
		},
		{name: "negative ids", rows: []Rating{{MovieID: 1, UserID: -5, Rating: 3}}, want: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.rows).MaxUserID()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("MaxUserID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("MaxUserID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatrix_Clone(t *testing.T) {
	base := Load([]Rating{
		{MovieID: 10, UserID: 1, Rating: 5},
		{MovieID: 20, UserID: 2, Rating: 2},
	})

	clone := base.Clone()
	clone.Set(10, 1, 1)  // overwrite shared column
	clone.Set(30, 2, 4)  // new movie on shared column
	clone.Set(10, 99, 3) // new user

	if v, _ := base.Rating(10, 1); v != 5 {
		t.Errorf("base Rating(10, 1) = %v, want 5", v)
	}
	if base.HasMovie(30) {
		t.Error("base gained movie 30 from clone write")
	}
	if base.HasUser(99) {
		t.Error("base gained user 99 from clone write")
	}

	if v, _ := clone.Rating(10, 1); v != 1 {
		t.Errorf("clone Rating(10, 1) = %v, want 1", v)
	}
	if !clone.HasMovie(30) {
		t.Error("clone missing movie 30")
	}
	if v, ok := clone.Rating(20, 2); !ok || v != 2 {
		t.Errorf("clone Rating(20, 2) = %v, %v, want 2, true", v, ok)
	}

	// A second write to an already-copied column must stay in the clone.
	clone.Set(40, 1, 2)
	if base.HasMovie(40) {
		t.Error("base gained movie 40")
	}
	if _, ok := base.Rating(40, 1); ok {
		t.Error("base Rating(40, 1) present after second clone write")
	}
}

func TestMatrix_CloneOfClone(t *testing.T) {
	base := Load([]Rating{{MovieID: 10, UserID: 1, Rating: 5}})
	first := base.Clone()
	first.Set(20, 1, 2)

	second := first.Clone()
	second.Set(20, 1, 4)

	if v, _ := first.Rating(20, 1); v != 2 {
		t.Errorf("first Rating(20, 1) = %v, want 2", v)
	}
	if v, _ := second.Rating(20, 1); v != 4 {
		t.Errorf("second Rating(20, 1) = %v, want 4", v)
	}
	if base.HasMovie(20) {
		t.Error("base gained movie 20")
	}
}
