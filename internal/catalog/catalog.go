// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package catalog maps movie titles to movie ids and back.
//
// Titles are matched exactly after Unicode lower-casing; there is no
// trimming or fuzzy matching. When several movies share a title the
// earliest entry wins.
package catalog

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one row of the title table.
type Entry struct {
	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
}

// Catalog is an immutable title index. It is safe for concurrent use.
type Catalog struct {
	byKey   map[string]int
	byID    map[int]string
	entries int
}

// New builds a catalog from entries in priority order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		byKey:   make(map[string]int, len(entries)),
		byID:    make(map[int]string, len(entries)),
		entries: len(entries),
	}
	for _, e := range entries {
		key := Normalize(e.Title)
		if _, ok := c.byKey[key]; !ok {
			c.byKey[key] = e.MovieID
		}
		if _, ok := c.byID[e.MovieID]; !ok {
			c.byID[e.MovieID] = e.Title
		}
	}
	return c
}

// Normalize returns the lookup key for a title.
func Normalize(title string) string {
	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Lower(language.Und).String(title)
}

// Resolve returns the movie id for title.
func (c *Catalog) Resolve(title string) (int, bool) {
	id, ok := c.byKey[Normalize(title)]
	return id, ok
}

// ResolveAll resolves titles in order. Each movie id appears once;
// titles that match nothing are returned in unmatched.
func (c *Catalog) ResolveAll(titles []string) (ids []int, unmatched []string) {
	seen := make(map[int]struct{}, len(titles))
	for _, t := range titles {
		id, ok := c.Resolve(t)
		if !ok {
			unmatched = append(unmatched, t)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, unmatched
}

// Title returns the display title of movieID.
func (c *Catalog) Title(movieID int) (string, bool) {
	t, ok := c.byID[movieID]
	return t, ok
}

// Len returns the number of distinct lookup keys.
func (c *Catalog) Len() int {
	return len(c.byKey)
}

// Entries returns the number of rows the catalog was built from.
func (c *Catalog) Entries() int {
	return c.entries
}
