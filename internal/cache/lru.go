// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package cache stores recommendation results between identical queries,
// either in process (LRU) or shared across replicas (Redis).
package cache

import (
	"sync"
	"time"
)

// lruNode is an element of the recency list.
type lruNode[V any] struct {
	key        string
	value      V
	expiresAt  time.Time
	prev, next *lruNode[V]
}

// LRU is a thread-safe least-recently-used cache with a per-entry TTL.
// Get, Set and eviction are O(1): a map indexes the nodes of a doubly
// linked list ordered from most to least recently used. Expired entries
// are dropped lazily on access or by CleanupExpired.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*lruNode[V]

	// head.next is the most recent entry, tail.prev the least recent.
	head, tail *lruNode[V]

	hits, misses, evictions int64

	now func() time.Time
}

// LRUStats is a snapshot of cache counters.
type LRUStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// NewLRU creates a cache holding at most capacity entries for ttl each.
// Non-positive values fall back to 1000 entries and 10 minutes.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruNode[V], capacity),
		head:     &lruNode[V]{},
		tail:     &lruNode[V]{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	n, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().After(n.expiresAt) {
		c.remove(n)
		c.misses++
		return zero, false
	}
	c.unlink(n)
	c.pushFront(n)
	c.hits++
	return n.value, true
}

// Set inserts or replaces key, evicting the least recently used entry
// when the cache is full.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if n, ok := c.items[key]; ok {
		n.value = value
		n.expiresAt = expiresAt
		c.unlink(n)
		c.pushFront(n)
		return
	}

	n := &lruNode[V]{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(n)
	c.items[key] = n

	for len(c.items) > c.capacity {
		c.remove(c.tail.prev)
		c.evictions++
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if ok {
		c.remove(n)
	}
	return ok
}

// Len returns the number of stored entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear drops every entry. Counters are kept.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruNode[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for n := c.tail.prev; n != c.head; {
		prev := n.prev
		if now.After(n.expiresAt) {
			c.remove(n)
			removed++
		}
		n = prev
	}
	return removed
}

// Stats returns the current counters.
func (c *LRU[V]) Stats() LRUStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return LRUStats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: len(c.items)}
}

// The helpers below require c.mu.

func (c *LRU[V]) pushFront(n *lruNode[V]) {
	n.prev = c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRU[V]) unlink(n *lruNode[V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (c *LRU[V]) remove(n *lruNode[V]) {
	c.unlink(n)
	delete(c.items, n.key)
}
