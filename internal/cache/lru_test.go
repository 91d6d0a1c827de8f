// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLRU(capacity int, ttl time.Duration) (*LRU[int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int](capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRU_GetSet(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v, want 10, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Size != 2 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, size 2", s)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Get("a") // b is now the oldest
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRU_TTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	clock.advance(30 * time.Second)
	c.Set("b", 3) // refreshes b's TTL

	clock.advance(45 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if v, ok := c.Get("b"); !ok || v != 3 {
		t.Errorf("Get(b) = %d, %v, want 3, true", v, ok)
	}

	clock.advance(2 * time.Minute)
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c, _ := newTestLRU(5, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Clear()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	c.Set("c", 3)
	if _, ok := c.Get("c"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[string](0, 0)
	if c.capacity != 1000 || c.ttl != 10*time.Minute {
		t.Errorf("defaults = %d, %v, want 1000, 10m", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](64, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*500+i)%100)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if got := c.Len(); got > 64 {
		t.Errorf("Len() = %d, exceeds capacity 64", got)
	}
}
