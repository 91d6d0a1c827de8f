// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name         string
		outcome      string
		neighbors    int
		fallback     bool
		wantFallback float64
	}{
		{name: "ok with neighbors", outcome: OutcomeOK, neighbors: 5, fallback: false, wantFallback: 0},
		{name: "ok via fallback", outcome: OutcomeOK, neighbors: 0, fallback: true, wantFallback: 1},
		{name: "no ratable ignores fallback flag", outcome: OutcomeNoRatable, neighbors: 0, fallback: true, wantFallback: 0},
		{name: "empty store", outcome: OutcomeEmptyStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beforeReq := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome))
			beforeFallback := testutil.ToFloat64(RecommendFallbacks)

			RecordRecommendation(tt.outcome, 3*time.Millisecond, tt.neighbors, tt.fallback)

			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome)) - beforeReq; got != 1 {
				t.Errorf("requests delta = %v, want 1", got)
			}
			if got := testutil.ToFloat64(RecommendFallbacks) - beforeFallback; got != tt.wantFallback {
				t.Errorf("fallback delta = %v, want %v", got, tt.wantFallback)
			}
		})
	}
}

func TestRecordUnmatchedTitles(t *testing.T) {
	before := testutil.ToFloat64(RecommendUnmatchedTitles)

	RecordUnmatchedTitles(0)
	RecordUnmatchedTitles(-2)
	RecordUnmatchedTitles(3)

	if got := testutil.ToFloat64(RecommendUnmatchedTitles) - before; got != 3 {
		t.Errorf("unmatched delta = %v, want 3", got)
	}
}

func TestRecordRecommendCache(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordRecommendCacheHit()
	RecordRecommendCacheMiss()
	RecordRecommendCacheMiss()

	if got := testutil.ToFloat64(RecommendCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad("csv", 250*time.Millisecond, 671, 9066, 100004)

	if got := testutil.ToFloat64(DatasetUsers); got != 671 {
		t.Errorf("DatasetUsers = %v, want 671", got)
	}
	if got := testutil.ToFloat64(DatasetMovies); got != 9066 {
		t.Errorf("DatasetMovies = %v, want 9066", got)
	}
	if got := testutil.ToFloat64(DatasetRatings); got != 100004 {
		t.Errorf("DatasetRatings = %v, want 100004", got)
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		errorType string
	}{
		{name: "successful select", operation: "SELECT", table: "ratings"},
		{name: "missing file", operation: "SELECT", table: "ratings", err: errors.New("IO Error: No files found that match the pattern"), errorType: "missing_file"},
		{name: "conversion failure", operation: "SELECT", table: "links", err: errors.New("Conversion Error: Could not convert string"), errorType: "conversion"},
		{name: "other failure", operation: "SELECT", table: "titles", err: errors.New("boom"), errorType: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				RecordDBQuery(tt.operation, tt.table, time.Millisecond, nil)
				return
			}
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errorType))
			RecordDBQuery(tt.operation, tt.table, time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errorType))
			if after-before != 1 {
				t.Errorf("errors[%s] delta = %v, want 1", tt.errorType, after-before)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))

	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 12*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v", got, before)
	}
}
