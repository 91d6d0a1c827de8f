// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/middleware"
)

func newTestRouter(t *testing.T, sec config.SecurityConfig) http.Handler {
	t.Helper()
	return NewRouter(newTestHandler(t), NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&sec)), 5*time.Second)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, config.SecurityConfig{RateLimitDisabled: true})

	tests := []struct {
		method, path, body string
		wantStatus         int
	}{
		{http.MethodGet, "/api/v1/health/live", "", http.StatusOK},
		{http.MethodGet, "/api/v1/health/ready", "", http.StatusOK},
		{http.MethodPost, "/api/v1/recommendations", `{"favorites":["Heat"]}`, http.StatusOK},
		{http.MethodGet, "/api/v1/movies/resolve?title=heat", "", http.StatusOK},
		{http.MethodGet, "/api/v1/stats", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recommendations", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestRouter_RequestIDInEnvelope(t *testing.T) {
	router := newTestRouter(t, config.SecurityConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-me")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	env, _ := decodeEnvelope(t, rec.Body)
	if env.Meta == nil || env.Meta.RequestID != "trace-me" {
		t.Errorf("meta = %+v, want request_id trace-me", env.Meta)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute})

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}

	// Health checks are not rate limited.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("health status = %d, want 200", rec.Code)
		}
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t, config.SecurityConfig{
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://app.example.com"},
	})

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"https://app.example.com", "https://app.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
