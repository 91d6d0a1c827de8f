// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/pinewood/internal/logging"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"success", func(rw *ResponseWriter) { rw.Success(map[string]int{"n": 1}) }, http.StatusOK, ""},
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("nope") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("k is bad", map[string]any{"field": "k"}) }, http.StatusBadRequest, ErrCodeValidation},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("gone") }, http.StatusNotFound, ErrCodeNotFound},
		{"internal", func(rw *ResponseWriter) { rw.InternalError(errors.New("secret")) }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("later") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/x", nil)
			r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-7"))
			w := httptest.NewRecorder()

			tt.write(NewResponseWriter(w, r))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}

			env, _ := decodeEnvelope(t, w.Body)
			if env.Meta == nil || env.Meta.RequestID != "req-7" || env.Meta.Timestamp.IsZero() {
				t.Errorf("meta = %+v", env.Meta)
			}
			if tt.wantCode == "" {
				if !env.Success || env.Error != nil {
					t.Errorf("envelope = %+v, want success", env)
				}
				return
			}
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode || env.Error.RequestID != "req-7" {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}
