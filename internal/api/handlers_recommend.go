// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/recommend"
	"github.com/tomtom215/pinewood/internal/validation"
)

// maxBodyBytes bounds a recommendation request body.
const maxBodyBytes = 1 << 20

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Favorites    []string `json:"favorites" validate:"max=100,dive,movietitle"`
	Unfavorites  []string `json:"unfavorites" validate:"max=100,dive,movietitle"`
	K            int      `json:"k" validate:"gte=0"`
	ExcludeRated *bool    `json:"exclude_rated"`
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if req.K > h.maxK {
		rw.ValidationError(fmt.Sprintf("k must be at most %d", h.maxK), map[string]any{"field": "k", "tag": "lte"})
		return
	}

	result, err := h.engine.Recommend(r.Context(), recommend.Request{
		Favorites:    req.Favorites,
		Unfavorites:  req.Unfavorites,
		K:            req.K,
		ExcludeRated: req.ExcludeRated,
		RequestID:    logging.RequestIDFromContext(r.Context()),
	})
	switch {
	case err == nil:
		rw.Success(result)
	case errors.Is(err, recommend.ErrNoRatableMovies):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeNoRecommendation, "no recommendation possible: no movie is rated by the selected users")
	case errors.Is(err, recommend.ErrEmptyStore):
		rw.ServiceUnavailable("rating store is empty")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "recommendation timed out")
	default:
		rw.InternalError(err)
	}
}
