// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/recommend"
	"github.com/reelrank/reelrank/internal/validation"
)

// maxRequestBody bounds the POST body size.
const maxRequestBody = 1 << 20 // 1 MiB

// Recommendations handles POST /api/v1/recommendations.
//
// The body selects seed movies, an algorithm and a result count. Unknown
// seed ids are skipped by the engine; they never fail the request.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", err)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	strategy := recommend.StrategyHybrid
	if req.Algorithm != "" {
		parsed, err := recommend.ParseStrategy(req.Algorithm)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Unknown algorithm", err)
			return
		}
		strategy = parsed
	}

	n := req.N
	if n <= 0 {
		n = h.defaultN()
	}

	recs, err := h.engine.Recommend(recommend.Request{
		Strategy:      strategy,
		MovieIDs:      req.MovieIDs,
		N:             n,
		ContentWeight: req.ContentWeight,
		CollabWeight:  req.CollabWeight,
	})
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Recommendation failed", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("algorithm", string(strategy)).
		Int("seeds", len(req.MovieIDs)).
		Int("results", len(recs)).
		Msg("Recommendations served")

	respondSuccess(w, r, recs)
}

// SimilarMovies handles GET /api/v1/recommendations/similar/{movieID}.
// Ranks by genre similarity; unknown ids fall back to popular movies.
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathInt64(chi.URLParam(r, "movieID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid movie id", err)
		return
	}

	n := getIntParam(r, "n", h.defaultN())
	respondSuccess(w, r, h.engine.ContentBased(movieID, n))
}

// UserRecommendations handles GET /api/v1/recommendations/user/{userID}.
// Personalizes from the user's highly rated movies; unknown users receive
// the popularity ranking.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid user id", err)
		return
	}

	n := getIntParam(r, "n", h.defaultN())
	respondSuccess(w, r, h.engine.ForUser(userID, n))
}

// PopularMovies handles GET /api/v1/recommendations/popular.
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	n := getIntParam(r, "n", h.defaultN())
	respondSuccess(w, r, h.engine.Popular(n))
}
