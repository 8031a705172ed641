// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reelrank/reelrank/internal/cache"
	"github.com/reelrank/reelrank/internal/recommend/evaluate"
	"github.com/reelrank/reelrank/internal/validation"
)

// Movies handles GET /api/v1/movies with page/page_size query parameters.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	defSize, maxSize := h.pageSizes()

	req := MoviesRequest{
		Page:     getIntParam(r, "page", 1),
		PageSize: getIntParam(r, "page_size", defSize),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if req.PageSize > maxSize {
		req.PageSize = maxSize
	}

	movies := h.store.Movies()
	total := len(movies)
	totalPages := (total + req.PageSize - 1) / req.PageSize

	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	respondSuccessPaginated(w, r, movies[start:end], Pagination{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: totalPages,
	})
}

// MovieByID handles GET /api/v1/movies/{movieID}.
func (h *Handler) MovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathInt64(chi.URLParam(r, "movieID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid movie id", err)
		return
	}

	movie, ok := h.store.Movie(movieID)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Movie not found", nil)
		return
	}

	respondSuccess(w, r, movie)
}

// Stats handles GET /api/v1/stats with dataset-level aggregates.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.store.Stats())
}

// UserProfile handles GET /api/v1/users/{userID}/profile.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid user id", err)
		return
	}

	profile, err := evaluate.BuildUserProfile(userID, h.store)
	if err != nil {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "User has no ratings", nil)
		return
	}

	respondSuccess(w, r, profile)
}

// AnalyticsGenres handles GET /api/v1/analytics/genres.
func (h *Handler) AnalyticsGenres(w http.ResponseWriter, r *http.Request) {
	const key = "analytics:genres"
	if cached, ok := h.cache.Get(key); ok {
		respondSuccess(w, r, cached)
		return
	}

	dist := evaluate.GenreDistribution(h.store)
	h.cache.Set(key, dist)
	respondSuccess(w, r, dist)
}

// AnalyticsTrending handles GET /api/v1/analytics/trending.
// Query parameters: days (window, default 30), n (limit, default page size).
func (h *Handler) AnalyticsTrending(w http.ResponseWriter, r *http.Request) {
	days := getIntParam(r, "days", 30)
	if days < 1 {
		days = 1
	}
	n := getIntParam(r, "n", h.defaultN())

	key := cache.GenerateKey("analytics:trending", map[string]int{"days": days, "n": n})
	if cached, ok := h.cache.Get(key); ok {
		respondSuccess(w, r, cached)
		return
	}

	window := time.Duration(days) * 24 * time.Hour
	trending := evaluate.Trending(h.store, window, n)
	if trending == nil {
		trending = []evaluate.TrendingMovie{}
	}
	h.cache.Set(key, trending)
	respondSuccess(w, r, trending)
}
