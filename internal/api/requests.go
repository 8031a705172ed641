// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

// RecommendationsRequest is the POST /api/v1/recommendations body.
//
// Algorithm defaults to "hybrid" when omitted. N defaults to the configured
// default result count and is capped at the configured maximum. The weights
// only apply to the hybrid algorithm; when both are zero the configured
// defaults are used.
type RecommendationsRequest struct {
	MovieIDs      []int64 `json:"movie_ids" validate:"required,min=1,dive,gt=0"`
	Algorithm     string  `json:"algorithm" validate:"omitempty,oneof=content collaborative hybrid popular"`
	N             int     `json:"n" validate:"min=0,max=1000"`
	ContentWeight float64 `json:"content_weight" validate:"min=0,max=1"`
	CollabWeight  float64 `json:"collab_weight" validate:"min=0,max=1"`
}

// MoviesRequest captures the query parameters of GET /api/v1/movies.
type MoviesRequest struct {
	Page     int `validate:"min=1"`
	PageSize int `validate:"min=1,max=1000"`
}
