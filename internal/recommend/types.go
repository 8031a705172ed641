// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import (
	"errors"
	"fmt"
)

// Strategy selects how recommendations are scored.
type Strategy string

const (
	// StrategyContent ranks by TF-IDF genre similarity to a single seed movie.
	StrategyContent Strategy = "content"

	// StrategyCollaborative ranks by rating-vector similarity to a set of
	// seed movies.
	StrategyCollaborative Strategy = "collaborative"

	// StrategyHybrid blends content and collaborative scores.
	StrategyHybrid Strategy = "hybrid"

	// StrategyPopular ranks by mean rating over well-rated movies.
	StrategyPopular Strategy = "popular"
)

// ErrUnknownStrategy is returned for strategy names outside the set above.
var ErrUnknownStrategy = errors.New("unknown recommendation strategy")

// ParseStrategy converts a wire-level strategy name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyContent, StrategyCollaborative, StrategyHybrid, StrategyPopular:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Recommendation is a single ranked result.
type Recommendation struct {
	MovieID         int64    `json:"movieId"`
	Title           string   `json:"title"`
	Genres          []string `json:"genres"`
	Year            *int     `json:"year,omitempty"`
	SimilarityScore float64  `json:"similarityScore"`
}

// Request is a strategy dispatch request, typically decoded from the API.
type Request struct {
	Strategy Strategy
	MovieIDs []int64
	UserID   int64
	N        int

	// ContentWeight and CollabWeight override the configured hybrid
	// weights when either is positive; the configured defaults apply
	// only when both are zero or negative. Only used by StrategyHybrid.
	ContentWeight float64
	CollabWeight  float64
}

// scored is an internal (movieId, score) pair produced by the indexes.
type scored struct {
	id    int64
	score float64
}
