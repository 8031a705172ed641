// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package evaluate provides offline quality metrics for recommendation
// lists and dataset-level reporting helpers: diversity, novelty and
// coverage scores, user taste profiles, genre distribution and trending
// movies. It is consumed by reporting collaborators only and never feeds
// back into the engine.
package evaluate

import (
	"fmt"
	"math"
	"strings"

	"github.com/reelrank/reelrank/internal/dataset"
	"github.com/reelrank/reelrank/internal/recommend"
)

// Metrics bundles the three list-quality scores.
type Metrics struct {
	Diversity float64 `json:"diversity"`
	Novelty   float64 `json:"novelty"`
	Coverage  float64 `json:"coverage"`
}

// Evaluate computes all three metrics for a recommendation list.
func Evaluate(recs []recommend.Recommendation, store *dataset.Store) Metrics {
	return Metrics{
		Diversity: Diversity(recs, store),
		Novelty:   Novelty(recs, store),
		Coverage:  Coverage(recs, store),
	}
}

// Diversity is the fraction of the catalog's distinct genres covered by the
// recommended movies. An empty list has diversity 0.
func Diversity(recs []recommend.Recommendation, store *dataset.Store) float64 {
	all := make(map[string]struct{})
	for _, m := range store.Movies() {
		for _, g := range m.Genres {
			all[g] = struct{}{}
		}
	}
	if len(all) == 0 || len(recs) == 0 {
		return 0
	}

	covered := make(map[string]struct{})
	for _, r := range recs {
		for _, g := range r.Genres {
			covered[g] = struct{}{}
		}
	}
	return float64(len(covered)) / float64(len(all))
}

// Novelty is the mean obscurity of the recommended movies: 1/(1+ln(pop+1))
// per movie, where pop is its rating count. Rarely rated movies score
// closer to 1.
func Novelty(recs []recommend.Recommendation, store *dataset.Store) float64 {
	if len(recs) == 0 {
		return 0
	}

	var sum float64
	for _, r := range recs {
		pop := float64(store.RatingCount(r.MovieID))
		sum += 1 / (1 + math.Log(pop+1))
	}
	return sum / float64(len(recs))
}

// Coverage is the fraction of the catalog present in the list.
func Coverage(recs []recommend.Recommendation, store *dataset.Store) float64 {
	if len(store.Movies()) == 0 {
		return 0
	}
	return float64(len(recs)) / float64(len(store.Movies()))
}

// Explanation describes why two movies are considered similar, based on
// their shared genre tags.
func Explanation(a, b *dataset.Movie) string {
	shared := make([]string, 0)
	tags := make(map[string]struct{}, len(a.Genres))
	for _, g := range a.Genres {
		tags[g] = struct{}{}
	}
	for _, g := range b.Genres {
		if _, ok := tags[g]; ok {
			shared = append(shared, g)
		}
	}

	if len(shared) == 0 {
		return fmt.Sprintf("%q is recommended for viewers of %q", b.Title, a.Title)
	}
	return fmt.Sprintf("%q shares the %s genre with %q",
		b.Title, strings.Join(shared, ", "), a.Title)
}
