// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package recommend implements the recommendation engine: a content
// similarity index over genre TF-IDF vectors, a collaborative neighbor
// structure over the user-item matrix, and the strategies that query them
// with a shared popularity fallback.
//
// The engine builds both indexes eagerly in New and serves read-only
// queries afterward. Queries are pure functions over immutable structures
// and are safe for concurrent use without locking. New data requires
// constructing a new engine and swapping the reference.
package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/dataset"
	"github.com/reelrank/reelrank/internal/metrics"
)

// Engine answers recommendation queries against a frozen dataset snapshot.
type Engine struct {
	store   *dataset.Store
	cfg     Config
	content *contentIndex
	collab  *collabIndex
	logger  zerolog.Logger
}

// New constructs an engine from a validated store, building both similarity
// indexes. The store must not be mutated afterward.
func New(store *dataset.Store, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	e := &Engine{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	start := time.Now()
	e.content = buildContentIndex(store.Movies())
	contentDur := time.Since(start)
	metrics.RecordIndexBuild("content", contentDur)

	start = time.Now()
	e.collab = buildCollabIndex(store, cfg.KNNNeighbors)
	collabDur := time.Since(start)
	metrics.RecordIndexBuild("collaborative", collabDur)

	e.logger.Info().
		Int("movies", len(store.Movies())).
		Int("ratings", len(store.Ratings())).
		Int("users", len(store.UserIDs())).
		Dur("content_build", contentDur).
		Dur("collab_build", collabDur).
		Msg("similarity indexes built")

	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Recommend dispatches a request to the strategy it names.
func (e *Engine) Recommend(req Request) ([]Recommendation, error) {
	switch req.Strategy {
	case StrategyContent:
		if len(req.MovieIDs) == 0 {
			return nil, fmt.Errorf("content strategy requires at least one movie id")
		}
		return e.ContentBased(req.MovieIDs[0], req.N), nil
	case StrategyCollaborative:
		if len(req.MovieIDs) == 0 {
			return nil, fmt.Errorf("collaborative strategy requires at least one movie id")
		}
		return e.Collaborative(req.MovieIDs, req.N), nil
	case StrategyHybrid:
		if len(req.MovieIDs) == 0 {
			return nil, fmt.Errorf("hybrid strategy requires at least one movie id")
		}
		return e.Hybrid(req.MovieIDs, req.N, req.ContentWeight, req.CollabWeight), nil
	case StrategyPopular:
		return e.Popular(req.N), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
	}
}

// ContentBased returns up to n movies ranked by genre similarity to the
// given movie. An unknown movie id substitutes the popularity fallback.
func (e *Engine) ContentBased(movieID int64, n int) []Recommendation {
	n = e.clampN(n)
	results, fallback := e.contentScores(movieID, n)
	metrics.RecordRecommendation(string(StrategyContent), len(results), fallback)
	return e.toRecommendations(results)
}

// Collaborative returns up to n movies ranked by rating-vector similarity
// to the given seed movies. Seeds without ratings are skipped; when no seed
// yields neighbors the popularity fallback substitutes.
func (e *Engine) Collaborative(movieIDs []int64, n int) []Recommendation {
	n = e.clampN(n)
	results, fallback := e.collabScores(movieIDs, n)
	metrics.RecordRecommendation(string(StrategyCollaborative), len(results), fallback)
	return e.toRecommendations(results)
}

// Hybrid blends content similarity to the first seed movie with
// collaborative similarity to all seeds. Each side is queried for 2n
// candidates; a movie missing from one side contributes 0 for that
// component (no renormalization). Zero weights fall back to the configured
// defaults.
func (e *Engine) Hybrid(movieIDs []int64, n int, contentWeight, collabWeight float64) []Recommendation {
	n = e.clampN(n)

	if contentWeight <= 0 && collabWeight <= 0 {
		contentWeight = e.cfg.ContentWeight
		collabWeight = e.cfg.CollabWeight
	}
	if contentWeight < 0 {
		contentWeight = 0
	}
	if collabWeight < 0 {
		collabWeight = 0
	}

	if len(movieIDs) == 0 {
		results := e.popularScores(n)
		metrics.RecordRecommendation(string(StrategyHybrid), len(results), true)
		return e.toRecommendations(results)
	}

	contentSide, _ := e.contentScores(movieIDs[0], 2*n)
	collabSide, _ := e.collabScores(movieIDs, 2*n)

	if len(contentSide) == 0 && len(collabSide) == 0 {
		results := e.popularScores(n)
		metrics.RecordRecommendation(string(StrategyHybrid), len(results), true)
		return e.toRecommendations(results)
	}

	// Accumulate both component scores per movie, keyed and iterated in
	// discovery order so tie-breaks are reproducible.
	type acc struct {
		content float64
		collab  float64
	}
	byID := make(map[int64]*acc, len(contentSide)+len(collabSide))
	order := make([]int64, 0, len(contentSide)+len(collabSide))

	for _, s := range contentSide {
		a, ok := byID[s.id]
		if !ok {
			a = &acc{}
			byID[s.id] = a
			order = append(order, s.id)
		}
		a.content = s.score
	}
	for _, s := range collabSide {
		a, ok := byID[s.id]
		if !ok {
			a = &acc{}
			byID[s.id] = a
			order = append(order, s.id)
		}
		a.collab = s.score
	}

	combined := make([]scored, 0, len(order))
	for _, id := range order {
		a := byID[id]
		combined = append(combined, scored{
			id:    id,
			score: contentWeight*a.content + collabWeight*a.collab,
		})
	}
	sort.SliceStable(combined, func(a, b int) bool {
		return combined[a].score > combined[b].score
	})
	if len(combined) > n {
		combined = combined[:n]
	}

	metrics.RecordRecommendation(string(StrategyHybrid), len(combined), false)
	return e.toRecommendations(combined)
}

// Popular returns up to n movies with at least MinPopularRatings ratings,
// ranked by mean rating descending. The similarity score is the mean rating
// normalized to [0, 1]. Fewer than n movies may qualify; the list is never
// padded with disqualified movies.
func (e *Engine) Popular(n int) []Recommendation {
	n = e.clampN(n)
	results := e.popularScores(n)
	metrics.RecordRecommendation(string(StrategyPopular), len(results), false)
	return e.toRecommendations(results)
}

// ForUser recommends movies for a known user by seeding the collaborative
// strategy with the movies the user rated at or above the like threshold.
// Unknown users and users without liked movies get the popularity fallback.
func (e *Engine) ForUser(userID int64, n int) []Recommendation {
	n = e.clampN(n)

	if !e.store.HasUser(userID) {
		results := e.popularScores(n)
		metrics.RecordRecommendation("for_user", len(results), true)
		return e.toRecommendations(results)
	}

	var liked []int64
	for _, r := range e.store.RatingsForUser(userID) {
		if r.Rating >= e.cfg.LikeThreshold {
			liked = append(liked, r.MovieID)
		}
	}
	if len(liked) == 0 {
		results := e.popularScores(n)
		metrics.RecordRecommendation("for_user", len(results), true)
		return e.toRecommendations(results)
	}

	results, fallback := e.collabScores(liked, n)
	metrics.RecordRecommendation("for_user", len(results), fallback)
	return e.toRecommendations(results)
}

// contentScores queries the content index, substituting the popularity
// ranking when the movie is unknown. fallback reports the substitution.
func (e *Engine) contentScores(movieID int64, n int) (results []scored, fallback bool) {
	results, ok := e.content.similarTo(movieID, n)
	if !ok {
		e.logger.Debug().Int64("movie_id", movieID).Msg("movie not in catalog, using popularity fallback")
		return e.popularScores(n), true
	}
	return results, false
}

// collabScores pools neighbor lists across all seed movies, deduplicates by
// first occurrence, and re-sorts globally by similarity. Seeds without
// ratings are skipped; an empty pool substitutes the popularity ranking.
func (e *Engine) collabScores(movieIDs []int64, n int) (results []scored, fallback bool) {
	var pooled []scored
	for _, id := range movieIDs {
		neighbors, ok := e.collab.neighborsOf(id, n)
		if !ok {
			continue
		}
		pooled = append(pooled, neighbors...)
	}

	seen := make(map[int64]struct{}, len(pooled))
	deduped := pooled[:0]
	for _, s := range pooled {
		if _, dup := seen[s.id]; dup {
			continue
		}
		seen[s.id] = struct{}{}
		deduped = append(deduped, s)
	}

	if len(deduped) == 0 {
		e.logger.Debug().Ints64("movie_ids", movieIDs).Msg("no collaborative neighbors, using popularity fallback")
		return e.popularScores(n), true
	}

	sort.SliceStable(deduped, func(a, b int) bool {
		return deduped[a].score > deduped[b].score
	})
	if len(deduped) > n {
		deduped = deduped[:n]
	}
	return deduped, false
}

// popularScores ranks movies with enough ratings by mean rating.
// Ties keep catalog order.
func (e *Engine) popularScores(n int) []scored {
	movies := e.store.Movies()

	candidates := make([]scored, 0, len(movies))
	for _, m := range movies {
		ratings := e.store.RatingsForMovie(m.ID)
		if len(ratings) < e.cfg.MinPopularRatings {
			continue
		}
		var sum float64
		for _, r := range ratings {
			sum += r.Rating
		}
		mean := sum / float64(len(ratings))
		candidates = append(candidates, scored{id: m.ID, score: mean / 5.0})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// toRecommendations resolves scored ids against the catalog.
func (e *Engine) toRecommendations(results []scored) []Recommendation {
	recs := make([]Recommendation, 0, len(results))
	for _, s := range results {
		m, ok := e.store.Movie(s.id)
		if !ok {
			continue
		}
		genres := m.Genres
		if genres == nil {
			genres = []string{}
		}
		recs = append(recs, Recommendation{
			MovieID:         m.ID,
			Title:           m.Title,
			Genres:          genres,
			Year:            m.Year,
			SimilarityScore: s.score,
		})
	}
	return recs
}

// clampN normalizes a requested result count.
func (e *Engine) clampN(n int) int {
	if n <= 0 {
		return e.cfg.DefaultN
	}
	if n > e.cfg.MaxN {
		return e.cfg.MaxN
	}
	return n
}
