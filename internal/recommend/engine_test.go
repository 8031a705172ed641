// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/reelrank/reelrank/internal/dataset"
)

func engineFixture(t *testing.T) *Engine {
	t.Helper()

	movies := []dataset.Movie{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Comedy"}},
		{ID: 4, Title: "D", Genres: []string{"Drama", "Comedy"}},
		{ID: 5, Title: "E", Genres: []string{"Action"}},
		{ID: 6, Title: "F", Genres: []string{}},
	}
	ratings := []dataset.Rating{
		{UserID: 1, MovieID: 1, Rating: 5},
		{UserID: 1, MovieID: 2, Rating: 4},
		{UserID: 1, MovieID: 3, Rating: 2},
		{UserID: 2, MovieID: 1, Rating: 4},
		{UserID: 2, MovieID: 2, Rating: 5},
		{UserID: 2, MovieID: 4, Rating: 4},
		{UserID: 3, MovieID: 2, Rating: 3},
		{UserID: 3, MovieID: 3, Rating: 5},
		{UserID: 3, MovieID: 5, Rating: 2},
		{UserID: 4, MovieID: 1, Rating: 3},
		{UserID: 4, MovieID: 3, Rating: 4},
		{UserID: 4, MovieID: 5, Rating: 1},
		{UserID: 5, MovieID: 1, Rating: 3},
		{UserID: 5, MovieID: 2, Rating: 2},
	}

	s, err := dataset.NewStore(movies, ratings)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	cfg := DefaultConfig()
	cfg.MinPopularRatings = 2

	e, err := New(s, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

func sameRecommendations(a, b []Recommendation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].MovieID != b[i].MovieID || a[i].SimilarityScore != b[i].SimilarityScore {
			return false
		}
	}
	return true
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{{ID: 1, Title: "A"}}
	ratings := []dataset.Rating{{UserID: 1, MovieID: 1, Rating: 3}}
	s, err := dataset.NewStore(movies, ratings)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	cfg := DefaultConfig()
	cfg.KNNNeighbors = 0

	if _, err := New(s, cfg, zerolog.Nop()); err == nil {
		t.Fatal("New() with invalid config expected error, got nil")
	}
}

func TestContentBasedExcludesSeed(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	for _, id := range []int64{1, 2, 3, 4, 5, 6} {
		recs := e.ContentBased(id, 5)
		for _, r := range recs {
			if r.MovieID == id {
				t.Errorf("ContentBased(%d) includes the seed movie", id)
			}
		}
	}
}

func TestContentBasedSharedGenreScenario(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	// A and B share Drama; C is Comedy-only. B must rank above C.
	recs := e.ContentBased(1, 2)
	if len(recs) != 2 {
		t.Fatalf("ContentBased(1, 2) len = %d, want 2", len(recs))
	}
	posB, posC := -1, -1
	for i, r := range recs {
		switch r.MovieID {
		case 2:
			posB = i
		case 3:
			posC = i
		}
	}
	if posB == -1 {
		t.Fatal("ContentBased(1, 2) missing movie 2")
	}
	if posC != -1 && posC < posB {
		t.Error("Comedy-only movie ranked above the shared-genre movie")
	}
}

func TestStrategiesRespectN(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	for n := 1; n <= 6; n++ {
		if got := len(e.ContentBased(1, n)); got > n {
			t.Errorf("ContentBased len = %d > n = %d", got, n)
		}
		if got := len(e.Collaborative([]int64{1, 2}, n)); got > n {
			t.Errorf("Collaborative len = %d > n = %d", got, n)
		}
		if got := len(e.Hybrid([]int64{1, 2}, n, 0.6, 0.4)); got > n {
			t.Errorf("Hybrid len = %d > n = %d", got, n)
		}
		if got := len(e.Popular(n)); got > n {
			t.Errorf("Popular len = %d > n = %d", got, n)
		}
		if got := len(e.ForUser(1, n)); got > n {
			t.Errorf("ForUser len = %d > n = %d", got, n)
		}
	}
}

func TestPopularRanking(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	recs := e.Popular(10)
	if len(recs) == 0 {
		t.Fatal("Popular() empty")
	}

	for i, r := range recs {
		// Threshold: every entry has at least MinPopularRatings backing ratings.
		if count := len(e.store.RatingsForMovie(r.MovieID)); count < e.cfg.MinPopularRatings {
			t.Errorf("Popular includes movie %d with only %d ratings", r.MovieID, count)
		}
		if r.SimilarityScore < 0 || r.SimilarityScore > 1 {
			t.Errorf("Popular score %g outside [0, 1]", r.SimilarityScore)
		}
		if i > 0 && recs[i].SimilarityScore > recs[i-1].SimilarityScore {
			t.Errorf("Popular not sorted descending at %d", i)
		}
	}

	// Movies 1 and 2 tie on mean 4.0; catalog order breaks the tie.
	if recs[0].MovieID != 1 || recs[1].MovieID != 2 {
		t.Errorf("Popular head = [%d, %d], want [1, 2]", recs[0].MovieID, recs[1].MovieID)
	}
	if recs[0].SimilarityScore != 0.8 {
		t.Errorf("Popular top score = %g, want 4.0/5.0 = 0.8", recs[0].SimilarityScore)
	}

	// Movie 4 has a single rating and never qualifies.
	for _, r := range recs {
		if r.MovieID == 4 {
			t.Error("Popular includes movie below the rating threshold")
		}
	}
}

func TestPopularNeverPads(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	// Only 4 movies meet the 2-rating threshold.
	recs := e.Popular(100)
	if len(recs) != 4 {
		t.Errorf("Popular(100) len = %d, want 4 qualifying movies", len(recs))
	}
}

func TestContentBasedUnknownIDFallsBack(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	got := e.ContentBased(9999999, 5)
	want := e.Popular(5)
	if !sameRecommendations(got, want) {
		t.Errorf("ContentBased(unknown) = %v, want Popular output %v", got, want)
	}
}

func TestCollaborativeUnratedSeedsFallBack(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	// Movie 6 has no ratings; an all-unrated seed list pools nothing.
	got := e.Collaborative([]int64{6, 9999999}, 5)
	want := e.Popular(5)
	if !sameRecommendations(got, want) {
		t.Errorf("Collaborative(unrated seeds) = %v, want Popular output %v", got, want)
	}
}

func TestCollaborativeSkipsBadIDsInBatch(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	// One bad id must never abort the batch.
	withBad := e.Collaborative([]int64{1, 9999999}, 5)
	onlyGood := e.Collaborative([]int64{1}, 5)
	if !sameRecommendations(withBad, onlyGood) {
		t.Errorf("Collaborative with bad id = %v, want same as without %v", withBad, onlyGood)
	}
}

func TestCollaborativeServesNBeyondNeighborhood(t *testing.T) {
	t.Parallel()

	// 60 rated movies with the default KNN neighborhood of 20: a single
	// seed asked for 40 results must deliver 40, not k-1.
	s := wideCollabStore(t)
	e, err := New(s, DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	recs := e.Collaborative([]int64{1}, 40)
	if len(recs) != 40 {
		t.Fatalf("Collaborative([1], 40) len = %d, want 40", len(recs))
	}
	for _, r := range recs {
		if r.MovieID == 1 {
			t.Error("Collaborative([1], 40) includes the seed movie")
		}
	}
}

func TestHybridContentOnlyMatchesContentBased(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	hybrid := e.Hybrid([]int64{1}, 3, 1.0, 0)
	content := e.ContentBased(1, 3)

	if len(hybrid) != len(content) {
		t.Fatalf("Hybrid len = %d, ContentBased len = %d", len(hybrid), len(content))
	}
	for i := range hybrid {
		if hybrid[i].MovieID != content[i].MovieID {
			t.Errorf("rank %d: hybrid movie %d, content movie %d",
				i, hybrid[i].MovieID, content[i].MovieID)
		}
	}
}

func TestHybridBlendsScores(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	recs := e.Hybrid([]int64{1, 2}, 5, 0.6, 0.4)
	if len(recs) == 0 {
		t.Fatal("Hybrid() empty")
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].SimilarityScore > recs[i-1].SimilarityScore {
			t.Errorf("Hybrid not sorted descending at %d", i)
		}
	}

	// Movie 4 appears on both sides: its blended score must be at least
	// its weighted content component alone.
	content := e.content.similarity(1, 4)
	for _, r := range recs {
		if r.MovieID == 4 && r.SimilarityScore < 0.6*content-1e-9 {
			t.Errorf("blended score %g below weighted content component %g",
				r.SimilarityScore, 0.6*content)
		}
	}
}

func TestForUser(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	t.Run("unknown user falls back to popular", func(t *testing.T) {
		t.Parallel()
		got := e.ForUser(9999, 5)
		want := e.Popular(5)
		if !sameRecommendations(got, want) {
			t.Errorf("ForUser(unknown) = %v, want Popular output %v", got, want)
		}
	})

	t.Run("user with no liked movies falls back to popular", func(t *testing.T) {
		t.Parallel()
		// User 5 rated movies but never at or above 4.0.
		got := e.ForUser(5, 5)
		want := e.Popular(5)
		if !sameRecommendations(got, want) {
			t.Errorf("ForUser(all ratings below threshold) = %v, want Popular output %v", got, want)
		}
	})

	t.Run("user with liked movies gets collaborative results", func(t *testing.T) {
		t.Parallel()
		// User 1 rated movies 1 (5.0) and 2 (4.0) at the threshold.
		got := e.ForUser(1, 5)
		want := e.Collaborative([]int64{1, 2}, 5)
		if !sameRecommendations(got, want) {
			t.Errorf("ForUser(1) = %v, want Collaborative([1 2]) output %v", got, want)
		}
	})
}

func TestQueryIdempotence(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	strategies := map[string]func() []Recommendation{
		"content":       func() []Recommendation { return e.ContentBased(1, 5) },
		"collaborative": func() []Recommendation { return e.Collaborative([]int64{1, 2}, 5) },
		"hybrid":        func() []Recommendation { return e.Hybrid([]int64{1, 2}, 5, 0.6, 0.4) },
		"popular":       func() []Recommendation { return e.Popular(5) },
		"for_user":      func() []Recommendation { return e.ForUser(1, 5) },
	}

	for name, query := range strategies {
		first := query()
		second := query()
		if !sameRecommendations(first, second) {
			t.Errorf("%s: repeated query produced different output", name)
		}
	}
}

func TestClampN(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	if got := e.clampN(0); got != e.cfg.DefaultN {
		t.Errorf("clampN(0) = %d, want default %d", got, e.cfg.DefaultN)
	}
	if got := e.clampN(-3); got != e.cfg.DefaultN {
		t.Errorf("clampN(-3) = %d, want default %d", got, e.cfg.DefaultN)
	}
	if got := e.clampN(10000); got != e.cfg.MaxN {
		t.Errorf("clampN(10000) = %d, want max %d", got, e.cfg.MaxN)
	}
	if got := e.clampN(7); got != 7 {
		t.Errorf("clampN(7) = %d, want 7", got)
	}
}

func TestRecommendDispatch(t *testing.T) {
	t.Parallel()

	e := engineFixture(t)

	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name: "content",
			req:  Request{Strategy: StrategyContent, MovieIDs: []int64{1}, N: 5},
		},
		{
			name: "collaborative",
			req:  Request{Strategy: StrategyCollaborative, MovieIDs: []int64{1, 2}, N: 5},
		},
		{
			name: "hybrid",
			req:  Request{Strategy: StrategyHybrid, MovieIDs: []int64{1}, N: 5, ContentWeight: 0.6, CollabWeight: 0.4},
		},
		{
			name: "popular",
			req:  Request{Strategy: StrategyPopular, N: 5},
		},
		{
			name:    "content without seeds",
			req:     Request{Strategy: StrategyContent, N: 5},
			wantErr: true,
		},
		{
			name:    "unknown strategy",
			req:     Request{Strategy: Strategy("mystery"), MovieIDs: []int64{1}, N: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recs, err := e.Recommend(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Recommend() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error: %v", err)
			}
			if len(recs) > 5 {
				t.Errorf("Recommend() len = %d > 5", len(recs))
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"content", "collaborative", "hybrid", "popular"} {
		if _, err := ParseStrategy(valid); err != nil {
			t.Errorf("ParseStrategy(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseStrategy("mystery"); err == nil {
		t.Error("ParseStrategy(mystery) expected error")
	}
}
