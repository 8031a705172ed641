// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import (
	"math"
	"testing"

	"github.com/reelrank/reelrank/internal/dataset"
)

func collabStore(t *testing.T) *dataset.Store {
	t.Helper()

	movies := []dataset.Movie{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
		{ID: 3, Title: "C", Genres: []string{"Comedy"}},
		{ID: 4, Title: "Unrated", Genres: []string{"Horror"}},
	}
	// Users 1 and 2 agree on movies 1 and 2; movie 3 has a different audience.
	ratings := []dataset.Rating{
		{UserID: 1, MovieID: 1, Rating: 5},
		{UserID: 1, MovieID: 2, Rating: 5},
		{UserID: 2, MovieID: 1, Rating: 4},
		{UserID: 2, MovieID: 2, Rating: 4},
		{UserID: 3, MovieID: 3, Rating: 5},
	}

	s, err := dataset.NewStore(movies, ratings)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s
}

func TestNeighborsOf(t *testing.T) {
	t.Parallel()

	idx := buildCollabIndex(collabStore(t), 20)

	results, ok := idx.neighborsOf(1, 5)
	if !ok {
		t.Fatal("neighborsOf(1) ok = false")
	}
	for _, r := range results {
		if r.id == 1 {
			t.Error("neighborsOf(1) includes the seed movie")
		}
	}
	if len(results) == 0 {
		t.Fatal("neighborsOf(1) empty")
	}
	// Movie 2 is rated by the same users with proportional scores.
	if results[0].id != 2 {
		t.Errorf("nearest neighbor = movie %d, want 2", results[0].id)
	}
	if math.Abs(results[0].score-1) > 1e-9 {
		t.Errorf("neighbor similarity = %g, want 1 (proportional columns)", results[0].score)
	}
	// Movie 3 shares no raters with movie 1.
	for _, r := range results {
		if r.id == 3 && r.score != 0 {
			t.Errorf("disjoint audience similarity = %g, want 0", r.score)
		}
	}
}

func TestNeighborsOfUnratedMovie(t *testing.T) {
	t.Parallel()

	idx := buildCollabIndex(collabStore(t), 20)

	// Movie 4 has no ratings, so it is not a matrix column.
	if _, ok := idx.neighborsOf(4, 5); ok {
		t.Error("neighborsOf(4) ok = true, want false for unrated movie")
	}
}

func TestNeighborsOfCapsToCatalog(t *testing.T) {
	t.Parallel()

	// k far larger than the number of rated movies must degrade gracefully.
	idx := buildCollabIndex(collabStore(t), 20)

	results, ok := idx.neighborsOf(1, 100)
	if !ok {
		t.Fatal("neighborsOf(1) ok = false")
	}
	// 3 rated movies total, minus self.
	if len(results) != 2 {
		t.Errorf("neighborsOf(1, 100) len = %d, want 2", len(results))
	}
}

func TestNeighborsOfSmallK(t *testing.T) {
	t.Parallel()

	idx := buildCollabIndex(collabStore(t), 2)

	// Within the precomputed neighborhood of 2 (self plus one neighbor).
	results, ok := idx.neighborsOf(1, 1)
	if !ok {
		t.Fatal("neighborsOf(1, 1) ok = false")
	}
	if len(results) != 1 {
		t.Errorf("neighborsOf(1, 1) len = %d, want 1", len(results))
	}

	// Beyond the precomputed neighborhood the matrix is rescanned, so all
	// rated movies minus self are reachable.
	results, ok = idx.neighborsOf(1, 5)
	if !ok {
		t.Fatal("neighborsOf(1, 5) ok = false")
	}
	if len(results) != 2 {
		t.Errorf("neighborsOf(1, 5) with k=2 len = %d, want 2", len(results))
	}
}

// wideCollabStore builds a catalog with far more rated movies than the
// default neighborhood size: 60 movies rated by 30 users.
func wideCollabStore(t *testing.T) *dataset.Store {
	t.Helper()

	movies := make([]dataset.Movie, 0, 60)
	ratings := make([]dataset.Rating, 0, 120)
	for m := int64(1); m <= 60; m++ {
		movies = append(movies, dataset.Movie{ID: m, Title: "M", Genres: []string{"Drama"}})
		ratings = append(ratings,
			dataset.Rating{UserID: (m-1)%30 + 1, MovieID: m, Rating: float64(m%5 + 1)},
			dataset.Rating{UserID: m%30 + 1, MovieID: m, Rating: float64(m%3 + 2)},
		)
	}

	s, err := dataset.NewStore(movies, ratings)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s
}

func TestNeighborsOfLargerThanK(t *testing.T) {
	t.Parallel()

	idx := buildCollabIndex(wideCollabStore(t), 20)

	// 60 rated movies and n=40: the answer must not be capped to k-1.
	results, ok := idx.neighborsOf(1, 40)
	if !ok {
		t.Fatal("neighborsOf(1, 40) ok = false")
	}
	if len(results) != 40 {
		t.Fatalf("neighborsOf(1, 40) len = %d, want 40", len(results))
	}
	for i, r := range results {
		if r.id == 1 {
			t.Error("neighborsOf(1, 40) includes the seed movie")
		}
		if i > 0 && results[i].score > results[i-1].score {
			t.Errorf("neighbors not sorted descending at %d", i)
		}
	}

	// Asking for more than the catalog holds returns all other columns.
	results, ok = idx.neighborsOf(1, 200)
	if !ok {
		t.Fatal("neighborsOf(1, 200) ok = false")
	}
	if len(results) != 59 {
		t.Errorf("neighborsOf(1, 200) len = %d, want 59", len(results))
	}
}

func TestIdenticalRatingsNoDivideByZero(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
	}
	// Every user rates every movie identically.
	var ratings []dataset.Rating
	for uid := int64(1); uid <= 3; uid++ {
		for mid := int64(1); mid <= 3; mid++ {
			ratings = append(ratings, dataset.Rating{UserID: uid, MovieID: mid, Rating: 3})
		}
	}
	s, err := dataset.NewStore(movies, ratings)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	idx := buildCollabIndex(s, 20)

	results, ok := idx.neighborsOf(1, 5)
	if !ok {
		t.Fatal("neighborsOf(1) ok = false")
	}
	if len(results) != 2 {
		t.Fatalf("neighborsOf(1) len = %d, want 2", len(results))
	}
	for _, r := range results {
		if math.Abs(r.score-1) > 1e-9 {
			t.Errorf("identical columns similarity = %g, want 1", r.score)
		}
		if math.IsNaN(r.score) || math.IsInf(r.score, 0) {
			t.Errorf("similarity = %g, want finite", r.score)
		}
	}
}

func TestZeroRatingColumn(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "Zeroed"},
	}
	// A 0-valued rating is valid input and yields a zero column vector.
	ratings := []dataset.Rating{
		{UserID: 1, MovieID: 1, Rating: 4},
		{UserID: 1, MovieID: 2, Rating: 0},
	}
	s, err := dataset.NewStore(movies, ratings)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	idx := buildCollabIndex(s, 20)

	results, ok := idx.neighborsOf(2, 5)
	if !ok {
		t.Fatal("neighborsOf(2) ok = false")
	}
	for _, r := range results {
		if math.IsNaN(r.score) {
			t.Error("zero-norm column produced NaN similarity")
		}
		if r.score != 0 {
			t.Errorf("zero-norm column similarity = %g, want 0", r.score)
		}
	}
}
