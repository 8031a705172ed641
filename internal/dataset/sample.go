// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package dataset

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	sampleSeed     = 42
	sampleMovies   = 100
	sampleUsers    = 1000
	sampleAttempts = 10000
)

// sampleGenres is the tag pool for generated movies.
var sampleGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Drama", "Fantasy", "Horror", "Romance", "Sci-Fi", "Thriller",
}

// sampleRatingValues and sampleRatingWeights skew generated ratings toward
// the positive end, roughly matching real rating distributions.
var (
	sampleRatingValues  = []float64{1, 2, 3, 4, 5}
	sampleRatingWeights = []float64{0.05, 0.10, 0.20, 0.35, 0.30}
)

// sampleBaseTime anchors generated timestamps so that sample data is
// fully deterministic across runs.
var sampleBaseTime = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

// SampleData generates a deterministic demo dataset: 100 movies with one to
// three genre tags each and roughly ten thousand ratings from a thousand
// users. Duplicate (user, movie) pairs are skipped, so the rating count is
// slightly below the attempt count.
func SampleData() ([]Movie, []Rating) {
	rng := rand.New(rand.NewSource(sampleSeed))

	movies := make([]Movie, 0, sampleMovies)
	for i := 1; i <= sampleMovies; i++ {
		nGenres := 1 + rng.Intn(3)
		perm := rng.Perm(len(sampleGenres))
		genres := make([]string, nGenres)
		for j := 0; j < nGenres; j++ {
			genres[j] = sampleGenres[perm[j]]
		}

		year := 1980 + rng.Intn(45)
		movies = append(movies, Movie{
			ID:     int64(i),
			Title:  fmt.Sprintf("Movie %d", i),
			Genres: genres,
			Year:   &year,
		})
	}

	type pair struct{ user, movie int64 }
	seen := make(map[pair]struct{}, sampleAttempts)

	ratings := make([]Rating, 0, sampleAttempts)
	for i := 0; i < sampleAttempts; i++ {
		uid := int64(1 + rng.Intn(sampleUsers))
		mid := int64(1 + rng.Intn(sampleMovies))
		value := weightedRating(rng)
		ts := sampleBaseTime - int64(rng.Intn(365*24*3600))

		key := pair{uid, mid}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ratings = append(ratings, Rating{UserID: uid, MovieID: mid, Rating: value, Timestamp: ts})
	}

	return movies, ratings
}

// weightedRating draws a rating value according to sampleRatingWeights.
func weightedRating(rng *rand.Rand) float64 {
	p := rng.Float64()
	acc := 0.0
	for i, w := range sampleRatingWeights {
		acc += w
		if p < acc {
			return sampleRatingValues[i]
		}
	}
	return sampleRatingValues[len(sampleRatingValues)-1]
}
