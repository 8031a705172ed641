// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package evaluate

import (
	"math"
	"sort"
	"time"

	"github.com/reelrank/reelrank/internal/dataset"
)

// GenreCount is one entry of the catalog's genre distribution.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// GenreDistribution counts catalog movies per genre tag, most frequent
// first, ties alphabetical.
func GenreDistribution(store *dataset.Store) []GenreCount {
	counts := make(map[string]int)
	for _, m := range store.Movies() {
		for _, g := range m.Genres {
			counts[g]++
		}
	}

	dist := make([]GenreCount, 0, len(counts))
	for g, c := range counts {
		dist = append(dist, GenreCount{Genre: g, Count: c})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Genre < dist[j].Genre
	})
	return dist
}

// TrendingMovie is one entry of the trending ranking.
type TrendingMovie struct {
	MovieID    int64   `json:"movieId"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
}

// Trending ranks movies by recent rating activity. Only ratings within the
// window before the newest timestamp in the dataset count; the score is
// mean rating scaled by ln(count+1) so heavily rated movies edge out
// single high ratings. Ratings without timestamps are ignored. Returns up
// to n entries.
func Trending(store *dataset.Store, window time.Duration, n int) []TrendingMovie {
	var maxTS int64
	for _, r := range store.Ratings() {
		if r.Timestamp > maxTS {
			maxTS = r.Timestamp
		}
	}
	if maxTS == 0 {
		return nil
	}
	cutoff := maxTS - int64(window.Seconds())

	type agg struct {
		sum   float64
		count int
	}
	recent := make(map[int64]*agg)
	for _, r := range store.Ratings() {
		if r.Timestamp == 0 || r.Timestamp < cutoff {
			continue
		}
		a, ok := recent[r.MovieID]
		if !ok {
			a = &agg{}
			recent[r.MovieID] = a
		}
		a.sum += r.Rating
		a.count++
	}

	trending := make([]TrendingMovie, 0, len(recent))
	for _, m := range store.Movies() {
		a, ok := recent[m.ID]
		if !ok {
			continue
		}
		mean := a.sum / float64(a.count)
		trending = append(trending, TrendingMovie{
			MovieID:    m.ID,
			Title:      m.Title,
			Score:      mean * math.Log(float64(a.count)+1),
			Count:      a.count,
			MeanRating: mean,
		})
	}
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].Score > trending[j].Score
	})
	if n > 0 && len(trending) > n {
		trending = trending[:n]
	}
	return trending
}
