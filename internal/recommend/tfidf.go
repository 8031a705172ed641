// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import (
	"math"
	"sort"

	"github.com/reelrank/reelrank/internal/dataset"
)

// contentIndex holds the precomputed movie-by-movie genre similarity matrix.
// Row and column order match the catalog's insertion order. The matrix is
// symmetric with a unit diagonal and is never mutated after construction.
type contentIndex struct {
	ids []int64
	idx map[int64]int
	sim [][]float64
}

// buildContentIndex derives TF-IDF vectors from each movie's genre tags and
// precomputes the full cosine similarity matrix. Movies without genre tags
// get a zero vector; their similarity to every other movie is 0.
func buildContentIndex(movies []dataset.Movie) *contentIndex {
	n := len(movies)

	ci := &contentIndex{
		ids: make([]int64, n),
		idx: make(map[int64]int, n),
		sim: make([][]float64, n),
	}
	for i, m := range movies {
		ci.ids[i] = m.ID
		ci.idx[m.ID] = i
	}

	// Document frequency per tag across the catalog.
	df := make(map[string]int)
	for _, m := range movies {
		seen := make(map[string]struct{}, len(m.Genres))
		for _, g := range m.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}

	// L2-normalized TF-IDF vector per movie, stored sparsely by tag.
	// Smoothed IDF keeps tags present in every movie from vanishing.
	vectors := make([]map[string]float64, n)
	for i, m := range movies {
		if len(m.Genres) == 0 {
			vectors[i] = nil
			continue
		}

		counts := make(map[string]int, len(m.Genres))
		for _, g := range m.Genres {
			counts[g]++
		}

		vec := make(map[string]float64, len(counts))
		var norm float64
		for tag, c := range counts {
			tf := float64(c) / float64(len(m.Genres))
			idf := math.Log(float64(1+n)/float64(1+df[tag])) + 1
			w := tf * idf
			vec[tag] = w
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for tag := range vec {
				vec[tag] /= norm
			}
		}
		vectors[i] = vec
	}

	// Cosine of L2-normalized vectors reduces to a dot product.
	for i := 0; i < n; i++ {
		ci.sim[i] = make([]float64, n)
		ci.sim[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := sparseDot(vectors[i], vectors[j])
			ci.sim[i][j] = s
			ci.sim[j][i] = s
		}
	}

	return ci
}

func sparseDot(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for tag, wa := range a {
		if wb, ok := b[tag]; ok {
			dot += wa * wb
		}
	}
	return dot
}

// similarTo returns up to n movies ranked by descending genre similarity to
// the given movie, excluding the movie itself. Ties keep catalog order.
// ok is false when the movie is not in the catalog.
func (ci *contentIndex) similarTo(movieID int64, n int) (results []scored, ok bool) {
	row, ok := ci.idx[movieID]
	if !ok {
		return nil, false
	}

	candidates := make([]scored, 0, len(ci.ids)-1)
	for j, id := range ci.ids {
		if j == row {
			continue
		}
		candidates = append(candidates, scored{id: id, score: ci.sim[row][j]})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates, true
}

// similarity returns the matrix entry for a pair of movie IDs, or 0 when
// either is unknown.
func (ci *contentIndex) similarity(a, b int64) float64 {
	i, okA := ci.idx[a]
	j, okB := ci.idx[b]
	if !okA || !okB {
		return 0
	}
	return ci.sim[i][j]
}
