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

// collabIndex holds the movie neighbor structure derived from the user-item
// matrix. Matrix rows are distinct user IDs (ascending), columns distinct
// rated movie IDs (ascending). For every movie column a list of the k
// nearest columns by cosine distance is precomputed at build time; queries
// wanting more neighbors than the precomputed list rescan the retained
// matrix, up to min(n+1, columns). Immutable after construction.
type collabIndex struct {
	movieIDs []int64
	col      map[int64]int

	// neighbors[c] holds up to min(k, columns) entries sorted by ascending
	// cosine distance. The movie itself is always the first entry.
	neighbors [][]scored

	// vectors and norms back the on-demand scan for queries larger than k.
	vectors [][]float64
	norms   []float64

	k int
}

// buildCollabIndex constructs the user-item matrix from the store's ratings
// and runs a brute-force k-nearest-neighbor search over the movie columns.
// Only movies with at least one rating become columns. k degrades to the
// column count for small catalogs.
func buildCollabIndex(store *dataset.Store, k int) *collabIndex {
	userIDs := store.UserIDs()
	userRow := make(map[int64]int, len(userIDs))
	for i, uid := range userIDs {
		userRow[uid] = i
	}

	seen := make(map[int64]struct{})
	movieIDs := make([]int64, 0)
	for _, r := range store.Ratings() {
		if _, ok := seen[r.MovieID]; ok {
			continue
		}
		seen[r.MovieID] = struct{}{}
		movieIDs = append(movieIDs, r.MovieID)
	}
	sort.Slice(movieIDs, func(i, j int) bool { return movieIDs[i] < movieIDs[j] })

	idx := &collabIndex{
		movieIDs:  movieIDs,
		col:       make(map[int64]int, len(movieIDs)),
		neighbors: make([][]scored, len(movieIDs)),
		vectors:   make([][]float64, len(movieIDs)),
		norms:     make([]float64, len(movieIDs)),
		k:         k,
	}
	for c, id := range movieIDs {
		idx.col[id] = c
		idx.vectors[c] = make([]float64, len(userIDs))
	}

	for _, r := range store.Ratings() {
		idx.vectors[idx.col[r.MovieID]][userRow[r.UserID]] = r.Rating
	}

	for c, vec := range idx.vectors {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		idx.norms[c] = math.Sqrt(sum)
	}

	keep := min(k, len(movieIDs))
	for c := range movieIDs {
		idx.neighbors[c] = idx.scanColumn(c, keep)
	}

	return idx
}

// scanColumn brute-force ranks every matrix column by ascending cosine
// distance to column c and returns the nearest keep entries. The column
// itself always sorts first, even when other columns tie at distance 0.
func (x *collabIndex) scanColumn(c, keep int) []scored {
	type distCol struct {
		dist float64
		col  int
	}
	dists := make([]distCol, len(x.movieIDs))
	for j := range x.movieIDs {
		dists[j] = distCol{dist: 1 - cosineColumns(x.vectors, x.norms, c, j), col: j}
	}
	sort.SliceStable(dists, func(a, b int) bool {
		if dists[a].dist != dists[b].dist {
			return dists[a].dist < dists[b].dist
		}
		return (dists[a].col == c) && (dists[b].col != c)
	})

	if keep > len(dists) {
		keep = len(dists)
	}
	list := make([]scored, keep)
	for i := 0; i < keep; i++ {
		list[i] = scored{id: x.movieIDs[dists[i].col], score: 1 - dists[i].dist}
	}
	return list
}

// cosineColumns computes the cosine similarity between two movie columns.
// A zero-norm column has similarity 0 to everything, avoiding a divide by
// zero when a movie's ratings are all zero.
func cosineColumns(vectors [][]float64, norms []float64, a, b int) float64 {
	if norms[a] == 0 || norms[b] == 0 {
		return 0
	}
	var dot float64
	va, vb := vectors[a], vectors[b]
	for i := range va {
		dot += va[i] * vb[i]
	}
	return dot / (norms[a] * norms[b])
}

// neighborsOf returns up to n movies ranked by descending rating-vector
// similarity to the given movie, excluding the movie itself. The query
// size is min(n+1, columns): the precomputed k-neighborhood serves small
// requests, and larger requests rescan the matrix so n is never silently
// capped to k while rated movies remain. ok is false when the movie has
// no ratings (absent from the matrix columns); such movies are skipped by
// the engine rather than failing the whole batch.
func (x *collabIndex) neighborsOf(movieID int64, n int) (results []scored, ok bool) {
	c, ok := x.col[movieID]
	if !ok {
		return nil, false
	}

	// min(n+1, available): the +1 accounts for the movie always being its
	// own nearest neighbor, stripped below.
	want := n + 1
	if want > len(x.movieIDs) {
		want = len(x.movieIDs)
	}

	list := x.neighbors[c]
	if want > len(list) {
		list = x.scanColumn(c, want)
	}

	results = make([]scored, 0, want)
	for _, nb := range list[:want] {
		if nb.id == movieID {
			continue
		}
		results = append(results, nb)
	}
	if len(results) > n {
		results = results[:n]
	}
	return results, true
}
