// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package dataset

// CleanReport summarizes what Clean dropped.
type CleanReport struct {
	OrphanRatings     int `json:"orphan_ratings"`
	OutOfRangeRatings int `json:"out_of_range_ratings"`
	DuplicateRatings  int `json:"duplicate_ratings"`
}

// Clean prepares raw ratings for Store construction:
//   - ratings referencing a movie not in the catalog are dropped
//   - ratings outside [0, 5] are dropped
//   - duplicate (userId, movieId) pairs keep the first occurrence
//
// The input slice is not modified.
func Clean(movies []Movie, ratings []Rating) ([]Rating, CleanReport) {
	known := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		known[m.ID] = struct{}{}
	}

	type pair struct{ user, movie int64 }
	seen := make(map[pair]struct{}, len(ratings))

	var report CleanReport
	cleaned := make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		if _, ok := known[r.MovieID]; !ok {
			report.OrphanRatings++
			continue
		}
		if r.Rating < 0 || r.Rating > 5 {
			report.OutOfRangeRatings++
			continue
		}
		key := pair{r.UserID, r.MovieID}
		if _, dup := seen[key]; dup {
			report.DuplicateRatings++
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, r)
	}

	return cleaned, report
}
