// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package dataset

import "fmt"

// Stats summarizes a Store for the stats endpoint.
type Stats struct {
	Movies             int            `json:"n_movies"`
	Ratings            int            `json:"n_ratings"`
	Users              int            `json:"n_users"`
	AvgRating          float64        `json:"avg_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
	Sparsity           float64        `json:"sparsity"`
}

// Stats computes dataset summary statistics. Sparsity is the fraction of
// the user-item matrix without a rating.
func (s *Store) Stats() Stats {
	st := Stats{
		Movies:             len(s.movies),
		Ratings:            len(s.ratings),
		Users:              len(s.userIDs),
		RatingDistribution: make(map[string]int),
	}

	var sum float64
	for _, r := range s.ratings {
		sum += r.Rating
		st.RatingDistribution[fmt.Sprintf("%.1f", r.Rating)]++
	}
	if len(s.ratings) > 0 {
		st.AvgRating = sum / float64(len(s.ratings))
	}

	cells := st.Movies * st.Users
	if cells > 0 {
		st.Sparsity = 1 - float64(st.Ratings)/float64(cells)
	}

	return st
}
