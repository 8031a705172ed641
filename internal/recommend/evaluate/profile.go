// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package evaluate

import (
	"fmt"
	"math"
	"sort"

	"github.com/reelrank/reelrank/internal/dataset"
)

// GenrePreference is a user's affinity for one genre.
type GenrePreference struct {
	Genre      string  `json:"genre"`
	MeanRating float64 `json:"mean_rating"`
	Count      int     `json:"count"`
}

// RatedMovie is a single catalog entry with the user's rating attached.
type RatedMovie struct {
	MovieID int64   `json:"movieId"`
	Title   string  `json:"title"`
	Rating  float64 `json:"rating"`
}

// UserProfile summarizes a user's rating behavior and taste.
type UserProfile struct {
	UserID         int64             `json:"userId"`
	RatingCount    int               `json:"rating_count"`
	MeanRating     float64           `json:"mean_rating"`
	StdDev         float64           `json:"stddev"`
	FavoriteGenres []GenrePreference `json:"favorite_genres"`
	TopMovies      []RatedMovie      `json:"top_movies"`
}

// maxFavorites bounds the favorite-genre and top-movie lists.
const maxFavorites = 5

// BuildUserProfile derives a taste profile from a user's ratings.
// Returns an error when the user has no ratings.
func BuildUserProfile(userID int64, store *dataset.Store) (*UserProfile, error) {
	ratings := store.RatingsForUser(userID)
	if len(ratings) == 0 {
		return nil, fmt.Errorf("user %d has no ratings", userID)
	}

	p := &UserProfile{
		UserID:      userID,
		RatingCount: len(ratings),
	}

	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	p.MeanRating = sum / float64(len(ratings))

	var variance float64
	for _, r := range ratings {
		d := r.Rating - p.MeanRating
		variance += d * d
	}
	p.StdDev = math.Sqrt(variance / float64(len(ratings)))

	// Per-genre rating aggregates over the movies the user rated.
	type genreAgg struct {
		sum   float64
		count int
	}
	byGenre := make(map[string]*genreAgg)
	for _, r := range ratings {
		m, ok := store.Movie(r.MovieID)
		if !ok {
			continue
		}
		for _, g := range m.Genres {
			agg, ok := byGenre[g]
			if !ok {
				agg = &genreAgg{}
				byGenre[g] = agg
			}
			agg.sum += r.Rating
			agg.count++
		}
	}

	p.FavoriteGenres = make([]GenrePreference, 0, len(byGenre))
	for g, agg := range byGenre {
		p.FavoriteGenres = append(p.FavoriteGenres, GenrePreference{
			Genre:      g,
			MeanRating: agg.sum / float64(agg.count),
			Count:      agg.count,
		})
	}
	sort.Slice(p.FavoriteGenres, func(i, j int) bool {
		a, b := p.FavoriteGenres[i], p.FavoriteGenres[j]
		if a.MeanRating != b.MeanRating {
			return a.MeanRating > b.MeanRating
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Genre < b.Genre
	})
	if len(p.FavoriteGenres) > maxFavorites {
		p.FavoriteGenres = p.FavoriteGenres[:maxFavorites]
	}

	top := make([]RatedMovie, 0, len(ratings))
	for _, r := range ratings {
		m, ok := store.Movie(r.MovieID)
		if !ok {
			continue
		}
		top = append(top, RatedMovie{MovieID: m.ID, Title: m.Title, Rating: r.Rating})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })
	if len(top) > maxFavorites {
		top = top[:maxFavorites]
	}
	p.TopMovies = top

	return p, nil
}
