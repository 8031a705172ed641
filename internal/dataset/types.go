// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package dataset holds the in-memory movie catalog and rating store that
// the recommendation engine is built from. Data enters either through the
// CSV loaders or the built-in sample generator, is cleaned, and is then
// frozen into an immutable Store.
package dataset

import (
	"fmt"
	"sort"
)

// Movie is a single catalog entry.
type Movie struct {
	ID     int64    `json:"movieId"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Year   *int     `json:"year,omitempty"`
}

// Rating is a single user-movie interaction.
type Rating struct {
	UserID    int64   `json:"userId"`
	MovieID   int64   `json:"movieId"`
	Rating    float64 `json:"rating"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

// ValidationError reports invalid input data.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Store is a validated, immutable snapshot of the catalog and ratings.
// All slices are in insertion order; do not mutate them after construction.
type Store struct {
	movies  []Movie
	ratings []Rating

	movieByID map[int64]*Movie
	movieIdx  map[int64]int

	// ratingsByMovie and ratingsByUser index into the ratings slice.
	ratingsByMovie map[int64][]int
	ratingsByUser  map[int64][]int

	userIDs []int64
}

// NewStore validates the given catalog and ratings and freezes them into a
// Store. The inputs are expected to be cleaned already (see Clean); a rating
// referencing an unknown movie is a validation error here.
func NewStore(movies []Movie, ratings []Rating) (*Store, error) {
	if len(movies) == 0 {
		return nil, &ValidationError{Field: "movies", Message: "catalog is empty"}
	}
	if len(ratings) == 0 {
		return nil, &ValidationError{Field: "ratings", Message: "no ratings"}
	}

	s := &Store{
		movies:         movies,
		ratings:        ratings,
		movieByID:      make(map[int64]*Movie, len(movies)),
		movieIdx:       make(map[int64]int, len(movies)),
		ratingsByMovie: make(map[int64][]int),
		ratingsByUser:  make(map[int64][]int),
	}

	for i := range movies {
		m := &movies[i]
		if _, dup := s.movieByID[m.ID]; dup {
			return nil, &ValidationError{
				Field:   "movies",
				Message: fmt.Sprintf("duplicate movie id %d", m.ID),
			}
		}
		s.movieByID[m.ID] = m
		s.movieIdx[m.ID] = i
	}

	for i, r := range ratings {
		if _, ok := s.movieByID[r.MovieID]; !ok {
			return nil, &ValidationError{
				Field:   "ratings",
				Message: fmt.Sprintf("rating references unknown movie id %d", r.MovieID),
			}
		}
		if r.Rating < 0 || r.Rating > 5 {
			return nil, &ValidationError{
				Field:   "ratings",
				Message: fmt.Sprintf("rating %g for movie %d out of range [0, 5]", r.Rating, r.MovieID),
			}
		}
		s.ratingsByMovie[r.MovieID] = append(s.ratingsByMovie[r.MovieID], i)
		s.ratingsByUser[r.UserID] = append(s.ratingsByUser[r.UserID], i)
	}

	s.userIDs = make([]int64, 0, len(s.ratingsByUser))
	for uid := range s.ratingsByUser {
		s.userIDs = append(s.userIDs, uid)
	}
	sort.Slice(s.userIDs, func(i, j int) bool { return s.userIDs[i] < s.userIDs[j] })

	return s, nil
}

// Movies returns the catalog in insertion order.
func (s *Store) Movies() []Movie {
	return s.movies
}

// Ratings returns all ratings in insertion order.
func (s *Store) Ratings() []Rating {
	return s.ratings
}

// Movie looks up a catalog entry by ID.
func (s *Store) Movie(id int64) (*Movie, bool) {
	m, ok := s.movieByID[id]
	return m, ok
}

// MovieIndex returns the catalog position of the given movie ID.
func (s *Store) MovieIndex(id int64) (int, bool) {
	i, ok := s.movieIdx[id]
	return i, ok
}

// RatingsForMovie returns all ratings of the given movie.
func (s *Store) RatingsForMovie(id int64) []Rating {
	idxs := s.ratingsByMovie[id]
	out := make([]Rating, len(idxs))
	for i, idx := range idxs {
		out[i] = s.ratings[idx]
	}
	return out
}

// RatingsForUser returns all ratings by the given user.
func (s *Store) RatingsForUser(id int64) []Rating {
	idxs := s.ratingsByUser[id]
	out := make([]Rating, len(idxs))
	for i, idx := range idxs {
		out[i] = s.ratings[idx]
	}
	return out
}

// RatingCount returns the number of ratings for the given movie.
func (s *Store) RatingCount(id int64) int {
	return len(s.ratingsByMovie[id])
}

// HasUser reports whether the given user has any ratings.
func (s *Store) HasUser(id int64) bool {
	_, ok := s.ratingsByUser[id]
	return ok
}

// UserIDs returns the distinct user IDs in ascending order.
func (s *Store) UserIDs() []int64 {
	return s.userIDs
}
