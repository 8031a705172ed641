// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// noGenresMarker is the placeholder MovieLens-style exports use for movies
// without genre tags.
const noGenresMarker = "(no genres listed)"

// ParseGenres splits a pipe-delimited genre field into a tag list.
// Empty fields and the "(no genres listed)" placeholder yield an empty slice.
func ParseGenres(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == noGenresMarker {
		return []string{}
	}

	parts := strings.Split(field, "|")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// LoadMoviesCSV reads a movie catalog from a CSV file with a header row.
// Required columns: movieId, title, genres. Optional: year.
func LoadMoviesCSV(path string) ([]Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies file: %w", err)
	}
	defer f.Close()

	movies, err := ReadMovies(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return movies, nil
}

// ReadMovies reads a movie catalog from CSV data with a header row.
func ReadMovies(r io.Reader) ([]Movie, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header, []string{"movieId", "title", "genres"})
	if err != nil {
		return nil, err
	}
	yearCol, hasYear := findColumn(header, "year")
	minFields := maxColumn(cols) + 1

	var movies []Movie
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		if len(rec) < minFields {
			return nil, &ValidationError{
				Field:   "record",
				Message: fmt.Sprintf("row %d: %d fields, need at least %d", line, len(rec), minFields),
			}
		}

		id, err := strconv.ParseInt(strings.TrimSpace(rec[cols["movieId"]]), 10, 64)
		if err != nil {
			return nil, &ValidationError{
				Field:   "movieId",
				Message: fmt.Sprintf("row %d: invalid movie id %q", line, rec[cols["movieId"]]),
			}
		}

		m := Movie{
			ID:     id,
			Title:  strings.TrimSpace(rec[cols["title"]]),
			Genres: ParseGenres(rec[cols["genres"]]),
		}
		if hasYear && yearCol < len(rec) {
			if y, err := strconv.Atoi(strings.TrimSpace(rec[yearCol])); err == nil {
				m.Year = &y
			}
		}
		movies = append(movies, m)
	}

	return movies, nil
}

// LoadRatingsCSV reads ratings from a CSV file with a header row.
// Required columns: userId, movieId, rating. Optional: timestamp.
func LoadRatingsCSV(path string) ([]Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings file: %w", err)
	}
	defer f.Close()

	ratings, err := ReadRatings(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ratings, nil
}

// ReadRatings reads ratings from CSV data with a header row.
func ReadRatings(r io.Reader) ([]Rating, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header, []string{"userId", "movieId", "rating"})
	if err != nil {
		return nil, err
	}
	tsCol, hasTS := findColumn(header, "timestamp")
	minFields := maxColumn(cols) + 1

	var ratings []Rating
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		if len(rec) < minFields {
			return nil, &ValidationError{
				Field:   "record",
				Message: fmt.Sprintf("row %d: %d fields, need at least %d", line, len(rec), minFields),
			}
		}

		uid, err := strconv.ParseInt(strings.TrimSpace(rec[cols["userId"]]), 10, 64)
		if err != nil {
			return nil, &ValidationError{
				Field:   "userId",
				Message: fmt.Sprintf("row %d: invalid user id %q", line, rec[cols["userId"]]),
			}
		}
		mid, err := strconv.ParseInt(strings.TrimSpace(rec[cols["movieId"]]), 10, 64)
		if err != nil {
			return nil, &ValidationError{
				Field:   "movieId",
				Message: fmt.Sprintf("row %d: invalid movie id %q", line, rec[cols["movieId"]]),
			}
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(rec[cols["rating"]]), 64)
		if err != nil {
			return nil, &ValidationError{
				Field:   "rating",
				Message: fmt.Sprintf("row %d: invalid rating %q", line, rec[cols["rating"]]),
			}
		}

		rt := Rating{UserID: uid, MovieID: mid, Rating: val}
		if hasTS && tsCol < len(rec) {
			if ts, err := strconv.ParseInt(strings.TrimSpace(rec[tsCol]), 10, 64); err == nil {
				rt.Timestamp = ts
			}
		}
		ratings = append(ratings, rt)
	}

	return ratings, nil
}

// columnIndex maps required column names to their positions in the header.
// A missing required column is a validation error.
func columnIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for _, name := range required {
		col, ok := findColumn(header, name)
		if !ok {
			return nil, &ValidationError{
				Field:   name,
				Message: fmt.Sprintf("required column %q missing from header %v", name, header),
			}
		}
		idx[name] = col
	}
	return idx, nil
}

// maxColumn returns the highest column position among the required columns.
// Rows shorter than that cannot be parsed and are rejected per row.
func maxColumn(cols map[string]int) int {
	max := 0
	for _, c := range cols {
		if c > max {
			max = c
		}
	}
	return max
}

func findColumn(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return 0, false
}
