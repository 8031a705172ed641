// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package recommend

import "fmt"

// Config holds the engine's tuning parameters.
type Config struct {
	// ContentWeight and CollabWeight are the default hybrid blend weights.
	// They are not required to sum to 1.
	ContentWeight float64
	CollabWeight  float64

	// KNNNeighbors caps the neighborhood size of the collaborative index.
	// For catalogs smaller than the cap, all available neighbors are used.
	KNNNeighbors int

	// MinPopularRatings is the minimum rating count for a movie to appear
	// in the popularity ranking.
	MinPopularRatings int

	// LikeThreshold is the minimum rating that seeds per-user
	// recommendations.
	LikeThreshold float64

	// DefaultN is used when a caller requests a non-positive result count;
	// MaxN caps the result count.
	DefaultN int
	MaxN     int
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		ContentWeight:     0.6,
		CollabWeight:      0.4,
		KNNNeighbors:      20,
		MinPopularRatings: 10,
		LikeThreshold:     4.0,
		DefaultN:          10,
		MaxN:              100,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.ContentWeight < 0 || c.CollabWeight < 0 {
		return fmt.Errorf("weights must be non-negative, got content=%g collab=%g",
			c.ContentWeight, c.CollabWeight)
	}
	if c.ContentWeight == 0 && c.CollabWeight == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	if c.KNNNeighbors < 1 {
		return fmt.Errorf("knn neighbors must be at least 1, got %d", c.KNNNeighbors)
	}
	if c.MinPopularRatings < 1 {
		return fmt.Errorf("min popular ratings must be at least 1, got %d", c.MinPopularRatings)
	}
	if c.LikeThreshold < 0 || c.LikeThreshold > 5 {
		return fmt.Errorf("like threshold must be in [0, 5], got %g", c.LikeThreshold)
	}
	if c.DefaultN < 1 {
		return fmt.Errorf("default n must be at least 1, got %d", c.DefaultN)
	}
	if c.MaxN < c.DefaultN {
		return fmt.Errorf("max n (%d) must be >= default n (%d)", c.MaxN, c.DefaultN)
	}
	return nil
}
