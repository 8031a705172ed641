// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration.
//
// Configuration loading order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config file: optional YAML config file (config.yaml)
//  3. Environment variables: override any setting
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DataConfig holds dataset source settings.
// When MoviesPath and RatingsPath are both empty the server starts with
// the built-in sample dataset.
type DataConfig struct {
	MoviesPath  string `koanf:"movies_path"`
	RatingsPath string `koanf:"ratings_path"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// ContentWeight and CollabWeight are the hybrid blend weights.
	ContentWeight float64 `koanf:"content_weight"`
	CollabWeight  float64 `koanf:"collab_weight"`

	// KNNNeighbors caps the neighborhood size of the collaborative index.
	KNNNeighbors int `koanf:"knn_neighbors"`

	// MinPopularRatings is the minimum rating count for a movie to be
	// eligible for the popularity ranking.
	MinPopularRatings int `koanf:"min_popular_ratings"`

	// LikeThreshold is the minimum rating that counts as a positive
	// signal when seeding per-user recommendations.
	LikeThreshold float64 `koanf:"like_threshold"`

	// DefaultN and MaxN bound the result list size.
	DefaultN int `koanf:"default_n"`
	MaxN     int `koanf:"max_n"`
}

// APIConfig holds API pagination settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	// A movies file without a ratings file (or vice versa) cannot build
	// the user-item matrix.
	if (c.Data.MoviesPath == "") != (c.Data.RatingsPath == "") {
		return fmt.Errorf("data.movies_path and data.ratings_path must be set together")
	}

	if err := c.Recommend.Validate(); err != nil {
		return err
	}

	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	return nil
}

// Validate checks the recommendation engine settings.
func (rc *RecommendConfig) Validate() error {
	if rc.ContentWeight < 0 || rc.CollabWeight < 0 {
		return fmt.Errorf("recommend weights must be non-negative, got content=%g collab=%g",
			rc.ContentWeight, rc.CollabWeight)
	}
	if rc.ContentWeight == 0 && rc.CollabWeight == 0 {
		return fmt.Errorf("at least one recommend weight must be positive")
	}
	if rc.KNNNeighbors < 1 {
		return fmt.Errorf("recommend.knn_neighbors must be at least 1, got %d", rc.KNNNeighbors)
	}
	if rc.MinPopularRatings < 1 {
		return fmt.Errorf("recommend.min_popular_ratings must be at least 1, got %d", rc.MinPopularRatings)
	}
	if rc.LikeThreshold < 0 || rc.LikeThreshold > 5 {
		return fmt.Errorf("recommend.like_threshold must be in [0, 5], got %g", rc.LikeThreshold)
	}
	if rc.DefaultN < 1 {
		return fmt.Errorf("recommend.default_n must be at least 1, got %d", rc.DefaultN)
	}
	if rc.MaxN < rc.DefaultN {
		return fmt.Errorf("recommend.max_n (%d) must be >= recommend.default_n (%d)",
			rc.MaxN, rc.DefaultN)
	}
	return nil
}
