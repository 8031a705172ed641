// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package main is the entry point for the ReelRank recommendation server.
//
// ReelRank serves movie recommendations over a REST API, blending TF-IDF
// genre similarity with collaborative filtering over user ratings.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from environment variables and config files (Koanf v2)
//  2. Dataset: MovieLens-style CSV files, or a deterministic sample dataset
//  3. Recommendation engine: TF-IDF content index and KNN collaborative index
//  4. HTTP server: Chi-routed REST API with Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// Dataset selection:
//   - MOVIES_PATH and RATINGS_PATH point at CSV files (movieId,title,genres
//     and userId,movieId,rating,timestamp). Both must be set together.
//   - When unset, a deterministic synthetic sample dataset is generated so
//     the server is usable out of the box.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections and waits up to 10s for in-flight requests.
//
// # Example Usage
//
// Sample dataset, defaults:
//
//	./reelrank
//
// MovieLens files:
//
//	export MOVIES_PATH=data/movies.csv
//	export RATINGS_PATH=data/ratings.csv
//	./reelrank
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelrank/reelrank/internal/api"
	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/dataset"
	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/recommend"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("Starting ReelRank")

	store, err := loadDataset(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	stats := store.Stats()
	metrics.SetDatasetSize(stats.Movies, stats.Ratings, stats.Users)
	logging.Info().
		Int("movies", stats.Movies).
		Int("ratings", stats.Ratings).
		Int("users", stats.Users).
		Float64("sparsity", stats.Sparsity).
		Msg("Dataset loaded")

	engine, err := recommend.New(store, recommend.Config{
		ContentWeight:     cfg.Recommend.ContentWeight,
		CollabWeight:      cfg.Recommend.CollabWeight,
		KNNNeighbors:      cfg.Recommend.KNNNeighbors,
		MinPopularRatings: cfg.Recommend.MinPopularRatings,
		LikeThreshold:     cfg.Recommend.LikeThreshold,
		DefaultN:          cfg.Recommend.DefaultN,
		MaxN:              cfg.Recommend.MaxN,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	handler := api.NewHandler(store, engine, cfg)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfig{
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
		if err := server.Close(); err != nil {
			logging.Error().Err(err).Msg("Forced close failed")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadDataset builds the store from configured CSV paths, falling back to
// the generated sample dataset when no paths are configured. Malformed
// ratings are dropped before store construction; a catalog or ratings
// problem that survives cleaning is fatal.
func loadDataset(cfg *config.Config) (*dataset.Store, error) {
	var (
		movies  []dataset.Movie
		ratings []dataset.Rating
		err     error
	)

	if cfg.Data.MoviesPath != "" {
		movies, err = dataset.LoadMoviesCSV(cfg.Data.MoviesPath)
		if err != nil {
			return nil, fmt.Errorf("loading movies: %w", err)
		}
		ratings, err = dataset.LoadRatingsCSV(cfg.Data.RatingsPath)
		if err != nil {
			return nil, fmt.Errorf("loading ratings: %w", err)
		}
		logging.Info().
			Str("movies_path", cfg.Data.MoviesPath).
			Str("ratings_path", cfg.Data.RatingsPath).
			Msg("Loaded dataset from CSV")
	} else {
		movies, ratings = dataset.SampleData()
		logging.Info().Msg("No dataset configured, generated sample data")
	}

	cleaned, report := dataset.Clean(movies, ratings)
	if report.OrphanRatings+report.OutOfRangeRatings+report.DuplicateRatings > 0 {
		logging.Warn().
			Int("orphans", report.OrphanRatings).
			Int("out_of_range", report.OutOfRangeRatings).
			Int("duplicates", report.DuplicateRatings).
			Msg("Dropped malformed ratings during cleaning")
	}

	return dataset.NewStore(movies, cleaned)
}
