// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"time"

	"github.com/reelrank/reelrank/internal/cache"
	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/dataset"
	"github.com/reelrank/reelrank/internal/recommend"
)

// Handler contains the dependencies for all API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: Health and probe endpoints
//   - handlers_recommend.go: Recommendation endpoints
//   - handlers_catalog.go: Catalog, stats and analytics endpoints
type Handler struct {
	store     *dataset.Store
	engine    *recommend.Engine
	config    *config.Config
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates an API handler. All dependencies are required; nil
// values surface as degraded health rather than panics. Analytics payloads
// are cached for 5 minutes since the dataset is immutable per process.
func NewHandler(store *dataset.Store, engine *recommend.Engine, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		config:    cfg,
		cache:     cache.New(5 * time.Minute),
		startTime: time.Now(),
	}
}

// defaultN returns the configured default result count.
func (h *Handler) defaultN() int {
	if h.config != nil {
		return h.config.Recommend.DefaultN
	}
	return recommend.DefaultConfig().DefaultN
}

// pageSizes returns the configured default and maximum page sizes.
func (h *Handler) pageSizes() (def, max int) {
	if h.config != nil {
		return h.config.API.DefaultPageSize, h.config.API.MaxPageSize
	}
	return 20, 100
}
