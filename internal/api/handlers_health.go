// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the GET /api/v1/health payload.
type HealthStatus struct {
	Status      string  `json:"status"`
	Version     string  `json:"version"`
	DatasetSize int     `json:"dataset_size"`
	EngineReady bool    `json:"engine_ready"`
	Uptime      float64 `json:"uptime"`
}

// Health returns overall service health: dataset loaded, engine built,
// uptime. Degraded when either collaborator is missing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	engineReady := h.engine != nil
	datasetSize := 0
	if h.store != nil {
		datasetSize = len(h.store.Movies())
	}

	status := "healthy"
	if !engineReady || datasetSize == 0 {
		status = "degraded"
	}

	respondSuccess(w, r, HealthStatus{
		Status:      status,
		Version:     "1.0.0",
		DatasetSize: datasetSize,
		EngineReady: engineReady,
		Uptime:      time.Since(h.startTime).Seconds(),
	})
}

// HealthLive is the liveness probe. Returns 200 whenever the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady is the readiness probe. Returns 503 until the dataset is
// loaded and the engine is built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.engine != nil && h.store != nil && len(h.store.Movies()) > 0

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, r, statusCode, &APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
	})
}
