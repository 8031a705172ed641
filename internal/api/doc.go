// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package api implements the HTTP surface of the recommendation service:
// Chi routing, request validation, JSON response envelopes and the
// middleware stack (CORS, rate limiting, request IDs, security headers).
//
// All endpoints live under /api/v1 and return the APIResponse envelope.
// Handlers receive their collaborators (dataset store, recommendation
// engine, configuration) through the Handler struct; there is no package
// level state.
package api
