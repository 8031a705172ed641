// ReelRank - Movie Recommendation Demonstrator
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelrank/reelrank/internal/middleware"
)

// Router wires handlers and middleware into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from a handler and a middleware set.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	return &Router{handler: handler, chiMiddleware: mw}
}

// chiHandlerFunc adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so it composes with r.Use().
func chiHandlerFunc(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled

	// Health endpoints get a permissive rate limit for monitoring.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiHandlerFunc(middleware.PrometheusMetrics))

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/", router.handler.Recommendations)
			r.Get("/similar/{movieID}", router.handler.SimilarMovies)
			r.Get("/user/{userID}", router.handler.UserRecommendations)
			r.Get("/popular", router.handler.PopularMovies)
		})

		r.Get("/movies", router.handler.Movies)
		r.Get("/movies/{movieID}", router.handler.MovieByID)
		r.Get("/stats", router.handler.Stats)
		r.Get("/users/{userID}/profile", router.handler.UserProfile)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/genres", router.handler.AnalyticsGenres)
			r.Get("/trending", router.handler.AnalyticsTrending)
		})
	})

	// Prometheus metrics endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
