// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/splatfolio/internal/auth"
	"github.com/tomtom215/splatfolio/internal/middleware"
	"github.com/tomtom215/splatfolio/internal/store"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	auth          *auth.Middleware
}

// NewRouter creates a Router. mw may be nil for the defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		auth:          auth.NewMiddleware(handler.jwt, unauthorized),
	}
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chiMiddleware(middleware.AccessLog(middleware.DefaultSlowRequestThreshold)))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	// ========================
	// Health and Metrics
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// API
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.Get("/events", h.Events)

		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chiMiddleware(middleware.Compression))

			r.Get("/stats", h.Stats)
			r.Get("/categories", h.ListCategories)
			r.With(router.auth.Require).Post("/categories", h.CreateCategory)

			for _, kind := range store.Kinds {
				collection := "/" + kind.Collection()
				r.Get(collection, h.ListFiles(kind))
				r.Get(collection+"/details", h.Details(kind))
				r.With(router.auth.Require).Delete(collection+"/{id}", h.DeleteAsset(kind))
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(router.auth.Require)
			for _, kind := range store.Kinds {
				r.Post("/upload-"+string(kind), h.Upload(kind))
			}
		})
	})

	// ========================
	// Stored Files
	// ========================
	for _, prefix := range []string{"/static", "/public"} {
		r.Route(prefix, func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("X-Content-Type-Options", "nosniff")
					next.ServeHTTP(w, r)
				})
			})
			r.Get("/{folder}/{file}", h.ServeFile)
			r.Head("/{folder}/{file}", h.ServeFile)
		})
	}

	return r
}
