package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - submissions come straight from browsers on any origin, so the
	// policy is open. The middleware also answers OPTIONS preflights.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	// Submission endpoints
	r.Route("/api", func(r chi.Router) {
		r.Post("/feature-request", h.SubmitFeatureRequest)
		r.Post("/feedback", h.SubmitFeedback)
		r.Post("/stats", h.LogStat)
	})

	return r
}
