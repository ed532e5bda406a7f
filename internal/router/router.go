// Package router sets up the HTTP routes and middleware chains for the
// Storyforge API. Generation gets its own rate limit; everything else
// shares the global middleware stack.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"storyforge/internal/handlers"
	"storyforge/internal/middleware"
)

// Generation is expensive (AI calls, image uploads), so it gets a much
// tighter per-IP budget than the read endpoints.
const (
	generateLimit  = 5
	generateWindow = 1 * time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. The returned limiter must be stopped on shutdown.
func New(api *handlers.API) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", api.Health)

	limiter := middleware.NewRateLimiter(generateLimit, generateWindow)

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/generate", api.Generate)

		r.Get("/stories/{id}", api.GetStory)
		r.Post("/stories/{id}/share", api.ShareStory)

		r.Get("/stats", api.Stats)
		r.Post("/events", api.RecordEvent)
	})

	return r, limiter
}
