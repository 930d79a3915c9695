// Package router sets up all HTTP routes and middleware chains for the
// AdForge API. Routes are grouped into public auth endpoints and the
// authenticated project/generation/media area.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adforge/internal/handlers"
	"adforge/internal/middleware"
	"adforge/internal/session"
)

const (
	// generateLimit caps copy-generation requests per client IP. Each one
	// is a paid upstream AI call.
	generateLimit  = 20
	generateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, projects *handlers.Projects, generate *handlers.Generate, media *handlers.Media) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints — accessible without a session.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", auth.Me)
			})
		})

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projects.List)
				r.Post("/", projects.Create)
				r.Get("/{id}", projects.Get)
				r.Put("/{id}", projects.Save)
			})

			// Copy generation — rate limited per client IP.
			rl := middleware.NewRateLimiter(generateLimit, generateWindow)
			r.With(rl.Middleware).Post("/generate-ad-copy", generate.AdCopy)

			r.Post("/media", media.Upload)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
