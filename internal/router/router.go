// Package router sets up all HTTP routes and middleware chains for the
// marketdash API. Generation routes get their own rate limit on top of the
// global middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"marketdash/internal/handlers"
	"marketdash/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to disable rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", api.GetSettings)
		r.Put("/settings", api.PutSettings)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", api.ListAssets)
			r.Post("/", api.CreateAsset)
			r.Get("/{id}", api.GetAsset)
			r.Put("/{id}", api.UpdateAsset)
			r.Delete("/{id}", api.DeleteAsset)
			r.Patch("/{id}/status", api.UpdateAssetStatus)
			r.Get("/{id}/export", api.ExportAsset)
		})

		r.Get("/stats", api.Stats)

		// Generation. Every call spends API credit.
		r.Route("/generate", func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/seo", api.GenerateSEO)
			r.Post("/email", api.GenerateEmail)
			r.Post("/social", api.GenerateSocial)
			r.Post("/lead-magnet", api.GenerateLeadMagnet)
			r.Post("/repurpose", api.GenerateRepurpose)
			r.Post("/image-prompt", api.GenerateImagePrompt)
			r.Post("/image", api.GenerateImage)
		})

		r.Get("/state", api.GetState)
		r.Patch("/state", api.PatchState)

		r.Get("/providers", api.ListProviders)
		r.Put("/providers/active", api.SetActiveProvider)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
