/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind proxies
  3. Logger:     slog request logging (level by status)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. Headers:    CSP and hardening headers
  6. CORS:       Cross-origin requests for external frontends

ROUTE GROUPS:
  /                     Calculator page
  /ui/*                 HTMX fragments
  /api/projections      Projection API
  /api/presets/*        Preset catalog
  /static/*             Embedded assets
  /healthz, /readyz     Probes

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/accruemind/accrual-engine/logging"
	"github.com/accruemind/accrual-engine/web"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.Options.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL", "HX-Trigger"},
		ExposedHeaders:   []string{"HX-Trigger"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Pages
	r.Get("/", h.Index)
	r.Post("/ui/projection", h.ProjectionPartial)

	// Probes
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projections", h.GetProjection)
		r.Post("/projections", h.CreateProjection)
		r.Get("/frequencies", h.ListFrequencies)
		r.Get("/cache", h.CacheStats)

		r.Route("/presets", func(r chi.Router) {
			r.Get("/", h.ListPresets)
			r.Post("/reset", h.ResetPresets)
			r.Get("/{id}", h.GetPreset)
			r.Get("/{id}/projection", h.GetPresetProjection)
		})
	})

	// Static assets
	if static, err := fs.Sub(web.StaticFS, "static"); err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	return r
}
