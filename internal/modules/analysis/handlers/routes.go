package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers all analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/analysis", func(r chi.Router) {
		// long series can take a while through the full pipeline
		r.Use(middleware.Timeout(60 * time.Second))

		r.Post("/", h.HandleAnalyze)
		r.Post("/indicators", h.HandleIndicators)
		r.Post("/segments", h.HandleSegments)
	})
}
