package metrics

import "github.com/go-chi/chi/v5"

// MountRoutes registers the sales metrics endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/metrics", func(r chi.Router) {
		r.Get("/quantities", h.Quantities)
		r.Get("/products", h.Products)
	})
}
