package categories

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/categories", h.List)
	r.Post("/categories", h.Create)
	r.Get("/categories/{id}", h.Show)
	r.Put("/categories/{id}", h.Update)
	r.Delete("/categories/{id}", h.Delete)
}
