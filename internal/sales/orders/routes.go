package orders

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/place", h.Place)
		r.Get("/{id}", h.Show)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/lines", h.ListLines)
		r.Post("/{id}/lines", h.AddLine)
	})
	r.Route("/order-lines", func(r chi.Router) {
		r.Get("/{id}", h.ShowLine)
		r.Put("/{id}", h.UpdateLine)
		r.Delete("/{id}", h.DeleteLine)
	})
}
