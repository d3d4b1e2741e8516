package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		r.Get("/health", h.HealthHandler)

		r.Post("/upload", h.UploadHandler)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.ListCardsHandler)
			r.Patch("/{id}", h.UpdateCardHandler)
			r.Delete("/{id}", h.DeleteCardHandler)
		})
	})
}
