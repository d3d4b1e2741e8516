package handlers

import (
	"github.com/go-chi/chi"

	"github.com/voidbinder/binder-services/internal/feedsvc/ws"
)

func SetRoutes(r *chi.Mux, s *ws.Ws) {
	h := NewHandler(s)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/feed", h.HandleWebSocket)
		r.Get("/health", h.HealthHandler)
	})
}
