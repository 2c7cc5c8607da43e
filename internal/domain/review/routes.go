package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhub/stayhub-api/internal/middleware"
)

// Register attaches review routes to the properties router
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/{id}/reviews", h.ListByProperty)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireGuest())
		r.Post("/{id}/reviews", h.Create)
	})
}
