package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhub/stayhub-api/internal/middleware"
)

// Routes builds booking routes, all authenticated
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireGuest())
		r.Post("/", h.Create)
		r.Get("/my", h.ListMine)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole("HOST", "ADMIN"))
		r.Get("/host", h.ListForHost)
		r.Post("/{id}/confirm", h.Confirm)
	})

	r.Get("/{id}", h.Get)
	r.Post("/{id}/cancel", h.Cancel)

	return r
}
