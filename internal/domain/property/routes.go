package property

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhub/stayhub-api/internal/middleware"
)

// Register attaches property routes to the given router
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireRole("HOST", "ADMIN"))

		r.Post("/", h.Create)
		r.Get("/my", h.ListMine)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/photos", h.UploadPhoto)
	})
}
