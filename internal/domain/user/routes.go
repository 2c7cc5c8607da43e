package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhub/stayhub-api/internal/middleware"
)

// Routes builds user routes, all authenticated
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Patch("/me", h.UpdateProfile)
	r.Post("/me/avatar", h.UploadAvatar)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Post("/{id}/ban", h.Ban)
		r.Delete("/{id}/ban", h.Unban)
	})

	return r
}
