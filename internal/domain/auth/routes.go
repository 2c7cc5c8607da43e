package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds auth routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
	})

	return r
}
