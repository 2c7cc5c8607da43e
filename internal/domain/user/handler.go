package user

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/middleware"
	"github.com/stayhub/stayhub-api/internal/pkg/response"
	"github.com/stayhub/stayhub-api/internal/pkg/validator"
)

const maxAvatarSize = 5 << 20 // 5 MB

// Handler handles user HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UpdateProfile handles PATCH /users/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w, "Failed to update profile")
		return
	}

	response.OK(w, u)
}

// UploadAvatar handles POST /users/me/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Avatar file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		response.BadRequest(w, "Failed to read avatar")
		return
	}

	url, err := h.service.UploadAvatar(r.Context(), userID, data)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w, "Failed to upload avatar")
		return
	}

	response.OK(w, map[string]string{"avatar_url": url})
}

// Ban handles POST /users/{id}/ban
func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Ban)
}

// Unban handles DELETE /users/{id}/ban
func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Unban)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := fn(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w, "Failed to update user status")
		return
	}

	response.NoContent(w)
}
