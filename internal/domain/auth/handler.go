package auth

import (
	"errors"
	"net/http"

	"github.com/stayhub/stayhub-api/internal/domain/user"
	"github.com/stayhub/stayhub-api/internal/middleware"
	"github.com/stayhub/stayhub-api/internal/pkg/response"
	"github.com/stayhub/stayhub-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			response.Conflict(w, "Email already registered")
		case errors.Is(err, ErrAdminRegistration):
			response.Forbidden(w, "Admin accounts cannot be self-registered")
		default:
			response.InternalError(w, "Failed to register")
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrUserBanned):
			response.Forbidden(w, "Account is banned")
		default:
			response.InternalError(w, "Failed to login")
		}
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.Unauthorized(w, "Invalid or expired refresh token")
		case errors.Is(err, ErrUserBanned):
			response.Forbidden(w, "Account is banned")
		default:
			response.InternalError(w, "Failed to refresh tokens")
		}
		return
	}

	response.OK(w, tokens)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			response.Unauthorized(w, "Invalid refresh token")
			return
		}
		response.InternalError(w, "Failed to logout")
		return
	}

	response.NoContent(w)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	info, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w, "Failed to load profile")
		return
	}

	response.OK(w, info)
}
