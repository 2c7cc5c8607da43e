package review

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/middleware"
	"github.com/stayhub/stayhub-api/internal/pkg/response"
	"github.com/stayhub/stayhub-api/internal/pkg/validator"
)

// Handler handles review HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates review handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /properties/{id}/reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property ID")
		return
	}

	var req CreateReviewRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rv, err := h.service.Create(r.Context(), guestID, propertyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.NotFound(w, "Property not found")
		case errors.Is(err, ErrNoCompletedStay):
			response.Forbidden(w, "You can only review properties after a completed stay")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Conflict(w, "You have already reviewed all your stays at this property")
		default:
			response.InternalError(w, "Failed to create review")
		}
		return
	}

	response.Created(w, rv)
}

// ListByProperty handles GET /properties/{id}/reviews
func (h *Handler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property ID")
		return
	}

	reviews, err := h.service.ListByProperty(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			response.NotFound(w, "Property not found")
			return
		}
		response.InternalError(w, "Failed to list reviews")
		return
	}

	response.OK(w, reviews)
}
