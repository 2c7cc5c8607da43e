package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/middleware"
	"github.com/stayhub/stayhub-api/internal/pkg/response"
	"github.com/stayhub/stayhub-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.service.Create(r.Context(), guestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.NotFound(w, "Property not found")
		case errors.Is(err, ErrPropertyInactive):
			response.Conflict(w, "Property is not available for booking")
		case errors.Is(err, ErrOwnProperty):
			response.BadRequest(w, "You cannot book your own property")
		case errors.Is(err, ErrCapacityExceeded):
			response.BadRequest(w, "Guest count exceeds property capacity")
		case errors.Is(err, ErrCheckInPast):
			response.BadRequest(w, "Check-in date cannot be in the past")
		case errors.Is(err, ErrInvalidDateRange):
			response.BadRequest(w, "Check-out date must be after check-in date")
		case errors.Is(err, ErrInvalidDate):
			response.BadRequest(w, "Invalid date. Expected format: YYYY-MM-DD")
		case errors.Is(err, ErrDatesUnavailable):
			response.Conflict(w, "Property is already booked for these dates")
		default:
			response.InternalError(w, "Failed to create booking")
		}
		return
	}

	response.Created(w, b)
}

// ListMine handles GET /bookings/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.ListMine(r.Context(), guestID)
	if err != nil {
		response.InternalError(w, "Failed to list bookings")
		return
	}

	response.OK(w, bookings)
}

// ListForHost handles GET /bookings/host
func (h *Handler) ListForHost(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.ListForHost(r.Context(), hostID)
	if err != nil {
		response.InternalError(w, "Failed to list bookings")
		return
	}

	response.OK(w, bookings)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	d, err := h.service.Get(r.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, "You do not have access to this booking")
		default:
			response.InternalError(w, "Failed to load booking")
		}
		return
	}

	response.OK(w, d)
}

// Confirm handles POST /bookings/{id}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Confirm)
}

// Cancel handles POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel)
}

type transitionFunc func(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) (*Booking, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	userID, role, ok := identity(r)
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := fn(r.Context(), userID, role, id)
	if err != nil {
		var transitionErr *InvalidTransitionError
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrPropertyNotFound):
			response.NotFound(w, "Property not found")
		case errors.Is(err, ErrNotHost):
			response.Forbidden(w, "Only the property host can confirm bookings")
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, "You do not have access to this booking")
		case errors.As(err, &transitionErr):
			response.Conflict(w, "Cannot "+transitionErr.Action+" booking with status "+string(transitionErr.From))
		default:
			response.InternalError(w, "Failed to update booking")
		}
		return
	}

	response.OK(w, b)
}

func identity(r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetRole(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, role, true
}
