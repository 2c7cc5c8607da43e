package property

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayhub/stayhub-api/internal/middleware"
	"github.com/stayhub/stayhub-api/internal/pkg/response"
	"github.com/stayhub/stayhub-api/internal/pkg/validator"
)

const maxPhotoSize = 10 << 20 // 10 MB

// Handler handles property HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates property handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /properties
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreatePropertyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Create(r.Context(), hostID, &req)
	if err != nil {
		if errors.Is(err, ErrHostNotFound) {
			response.NotFound(w, "Host not found")
			return
		}
		response.InternalError(w, "Failed to create property")
		return
	}

	response.Created(w, p)
}

// List handles GET /properties
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)

	properties, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w, "Failed to list properties")
		return
	}

	pages := (total + filter.PerPage - 1) / filter.PerPage
	response.WithMeta(w, properties, response.Meta{
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.PerPage,
		Pages:   pages,
		HasNext: filter.Page < pages,
		HasPrev: filter.Page > 1,
	})
}

// ListMine handles GET /properties/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	properties, err := h.service.ListMine(r.Context(), hostID)
	if err != nil {
		response.InternalError(w, "Failed to list properties")
		return
	}

	response.OK(w, properties)
}

// Get handles GET /properties/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property ID")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			response.NotFound(w, "Property not found")
			return
		}
		response.InternalError(w, "Failed to load property")
		return
	}

	response.OK(w, p)
}

// Update handles PATCH /properties/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property ID")
		return
	}

	var req UpdatePropertyRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Update(r.Context(), hostID, id, &req)
	if err != nil {
		h.writeOwnershipError(w, err, "Failed to update property")
		return
	}

	response.OK(w, p)
}

// Delete handles DELETE /properties/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property ID")
		return
	}

	if err := h.service.Delete(r.Context(), hostID, id); err != nil {
		h.writeOwnershipError(w, err, "Failed to delete property")
		return
	}

	response.NoContent(w)
}

// UploadPhoto handles POST /properties/{id}/photos
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid property ID")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		response.BadRequest(w, "Failed to read photo")
		return
	}

	photoURL, thumbURL, err := h.service.UploadPhoto(r.Context(), hostID, id, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.NotFound(w, "Property not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "Property belongs to another host")
		case errors.Is(err, ErrInvalidPhoto):
			response.BadRequest(w, "Unsupported or corrupted image file")
		case errors.Is(err, ErrTooManyPhotos):
			response.Conflict(w, "Photo limit reached for this property")
		default:
			response.InternalError(w, "Failed to upload photo")
		}
		return
	}

	response.Created(w, map[string]string{
		"photo_url":     photoURL,
		"thumbnail_url": thumbURL,
	})
}

func (h *Handler) writeOwnershipError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPropertyNotFound):
		response.NotFound(w, "Property not found")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, "Property belongs to another host")
	default:
		response.InternalError(w, fallback)
	}
}

func parseListFilter(r *http.Request) *ListFilter {
	q := r.URL.Query()
	filter := &ListFilter{
		City:         q.Get("city"),
		PropertyType: q.Get("type"),
	}

	if v := q.Get("min_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			filter.MinPrice = &n
		}
	}
	if v := q.Get("max_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			filter.MaxPrice = &n
		}
	}
	if v := q.Get("guests"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			filter.MinGuests = &n
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := q.Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.PerPage = n
		}
	}

	return filter
}
