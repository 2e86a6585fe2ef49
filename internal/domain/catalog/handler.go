package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glowdesk/glowdesk-api/internal/pkg/errorhandler"
	"github.com/glowdesk/glowdesk-api/internal/pkg/readmodel"
	"github.com/glowdesk/glowdesk-api/internal/pkg/response"
	"github.com/glowdesk/glowdesk-api/internal/pkg/validator"
)

// Handler handles catalog HTTP requests
type Handler struct {
	repo  Repository
	cache readmodel.Invalidator
}

// NewHandler creates the catalog handler
func NewHandler(repo Repository, cache readmodel.Invalidator) *Handler {
	return &Handler{repo: repo, cache: cache}
}

// invalidateExtras drops projections computed from the extra-service list so
// open booking forms refetch durations and prices.
func (h *Handler) invalidateExtras(r *http.Request) {
	if h.cache != nil {
		h.cache.Invalidate(r.Context(), readmodel.GroupExtraServices)
	}
}

// --- Categories ---

// ListCategories returns all categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, categories)
}

// CreateCategory adds a category
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c := &Category{Name: req.Name, Position: req.Position}
	if err := h.repo.CreateCategory(r.Context(), c); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.Created(w, c)
}

// UpdateCategory renames/repositions a category
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	c := &Category{ID: id, Name: req.Name, Position: req.Position}
	if err := h.repo.UpdateCategory(r.Context(), c); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, c)
}

// DeleteCategory removes an empty category
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch err := h.repo.DeleteCategory(r.Context(), id); {
	case err == nil:
		response.NoContent(w)
	case errors.Is(err, ErrCategoryNotFound):
		response.NotFound(w, "Category not found")
	case errors.Is(err, ErrCategoryInUse):
		response.Conflict(w, "Category still has services; move or delete them first")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
	}
}

// --- Services ---

// ListServices returns services, optionally filtered by category
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid category_id")
			return
		}
		categoryID = &id
	}

	services, err := h.repo.ListServices(r.Context(), categoryID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, services)
}

// CreateService adds a service
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	s := req.toEntity(0)
	if err := h.repo.CreateService(r.Context(), s); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.Created(w, s)
}

// UpdateService edits a service
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	s := req.toEntity(id)
	if err := h.repo.UpdateService(r.Context(), s); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, s)
}

// DeleteService removes a service with no booking references
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch err := h.repo.DeleteService(r.Context(), id); {
	case err == nil:
		response.NoContent(w)
	case errors.Is(err, ErrServiceNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, ErrServiceInUse):
		response.Conflict(w, "Service has existing bookings; deactivate it instead")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
	}
}

// --- Extra services ---

// ListExtraServices returns all extra services
func (h *Handler) ListExtraServices(w http.ResponseWriter, r *http.Request) {
	extras, err := h.repo.ListExtraServices(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, extras)
}

// CreateExtraService adds an extra service
func (h *Handler) CreateExtraService(w http.ResponseWriter, r *http.Request) {
	var req ExtraServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	e := req.toEntity(0)
	if err := h.repo.CreateExtraService(r.Context(), e); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	h.invalidateExtras(r)
	response.Created(w, e)
}

// UpdateExtraService edits an extra service
func (h *Handler) UpdateExtraService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ExtraServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	e := req.toEntity(id)
	if err := h.repo.UpdateExtraService(r.Context(), e); err != nil {
		if errors.Is(err, ErrExtraServiceNotFound) {
			response.NotFound(w, "Extra service not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	h.invalidateExtras(r)
	response.OK(w, e)
}

// DeleteExtraService removes an extra service
func (h *Handler) DeleteExtraService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch err := h.repo.DeleteExtraService(r.Context(), id); {
	case err == nil:
		h.invalidateExtras(r)
		response.NoContent(w)
	case errors.Is(err, ErrExtraServiceNotFound):
		response.NotFound(w, "Extra service not found")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id")
		return 0, false
	}
	return id, true
}
