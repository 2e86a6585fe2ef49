package staff

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glowdesk/glowdesk-api/internal/pkg/errorhandler"
	"github.com/glowdesk/glowdesk-api/internal/pkg/response"
	"github.com/glowdesk/glowdesk-api/internal/pkg/validator"
)

// Handler handles staff directory HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates the staff handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns staff members; ?active=true filters to active ones
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	members, err := h.repo.List(r.Context(), activeOnly)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, members)
}

// Get returns one staff member
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, "Staff member not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, m)
}

// Create adds a staff member
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	m := req.toEntity(0)
	if err := h.repo.Create(r.Context(), m); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.Created(w, m)
}

// Update edits a staff member
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	m := req.toEntity(id)
	if err := h.repo.Update(r.Context(), m); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, "Staff member not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, m)
}

// Delete removes a staff member without booking history
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	switch err := h.repo.Delete(r.Context(), id); {
	case err == nil:
		response.NoContent(w)
	case errors.Is(err, ErrMemberNotFound):
		response.NotFound(w, "Staff member not found")
	case errors.Is(err, ErrMemberHasBookings):
		response.Conflict(w, "Staff member has existing bookings; deactivate instead")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id")
		return 0, false
	}
	return id, true
}
