package settings

import (
	"encoding/json"
	"net/http"

	"github.com/glowdesk/glowdesk-api/internal/pkg/errorhandler"
	"github.com/glowdesk/glowdesk-api/internal/pkg/response"
	"github.com/glowdesk/glowdesk-api/internal/pkg/validator"
)

// Handler handles booking settings HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates the settings handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Get returns the opening-hours policy
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, s)
}

// Update saves the opening-hours policy
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	s := req.toEntity()
	if !s.DayStart.Before(s.DayEnd) {
		response.ValidationError(w, map[string]string{"day_end": "Closing time must be after opening time"})
		return
	}

	if err := h.repo.Save(r.Context(), s); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}

	response.OK(w, s)
}
