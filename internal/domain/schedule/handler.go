package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glowdesk/glowdesk-api/internal/pkg/errorhandler"
	"github.com/glowdesk/glowdesk-api/internal/pkg/response"
	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
	"github.com/glowdesk/glowdesk-api/internal/pkg/validator"
)

// Handler handles schedule HTTP requests
type Handler struct {
	scheduler *Scheduler
}

// NewHandler creates the schedule handler
func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// Events returns the calendar projection for ?staff_id&from&to
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	staffID, from, to, ok := rangeQuery(w, r)
	if !ok {
		return
	}

	projected, err := h.scheduler.Events(r.Context(), staffID, from, to)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, projected)
}

// History returns raw entries for the range; ?include_canceled=true keeps
// canceled bookings in the listing.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	staffID, from, to, ok := rangeQuery(w, r)
	if !ok {
		return
	}
	includeCanceled := r.URL.Query().Get("include_canceled") == "true"

	entries, err := h.scheduler.History(r.Context(), staffID, from, to, includeCanceled)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, entries)
}

// Propose adjusts an edited range to stay consistent with the selected
// service's total duration and re-assesses it.
func (h *Handler) Propose(w http.ResponseWriter, r *http.Request) {
	var req ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	prev := Range{Start: timegrid.MustParse(req.PrevStart), End: timegrid.MustParse(req.PrevEnd)}
	next := Range{Start: timegrid.MustParse(req.Start), End: timegrid.MustParse(req.End)}

	adjusted, assessment, err := h.scheduler.Propose(r.Context(), prev, next, req.ServiceID, req.ExtraServiceIDs)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}

	response.OK(w, ProposalResponse{
		Start:           adjusted.Start,
		End:             adjusted.End,
		DurationMinutes: adjusted.Duration(),
		Assessment:      assessment,
	})
}

// CreateBooking saves a new booking
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	h.saveBooking(w, r, 0)
}

// UpdateBooking saves changes to an existing booking
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.saveBooking(w, r, id)
}

func (h *Handler) saveBooking(w http.ResponseWriter, r *http.Request, id int64) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	entry, assessment, err := h.scheduler.SaveBooking(r.Context(), req.toInput(id))
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, ErrEntryNotFound):
			response.NotFound(w, "Booking not found")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		}
		return
	}

	payload := EntryResponse{Entry: entry, Assessment: assessment}
	if id == 0 {
		response.CreatedWithWarnings(w, payload, assessment.Warnings)
		return
	}
	response.OKWithWarnings(w, payload, assessment.Warnings)
}

// CancelBooking marks a booking canceled without removing it
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.scheduler.CancelBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, entry)
}

// DeleteEntry hard-removes a booking or break
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.scheduler.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.NotFound(w, "Calendar entry not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.NoContent(w)
}

// CreateBreak saves a new break
func (h *Handler) CreateBreak(w http.ResponseWriter, r *http.Request) {
	h.saveBreak(w, r, 0)
}

// UpdateBreak saves changes to an existing break
func (h *Handler) UpdateBreak(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.saveBreak(w, r, id)
}

func (h *Handler) saveBreak(w http.ResponseWriter, r *http.Request, id int64) {
	var req BreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	entry, assessment, err := h.scheduler.SaveBreak(r.Context(), req.toInput(id))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange):
			response.ValidationError(w, map[string]string{"end": err.Error()})
		case errors.Is(err, ErrEntryNotFound):
			response.NotFound(w, "Break not found")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		}
		return
	}

	payload := EntryResponse{Entry: entry, Assessment: assessment}
	if id == 0 {
		response.CreatedWithWarnings(w, payload, assessment.Warnings)
		return
	}
	response.OKWithWarnings(w, payload, assessment.Warnings)
}

// ListWorkdays returns workdays for ?staff_id&from&to
func (h *Handler) ListWorkdays(w http.ResponseWriter, r *http.Request) {
	staffID, from, to, ok := rangeQuery(w, r)
	if !ok {
		return
	}

	workdays, err := h.scheduler.workdays.ListByStaffRange(r.Context(), staffID, from, to)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.OK(w, workdays)
}

// CreateWorkday opens a workday for one staff member and date
func (h *Handler) CreateWorkday(w http.ResponseWriter, r *http.Request) {
	var req WorkdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	workday, assessment, err := h.scheduler.CreateWorkday(r.Context(), req.toInput(0))
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkdayExists):
			response.Conflict(w, "A workday already exists for this staff member and date")
		case errors.Is(err, ErrInvalidRange):
			response.ValidationError(w, map[string]string{"end": err.Error()})
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		}
		return
	}

	response.CreatedWithWarnings(w, WorkdayResponse{Workday: workday, Assessment: assessment}, assessment.Warnings)
}

// UpdateWorkday changes an existing workday's hours
func (h *Handler) UpdateWorkday(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req WorkdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	workday, assessment, err := h.scheduler.UpdateWorkday(r.Context(), req.toInput(id))
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkdayNotFound):
			response.NotFound(w, "Workday not found")
		case errors.Is(err, ErrInvalidRange):
			response.ValidationError(w, map[string]string{"end": err.Error()})
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		}
		return
	}

	response.OKWithWarnings(w, WorkdayResponse{Workday: workday, Assessment: assessment}, assessment.Warnings)
}

// DeleteWorkday removes the workday for ?staff_id&date. Bookings on the date
// stay in place.
func (h *Handler) DeleteWorkday(w http.ResponseWriter, r *http.Request) {
	staffID, ok := queryStaffID(w, r)
	if !ok {
		return
	}
	date, err := timegrid.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Invalid date")
		return
	}

	if err := h.scheduler.DeleteWorkday(r.Context(), staffID, date); err != nil {
		if errors.Is(err, ErrWorkdayNotFound) {
			response.NotFound(w, "Workday not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
		return
	}
	response.NoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id")
		return 0, false
	}
	return id, true
}

func queryStaffID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	staffID, err := strconv.ParseInt(r.URL.Query().Get("staff_id"), 10, 64)
	if err != nil || staffID <= 0 {
		response.BadRequest(w, "Invalid staff_id")
		return 0, false
	}
	return staffID, true
}

func rangeQuery(w http.ResponseWriter, r *http.Request) (int64, timegrid.Date, timegrid.Date, bool) {
	staffID, ok := queryStaffID(w, r)
	if !ok {
		return 0, timegrid.Date{}, timegrid.Date{}, false
	}

	from, err := timegrid.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "Invalid from date")
		return 0, timegrid.Date{}, timegrid.Date{}, false
	}
	to, err := timegrid.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "Invalid to date")
		return 0, timegrid.Date{}, timegrid.Date{}, false
	}
	if to.Time.Before(from.Time) {
		response.BadRequest(w, "to must not precede from")
		return 0, timegrid.Date{}, timegrid.Date{}, false
	}

	return staffID, from, to, true
}
