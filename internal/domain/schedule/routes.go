package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers schedule routes. Every authenticated console session may
// read and mutate the calendar: front-desk staff book, cancel and move
// appointments all day.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/events", h.Events)
	r.Post("/proposals", h.Propose)

	r.Get("/bookings", h.History)
	r.Post("/bookings", h.CreateBooking)
	r.Put("/bookings/{id}", h.UpdateBooking)
	r.Patch("/bookings/{id}/cancel", h.CancelBooking)
	r.Delete("/bookings/{id}", h.DeleteEntry)

	r.Post("/breaks", h.CreateBreak)
	r.Put("/breaks/{id}", h.UpdateBreak)

	r.Get("/workdays", h.ListWorkdays)
	r.Post("/workdays", h.CreateWorkday)
	r.Put("/workdays/{id}", h.UpdateWorkday)
	r.Delete("/workdays", h.DeleteWorkday)

	return r
}
