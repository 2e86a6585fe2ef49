package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glowdesk/glowdesk-api/internal/middleware"
)

// Routes registers booking settings routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Get)

	// Only managers change the opening-hours policy
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireManager())
		r.Put("/", h.Update)
	})

	return r
}
