package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glowdesk/glowdesk-api/internal/middleware"
)

// Routes registers catalog routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/categories", h.ListCategories)
	r.Get("/services", h.ListServices)
	r.Get("/extra-services", h.ListExtraServices)

	// Catalog mutation is a manager concern
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireManager())

		r.Post("/categories", h.CreateCategory)
		r.Put("/categories/{id}", h.UpdateCategory)
		r.Delete("/categories/{id}", h.DeleteCategory)

		r.Post("/services", h.CreateService)
		r.Put("/services/{id}", h.UpdateService)
		r.Delete("/services/{id}", h.DeleteService)

		r.Post("/extra-services", h.CreateExtraService)
		r.Put("/extra-services/{id}", h.UpdateExtraService)
		r.Delete("/extra-services/{id}", h.DeleteExtraService)
	})

	return r
}
