package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns user-facing report routes
func (h *Handler) Routes(authMiddleware, rateLimitMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.With(rateLimitMiddleware).Post("/", h.Create)
	r.Get("/mine", h.ListMine)

	return r
}

// AdminRoutes returns admin-only report routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Get("/", h.List)
	r.Post("/{id}/review", h.Review)

	return r
}
