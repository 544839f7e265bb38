package block

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns block graph routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/", h.Block)
	r.Delete("/{userID}", h.Unblock)
	r.Get("/", h.List)

	return r
}
