package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns content routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/", h.CreatePost)
	r.Get("/", h.ListFeed)
	r.Get("/{id}", h.GetPost)

	r.Post("/{id}/comments", h.CreateComment)
	r.Get("/{id}/comments", h.ListComments)

	r.Post("/{id}/reactions", h.React)
	r.Delete("/{id}/reactions", h.Unreact)

	return r
}
