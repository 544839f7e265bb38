package privacy

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns privacy settings routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.GetSettings)
	r.Put("/", h.UpdateSettings)

	return r
}
