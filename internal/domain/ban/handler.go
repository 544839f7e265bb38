package ban

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/response"
)

// Handler handles ban HTTP requests
type Handler struct {
	tracker *Tracker
}

// NewHandler creates ban handler
func NewHandler(tracker *Tracker) *Handler {
	return &Handler{tracker: tracker}
}

// Status returns the caller's derived ban status
// GET /bans/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.tracker.Status(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, status)
}

// History returns all ban records for a user (admin only)
// GET /admin/bans/{userID}
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	bans, err := h.tracker.History(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, bans)
}

// Routes returns user-facing ban routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/status", h.Status)

	return r
}

// AdminRoutes returns admin-only ban routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Get("/{userID}", h.History)

	return r
}
