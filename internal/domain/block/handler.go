package block

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/response"
	"github.com/campuslink/campuslink-api/internal/pkg/validator"
)

// Handler handles block graph HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates block handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Block blocks a user
// POST /blocks
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req BlockUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Block(r.Context(), userID, req.UserID); err != nil {
		switch {
		case errors.Is(err, ErrCannotBlockSelf):
			response.Forbidden(w, "Cannot block yourself")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "User blocked"})
}

// Unblock unblocks a user
// DELETE /blocks/{userID}
func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.Unblock(r.Context(), userID, targetID); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "User unblocked"})
}

// List lists blocked users
// GET /blocks
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	blocked, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, blocked)
}
