package privacy

import (
	"net/http"

	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/response"
	"github.com/campuslink/campuslink-api/internal/pkg/validator"
)

// Handler handles privacy settings HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates privacy handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetSettings returns the caller's privacy settings
// GET /privacy
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	settings, err := h.repo.GetByUserID(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, settings)
}

// UpdateSettings replaces the caller's privacy settings
// PUT /privacy
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateSettingsRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	settings := &Settings{
		UserID:            userID,
		ProfileVisibility: ProfileVisibility(req.ProfileVisibility),
		WhoCanReact:       EngagementAudience(req.WhoCanReact),
		WhoCanComment:     EngagementAudience(req.WhoCanComment),
	}

	if err := h.repo.Upsert(r.Context(), settings); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, settings)
}
