package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/response"
	"github.com/campuslink/campuslink-api/internal/pkg/validator"
)

const (
	defaultQueueLimit = 50
	maxQueueLimit     = 100
)

// Handler handles report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create creates an abuse report
// POST /reports
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidContentType):
			response.BadRequest(w, "Invalid content type. Must be: post, comment, or user")
		case errors.Is(err, ErrInvalidContentID):
			response.BadRequest(w, "Invalid content ID")
		case errors.Is(err, ErrInvalidReason):
			response.BadRequest(w, "Reason must be between 1 and 500 characters")
		case errors.Is(err, ErrContentNotFound):
			response.NotFound(w, "Reported content not found")
		case errors.Is(err, ErrCannotReportOwn):
			response.Forbidden(w, "Cannot report your own content")
		case errors.Is(err, ErrAlreadyReported):
			response.Conflict(w, "You have already reported this content")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, report)
}

// ListMine lists reports created by the caller
// GET /reports/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reports, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// List lists reports in the review queue (admin only)
// GET /admin/reports?status=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := &ListReportsFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = Status(status)
	}

	reports, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, reports, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: page*limit < total,
	})
}

// Review resolves a pending report (admin only)
// POST /admin/reports/{id}/review
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ReviewReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Review(r.Context(), reportID, req.Action); err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		case errors.Is(err, ErrAlreadyResolved):
			response.Conflict(w, "Report already resolved")
		case errors.Is(err, ErrInvalidAction):
			response.BadRequest(w, "Invalid action")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Report resolved"})
}

func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultQueueLimit

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
		if limit > maxQueueLimit {
			limit = maxQueueLimit
		}
	}

	return page, limit
}
