package content

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
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Handler handles content HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates content handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePost creates a post
// POST /posts
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreatePostRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, req.Body)
	if err != nil {
		h.writeCreateError(w, err)
		return
	}

	response.Created(w, post)
}

// ListFeed lists posts visible to the caller
// GET /posts?page=&limit=
func (h *Handler) ListFeed(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, limit := parsePagination(r)

	posts, total, hasNext, err := h.service.ListFeed(r.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Unauthorized(w, "Unknown user")
			return
		}
		response.InternalError(w)
		return
	}

	response.WithMeta(w, posts, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: hasNext,
	})
}

// GetPost returns a single post
// GET /posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.service.GetPost(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			response.Unauthorized(w, "Unknown user")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, post)
}

// CreateComment comments on a post
// POST /posts/{id}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req CreateCommentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), userID, postID, req.Body)
	if err != nil {
		h.writeCreateError(w, err)
		return
	}

	response.Created(w, comment)
}

// ListComments lists comments on a post visible to the caller
// GET /posts/{id}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	comments, err := h.service.ListComments(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, ErrContentNotFound) {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, comments)
}

// React reacts to a post
// POST /posts/{id}/reactions
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	if err := h.service.React(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, ErrContentNotFound):
			response.NotFound(w, "Post not found")
		case errors.Is(err, ErrEngagementNotAllowed):
			response.Forbidden(w, "You cannot react to this post")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Reaction recorded"})
}

// Unreact removes a reaction from a post
// DELETE /posts/{id}/reactions
func (h *Handler) Unreact(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	if err := h.service.Unreact(r.Context(), userID, postID); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "Reaction removed"})
}

func (h *Handler) writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserBanned):
		response.Forbidden(w, "Your account is banned from posting")
	case errors.Is(err, ErrEngagementNotAllowed):
		response.Forbidden(w, "You cannot comment on this post")
	case errors.Is(err, ErrContentNotFound):
		response.NotFound(w, "Post not found")
	case errors.Is(err, ErrUserNotFound):
		response.Unauthorized(w, "Unknown user")
	default:
		response.InternalError(w)
	}
}

func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageLimit

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}

	return page, limit
}
