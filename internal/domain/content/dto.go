package content

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest represents request to create a post
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

// CreateCommentRequest represents request to comment on a post
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// ContentResponse represents a post or comment with denormalized owner
// attributes
type ContentResponse struct {
	ID            uuid.UUID  `json:"id"`
	Kind          Kind       `json:"kind"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
	Body          string     `json:"body"`
	Flagged       bool       `json:"flagged"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	OwnerUsername string     `json:"owner_username"`
	CreatedAt     time.Time  `json:"created_at"`

	// ModerationAction reflects the decision applied at creation time;
	// only populated on the create response.
	ModerationAction string `json:"moderation_action,omitempty"`
}
