package content

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the kind of a content row
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Content represents a post or comment. Flagged content is hidden from
// every viewer except its owner pending review.
type Content struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	OwnerID   uuid.UUID     `db:"owner_id" json:"owner_id"`
	Kind      Kind          `db:"kind" json:"kind"`
	ParentID  uuid.NullUUID `db:"parent_id" json:"parent_id,omitempty"`
	Body      string        `db:"body" json:"body"`
	Flagged   bool          `db:"flagged" json:"flagged"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// Reaction represents a user's reaction to a piece of content.
// The pair (content_id, user_id) is unique at the store level.
type Reaction struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ContentID uuid.UUID `db:"content_id" json:"content_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
