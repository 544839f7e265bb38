package block

import (
	"time"

	"github.com/google/uuid"
)

// Edge represents a directed block relationship between two users.
// The pair (blocker_id, blocked_id) is unique at the store level; that
// constraint, not application locking, is what keeps concurrent
// identical block calls from inserting duplicates.
type Edge struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BlockerID uuid.UUID `db:"blocker_id" json:"blocker_id"`
	BlockedID uuid.UUID `db:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
