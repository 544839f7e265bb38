package block

import (
	"time"

	"github.com/google/uuid"
)

// BlockUserRequest represents request to block a user
type BlockUserRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// BlockedUserResponse represents a blocked user with display attributes
// resolved at read time
type BlockedUserResponse struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name,omitempty"`
	University  string    `db:"university" json:"university"`
	BlockedAt   time.Time `db:"blocked_at" json:"blocked_at"`
}
