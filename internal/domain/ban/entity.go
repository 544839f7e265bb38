package ban

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of ban applied to a user
type Type string

const (
	TypeShadow    Type = "shadow_ban"
	TypePermanent Type = "permanent_ban"
)

// Ban represents a time-bounded ban record. Records are never swept or
// updated when they lapse; expiry is a read-time computation.
type Ban struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	UserID    uuid.UUID    `db:"user_id" json:"user_id"`
	BanType   Type         `db:"ban_type" json:"ban_type"`
	ExpiresAt sql.NullTime `db:"expires_at" json:"expires_at,omitempty"`
	IsActive  bool         `db:"is_active" json:"is_active"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// EffectiveAt reports whether the ban is in force at the given instant.
// is_active alone is not sufficient: a record with a past expires_at is
// stale, not effective.
func (b *Ban) EffectiveAt(now time.Time) bool {
	if b == nil || !b.IsActive {
		return false
	}
	return !b.ExpiresAt.Valid || b.ExpiresAt.Time.After(now)
}

// Status represents the derived ban state for a user
type Status struct {
	IsBanned  bool       `json:"is_banned"`
	BanType   Type       `json:"ban_type,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
