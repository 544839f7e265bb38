package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents a member account (matches users table)
type User struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Username    string         `db:"username" json:"username"`
	DisplayName sql.NullString `db:"display_name" json:"display_name,omitempty"`
	University  string         `db:"university" json:"university"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// SameUniversity returns true if both users share a university affiliation
func (u *User) SameUniversity(other *User) bool {
	return other != nil && u.University == other.University
}
