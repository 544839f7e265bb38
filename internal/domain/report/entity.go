package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ContentType represents what kind of thing a report targets
type ContentType string

const (
	ContentTypePost    ContentType = "post"
	ContentTypeComment ContentType = "comment"
	ContentTypeUser    ContentType = "user"
)

// IsValid reports whether the content type is one of the reportable kinds
func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypePost, ContentTypeComment, ContentTypeUser:
		return true
	}
	return false
}

// Status represents the review state of a report. pending is initial;
// reviewed and dismissed are terminal. There is no reopening.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusDismissed Status = "dismissed"
)

// Report represents an abuse report. Rows are immutable once created
// except for the status transition.
type Report struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	ReporterID  uuid.UUID    `db:"reporter_id" json:"reporter_id"`
	ContentType ContentType  `db:"content_type" json:"content_type"`
	ContentID   uuid.UUID    `db:"content_id" json:"content_id"`
	Reason      string       `db:"reason" json:"reason"`
	Status      Status       `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	ReviewedAt  sql.NullTime `db:"reviewed_at" json:"reviewed_at,omitempty"`
}
