package moderation

import "github.com/google/uuid"

// Action represents the definite action a moderation pass resolved to
type Action string

const (
	ActionApproved     Action = "approved"
	ActionRemoved      Action = "removed"
	ActionManualReview Action = "manual_review"
)

// ContentKind represents the kind of content being moderated
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

// Result represents the resolved moderation decision for a piece of
// content. Every submission gets exactly one Result; there is no
// pending state.
type Result struct {
	ContentID     uuid.UUID `json:"content_id"`
	Approved      bool      `json:"approved"`
	Flagged       bool      `json:"flagged"`
	Action        Action    `json:"action"`
	Violations    []string  `json:"violations"`
	ShouldBanUser bool      `json:"should_ban_user,omitempty"`
	BanDuration   *int      `json:"ban_duration,omitempty"` // days; nil with ShouldBanUser means permanent
}

// SafeDefault returns the deterministic result applied when the
// classifier is unreachable or returns garbage: not approved (so the
// content is not silently published as clean), not flagged (so it is
// not silently censored), routed to manual review.
func SafeDefault(contentID uuid.UUID) *Result {
	return &Result{
		ContentID:  contentID,
		Approved:   false,
		Flagged:    false,
		Action:     ActionManualReview,
		Violations: []string{},
	}
}
