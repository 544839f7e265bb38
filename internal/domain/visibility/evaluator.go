package visibility

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/domain/privacy"
	"github.com/campuslink/campuslink-api/internal/domain/user"
)

// EngagementKind selects which privacy setting gates an engagement
type EngagementKind string

const (
	EngagementReact   EngagementKind = "react"
	EngagementComment EngagementKind = "comment"
)

// BlockChecker reports block edges between two users
type BlockChecker interface {
	ExistsEither(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// SettingsSource resolves a user's privacy settings
type SettingsSource interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*privacy.Settings, error)
}

// Evaluator decides per (viewer, content) whether content is readable
// and per (viewer, owner) whether engagement is allowed. It holds no
// state of its own and performs no writes.
type Evaluator struct {
	blocks   BlockChecker
	settings SettingsSource
}

// NewEvaluator creates visibility evaluator
func NewEvaluator(blocks BlockChecker, settings SettingsSource) *Evaluator {
	return &Evaluator{
		blocks:   blocks,
		settings: settings,
	}
}

// IsVisible evaluates the visibility predicate for content owned by
// owner, as seen by viewer. Predicates are checked in a fixed order and
// the first match wins:
//
//  1. viewer is the owner: visible
//  2. content is flagged: not visible
//  3. block edge in either direction: not visible
//  4. owner's profile_visibility is nobody: not visible
//  5. owner's profile_visibility is university and affiliations differ: not visible
//  6. otherwise: visible
//
// Any data-fetch failure fails closed: content is never leaked on error.
func (e *Evaluator) IsVisible(ctx context.Context, viewer, owner *user.User, flagged bool) bool {
	if viewer == nil || owner == nil {
		return false
	}

	if viewer.ID == owner.ID {
		return true
	}

	// Flagged content is hidden from everyone but its owner, regardless
	// of privacy settings.
	if flagged {
		return false
	}

	blocked, err := e.blocks.ExistsEither(ctx, viewer.ID, owner.ID)
	if err != nil || blocked {
		return false
	}

	settings, err := e.settings.GetByUserID(ctx, owner.ID)
	if err != nil || settings == nil {
		return false
	}

	switch settings.ProfileVisibility {
	case privacy.VisibilityNobody:
		return false
	case privacy.VisibilityUniversity:
		return viewer.SameUniversity(owner)
	}

	return true
}

// CanEngage reports whether viewer may react to or comment on content
// owned by owner. Blocks override everything; otherwise the relevant
// audience setting applies. Fails closed on data-fetch errors.
func (e *Evaluator) CanEngage(ctx context.Context, viewer, owner *user.User, kind EngagementKind) bool {
	if viewer == nil || owner == nil {
		return false
	}

	if viewer.ID == owner.ID {
		return true
	}

	blocked, err := e.blocks.ExistsEither(ctx, viewer.ID, owner.ID)
	if err != nil || blocked {
		return false
	}

	settings, err := e.settings.GetByUserID(ctx, owner.ID)
	if err != nil || settings == nil {
		return false
	}

	audience := settings.WhoCanComment
	if kind == EngagementReact {
		audience = settings.WhoCanReact
	}

	if audience == privacy.AudienceEveryone {
		return true
	}
	return viewer.SameUniversity(owner)
}
