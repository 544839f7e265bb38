package ban

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Tracker persists ban records from moderation escalation signals and
// answers derived ban-status queries. The escalation policy itself
// (which violations ban whom, and for how long) lives upstream in the
// classifier; the tracker only enforces what it is told.
type Tracker struct {
	repo Repository
	now  func() time.Time
}

// NewTracker creates ban tracker
func NewTracker(repo Repository) *Tracker {
	return &Tracker{
		repo: repo,
		now:  time.Now,
	}
}

// Apply materializes a ban from an escalation signal. durationDays nil
// means permanent; otherwise the ban lapses durationDays from now.
func (t *Tracker) Apply(ctx context.Context, userID uuid.UUID, durationDays *int) error {
	now := t.now()

	b := &Ban{
		ID:        uuid.New(),
		UserID:    userID,
		BanType:   TypePermanent,
		IsActive:  true,
		CreatedAt: now,
	}

	if durationDays != nil {
		b.BanType = TypeShadow
		b.ExpiresAt = sql.NullTime{
			Time:  now.AddDate(0, 0, *durationDays),
			Valid: true,
		}
	}

	if err := t.repo.Create(ctx, b); err != nil {
		return err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("ban_type", string(b.BanType)).
		Interface("expires_at", b.ExpiresAt).
		Msg("Ban applied")

	return nil
}

// Status returns the user's derived ban status, recomputed on every
// call from the effective-ban predicate.
func (t *Tracker) Status(ctx context.Context, userID uuid.UUID) (*Status, error) {
	b, err := t.repo.GetEffectiveByUser(ctx, userID, t.now())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return &Status{IsBanned: false}, nil
	}

	status := &Status{
		IsBanned: true,
		BanType:  b.BanType,
	}
	if b.ExpiresAt.Valid {
		expires := b.ExpiresAt.Time
		status.ExpiresAt = &expires
	}
	return status, nil
}

// History returns all ban records for a user, newest first
func (t *Tracker) History(ctx context.Context, userID uuid.UUID) ([]*Ban, error) {
	return t.repo.ListByUser(ctx, userID)
}
