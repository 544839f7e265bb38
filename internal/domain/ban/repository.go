package ban

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines ban data access interface
type Repository interface {
	Create(ctx context.Context, ban *Ban) error
	// GetEffectiveByUser returns the most recent ban in force for the
	// user at `now`, or nil when none is. The effective predicate
	// (is_active AND unexpired) is evaluated in the query on every
	// call; nothing sweeps stale rows.
	GetEffectiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*Ban, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Ban, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new ban repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ban *Ban) error {
	query := `
		INSERT INTO bans (id, user_id, ban_type, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		ban.ID,
		ban.UserID,
		ban.BanType,
		ban.ExpiresAt,
		ban.IsActive,
		ban.CreatedAt,
	)
	return err
}

func (r *repository) GetEffectiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*Ban, error) {
	query := `
		SELECT id, user_id, ban_type, expires_at, is_active, created_at
		FROM bans
		WHERE user_id = $1
		  AND is_active = true
		  AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY created_at DESC
		LIMIT 1
	`

	var b Ban
	err := r.db.GetContext(ctx, &b, query, userID, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Ban, error) {
	query := `
		SELECT id, user_id, ban_type, expires_at, is_active, created_at
		FROM bans
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	var bans []*Ban
	err := r.db.SelectContext(ctx, &bans, query, userID)
	return bans, err
}
