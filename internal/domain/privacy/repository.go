package privacy

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines privacy settings data access interface
type Repository interface {
	// GetByUserID returns the user's settings, or DefaultSettings when
	// the user never stored any.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Settings, error)
	Upsert(ctx context.Context, settings *Settings) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new privacy settings repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Settings, error) {
	query := `
		SELECT user_id, profile_visibility, who_can_react, who_can_comment, updated_at
		FROM privacy_settings WHERE user_id = $1
	`

	var s Settings
	err := r.db.GetContext(ctx, &s, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultSettings(userID), nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, settings *Settings) error {
	settings.UpdatedAt = time.Now()

	query := `
		INSERT INTO privacy_settings (user_id, profile_visibility, who_can_react, who_can_comment, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			profile_visibility = EXCLUDED.profile_visibility,
			who_can_react = EXCLUDED.who_can_react,
			who_can_comment = EXCLUDED.who_can_comment,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		settings.UserID,
		settings.ProfileVisibility,
		settings.WhoCanReact,
		settings.WhoCanComment,
		settings.UpdatedAt,
	)
	return err
}
