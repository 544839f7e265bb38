package content

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// Repository defines content data access interface
type Repository interface {
	// Create inserts a content row with its resolved flagged state;
	// moderation settles before the row exists, so there is no
	// post-insert flag update.
	Create(ctx context.Context, c *Content) error
	GetByID(ctx context.Context, id uuid.UUID) (*Content, error)
	// ListPosts returns a window of post candidates, newest first.
	// Visibility filtering happens above this layer.
	ListPosts(ctx context.Context, limit, offset int) ([]*Content, error)
	ListCommentsByParent(ctx context.Context, parentID uuid.UUID) ([]*Content, error)

	// CreateReaction inserts a reaction; a duplicate (content, user)
	// pair is absorbed as success via the unique constraint.
	CreateReaction(ctx context.Context, reaction *Reaction) error
	// DeleteReaction removes a reaction; absence is not an error.
	DeleteReaction(ctx context.Context, contentID, userID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new content repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO content (id, owner_id, kind, parent_id, body, flagged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.OwnerID,
		c.Kind,
		c.ParentID,
		c.Body,
		c.Flagged,
		c.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	query := `
		SELECT id, owner_id, kind, parent_id, body, flagged, created_at
		FROM content WHERE id = $1
	`

	var c Content
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListPosts(ctx context.Context, limit, offset int) ([]*Content, error) {
	query := `
		SELECT id, owner_id, kind, parent_id, body, flagged, created_at
		FROM content
		WHERE kind = 'post'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var posts []*Content
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	return posts, err
}

func (r *repository) ListCommentsByParent(ctx context.Context, parentID uuid.UUID) ([]*Content, error) {
	query := `
		SELECT id, owner_id, kind, parent_id, body, flagged, created_at
		FROM content
		WHERE kind = 'comment' AND parent_id = $1
		ORDER BY created_at ASC
	`
	var comments []*Content
	err := r.db.SelectContext(ctx, &comments, query, parentID)
	return comments, err
}

func (r *repository) CreateReaction(ctx context.Context, reaction *Reaction) error {
	query := `
		INSERT INTO reactions (id, content_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		reaction.ID,
		reaction.ContentID,
		reaction.UserID,
		reaction.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == sqlStateUniqueViolation {
		// Already reacted; same translation as duplicate blocks.
		return nil
	}
	return err
}

func (r *repository) DeleteReaction(ctx context.Context, contentID, userID uuid.UUID) error {
	query := `DELETE FROM reactions WHERE content_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, contentID, userID)
	return err
}
