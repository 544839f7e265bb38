package block

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// Repository defines block graph data access interface
type Repository interface {
	// CreateEdge inserts a block edge. Inserting an edge that already
	// exists is success: the unique constraint on (blocker_id,
	// blocked_id) resolves the concurrent-duplicate race and the
	// resulting violation is absorbed here, never surfaced.
	CreateEdge(ctx context.Context, edge *Edge) error
	// DeleteEdge removes a block edge. Absence of the edge is not an
	// error.
	DeleteEdge(ctx context.Context, blockerID, blockedID uuid.UUID) error
	// ListByBlocker returns users blocked by blockerID, newest block
	// first, with display attributes joined at read time.
	ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*BlockedUserResponse, error)
	// ExistsEither reports whether a block edge exists between the two
	// users in either direction.
	ExistsEither(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new block repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateEdge(ctx context.Context, edge *Edge) error {
	query := `
		INSERT INTO block_edges (id, blocker_id, blocked_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		edge.ID,
		edge.BlockerID,
		edge.BlockedID,
		edge.CreatedAt,
	)
	if isUniqueViolation(err) {
		// Already blocked. The conflict itself is the success signal.
		return nil
	}
	return err
}

func (r *repository) DeleteEdge(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	query := `DELETE FROM block_edges WHERE blocker_id = $1 AND blocked_id = $2`
	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *repository) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*BlockedUserResponse, error) {
	query := `
		SELECT b.blocked_id AS user_id,
		       u.username,
		       COALESCE(u.display_name, '') AS display_name,
		       u.university,
		       b.created_at AS blocked_at
		FROM block_edges b
		JOIN users u ON u.id = b.blocked_id
		WHERE b.blocker_id = $1
		ORDER BY b.created_at DESC
	`
	var blocked []*BlockedUserResponse
	err := r.db.SelectContext(ctx, &blocked, query, blockerID)
	return blocked, err
}

func (r *repository) ExistsEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM block_edges
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, a, b)
	return exists, err
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == sqlStateUniqueViolation
}
