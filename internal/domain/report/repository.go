package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// Repository defines report data access interface
type Repository interface {
	// Create inserts a report. A duplicate (reporter, content_type,
	// content_id) triple surfaces as ErrAlreadyReported, derived from
	// the store's unique-constraint code rather than message matching.
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error)
	List(ctx context.Context, filter *ListReportsFilter) ([]*Report, error)
	Count(ctx context.Context, filter *ListReportsFilter) (int, error)
	// UpdateStatus transitions a pending report to a terminal status.
	// Transitions are one-way: a non-pending report yields
	// ErrAlreadyResolved, an absent one ErrReportNotFound.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, content_type, content_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ReporterID,
		report.ContentType,
		report.ContentID,
		report.Reason,
		report.Status,
		report.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == sqlStateUniqueViolation {
			return fmt.Errorf("%w: %w", ErrAlreadyReported, err)
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `
		SELECT id, reporter_id, content_type, content_id, reason, status, created_at, reviewed_at
		FROM reports WHERE id = $1
	`

	var rep Report
	err := r.db.GetContext(ctx, &rep, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

func (r *repository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	query := `
		SELECT id, reporter_id, content_type, content_id, reason, status, created_at, reviewed_at
		FROM reports
		WHERE reporter_id = $1
		ORDER BY created_at DESC
	`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, reporterID)
	return reports, err
}

func (r *repository) List(ctx context.Context, filter *ListReportsFilter) ([]*Report, error) {
	query := `
		SELECT id, reporter_id, content_type, content_id, reason, status, created_at, reviewed_at
		FROM reports
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		args = append(args, filter.Offset)
	}

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *repository) Count(ctx context.Context, filter *ListReportsFilter) (int, error) {
	query := `SELECT COUNT(*) FROM reports WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += ` AND status = $1`
		args = append(args, filter.Status)
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `
		UPDATE reports
		SET status = $2, reviewed_at = $3
		WHERE id = $1 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, id, status, sql.NullTime{Time: time.Now(), Valid: true})
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrReportNotFound
		}
		return ErrAlreadyResolved
	}

	return nil
}
