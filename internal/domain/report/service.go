package report

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/domain/content"
	"github.com/campuslink/campuslink-api/internal/domain/user"
)

const maxReasonLength = 500

// ContentSource resolves reported content rows
type ContentSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*content.Content, error)
}

// UserSource resolves reported users
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Service handles report intake business logic
type Service struct {
	repo     Repository
	contents ContentSource
	users    UserSource
}

// NewService creates report service
func NewService(repo Repository, contents ContentSource, users UserSource) *Service {
	return &Service{
		repo:     repo,
		contents: contents,
		users:    users,
	}
}

// Create validates and records an abuse report. Checks run in a fixed
// order so callers get the most specific failure: content type, content
// id, reason, target existence, self-report, then the uniqueness
// constraint on insert.
func (s *Service) Create(ctx context.Context, reporterID uuid.UUID, req *CreateReportRequest) (*Report, error) {
	contentType := ContentType(req.ContentType)
	if !contentType.IsValid() {
		return nil, ErrInvalidContentType
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil || contentID == uuid.Nil {
		return nil, ErrInvalidContentID
	}

	// Bounds are in characters, not bytes; multibyte reasons count by
	// rune.
	reason := strings.TrimSpace(req.Reason)
	if n := utf8.RuneCountInString(reason); n < 1 || n > maxReasonLength {
		return nil, ErrInvalidReason
	}

	ownerID, err := s.resolveOwner(ctx, contentType, contentID)
	if err != nil {
		return nil, err
	}

	// Self-reporting is a policy violation, distinct from generic
	// validation failure.
	if ownerID == reporterID {
		return nil, ErrCannotReportOwn
	}

	report := &Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ContentType: contentType,
		ContentID:   contentID,
		Reason:      reason,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// resolveOwner finds who owns the reported target: the content's owner
// for posts and comments, the user themselves for user reports.
func (s *Service) resolveOwner(ctx context.Context, contentType ContentType, contentID uuid.UUID) (uuid.UUID, error) {
	switch contentType {
	case ContentTypeUser:
		u, err := s.users.GetByID(ctx, contentID)
		if err != nil {
			return uuid.Nil, err
		}
		if u == nil {
			return uuid.Nil, ErrContentNotFound
		}
		return u.ID, nil

	default:
		c, err := s.contents.GetByID(ctx, contentID)
		if err != nil {
			return uuid.Nil, err
		}
		if c == nil || string(c.Kind) != string(contentType) {
			return uuid.Nil, ErrContentNotFound
		}
		return c.OwnerID, nil
	}
}

// ListMine returns reports created by the user, newest first
func (s *Service) ListMine(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	return s.repo.ListByReporter(ctx, reporterID)
}

// List returns reports for the admin review queue
func (s *Service) List(ctx context.Context, filter *ListReportsFilter) ([]*Report, int, error) {
	reports, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Review transitions a pending report to a terminal state. reviewed
// and dismissed are terminal; there is no reopening.
func (s *Service) Review(ctx context.Context, reportID uuid.UUID, action string) error {
	var status Status
	switch action {
	case "reviewed":
		status = StatusReviewed
	case "dismissed":
		status = StatusDismissed
	default:
		return ErrInvalidAction
	}

	return s.repo.UpdateStatus(ctx, reportID, status)
}
