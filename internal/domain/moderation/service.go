package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/domain/ban"
	"github.com/campuslink/campuslink-api/internal/pkg/classifier"
)

const defaultClassifyTimeout = 10 * time.Second

// Classifier is the injected content analysis capability. Its
// escalation policy (which violation patterns produce which ban
// signals) is external and opaque to this engine.
type Classifier interface {
	Submit(ctx context.Context, req classifier.SubmitRequest) (*classifier.Outcome, error)
}

// Service is the moderation decision engine
type Service struct {
	classifier Classifier
	banRepo    ban.Repository
	timeout    time.Duration
	now        func() time.Time
}

// NewService creates moderation service
func NewService(cls Classifier, banRepo ban.Repository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}
	return &Service{
		classifier: cls,
		banRepo:    banRepo,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Moderate classifies content and always resolves to a definite
// Result. Upstream failure of any kind (transport, timeout, service
// error, malformed outcome) degrades to the safe default rather than
// failing the submission; Moderate never returns an error.
func (s *Service) Moderate(ctx context.Context, body string, kind ContentKind, contentID, userID uuid.UUID) *Result {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outcome, err := s.classifier.Submit(cctx, classifier.SubmitRequest{
		Content:     body,
		ContentType: string(kind),
		ContentID:   contentID.String(),
		UserID:      userID.String(),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("content_id", contentID.String()).
			Str("content_type", string(kind)).
			Str("user_id", userID.String()).
			Msg("Classifier unavailable, falling back to manual review")
		return SafeDefault(contentID)
	}

	result := &Result{
		ContentID:  contentID,
		Approved:   outcome.Approved,
		Flagged:    outcome.Flagged,
		Action:     Action(outcome.Action),
		Violations: outcome.Violations,
	}
	if result.Violations == nil {
		result.Violations = []string{}
	}
	if outcome.ShouldBanUser != nil {
		result.ShouldBanUser = *outcome.ShouldBanUser
		result.BanDuration = outcome.BanDuration
	}

	switch result.Action {
	case ActionApproved, ActionRemoved, ActionManualReview:
	default:
		// An indefinite action is as bad as no answer at all.
		log.Warn().
			Str("content_id", contentID.String()).
			Str("action", string(result.Action)).
			Msg("Classifier returned unknown action, falling back to manual review")
		return SafeDefault(contentID)
	}

	// Removed content is always flagged, whatever the classifier said.
	if result.Action == ActionRemoved {
		result.Flagged = true
	}

	return result
}

// CheckUserBanStatus returns the user's derived ban status: the most
// recent active, unexpired ban record, recomputed on every call.
func (s *Service) CheckUserBanStatus(ctx context.Context, userID uuid.UUID) (*ban.Status, error) {
	b, err := s.banRepo.GetEffectiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return &ban.Status{IsBanned: false}, nil
	}

	status := &ban.Status{
		IsBanned: true,
		BanType:  b.BanType,
	}
	if b.ExpiresAt.Valid {
		expires := b.ExpiresAt.Time
		status.ExpiresAt = &expires
	}
	return status, nil
}
