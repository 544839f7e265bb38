package block

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/domain/user"
)

// Service handles block graph business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
}

// NewService creates block service
func NewService(repo Repository, userRepo user.Repository) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Block creates a block edge from blocker to target. Blocking a user
// who is already blocked succeeds without effect.
func (s *Service) Block(ctx context.Context, blockerID, targetID uuid.UUID) error {
	if blockerID == targetID {
		return ErrCannotBlockSelf
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	edge := &Edge{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: targetID,
		CreatedAt: time.Now(),
	}

	return s.repo.CreateEdge(ctx, edge)
}

// Unblock removes a block edge. Unblocking a user who was never
// blocked succeeds without effect.
func (s *Service) Unblock(ctx context.Context, blockerID, targetID uuid.UUID) error {
	return s.repo.DeleteEdge(ctx, blockerID, targetID)
}

// List returns users blocked by blockerID, newest first
func (s *Service) List(ctx context.Context, blockerID uuid.UUID) ([]*BlockedUserResponse, error) {
	return s.repo.ListByBlocker(ctx, blockerID)
}

// IsBlockedEither reports whether either user has blocked the other
func (s *Service) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.repo.ExistsEither(ctx, a, b)
}
