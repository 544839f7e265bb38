package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/domain/ban"
	"github.com/campuslink/campuslink-api/internal/domain/moderation"
	"github.com/campuslink/campuslink-api/internal/domain/user"
	"github.com/campuslink/campuslink-api/internal/domain/visibility"
)

// feedScanBatch is the candidate window size used when filtering the
// feed through the visibility evaluator.
const feedScanBatch = 100

// Service handles content business logic
type Service struct {
	repo      Repository
	userRepo  user.Repository
	evaluator *visibility.Evaluator
	moderator *moderation.Service
	tracker   *ban.Tracker
}

// NewService creates content service
func NewService(repo Repository, userRepo user.Repository, evaluator *visibility.Evaluator, moderator *moderation.Service, tracker *ban.Tracker) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		evaluator: evaluator,
		moderator: moderator,
		tracker:   tracker,
	}
}

// CreatePost creates a post, moderating it synchronously before it is
// considered readable. Banned users cannot submit.
func (s *Service) CreatePost(ctx context.Context, ownerID uuid.UUID, body string) (*ContentResponse, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	return s.create(ctx, owner, KindPost, uuid.NullUUID{}, body)
}

// CreateComment creates a comment on a post. The parent must be
// visible to the commenter and the owner's engagement policy must
// allow comments from them.
func (s *Service) CreateComment(ctx context.Context, viewerID, parentID uuid.UUID, body string) (*ContentResponse, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrUserNotFound
	}

	parent, parentOwner, err := s.visibleContent(ctx, viewer, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Kind != KindPost {
		return nil, ErrContentNotFound
	}

	if !s.evaluator.CanEngage(ctx, viewer, parentOwner, visibility.EngagementComment) {
		return nil, ErrEngagementNotAllowed
	}

	return s.create(ctx, viewer, KindComment, uuid.NullUUID{UUID: parentID, Valid: true}, body)
}

// create runs the shared submission pipeline: ban gate, synchronous
// moderation, then a single insert carrying the resolved flagged state.
func (s *Service) create(ctx context.Context, owner *user.User, kind Kind, parentID uuid.NullUUID, body string) (*ContentResponse, error) {
	status, err := s.moderator.CheckUserBanStatus(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if status.IsBanned {
		return nil, ErrUserBanned
	}

	contentID := uuid.New()

	// Moderated exactly once, synchronously, before the row exists:
	// content is never queryable while a decision is pending. Moderate
	// never fails; a classifier outage resolves to manual review and
	// the content lands unflagged.
	result := s.moderator.Moderate(ctx, body, moderation.ContentKind(kind), contentID, owner.ID)

	c := &Content{
		ID:        contentID,
		OwnerID:   owner.ID,
		Kind:      kind,
		ParentID:  parentID,
		Body:      body,
		Flagged:   result.Flagged,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if result.ShouldBanUser {
		if err := s.tracker.Apply(ctx, owner.ID, result.BanDuration); err != nil {
			// The content decision stands; log and surface the store
			// failure so the caller knows enforcement is incomplete.
			log.Error().
				Err(err).
				Str("user_id", owner.ID.String()).
				Str("content_id", c.ID.String()).
				Msg("Failed to persist ban escalation")
			return nil, err
		}
	}

	resp := toResponse(c, owner)
	resp.ModerationAction = string(result.Action)
	return resp, nil
}

// GetPost returns a single post if it is visible to the viewer.
// Filtered-out content is indistinguishable from absent content.
func (s *Service) GetPost(ctx context.Context, viewerID, id uuid.UUID) (*ContentResponse, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrUserNotFound
	}

	c, owner, err := s.visibleContent(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	return toResponse(c, owner), nil
}

// ListFeed returns a page of posts visible to the viewer. Candidates
// are filtered through the visibility evaluator before counting, so
// total and has_next reflect post-filter results only.
func (s *Service) ListFeed(ctx context.Context, viewerID uuid.UUID, page, limit int) ([]*ContentResponse, int, bool, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, 0, false, err
	}
	if viewer == nil {
		return nil, 0, false, ErrUserNotFound
	}

	owners := map[uuid.UUID]*user.User{viewer.ID: viewer}
	var visible []*ContentResponse

	for offset := 0; ; offset += feedScanBatch {
		batch, err := s.repo.ListPosts(ctx, feedScanBatch, offset)
		if err != nil {
			return nil, 0, false, err
		}

		for _, c := range batch {
			owner, err := s.resolveOwner(ctx, owners, c.OwnerID)
			if err != nil {
				return nil, 0, false, err
			}
			if s.evaluator.IsVisible(ctx, viewer, owner, c.Flagged) {
				visible = append(visible, toResponse(c, owner))
			}
		}

		if len(batch) < feedScanBatch {
			break
		}
	}

	total := len(visible)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return visible[start:end], total, end < total, nil
}

// ListComments returns the comments on a post that are visible to the
// viewer. The parent itself must be visible.
func (s *Service) ListComments(ctx context.Context, viewerID, parentID uuid.UUID) ([]*ContentResponse, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, ErrUserNotFound
	}

	if _, _, err := s.visibleContent(ctx, viewer, parentID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListCommentsByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	owners := map[uuid.UUID]*user.User{viewer.ID: viewer}
	result := make([]*ContentResponse, 0, len(comments))
	for _, c := range comments {
		owner, err := s.resolveOwner(ctx, owners, c.OwnerID)
		if err != nil {
			return nil, err
		}
		if s.evaluator.IsVisible(ctx, viewer, owner, c.Flagged) {
			result = append(result, toResponse(c, owner))
		}
	}

	return result, nil
}

// React records a reaction on visible content, subject to the owner's
// engagement policy. Reacting twice is success with a single row.
func (s *Service) React(ctx context.Context, viewerID, contentID uuid.UUID) error {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return err
	}
	if viewer == nil {
		return ErrUserNotFound
	}

	_, owner, err := s.visibleContent(ctx, viewer, contentID)
	if err != nil {
		return err
	}

	if !s.evaluator.CanEngage(ctx, viewer, owner, visibility.EngagementReact) {
		return ErrEngagementNotAllowed
	}

	return s.repo.CreateReaction(ctx, &Reaction{
		ID:        uuid.New(),
		ContentID: contentID,
		UserID:    viewerID,
		CreatedAt: time.Now(),
	})
}

// Unreact removes a reaction; removing a reaction that does not exist
// succeeds without effect.
func (s *Service) Unreact(ctx context.Context, viewerID, contentID uuid.UUID) error {
	return s.repo.DeleteReaction(ctx, contentID, viewerID)
}

// visibleContent fetches content and its owner, returning
// ErrContentNotFound both when the row is absent and when the
// visibility predicate hides it from the viewer.
func (s *Service) visibleContent(ctx context.Context, viewer *user.User, id uuid.UUID) (*Content, *user.User, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, ErrContentNotFound
	}

	owner, err := s.userRepo.GetByID(ctx, c.OwnerID)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, ErrContentNotFound
	}

	if !s.evaluator.IsVisible(ctx, viewer, owner, c.Flagged) {
		return nil, nil, ErrContentNotFound
	}

	return c, owner, nil
}

func (s *Service) resolveOwner(ctx context.Context, cache map[uuid.UUID]*user.User, id uuid.UUID) (*user.User, error) {
	if owner, ok := cache[id]; ok {
		return owner, nil
	}
	owner, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = owner
	return owner, nil
}

func toResponse(c *Content, owner *user.User) *ContentResponse {
	resp := &ContentResponse{
		ID:        c.ID,
		Kind:      c.Kind,
		Body:      c.Body,
		Flagged:   c.Flagged,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
	}
	if owner != nil {
		resp.OwnerUsername = owner.Username
	}
	if c.ParentID.Valid {
		parentID := c.ParentID.UUID
		resp.ParentID = &parentID
	}
	return resp
}
