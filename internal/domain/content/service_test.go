package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-api/internal/domain/ban"
	"github.com/campuslink/campuslink-api/internal/domain/moderation"
	"github.com/campuslink/campuslink-api/internal/domain/privacy"
	"github.com/campuslink/campuslink-api/internal/domain/user"
	"github.com/campuslink/campuslink-api/internal/domain/visibility"
	"github.com/campuslink/campuslink-api/internal/pkg/classifier"
)

type fakeRepository struct {
	rows      []*Content
	reactions map[[2]uuid.UUID]*Reaction
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reactions: map[[2]uuid.UUID]*Reaction{}}
}

func (f *fakeRepository) Create(ctx context.Context, c *Content) error {
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) ListPosts(ctx context.Context, limit, offset int) ([]*Content, error) {
	var posts []*Content
	for i := len(f.rows) - 1; i >= 0; i-- { // newest first
		if f.rows[i].Kind == KindPost {
			posts = append(posts, f.rows[i])
		}
	}
	if offset >= len(posts) {
		return nil, nil
	}
	posts = posts[offset:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeRepository) ListCommentsByParent(ctx context.Context, parentID uuid.UUID) ([]*Content, error) {
	var comments []*Content
	for _, c := range f.rows {
		if c.Kind == KindComment && c.ParentID.Valid && c.ParentID.UUID == parentID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (f *fakeRepository) CreateReaction(ctx context.Context, reaction *Reaction) error {
	key := [2]uuid.UUID{reaction.ContentID, reaction.UserID}
	if _, exists := f.reactions[key]; exists {
		return nil
	}
	f.reactions[key] = reaction
	return nil
}

func (f *fakeRepository) DeleteReaction(ctx context.Context, contentID, userID uuid.UUID) error {
	delete(f.reactions, [2]uuid.UUID{contentID, userID})
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, nil
}

type fakeBanRepo struct {
	bans []*ban.Ban
}

func (f *fakeBanRepo) Create(ctx context.Context, b *ban.Ban) error {
	f.bans = append(f.bans, b)
	return nil
}

func (f *fakeBanRepo) GetEffectiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*ban.Ban, error) {
	for i := len(f.bans) - 1; i >= 0; i-- {
		if f.bans[i].UserID == userID && f.bans[i].EffectiveAt(now) {
			return f.bans[i], nil
		}
	}
	return nil, nil
}

func (f *fakeBanRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ban.Ban, error) {
	return f.bans, nil
}

type fakeBlockChecker struct {
	pairs map[[2]uuid.UUID]bool
}

func (f *fakeBlockChecker) ExistsEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.pairs[[2]uuid.UUID{a, b}] || f.pairs[[2]uuid.UUID{b, a}], nil
}

type fakeSettingsSource struct {
	byUser map[uuid.UUID]*privacy.Settings
}

func (f *fakeSettingsSource) GetByUserID(ctx context.Context, userID uuid.UUID) (*privacy.Settings, error) {
	if s, ok := f.byUser[userID]; ok {
		return s, nil
	}
	return privacy.DefaultSettings(userID), nil
}

type fakeClassifier struct {
	outcome *classifier.Outcome
	err     error

	// When set, Submit signals started and parks until release closes,
	// simulating a slow in-flight classification.
	started chan struct{}
	release chan struct{}
}

func (f *fakeClassifier) Submit(ctx context.Context, req classifier.SubmitRequest) (*classifier.Outcome, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

type harness struct {
	svc      *Service
	repo     *fakeRepository
	users    *fakeUserRepo
	banRepo  *fakeBanRepo
	blocks   *fakeBlockChecker
	settings *fakeSettingsSource
	cls      *fakeClassifier
	author   *user.User
	viewer   *user.User
}

func approvedOutcome() *classifier.Outcome {
	return &classifier.Outcome{Approved: true, Action: "approved"}
}

func newHarness() *harness {
	author := &user.User{ID: uuid.New(), Username: "author", University: "state-u"}
	viewer := &user.User{ID: uuid.New(), Username: "viewer", University: "state-u"}

	repo := newFakeRepository()
	banRepo := &fakeBanRepo{}
	blocks := &fakeBlockChecker{pairs: map[[2]uuid.UUID]bool{}}
	settings := &fakeSettingsSource{byUser: map[uuid.UUID]*privacy.Settings{}}
	cls := &fakeClassifier{outcome: approvedOutcome()}

	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{
		author.ID: author,
		viewer.ID: viewer,
	}}

	evaluator := visibility.NewEvaluator(blocks, settings)
	moderator := moderation.NewService(cls, banRepo, time.Second)
	tracker := ban.NewTracker(banRepo)

	return &harness{
		svc:      NewService(repo, users, evaluator, moderator, tracker),
		repo:     repo,
		users:    users,
		banRepo:  banRepo,
		blocks:   blocks,
		settings: settings,
		cls:      cls,
		author:   author,
		viewer:   viewer,
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("approved post stored unflagged", func(t *testing.T) {
		h := newHarness()

		resp, err := h.svc.CreatePost(ctx, h.author.ID, "hello campus")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		if resp.Flagged {
			t.Error("approved post must not be flagged")
		}
		if resp.ModerationAction != "approved" {
			t.Errorf("moderation action = %s, want approved", resp.ModerationAction)
		}
		if len(h.repo.rows) != 1 {
			t.Fatalf("expected 1 stored row, got %d", len(h.repo.rows))
		}
	})

	t.Run("flagged decision persisted", func(t *testing.T) {
		h := newHarness()
		h.cls.outcome = &classifier.Outcome{
			Flagged:    true,
			Action:     "removed",
			Violations: []string{"hate_speech"},
		}

		resp, err := h.svc.CreatePost(ctx, h.author.ID, "something vile")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		if !resp.Flagged {
			t.Error("expected flagged response")
		}
		if !h.repo.rows[0].Flagged {
			t.Error("flagged decision must be persisted on the stored row")
		}
	})

	t.Run("classifier outage leaves content unflagged in manual review", func(t *testing.T) {
		h := newHarness()
		h.cls.err = errors.New("classifier network error: connection refused")

		resp, err := h.svc.CreatePost(ctx, h.author.ID, "hello campus")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		if resp.Flagged {
			t.Error("classifier outage must not flag content")
		}
		if resp.ModerationAction != string(moderation.ActionManualReview) {
			t.Errorf("moderation action = %s, want %s", resp.ModerationAction, moderation.ActionManualReview)
		}
		if len(h.repo.rows) != 1 {
			t.Error("content must still be stored when the classifier is down")
		}
	})

	t.Run("content not queryable while moderation is in flight", func(t *testing.T) {
		h := newHarness()
		h.cls.outcome = &classifier.Outcome{Flagged: true, Action: "removed"}
		h.cls.started = make(chan struct{})
		h.cls.release = make(chan struct{})

		done := make(chan error, 1)
		go func() {
			_, err := h.svc.CreatePost(ctx, h.author.ID, "soon to be removed")
			done <- err
		}()

		<-h.cls.started

		// The classifier is still deciding; no row may exist yet, so
		// other viewers see nothing rather than an unflagged draft.
		_, total, _, err := h.svc.ListFeed(ctx, h.viewer.ID, 1, 20)
		if err != nil {
			t.Fatalf("ListFeed() error = %v", err)
		}
		if total != 0 {
			t.Errorf("feed total = %d during in-flight moderation, want 0", total)
		}

		close(h.cls.release)
		if err := <-done; err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}

		if len(h.repo.rows) != 1 {
			t.Fatalf("expected 1 stored row, got %d", len(h.repo.rows))
		}
		if !h.repo.rows[0].Flagged {
			t.Error("row must be stored with the resolved flagged state")
		}
	})

	t.Run("banned user cannot post", func(t *testing.T) {
		h := newHarness()
		h.banRepo.bans = append(h.banRepo.bans, &ban.Ban{
			ID:        uuid.New(),
			UserID:    h.author.ID,
			BanType:   ban.TypePermanent,
			IsActive:  true,
			CreatedAt: time.Now(),
		})

		_, err := h.svc.CreatePost(ctx, h.author.ID, "hello campus")
		if !errors.Is(err, ErrUserBanned) {
			t.Errorf("CreatePost() error = %v, want ErrUserBanned", err)
		}
		if len(h.repo.rows) != 0 {
			t.Error("banned user's post must not be stored")
		}
	})

	t.Run("ban signal escalates", func(t *testing.T) {
		h := newHarness()
		shouldBan := true
		days := 7
		h.cls.outcome = &classifier.Outcome{
			Flagged:       true,
			Action:        "removed",
			Violations:    []string{"harassment"},
			ShouldBanUser: &shouldBan,
			BanDuration:   &days,
		}

		if _, err := h.svc.CreatePost(ctx, h.author.ID, "harassing text"); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}

		if len(h.banRepo.bans) != 1 {
			t.Fatalf("expected 1 ban record, got %d", len(h.banRepo.bans))
		}
		b := h.banRepo.bans[0]
		if b.UserID != h.author.ID {
			t.Errorf("ban user = %s, want %s", b.UserID, h.author.ID)
		}
		if b.BanType != ban.TypeShadow {
			t.Errorf("ban type = %s, want %s", b.BanType, ban.TypeShadow)
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		h := newHarness()

		_, err := h.svc.CreatePost(ctx, uuid.New(), "hello campus")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("CreatePost() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	makePost := func(t *testing.T, h *harness) uuid.UUID {
		t.Helper()
		resp, err := h.svc.CreatePost(ctx, h.author.ID, "parent post")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		return resp.ID
	}

	t.Run("comment on visible post", func(t *testing.T) {
		h := newHarness()
		postID := makePost(t, h)

		resp, err := h.svc.CreateComment(ctx, h.viewer.ID, postID, "nice post")
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		if resp.Kind != KindComment {
			t.Errorf("kind = %s, want %s", resp.Kind, KindComment)
		}
		if resp.ParentID == nil || *resp.ParentID != postID {
			t.Errorf("parent = %v, want %s", resp.ParentID, postID)
		}
	})

	t.Run("hidden parent reads as not found", func(t *testing.T) {
		h := newHarness()
		postID := makePost(t, h)
		h.blocks.pairs[[2]uuid.UUID{h.author.ID, h.viewer.ID}] = true

		_, err := h.svc.CreateComment(ctx, h.viewer.ID, postID, "nice post")
		if !errors.Is(err, ErrContentNotFound) {
			t.Errorf("CreateComment() error = %v, want ErrContentNotFound", err)
		}
	})

	t.Run("engagement policy denies comment", func(t *testing.T) {
		h := newHarness()
		postID := makePost(t, h)

		s := privacy.DefaultSettings(h.author.ID)
		s.WhoCanComment = privacy.AudienceUniversity
		h.settings.byUser[h.author.ID] = s
		h.viewer.University = "tech-u"

		_, err := h.svc.CreateComment(ctx, h.viewer.ID, postID, "nice post")
		if !errors.Is(err, ErrEngagementNotAllowed) {
			t.Errorf("CreateComment() error = %v, want ErrEngagementNotAllowed", err)
		}
	})

	t.Run("cannot comment on a comment", func(t *testing.T) {
		h := newHarness()
		postID := makePost(t, h)

		comment, err := h.svc.CreateComment(ctx, h.viewer.ID, postID, "nice post")
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}

		_, err = h.svc.CreateComment(ctx, h.author.ID, comment.ID, "reply")
		if !errors.Is(err, ErrContentNotFound) {
			t.Errorf("CreateComment() error = %v, want ErrContentNotFound", err)
		}
	})
}

func TestGetPost(t *testing.T) {
	ctx := context.Background()
	h := newHarness()

	resp, err := h.svc.CreatePost(ctx, h.author.ID, "hello campus")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	t.Run("visible to viewer", func(t *testing.T) {
		got, err := h.svc.GetPost(ctx, h.viewer.ID, resp.ID)
		if err != nil {
			t.Fatalf("GetPost() error = %v", err)
		}
		if got.OwnerUsername != "author" {
			t.Errorf("owner username = %s, want author", got.OwnerUsername)
		}
		if got.ModerationAction != "" {
			t.Error("moderation action must only appear on the create response")
		}
	})

	t.Run("absent post", func(t *testing.T) {
		_, err := h.svc.GetPost(ctx, h.viewer.ID, uuid.New())
		if !errors.Is(err, ErrContentNotFound) {
			t.Errorf("GetPost() error = %v, want ErrContentNotFound", err)
		}
	})

	t.Run("hidden post indistinguishable from absent", func(t *testing.T) {
		h.blocks.pairs[[2]uuid.UUID{h.viewer.ID, h.author.ID}] = true
		defer delete(h.blocks.pairs, [2]uuid.UUID{h.viewer.ID, h.author.ID})

		_, err := h.svc.GetPost(ctx, h.viewer.ID, resp.ID)
		if !errors.Is(err, ErrContentNotFound) {
			t.Errorf("GetPost() error = %v, want ErrContentNotFound", err)
		}
	})
}

func TestListFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("counts reflect post-filter results", func(t *testing.T) {
		h := newHarness()

		blockedAuthor := &user.User{ID: uuid.New(), Username: "pariah", University: "state-u"}
		h.users.users[blockedAuthor.ID] = blockedAuthor
		h.blocks.pairs[[2]uuid.UUID{h.viewer.ID, blockedAuthor.ID}] = true

		for i := 0; i < 3; i++ {
			if _, err := h.svc.CreatePost(ctx, h.author.ID, "visible post"); err != nil {
				t.Fatalf("CreatePost() error = %v", err)
			}
			if _, err := h.svc.CreatePost(ctx, blockedAuthor.ID, "hidden post"); err != nil {
				t.Fatalf("CreatePost() error = %v", err)
			}
		}

		posts, total, hasNext, err := h.svc.ListFeed(ctx, h.viewer.ID, 1, 20)
		if err != nil {
			t.Fatalf("ListFeed() error = %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3 (hidden posts must not count)", total)
		}
		if hasNext {
			t.Error("has_next = true, want false")
		}
		for _, p := range posts {
			if p.OwnerID == blockedAuthor.ID {
				t.Error("blocked author's post leaked into the feed")
			}
		}
	})

	t.Run("flagged posts hidden from others but counted for owner", func(t *testing.T) {
		h := newHarness()
		h.cls.outcome = &classifier.Outcome{Flagged: true, Action: "removed"}
		if _, err := h.svc.CreatePost(ctx, h.author.ID, "vile"); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		h.cls.outcome = approvedOutcome()
		if _, err := h.svc.CreatePost(ctx, h.author.ID, "fine"); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}

		_, total, _, err := h.svc.ListFeed(ctx, h.viewer.ID, 1, 20)
		if err != nil {
			t.Fatalf("ListFeed() error = %v", err)
		}
		if total != 1 {
			t.Errorf("viewer total = %d, want 1", total)
		}

		_, total, _, err = h.svc.ListFeed(ctx, h.author.ID, 1, 20)
		if err != nil {
			t.Fatalf("ListFeed() error = %v", err)
		}
		if total != 2 {
			t.Errorf("owner total = %d, want 2 (owner sees own flagged content)", total)
		}
	})

	t.Run("pagination over filtered set", func(t *testing.T) {
		h := newHarness()
		for i := 0; i < 5; i++ {
			if _, err := h.svc.CreatePost(ctx, h.author.ID, "post"); err != nil {
				t.Fatalf("CreatePost() error = %v", err)
			}
		}

		page1, total, hasNext, err := h.svc.ListFeed(ctx, h.viewer.ID, 1, 2)
		if err != nil {
			t.Fatalf("ListFeed() error = %v", err)
		}
		if len(page1) != 2 || total != 5 || !hasNext {
			t.Errorf("page 1: len=%d total=%d hasNext=%v, want 2/5/true", len(page1), total, hasNext)
		}

		page3, total, hasNext, err := h.svc.ListFeed(ctx, h.viewer.ID, 3, 2)
		if err != nil {
			t.Fatalf("ListFeed() error = %v", err)
		}
		if len(page3) != 1 || total != 5 || hasNext {
			t.Errorf("page 3: len=%d total=%d hasNext=%v, want 1/5/false", len(page3), total, hasNext)
		}
	})
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	h := newHarness()

	post, err := h.svc.CreatePost(ctx, h.author.ID, "parent")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	pariah := &user.User{ID: uuid.New(), Username: "pariah", University: "state-u"}
	h.users.users[pariah.ID] = pariah

	if _, err := h.svc.CreateComment(ctx, h.viewer.ID, post.ID, "first"); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if _, err := h.svc.CreateComment(ctx, pariah.ID, post.ID, "second"); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	// Viewer then blocks the second commenter.
	h.blocks.pairs[[2]uuid.UUID{h.viewer.ID, pariah.ID}] = true

	comments, err := h.svc.ListComments(ctx, h.viewer.ID, post.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 visible comment, got %d", len(comments))
	}
	if comments[0].OwnerID != h.viewer.ID {
		t.Error("wrong comment survived the filter")
	}
}

func TestReact(t *testing.T) {
	ctx := context.Background()

	t.Run("reacting twice keeps a single row", func(t *testing.T) {
		h := newHarness()
		post, err := h.svc.CreatePost(ctx, h.author.ID, "hello")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}

		if err := h.svc.React(ctx, h.viewer.ID, post.ID); err != nil {
			t.Fatalf("first React() error = %v", err)
		}
		if err := h.svc.React(ctx, h.viewer.ID, post.ID); err != nil {
			t.Fatalf("second React() error = %v", err)
		}

		if len(h.repo.reactions) != 1 {
			t.Errorf("expected 1 reaction, got %d", len(h.repo.reactions))
		}
	})

	t.Run("engagement policy denies react", func(t *testing.T) {
		h := newHarness()
		post, err := h.svc.CreatePost(ctx, h.author.ID, "hello")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}

		s := privacy.DefaultSettings(h.author.ID)
		s.WhoCanReact = privacy.AudienceUniversity
		h.settings.byUser[h.author.ID] = s
		h.viewer.University = "tech-u"

		if err := h.svc.React(ctx, h.viewer.ID, post.ID); !errors.Is(err, ErrEngagementNotAllowed) {
			t.Errorf("React() error = %v, want ErrEngagementNotAllowed", err)
		}
	})

	t.Run("removing an absent reaction succeeds", func(t *testing.T) {
		h := newHarness()
		post, err := h.svc.CreatePost(ctx, h.author.ID, "hello")
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}

		if err := h.svc.Unreact(ctx, h.viewer.ID, post.ID); err != nil {
			t.Errorf("Unreact() error = %v, want nil", err)
		}
	})
}
