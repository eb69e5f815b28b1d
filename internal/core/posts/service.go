package posts

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"Scribe/internal/core/ids"
	"Scribe/internal/core/ownership"
	"Scribe/internal/core/users"
)

// MaxTitleGraphemes bounds post titles in user-perceived characters
const MaxTitleGraphemes = 300

type postService struct {
	repo     Repository
	authors  AuthorResolver
	renderer ContentRenderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewPostService creates a new post service.
// renderer may be nil, in which case views carry no HTML rendering.
func NewPostService(repo Repository, authors AuthorResolver, renderer ContentRenderer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:     repo,
		authors:  authors,
		renderer: renderer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost validates and stores a new post
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error) {
	if req.AuthorID == "" {
		return nil, NewValidationError("author", "required")
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	content, err := validateContent(req.Content)
	if err != nil {
		return nil, err
	}

	// Mongo keeps millisecond precision; truncating keeps all backends comparable
	now := s.now().Truncate(time.Millisecond)
	post := &Post{
		ID:        ids.New(),
		Title:     title,
		Content:   content,
		Image:     normalizeImage(req.Image),
		AuthorID:  req.AuthorID,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		"post", post.ID,
		"author", post.AuthorID,
		"has_image", post.Image != nil)

	return s.toView(ctx, post)
}

// ListPosts composes the listing query and resolves authors for the results
func (s *postService) ListPosts(ctx context.Context, req ListPostsRequest) ([]*PostView, error) {
	q := ComposeQuery(req.Search, req.Sort, req.Author)

	found, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return s.toViews(ctx, found)
}

// ListAuthorPosts lists one author's posts, newest first
func (s *postService) ListAuthorPosts(ctx context.Context, authorID string) ([]*PostView, error) {
	if authorID == "" {
		return nil, NewValidationError("author", "required")
	}

	found, err := s.repo.List(ctx, AuthorQuery(authorID))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for author %s: %w", authorID, err)
	}

	return s.toViews(ctx, found)
}

// GetPost retrieves a single post by id
func (s *postService) GetPost(ctx context.Context, id string) (*PostView, error) {
	if !ids.Valid(id) {
		return nil, ErrInvalidID
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toView(ctx, post)
}

// UpdatePost applies a partial update after the existence and ownership checks
func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*PostView, error) {
	post, err := s.loadForMutation(ctx, req.ID, req.ActorID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		post.Title = title
	}
	if req.Content != nil {
		content, err := validateContent(*req.Content)
		if err != nil {
			return nil, err
		}
		post.Content = content
	}
	// No new upload keeps the stored image
	if image := normalizeImage(req.Image); image != nil {
		post.Image = image
	}
	post.UpdatedAt = s.now().Truncate(time.Millisecond)

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.logger.Info("post updated", "post", updated.ID, "author", updated.AuthorID)

	return s.toView(ctx, updated)
}

// DeletePost removes a post owned by actorID
func (s *postService) DeletePost(ctx context.Context, id, actorID string) error {
	post, err := s.loadForMutation(ctx, id, actorID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		if IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post", post.ID, "author", post.AuthorID)
	return nil
}

// ToggleLike flips the caller's like on a post.
// The flip happens inside the repository as one atomic write, so concurrent
// toggles by the same user cannot both observe the same prior state.
func (s *postService) ToggleLike(ctx context.Context, id, userID string) (*PostView, error) {
	if !ids.Valid(id) {
		return nil, ErrInvalidID
	}
	if userID == "" {
		return nil, NewValidationError("user", "required")
	}

	post, err := s.repo.ToggleLike(ctx, id, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	s.logger.Debug("like toggled",
		"post", post.ID,
		"user", userID,
		"liked", slices.Contains(post.Likes, userID),
		"like_count", len(post.Likes))

	return s.toView(ctx, post)
}

// loadForMutation runs the checks shared by update and delete in their required
// order: id shape, existence, then ownership
func (s *postService) loadForMutation(ctx context.Context, id, actorID string) (*Post, error) {
	if !ids.Valid(id) {
		return nil, ErrInvalidID
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	if !ownership.CanMutate(actorID, post.AuthorID) {
		s.logger.Warn("post mutation rejected: not the author",
			"post", post.ID,
			"actor", actorID)
		return nil, ErrNotAuthorized
	}

	return post, nil
}

func (s *postService) toView(ctx context.Context, post *Post) (*PostView, error) {
	views, err := s.toViews(ctx, []*Post{post})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// toViews resolves every distinct author in one lookup
func (s *postService) toViews(ctx context.Context, found []*Post) ([]*PostView, error) {
	views := make([]*PostView, 0, len(found))
	if len(found) == 0 {
		return views, nil
	}

	authorIDs := make([]string, 0, len(found))
	for _, p := range found {
		authorIDs = append(authorIDs, p.AuthorID)
	}
	authors, err := s.authors.GetAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve post authors: %w", err)
	}

	for _, p := range found {
		author := authors[p.AuthorID]
		if author == nil {
			author = &users.AuthorView{ID: p.AuthorID}
		}
		likes := p.Likes
		if likes == nil {
			likes = []string{}
		}
		view := &PostView{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Image:     p.Image,
			Author:    author,
			Likes:     likes,
			LikeCount: len(likes),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if s.renderer != nil {
			view.ContentHTML = s.renderer.Render(p.Content)
		}
		views = append(views, view)
	}

	return views, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", NewValidationError("title", "required")
	}
	if uniseg.GraphemeClusterCount(title) > MaxTitleGraphemes {
		return "", NewValidationError("title", fmt.Sprintf("must be at most %d characters", MaxTitleGraphemes))
	}
	return title, nil
}

func validateContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", NewValidationError("content", "required")
	}
	return content, nil
}

func normalizeImage(image *string) *string {
	if image == nil || strings.TrimSpace(*image) == "" {
		return nil
	}
	v := strings.TrimSpace(*image)
	return &v
}
