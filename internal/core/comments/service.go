package comments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"Scribe/internal/core/ids"
	"Scribe/internal/core/ownership"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
)

// maxCommentGraphemes is the maximum length for comment content in graphemes
const maxCommentGraphemes = 10000

type commentService struct {
	repo    Repository
	posts   PostLookup
	authors AuthorResolver
	logger  *slog.Logger
	now     func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(repo Repository, postLookup PostLookup, authors AuthorResolver, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:    repo,
		posts:   postLookup,
		authors: authors,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *commentService) AddComment(ctx context.Context, req AddCommentRequest) (*CommentView, error) {
	if !ids.Valid(req.PostID) {
		return nil, ErrInvalidID
	}
	if req.AuthorID == "" {
		return nil, &ValidationError{Field: "author", Message: "required"}
	}
	content, err := validateContent(req.Content)
	if err != nil {
		return nil, err
	}

	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		if posts.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post %s: %w", req.PostID, err)
	}

	comment := &Comment{
		ID:        ids.New(),
		PostID:    req.PostID,
		AuthorID:  req.AuthorID,
		Content:   content,
		CreatedAt: s.now().Truncate(time.Millisecond),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created",
		"comment", comment.ID,
		"post", comment.PostID,
		"author", comment.AuthorID)

	views, err := s.toViews(ctx, []*Comment{comment})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *commentService) ListComments(ctx context.Context, postID string) ([]*CommentView, error) {
	if !ids.Valid(postID) {
		return nil, ErrInvalidID
	}

	found, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for post %s: %w", postID, err)
	}

	return s.toViews(ctx, found)
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, actorID string) error {
	if !ids.Valid(commentID) {
		return ErrInvalidID
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		if IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to load comment: %w", err)
	}

	if !ownership.CanMutate(actorID, comment.AuthorID) {
		s.logger.Warn("comment deletion rejected: not the author",
			"comment", comment.ID,
			"actor", actorID)
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, comment.ID); err != nil {
		if IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("comment deleted", "comment", comment.ID, "post", comment.PostID)
	return nil
}

func (s *commentService) toViews(ctx context.Context, found []*Comment) ([]*CommentView, error) {
	views := make([]*CommentView, 0, len(found))
	if len(found) == 0 {
		return views, nil
	}

	authorIDs := make([]string, 0, len(found))
	for _, c := range found {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.authors.GetAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment authors: %w", err)
	}

	for _, c := range found {
		author := &users.AuthorView{ID: c.AuthorID}
		if a := authors[c.AuthorID]; a != nil {
			author.Name = a.Name
		}
		views = append(views, &CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			Content:   c.Content,
			Author:    author,
			CreatedAt: c.CreatedAt,
		})
	}
	return views, nil
}

func validateContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", contentError(ErrContentEmpty)
	}
	if uniseg.GraphemeClusterCount(content) > maxCommentGraphemes {
		return "", contentError(ErrContentTooLong)
	}
	return content, nil
}
