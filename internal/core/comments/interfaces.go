package comments

import (
	"context"

	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
)

// Service defines the business logic interface for comments
type Service interface {
	// AddComment stores a comment by req.AuthorID on an existing post
	AddComment(ctx context.Context, req AddCommentRequest) (*CommentView, error)

	// ListComments returns a post's comments oldest first.
	// Comments outlive their post, so a deleted post still lists its comments.
	ListComments(ctx context.Context, postID string) ([]*CommentView, error)

	// DeleteComment removes a comment written by actorID
	DeleteComment(ctx context.Context, commentID, actorID string) error
}

// Repository defines the data access interface for comments
type Repository interface {
	Create(ctx context.Context, comment *Comment) error

	// GetByID returns ErrCommentNotFound when no comment has the id
	GetByID(ctx context.Context, id string) (*Comment, error)

	// ListByPost returns comments ordered by CreatedAt then ID, ascending
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)

	// Delete returns ErrCommentNotFound when no comment has the id
	Delete(ctx context.Context, id string) error
}

// PostLookup confirms a post exists before it is commented on
type PostLookup interface {
	GetByID(ctx context.Context, id string) (*posts.Post, error)
}

// AuthorResolver resolves author display fields for a batch of ids
type AuthorResolver interface {
	GetAuthors(ctx context.Context, ids []string) (map[string]*users.AuthorView, error)
}
