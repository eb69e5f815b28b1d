package posts

import (
	"context"

	"Scribe/internal/core/users"
)

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost stores a new post owned by req.AuthorID with an empty like set
	CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error)

	// ListPosts returns posts matching the search/author filter in the requested order.
	// Unrecognized sort values fall back to newest first.
	ListPosts(ctx context.Context, req ListPostsRequest) ([]*PostView, error)

	// ListAuthorPosts returns every post by authorID, newest first
	ListAuthorPosts(ctx context.Context, authorID string) ([]*PostView, error)

	GetPost(ctx context.Context, id string) (*PostView, error)

	// UpdatePost applies a partial update.
	// Existence is checked before ownership: a missing post is ErrNotFound even for non-authors.
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*PostView, error)

	// DeletePost removes the post permanently. Comments on the post are kept.
	DeletePost(ctx context.Context, id, actorID string) error

	// ToggleLike flips userID's membership in the post's like set
	ToggleLike(ctx context.Context, id, userID string) (*PostView, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	Create(ctx context.Context, post *Post) error

	// GetByID returns ErrNotFound when no post has the id
	GetByID(ctx context.Context, id string) (*Post, error)

	// List evaluates the composed query in the store
	List(ctx context.Context, q Query) ([]*Post, error)

	// Update persists Title, Content, Image and UpdatedAt only and returns the stored post.
	// Author, creation time and likes are never written by Update.
	Update(ctx context.Context, post *Post) (*Post, error)

	// Delete returns ErrNotFound when no post has the id
	Delete(ctx context.Context, id string) error

	// ToggleLike flips userID's membership in the like set as a single atomic
	// write and returns the post as stored afterwards
	ToggleLike(ctx context.Context, id, userID string) (*Post, error)
}

// AuthorResolver resolves author display fields for a batch of ids
type AuthorResolver interface {
	GetAuthors(ctx context.Context, ids []string) (map[string]*users.AuthorView, error)
}

// ContentRenderer turns stored post content into display-safe HTML
type ContentRenderer interface {
	Render(content string) string
}
