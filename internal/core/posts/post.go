package posts

import (
	"time"

	"Scribe/internal/core/users"
)

// Post is a blog post as persisted by every storage backend.
// AuthorID and CreatedAt are written once at creation and never change.
type Post struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Image     *string   `json:"image,omitempty"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	Likes     []string  `json:"likes"`
}

// PostView is the API representation of a post with its author resolved
type PostView struct {
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Image       *string           `json:"image"`
	Author      *users.AuthorView `json:"author"`
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	ContentHTML string            `json:"contentHtml,omitempty"`
	Likes       []string          `json:"likes"`
	LikeCount   int               `json:"likeCount"`
}

// CreatePostRequest represents input for creating a new post.
// AuthorID is always taken from the authenticated caller, never from the body.
type CreatePostRequest struct {
	Image    *string
	AuthorID string
	Title    string
	Content  string
}

// UpdatePostRequest carries a partial update; nil fields keep their stored value
type UpdatePostRequest struct {
	Title   *string
	Content *string
	Image   *string
	ID      string
	ActorID string
}

// ListPostsRequest holds the raw listing parameters from the query string
type ListPostsRequest struct {
	Search string
	Sort   string
	Author string
}
