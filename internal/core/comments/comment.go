package comments

import (
	"time"

	"Scribe/internal/core/users"
)

// Comment is a single comment on a post.
// PostID and AuthorID are fixed at creation; comments are never edited.
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
}

// CommentView is the API representation of a comment.
// Only the author's display name is exposed, never their email.
type CommentView struct {
	CreatedAt time.Time         `json:"createdAt"`
	Author    *users.AuthorView `json:"author"`
	ID        string            `json:"id"`
	PostID    string            `json:"postId"`
	Content   string            `json:"content"`
}

// AddCommentRequest represents input for commenting on a post
type AddCommentRequest struct {
	PostID   string
	AuthorID string
	Content  string
}
