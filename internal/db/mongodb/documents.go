package mongodb

import (
	"time"

	"Scribe/internal/core/comments"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
)

type userDoc struct {
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
}

func (d *userDoc) toUser() *users.User {
	return &users.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type postDoc struct {
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	Image     *string   `bson:"image"`
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	AuthorID  string    `bson:"authorId"`
	Likes     []string  `bson:"likes"`
}

func newPostDoc(p *posts.Post) *postDoc {
	// likes must be stored as an array for the toggle pipeline
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return &postDoc{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Image:     p.Image,
		AuthorID:  p.AuthorID,
		Likes:     likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d *postDoc) toPost() *posts.Post {
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	return &posts.Post{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Image:     d.Image,
		AuthorID:  d.AuthorID,
		Likes:     likes,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type commentDoc struct {
	CreatedAt time.Time `bson:"createdAt"`
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	AuthorID  string    `bson:"authorId"`
	Content   string    `bson:"content"`
}

func (d *commentDoc) toComment() *comments.Comment {
	return &comments.Comment{
		ID:        d.ID,
		PostID:    d.PostID,
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
