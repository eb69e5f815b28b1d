package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Scribe/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post  posts.Post
		image sql.NullString
	)
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &image, &post.AuthorID,
		pq.Array(&post.Likes), &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if image.Valid {
		post.Image = &image.String
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return &post, nil
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, title, content, image, author_id, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Image, post.AuthorID,
		pq.Array(likes), post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by id
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List runs the composed query in the database
func (r *postgresPostRepo) List(ctx context.Context, q posts.Query) ([]*posts.Post, error) {
	query, args := buildListQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Update writes the editable fields and returns the stored row
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, content = $3, image = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.Image, post.UpdatedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return updated, nil
}

// Delete removes a post. Comments are left in place.
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// ToggleLike flips membership in a single UPDATE; the row lock serializes
// concurrent toggles on the same post
func (r *postgresPostRepo) ToggleLike(ctx context.Context, id, userID string) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET likes = CASE
			WHEN $2::text = ANY(likes) THEN array_remove(likes, $2::text)
			ELSE array_append(likes, $2::text)
		END
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}
	return post, nil
}
