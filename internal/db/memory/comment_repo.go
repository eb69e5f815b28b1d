package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"Scribe/internal/core/comments"
)

type commentRepo struct {
	comments map[string]comments.Comment
	mu       sync.RWMutex
}

// NewCommentRepository creates an empty in-memory comment repository
func NewCommentRepository() comments.Repository {
	return &commentRepo{comments: make(map[string]comments.Comment)}
}

func (r *commentRepo) Create(_ context.Context, comment *comments.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) GetByID(_ context.Context, id string) (*comments.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, comments.ErrCommentNotFound
	}
	return &c, nil
}

func (r *commentRepo) ListByPost(_ context.Context, postID string) ([]*comments.Comment, error) {
	r.mu.RLock()
	result := []*comments.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			result = append(result, &c)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(result, func(a, b *comments.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r *commentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return comments.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}
