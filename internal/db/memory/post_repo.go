package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"Scribe/internal/core/posts"
)

type postRepo struct {
	posts map[string]*posts.Post
	mu    sync.RWMutex
}

// NewPostRepository creates an empty in-memory post repository
func NewPostRepository() posts.Repository {
	return &postRepo{posts: make(map[string]*posts.Post)}
}

// clonePost copies p so callers never share the stored likes slice or image
func clonePost(p *posts.Post) *posts.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	if p.Image != nil {
		image := *p.Image
		c.Image = &image
	}
	return &c
}

func (r *postRepo) Create(_ context.Context, post *posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; exists {
		return fmt.Errorf("post %s already exists", post.ID)
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *postRepo) GetByID(_ context.Context, id string) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *postRepo) List(_ context.Context, q posts.Query) ([]*posts.Post, error) {
	r.mu.RLock()
	all := make([]*posts.Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, clonePost(p))
	}
	r.mu.RUnlock()

	return q.Apply(all), nil
}

func (r *postRepo) Update(_ context.Context, post *posts.Post) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[post.ID]
	if !ok {
		return nil, posts.ErrNotFound
	}
	next := clonePost(stored)
	next.Title = post.Title
	next.Content = post.Content
	next.UpdatedAt = post.UpdatedAt
	next.Image = nil
	if post.Image != nil {
		image := *post.Image
		next.Image = &image
	}
	r.posts[post.ID] = next

	return clonePost(next), nil
}

func (r *postRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

// ToggleLike reads and writes the like set under one write lock
func (r *postRepo) ToggleLike(_ context.Context, id, userID string) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	stored.Likes, _ = posts.ToggleMember(stored.Likes, userID)
	return clonePost(stored), nil
}
