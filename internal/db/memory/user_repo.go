package memory

import (
	"context"
	"sync"
	"time"

	"Scribe/internal/core/users"
)

type userRepo struct {
	users map[string]users.User
	mu    sync.RWMutex
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() users.UserRepository {
	return &userRepo{users: make(map[string]users.User)}
}

func (r *userRepo) Upsert(_ context.Context, user *users.User) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Millisecond)
	stored, ok := r.users[user.ID]
	if !ok {
		stored = users.User{ID: user.ID, CreatedAt: now}
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.UpdatedAt = now
	r.users[user.ID] = stored

	return &stored, nil
}

func (r *userRepo) GetByIDs(_ context.Context, ids []string) (map[string]*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*users.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = &u
		}
	}
	return result, nil
}
