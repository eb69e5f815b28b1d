package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of profiles kept in memory
const DefaultCacheSize = 4096

type userService struct {
	userRepo UserRepository
	cache    *lru.Cache[string, User]
	logger   *slog.Logger
}

// NewUserService creates a new user service backed by a bounded LRU of profiles
func NewUserService(userRepo UserRepository, cacheSize int, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, User](cacheSize)
	if err != nil {
		// lru.New only fails for non-positive sizes, which are ruled out above
		panic(fmt.Sprintf("users: create profile cache: %v", err))
	}
	return &userService{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// ResolveIdentity stores the caller's latest profile and returns it.
// The write is skipped when the cached profile already matches the claims.
func (s *userService) ResolveIdentity(ctx context.Context, identity Identity) (*User, error) {
	id := strings.TrimSpace(identity.ID)
	if id == "" {
		return nil, &InvalidIdentityError{Reason: "subject is required"}
	}
	name := strings.TrimSpace(identity.Name)
	email := strings.TrimSpace(strings.ToLower(identity.Email))

	if cached, ok := s.cache.Get(id); ok && cached.Name == name && cached.Email == email {
		return &cached, nil
	}

	user, err := s.userRepo.Upsert(ctx, &User{ID: id, Name: name, Email: email})
	if err != nil {
		return nil, fmt.Errorf("failed to record identity %s: %w", id, err)
	}

	s.cache.Add(user.ID, *user)
	s.logger.Debug("identity profile refreshed", "user", user.ID)
	return user, nil
}

// GetAuthors resolves author display fields for every id in one repository call at most
func (s *userService) GetAuthors(ctx context.Context, ids []string) (map[string]*AuthorView, error) {
	result := make(map[string]*AuthorView, len(ids))
	var misses []string

	for _, id := range ids {
		if _, seen := result[id]; seen {
			continue
		}
		if cached, ok := s.cache.Get(id); ok {
			result[id] = cached.View()
			continue
		}
		// Placeholder until the batch lookup below fills it in
		result[id] = &AuthorView{ID: id}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return result, nil
	}

	found, err := s.userRepo.GetByIDs(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}

	for id, user := range found {
		s.cache.Add(id, *user)
		result[id] = user.View()
	}

	if unknown := len(misses) - len(found); unknown > 0 {
		s.logger.Debug("authors without a stored profile", "count", unknown)
	}

	return result, nil
}
