package users

import "context"

// UserRepository defines the interface for user profile persistence
type UserRepository interface {
	// Upsert inserts the profile or refreshes name/email of an existing one.
	// CreatedAt is preserved across refreshes.
	Upsert(ctx context.Context, user *User) (*User, error)

	// GetByIDs retrieves multiple users in a single round trip.
	// Missing users are simply absent from the returned map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)
}

// UserService defines the interface for identity and author resolution
type UserService interface {
	// ResolveIdentity records the caller's profile and returns the stored user.
	// Called by the auth middleware on every authenticated request.
	ResolveIdentity(ctx context.Context, identity Identity) (*User, error)

	// GetAuthors resolves display fields for a batch of author ids.
	// Every requested id is present in the result; unknown ids resolve to an
	// AuthorView carrying only the id.
	GetAuthors(ctx context.Context, ids []string) (map[string]*AuthorView, error)
}
