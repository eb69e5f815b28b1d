package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"Scribe/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Upsert inserts the profile or refreshes name and email of an existing one
func (r *postgresUserRepo) Upsert(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, updated_at = NOW()
		RETURNING id, name, email, created_at, updated_at`

	stored := &users.User{}
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email).
		Scan(&stored.ID, &stored.Name, &stored.Email, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	stored.CreatedAt = stored.CreatedAt.UTC()
	stored.UpdatedAt = stored.UpdatedAt.UTC()
	return stored, nil
}

// MaxBatchSize bounds the ids accepted by one GetByIDs call
const MaxBatchSize = 1000

// GetByIDs retrieves multiple users in a single query.
// Missing users are not included in the result map.
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error) {
	if len(ids) == 0 {
		return make(map[string]*users.User), nil
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(ids), MaxBatchSize)
	}

	query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by ids: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := make(map[string]*users.User, len(ids))
	for rows.Next() {
		user := &users.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.CreatedAt = user.CreatedAt.UTC()
		user.UpdatedAt = user.UpdatedAt.UTC()
		result[user.ID] = user
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}
