package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Scribe/internal/core/users"
)

type mongoUserRepo struct {
	col *mongo.Collection
}

// NewUserRepository creates a new MongoDB user repository
func NewUserRepository(db *mongo.Database) users.UserRepository {
	return &mongoUserRepo{col: db.Collection(usersCollection)}
}

// Upsert inserts the profile or refreshes name and email of an existing one
func (r *mongoUserRepo) Upsert(ctx context.Context, user *users.User) (*users.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: user.Name},
			{Key: "email", Value: user.Email},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc userDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: user.ID}}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return doc.toUser(), nil
}

// GetByIDs retrieves multiple users in a single query.
// Missing users are not included in the result map.
func (r *mongoUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error) {
	result := make(map[string]*users.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.col.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("failed to query users by ids: %w", err)
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	for i := range docs {
		result[docs[i].ID] = docs[i].toUser()
	}
	return result, nil
}
