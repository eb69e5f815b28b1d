package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Scribe/internal/core/posts"
)

type mongoPostRepo struct {
	col *mongo.Collection
}

// NewPostRepository creates a new MongoDB post repository
func NewPostRepository(db *mongo.Database) posts.Repository {
	return &mongoPostRepo{col: db.Collection(postsCollection)}
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (r *mongoPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if _, err := r.col.InsertOne(ctx, newPostDoc(post)); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *mongoPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	var doc postDoc
	err := r.col.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return doc.toPost(), nil
}

func (r *mongoPostRepo) List(ctx context.Context, q posts.Query) ([]*posts.Post, error) {
	cursor, err := r.col.Find(ctx, buildFilter(q), options.Find().SetSort(buildSort(q)))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	result := make([]*posts.Post, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toPost())
	}
	return result, nil
}

func (r *mongoPostRepo) Update(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: post.Title},
		{Key: "content", Value: post.Content},
		{Key: "image", Value: post.Image},
		{Key: "updatedAt", Value: post.UpdatedAt},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDoc
	err := r.col.FindOneAndUpdate(ctx, byID(post.ID), update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return doc.toPost(), nil
}

func (r *mongoPostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// ToggleLike runs the flip as a single document update
func (r *mongoPostRepo) ToggleLike(ctx context.Context, id, userID string) (*posts.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDoc
	err := r.col.FindOneAndUpdate(ctx, byID(id), toggleLikeUpdate(userID), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}
	return doc.toPost(), nil
}
