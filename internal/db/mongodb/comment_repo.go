package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Scribe/internal/core/comments"
)

type mongoCommentRepo struct {
	col *mongo.Collection
}

// NewCommentRepository creates a new MongoDB comment repository
func NewCommentRepository(db *mongo.Database) comments.Repository {
	return &mongoCommentRepo{col: db.Collection(commentsCollection)}
}

func (r *mongoCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	doc := &commentDoc{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *mongoCommentRepo) GetByID(ctx context.Context, id string) (*comments.Comment, error) {
	var doc commentDoc
	err := r.col.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return doc.toComment(), nil
}

func (r *mongoCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.D{{Key: "postId", Value: postID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var docs []commentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	result := make([]*comments.Comment, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toComment())
	}
	return result, nil
}

func (r *mongoCommentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return comments.ErrCommentNotFound
	}
	return nil
}
