package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"Scribe/internal/core/posts"
)

// buildFilter translates the composed query's predicate. The search term is
// quoted so regex metacharacters match literally.
func buildFilter(q posts.Query) bson.D {
	filter := bson.D{}
	if q.Search != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "content", Value: pattern}},
		}})
	}
	if q.AuthorID != "" {
		filter = append(filter, bson.E{Key: "authorId", Value: q.AuthorID})
	}
	return filter
}

// buildSort translates the composed query's ordering, tie-breaking on _id
func buildSort(q posts.Query) bson.D {
	dir := 1
	if q.Sort.Descending {
		dir = -1
	}
	field := "createdAt"
	if q.Sort.Field == posts.SortByTitle {
		field = "title"
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

// toggleLikeUpdate is an aggregation-pipeline update that removes userID from
// likes when present and appends it otherwise, evaluated server-side in one write
func toggleLikeUpdate(userID string) bson.A {
	user := bson.D{{Key: "$literal", Value: userID}}
	return bson.A{
		bson.D{{Key: "$set", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{user, "$likes"}}}},
			{Key: "then", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: "$likes"},
				{Key: "as", Value: "id"},
				{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$id", user}}}},
			}}}},
			{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{"$likes", bson.A{user}}}}},
		}}}}}}},
	}
}
