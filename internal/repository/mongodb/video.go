package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Ronak8595/Backend/internal/domain"
)

// VideoRepository handles read-only video queries.
type VideoRepository struct {
	col *mongo.Collection
}

// NewVideoRepository creates a new video repository.
func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{col: db.Database.Collection(videosCollection)}
}

// ListWithOwners returns the given videos with the owner joined and projected to
// its minimal public fields. The owner lookup can only yield one document, so the
// joined array collapses to its first element. Result order is unspecified;
// callers impose their own ordering.
func (r *VideoRepository) ListWithOwners(ctx context.Context, ids []primitive.ObjectID) ([]domain.VideoView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$in": ids}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"owner": bson.M{"$first": "$owner"},
		}}},
		{{Key: "$project", Value: bson.M{
			"title":           1,
			"description":     1,
			"durationSeconds": 1,
			"views":           1,
			"isPublished":     1,
			"createdAt":       1,
			"owner": bson.M{
				"userName":  1,
				"fullName":  1,
				"avatarUrl": 1,
			},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate videos: %w", err)
	}
	defer cursor.Close(ctx)

	var views []domain.VideoView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode videos: %w", err)
	}
	return views, nil
}
