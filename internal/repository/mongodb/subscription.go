package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionRepository handles subscription-edge queries. Edges are written
// elsewhere; this service only counts and tests membership.
type SubscriptionRepository struct {
	col *mongo.Collection
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{col: db.Database.Collection(subscriptionsCollection)}
}

// CountSubscribers counts edges pointing at the channel.
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"channel": channelID})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

// CountSubscribedTo counts channels the user follows.
func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID primitive.ObjectID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"subscriber": subscriberID})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

// IsSubscribed reports whether the subscriber follows the channel.
func (r *SubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID primitive.ObjectID) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{
		"subscriber": subscriberID,
		"channel":    channelID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return count > 0, nil
}
