package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ronak8595/Backend/internal/domain"
)

// UserRepository is the persistence surface for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error)
	ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateAccount(ctx context.Context, id primitive.ObjectID, update domain.AccountUpdate) (*domain.User, error)
	SetAvatarURL(ctx context.Context, id primitive.ObjectID, url string) (*domain.User, error)
	SetCoverImageURL(ctx context.Context, id primitive.ObjectID, url string) (*domain.User, error)
}

// SubscriptionRepository answers subscription-edge queries.
type SubscriptionRepository interface {
	CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID primitive.ObjectID) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID primitive.ObjectID) (bool, error)
}

// VideoRepository answers read-only video queries.
type VideoRepository interface {
	ListWithOwners(ctx context.Context, ids []primitive.ObjectID) ([]domain.VideoView, error)
}

// Uploader relays a locally staged file to the media host and returns its
// public URL. The staged file is consumed by the attempt.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
