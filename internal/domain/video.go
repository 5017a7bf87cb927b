package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is a hosted video record. Read-only in this service; the upload and
// publish paths live elsewhere.
type Video struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner           primitive.ObjectID `bson:"owner" json:"owner"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	DurationSeconds float64            `bson:"durationSeconds" json:"durationSeconds"`
	Views           int64              `bson:"views" json:"views"`
	IsPublished     bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// VideoOwner is the minimal owner projection embedded in watch-history entries.
type VideoOwner struct {
	UserName  string `bson:"userName" json:"userName"`
	FullName  string `bson:"fullName" json:"fullName"`
	AvatarURL string `bson:"avatarUrl" json:"avatar"`
}

// VideoView is a watch-history entry: the video joined with its owner.
type VideoView struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	DurationSeconds float64            `bson:"durationSeconds" json:"durationSeconds"`
	Views           int64              `bson:"views" json:"views"`
	IsPublished     bool               `bson:"isPublished" json:"isPublished"`
	Owner           VideoOwner         `bson:"owner" json:"owner"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Subscription is a directed edge: Subscriber follows Channel.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
