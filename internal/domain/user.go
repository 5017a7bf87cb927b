package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted account record. PasswordHash and RefreshToken are never
// serialized to external responses.
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserName      string               `bson:"userName" json:"userName"`
	Email         string               `bson:"email" json:"email"`
	FullName      string               `bson:"fullName" json:"fullName"`
	PasswordHash  string               `bson:"passwordHash" json:"-"`
	AvatarURL     string               `bson:"avatarUrl" json:"avatarUrl"`
	CoverImageURL string               `bson:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
	RefreshToken  string               `bson:"refreshToken,omitempty" json:"-"`
	WatchHistory  []primitive.ObjectID `bson:"watchHistory,omitempty" json:"-"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID            primitive.ObjectID `json:"id"`
	UserName      string             `json:"userName"`
	Email         string             `json:"email"`
	FullName      string             `json:"fullName"`
	AvatarURL     string             `json:"avatarUrl"`
	CoverImageURL string             `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Public strips credentials and session state from the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		UserName:      u.UserName,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// RegisterInput carries the form fields of the multipart register request.
type RegisterInput struct {
	UserName string `json:"userName" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,max=255"`
	FullName string `json:"fullName" validate:"required,max=128"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput requires at least one of Email/UserName alongside the password.
type LoginInput struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password" validate:"required"`
}

// PasswordChange carries a password update for the authenticated user.
type PasswordChange struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// AccountUpdate is a partial update; at least one field must be provided.
type AccountUpdate struct {
	Email    *string `json:"email" validate:"omitempty,max=255"`
	FullName *string `json:"fullName" validate:"omitempty,max=128"`
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChannelView is the channel-profile projection returned to a viewer.
type ChannelView struct {
	FullName                 string `json:"fullName"`
	UserName                 string `json:"userName"`
	Email                    string `json:"email"`
	SubscribersCount         int64  `json:"subscribersCount"`
	ChannelSubscribedToCount int64  `json:"channelSubscribedToCount"`
	IsSubscribed             bool   `json:"isSubscribed"`
	AvatarURL                string `json:"avatarUrl"`
	CoverImageURL            string `json:"coverImageUrl,omitempty"`
}
