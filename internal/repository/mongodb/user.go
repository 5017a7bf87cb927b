package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ronak8595/Backend/internal/domain"
)

// UserRepository handles user data access.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{col: db.Database.Collection(usersCollection)}
}

// Create inserts a new user. A unique-index violation on userName or email is
// reported as a conflict.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflict("user with this email or userName already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetByID retrieves a user by id. Returns nil without error when no user matches.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUserName retrieves a user by its normalized userName.
func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"userName": userName})
}

// GetByEmailOrUserName retrieves a user matching either identifier.
func (r *UserRepository) GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"userName": userName},
	}})
}

// ExistsByEmailOrUserName reports whether a user with either identifier exists.
func (r *UserRepository) ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"userName": userName},
	}})
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

// SetRefreshToken stores the currently valid refresh token, superseding any
// previously issued one.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"refreshToken": token,
		"updatedAt":    time.Now(),
	}})
}

// ClearRefreshToken removes the stored refresh token.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		"$unset": bson.M{"refreshToken": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    time.Now(),
	}})
}

// UpdateAccount applies a partial email/fullName update and returns the updated
// record. Returns nil without error when no user matches.
func (r *UserRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, update domain.AccountUpdate) (*domain.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// SetAvatarURL persists a new avatar URL and returns the updated record.
func (r *UserRepository) SetAvatarURL(ctx context.Context, id primitive.ObjectID, url string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"avatarUrl": url,
		"updatedAt": time.Now(),
	}})
}

// SetCoverImageURL persists a new cover image URL and returns the updated record.
func (r *UserRepository) SetCoverImageURL(ctx context.Context, id primitive.ObjectID, url string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"coverImageUrl": url,
		"updatedAt":     time.Now(),
	}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}
