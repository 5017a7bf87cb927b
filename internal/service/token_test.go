package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/security"
)

func newTestJWTManager() *security.JWTManager {
	return security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 10*24*time.Hour)
}

func TestTokenService_IssuePair(t *testing.T) {
	ctx := context.Background()
	jwtManager := newTestJWTManager()

	t.Run("success stores the refresh token", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewTokenService(users, jwtManager)

		user := &domain.User{ID: primitive.NewObjectID(), UserName: "alice", Email: "alice@example.com"}

		var stored string
		users.On("GetByID", ctx, user.ID).Return(user, nil)
		users.On("SetRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { stored = args.String(2) }).
			Return(nil)

		pair, err := svc.IssuePair(ctx, user.ID)
		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, pair.RefreshToken, stored)

		users.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewTokenService(users, jwtManager)

		userID := primitive.NewObjectID()
		users.On("GetByID", ctx, userID).Return(nil, nil)

		_, err := svc.IssuePair(ctx, userID)
		assert.Error(t, err)
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})
}

func TestTokenService_VerifyAccess(t *testing.T) {
	jwtManager := newTestJWTManager()
	svc := NewTokenService(new(MockUserRepository), jwtManager)

	user := &domain.User{ID: primitive.NewObjectID(), UserName: "alice", Email: "alice@example.com"}

	t.Run("valid token", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(user)
		assert.NoError(t, err)

		userID, err := svc.VerifyAccess(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.VerifyAccess("")
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.VerifyAccess("not-a-token")
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})

	t.Run("expired token", func(t *testing.T) {
		expired := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute, -time.Minute)
		token, err := expired.GenerateAccessToken(user)
		assert.NoError(t, err)

		_, err = svc.VerifyAccess(token)
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})
}

func TestTokenService_RotateOnRefresh(t *testing.T) {
	ctx := context.Background()
	jwtManager := newTestJWTManager()

	newUserWithToken := func(t *testing.T) (*domain.User, string) {
		t.Helper()
		user := &domain.User{ID: primitive.NewObjectID(), UserName: "alice", Email: "alice@example.com"}
		token, err := jwtManager.GenerateRefreshToken(user.ID)
		assert.NoError(t, err)
		user.RefreshToken = token
		return user, token
	}

	t.Run("success issues a brand-new pair", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewTokenService(users, jwtManager)
		user, presented := newUserWithToken(t)

		users.On("GetByID", ctx, user.ID).Return(user, nil)
		users.On("SetRefreshToken", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)

		pair, rotated, err := svc.RotateOnRefresh(ctx, presented)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, rotated.ID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		users.AssertExpectations(t)
	})

	t.Run("superseded token is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewTokenService(users, jwtManager)
		user, presented := newUserWithToken(t)

		// A newer token has since been stored on the record.
		newer, err := jwtManager.GenerateRefreshToken(user.ID)
		assert.NoError(t, err)
		assert.NotEqual(t, presented, newer)
		user.RefreshToken = newer

		users.On("GetByID", ctx, user.ID).Return(user, nil)

		_, _, err = svc.RotateOnRefresh(ctx, presented)
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
		users.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cleared token fails closed", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewTokenService(users, jwtManager)
		user, presented := newUserWithToken(t)
		user.RefreshToken = "" // logged out

		users.On("GetByID", ctx, user.ID).Return(user, nil)

		_, _, err := svc.RotateOnRefresh(ctx, presented)
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})

	t.Run("missing token", func(t *testing.T) {
		svc := NewTokenService(new(MockUserRepository), jwtManager)
		_, _, err := svc.RotateOnRefresh(ctx, "")
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewTokenService(users, jwtManager)
		user, presented := newUserWithToken(t)

		users.On("GetByID", ctx, user.ID).Return(nil, nil)

		_, _, err := svc.RotateOnRefresh(ctx, presented)
		assert.Equal(t, domain.KindAuth, domain.KindOf(err))
	})
}
