package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/security"
)

// TokenService issues and rotates token pairs. At most one refresh token is
// valid per user: issuing a pair overwrites the stored token, so a second login
// supersedes the first session's ability to refresh.
type TokenService struct {
	users UserRepository
	jwt   *security.JWTManager
}

// NewTokenService creates a new token service.
func NewTokenService(users UserRepository, jwt *security.JWTManager) *TokenService {
	return &TokenService{users: users, jwt: jwt}
}

// IssuePair creates an access/refresh pair for the user and persists the
// refresh token onto the user record.
func (s *TokenService) IssuePair(ctx context.Context, userID primitive.ObjectID) (*domain.TokenPair, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, domain.Auth("user not found")
	}
	return s.issueFor(ctx, user)
}

// VerifyAccess validates an access token and returns the bound user id.
func (s *TokenService) VerifyAccess(token string) (primitive.ObjectID, error) {
	if token == "" {
		return primitive.NilObjectID, domain.Auth("missing access token")
	}

	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return primitive.NilObjectID, domain.Auth("invalid or expired access token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, domain.Auth("invalid access token")
	}
	return userID, nil
}

// RotateOnRefresh verifies the presented refresh token against the user's
// stored one and, on success, issues and stores a brand-new pair. Reuse of a
// superseded token fails closed.
func (s *TokenService) RotateOnRefresh(ctx context.Context, presented string) (*domain.TokenPair, *domain.User, error) {
	if presented == "" {
		return nil, nil, domain.Auth("missing refresh token")
	}

	userID, err := s.jwt.ValidateRefreshToken(presented)
	if err != nil {
		return nil, nil, domain.Auth("invalid or expired refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, domain.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, nil, domain.Auth("invalid refresh token")
	}

	if user.RefreshToken == "" || user.RefreshToken != presented {
		return nil, nil, domain.Auth("refresh token is expired or already used")
	}

	pair, err := s.issueFor(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *TokenService) issueFor(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, domain.Internal("failed to generate access token", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, domain.Internal("failed to generate refresh token", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, domain.Internal("failed to store refresh token", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
