package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rs/zerolog/log"

	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/media"
	"github.com/Ronak8595/Backend/internal/security"
)

// AuthService orchestrates the account session lifecycle.
type AuthService struct {
	users   UserRepository
	tokens  *TokenService
	uploads Uploader
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserRepository, tokens *TokenService, uploads Uploader) *AuthService {
	return &AuthService{users: users, tokens: tokens, uploads: uploads}
}

// Register creates a new user account. The avatar upload is required; the cover
// upload is optional and its failure is tolerated. Staged files are consumed by
// the upload attempts, or discarded when registration stops short of them.
func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput, avatarPath, coverPath string) (*domain.PublicUser, error) {
	userName := strings.ToLower(strings.TrimSpace(input.UserName))
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if userName == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		media.Discard(avatarPath, coverPath)
		return nil, domain.Validation("all fields are required")
	}
	// Minimal syntactic check, deliberately not RFC-compliant.
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		media.Discard(avatarPath, coverPath)
		return nil, domain.Validation("invalid email address")
	}

	exists, err := s.users.ExistsByEmailOrUserName(ctx, email, userName)
	if err != nil {
		media.Discard(avatarPath, coverPath)
		return nil, domain.Internal("failed to check existing users", err)
	}
	if exists {
		media.Discard(avatarPath, coverPath)
		return nil, domain.Conflict("user with this email or userName already exists")
	}

	if avatarPath == "" {
		media.Discard(coverPath)
		return nil, domain.Validation("avatar is required")
	}

	avatarURL, avatarErr := s.uploads.Upload(ctx, avatarPath)

	coverURL := ""
	if coverPath != "" {
		if url, err := s.uploads.Upload(ctx, coverPath); err == nil {
			coverURL = url
		} else {
			log.Warn().Err(err).Msg("Cover image upload failed")
		}
	}

	if avatarErr != nil {
		return nil, domain.Validation("avatar upload failed")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, domain.Internal("failed to hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		UserName:      userName,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return nil, err
		}
		return nil, domain.Internal("failed to create user", err)
	}

	pub := user.Public()
	return &pub, nil
}

// Login authenticates by email or userName and issues a token pair.
func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.PublicUser, *domain.TokenPair, error) {
	email := strings.TrimSpace(input.Email)
	userName := strings.ToLower(strings.TrimSpace(input.UserName))

	if email == "" && userName == "" {
		return nil, nil, domain.Validation("email or userName is required")
	}

	user, err := s.users.GetByEmailOrUserName(ctx, email, userName)
	if err != nil {
		return nil, nil, domain.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, nil, domain.NotFound("user not found")
	}

	if !security.CheckPassword(user, input.Password) {
		return nil, nil, domain.Auth("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	pub := user.Public()
	return &pub, pair, nil
}

// Logout clears the stored refresh token, ending the user's ability to refresh.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return domain.Internal("failed to clear refresh token", err)
	}
	return nil
}

// Refresh rotates the presented refresh token into a brand-new pair.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*domain.PublicUser, *domain.TokenPair, error) {
	pair, user, err := s.tokens.RotateOnRefresh(ctx, presented)
	if err != nil {
		return nil, nil, err
	}

	pub := user.Public()
	return &pub, pair, nil
}
