package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/security"
)

// UserService orchestrates profile reads and updates.
type UserService struct {
	users   UserRepository
	subs    SubscriptionRepository
	videos  VideoRepository
	uploads Uploader
}

// NewUserService creates a new user service.
func NewUserService(users UserRepository, subs SubscriptionRepository, videos VideoRepository, uploads Uploader) *UserService {
	return &UserService{users: users, subs: subs, videos: videos, uploads: uploads}
}

// GetByID returns the sanitized user record.
func (s *UserService) GetByID(ctx context.Context, userID primitive.ObjectID) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}

	pub := user.Public()
	return &pub, nil
}

// ChangePassword re-hashes and persists the new password after checking the old
// one against the stored hash. A wrong old password leaves the hash unchanged.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input domain.PasswordChange) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Internal("failed to get user", err)
	}
	if user == nil {
		return domain.NotFound("user not found")
	}

	if !security.CheckPassword(user, input.OldPassword) {
		return domain.Validation("old password is incorrect")
	}

	hash, err := security.HashPassword(input.NewPassword)
	if err != nil {
		return domain.Internal("failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return domain.Internal("failed to update password", err)
	}
	return nil
}

// UpdateAccount applies a partial email/fullName update.
func (s *UserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, update domain.AccountUpdate) (*domain.PublicUser, error) {
	if update.Email == nil && update.FullName == nil {
		return nil, domain.Validation("at least one of email or fullName is required")
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			return nil, domain.Validation("invalid email address")
		}
		update.Email = &email
	}
	if update.FullName != nil && strings.TrimSpace(*update.FullName) == "" {
		return nil, domain.Validation("fullName must not be blank")
	}

	user, err := s.users.UpdateAccount(ctx, userID, update)
	if err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return nil, err
		}
		return nil, domain.Internal("failed to update account", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}

	pub := user.Public()
	return &pub, nil
}

// UpdateAvatar relays the staged file to the media host and persists its URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*domain.PublicUser, error) {
	return s.updateImage(ctx, userID, localPath, "avatar", s.users.SetAvatarURL)
}

// UpdateCoverImage relays the staged file to the media host and persists its URL.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*domain.PublicUser, error) {
	return s.updateImage(ctx, userID, localPath, "cover image", s.users.SetCoverImageURL)
}

func (s *UserService) updateImage(
	ctx context.Context,
	userID primitive.ObjectID,
	localPath, label string,
	persist func(context.Context, primitive.ObjectID, string) (*domain.User, error),
) (*domain.PublicUser, error) {
	if localPath == "" {
		return nil, domain.Validation(label + " file is required")
	}

	url, err := s.uploads.Upload(ctx, localPath)
	if err != nil {
		return nil, domain.Validation(label + " upload failed")
	}

	user, err := persist(ctx, userID, url)
	if err != nil {
		return nil, domain.Internal("failed to update "+label, err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}

	pub := user.Public()
	return &pub, nil
}

// ChannelProfile resolves a channel by normalized userName and reports its
// subscriber counts plus whether the viewer follows it.
func (s *UserService) ChannelProfile(ctx context.Context, viewerID primitive.ObjectID, userName string) (*domain.ChannelView, error) {
	name := strings.ToLower(strings.TrimSpace(userName))
	if name == "" {
		return nil, domain.NotFound("channel not found")
	}

	user, err := s.users.GetByUserName(ctx, name)
	if err != nil {
		return nil, domain.Internal("failed to get channel", err)
	}
	if user == nil {
		return nil, domain.NotFound("channel not found")
	}

	subscribers, err := s.subs.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, domain.Internal("failed to count subscribers", err)
	}

	subscribedTo, err := s.subs.CountSubscribedTo(ctx, user.ID)
	if err != nil {
		return nil, domain.Internal("failed to count subscriptions", err)
	}

	isSubscribed, err := s.subs.IsSubscribed(ctx, viewerID, user.ID)
	if err != nil {
		return nil, domain.Internal("failed to check subscription", err)
	}

	return &domain.ChannelView{
		FullName:                 user.FullName,
		UserName:                 user.UserName,
		Email:                    user.Email,
		SubscribersCount:         subscribers,
		ChannelSubscribedToCount: subscribedTo,
		IsSubscribed:             isSubscribed,
		AvatarURL:                user.AvatarURL,
		CoverImageURL:            user.CoverImageURL,
	}, nil
}

// WatchHistory returns the user's watched videos with owners projected,
// preserving the stored watchHistory order. Entries whose video no longer
// exists are skipped.
func (s *UserService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.VideoView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}

	if len(user.WatchHistory) == 0 {
		return []domain.VideoView{}, nil
	}

	views, err := s.videos.ListWithOwners(ctx, user.WatchHistory)
	if err != nil {
		return nil, domain.Internal("failed to load watch history", err)
	}

	byID := make(map[primitive.ObjectID]domain.VideoView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	ordered := make([]domain.VideoView, 0, len(user.WatchHistory))
	for _, id := range user.WatchHistory {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}
