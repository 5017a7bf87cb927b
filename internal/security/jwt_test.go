package security_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/security"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       primitive.NewObjectID(),
		UserName: "testuser",
		Email:    "test@example.com",
		FullName: "Test User",
	}
}

func TestJWTManager_GenerateAndValidateAccessToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 10*24*time.Hour)
	user := testUser()

	accessToken, err := manager.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	if accessToken == "" {
		t.Error("access token is empty")
	}

	claims, err := manager.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}

	if claims.UserID != user.ID.Hex() {
		t.Errorf("user ID mismatch: got %v, want %v", claims.UserID, user.ID.Hex())
	}
	if claims.Email != user.Email {
		t.Errorf("email mismatch: got %v, want %v", claims.Email, user.Email)
	}
	if claims.UserName != user.UserName {
		t.Errorf("userName mismatch: got %v, want %v", claims.UserName, user.UserName)
	}
}

func TestJWTManager_GenerateAndValidateRefreshToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 10*24*time.Hour)
	userID := primitive.NewObjectID()

	refreshToken, err := manager.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}
	if refreshToken == "" {
		t.Error("refresh token is empty")
	}

	extracted, err := manager.ValidateRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("failed to validate refresh token: %v", err)
	}
	if extracted != userID {
		t.Errorf("user ID from refresh token mismatch: got %v, want %v", extracted, userID)
	}
}

func TestJWTManager_RefreshTokensAreDistinct(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 10*24*time.Hour)
	userID := primitive.NewObjectID()

	// Same-second issuance must still produce distinct tokens, or rotation
	// could hand back the token it is supposed to supersede.
	first, err := manager.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}
	second, err := manager.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	if first == second {
		t.Error("expected back-to-back refresh tokens to differ")
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 10*24*time.Hour)

	if _, err := manager.ValidateAccessToken("invalid-token"); err == nil {
		t.Error("expected error for invalid token, got nil")
	}

	if _, err := manager.ValidateAccessToken(""); err == nil {
		t.Error("expected error for empty token, got nil")
	}

	// Token signed with a different secret
	otherManager := security.NewJWTManager("different-secret-key-32-chars!!", 15*time.Minute, 10*24*time.Hour)
	token, _ := otherManager.GenerateAccessToken(testUser())

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("expected error for token signed with different secret, got nil")
	}

	// Refresh token is not a valid access token claims-wise, but an access token
	// must never validate as a refresh token with a bad signature.
	otherRefresh, _ := otherManager.GenerateRefreshToken(primitive.NewObjectID())
	if _, err := manager.ValidateRefreshToken(otherRefresh); err == nil {
		t.Error("expected error for refresh token signed with different secret, got nil")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute, -time.Minute)

	access, err := manager.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	if _, err := manager.ValidateAccessToken(access); err == nil {
		t.Error("expected error for expired access token, got nil")
	}

	refresh, err := manager.GenerateRefreshToken(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}
	if _, err := manager.ValidateRefreshToken(refresh); err == nil {
		t.Error("expected error for expired refresh token, got nil")
	}
}

func TestJWTManager_TTLs(t *testing.T) {
	accessTTL := 30 * time.Minute
	refreshTTL := 10 * 24 * time.Hour
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", accessTTL, refreshTTL)

	if manager.AccessTokenTTL() != accessTTL {
		t.Errorf("access token TTL mismatch: got %v, want %v", manager.AccessTokenTTL(), accessTTL)
	}
	if manager.RefreshTokenTTL() != refreshTTL {
		t.Errorf("refresh token TTL mismatch: got %v, want %v", manager.RefreshTokenTTL(), refreshTTL)
	}
}
