package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ronak8595/Backend/internal/domain"
)

// HashPassword derives a one-way salted hash from the plaintext secret.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the user's stored hash.
func CheckPassword(user *domain.User, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}
