package auth

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

const MinPasswordLength = 8

func hashPassword(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", httperr.Validation("password_too_short", fmt.Sprintf("Password must have at least %d characters.", MinPasswordLength))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// setPassword stores the new hash and bumps the token version, which retires
// every refresh token issued before. It returns the columns it touched.
func setPassword(u *models.User, hashed string, now time.Time) []string {
	u.PasswordHash = hashed
	u.PasswordChangedAt = &now
	u.TokenVersion++
	return []string{"password_hash", "password_changed_at", "token_version"}
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
