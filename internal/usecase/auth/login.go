package auth

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
)

type LoginInput struct {
	Email    string
	Username string
	Password string
}

type LoginOutput struct {
	User   *models.User
	Tokens *token.Pair
}

type Login struct {
	repo   identity.Repository
	issuer *token.Issuer
	now    func() time.Time
}

func NewLogin(repo identity.Repository, issuer *token.Issuer) *Login {
	return &Login{repo: repo, issuer: issuer, now: time.Now}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	u, err := uc.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	if u == nil || !checkPassword(u.PasswordHash, in.Password) {
		return nil, httperr.Unauthorized("invalid_credentials", "Invalid credentials.")
	}
	if !u.IsActive {
		return nil, httperr.Forbidden("account_inactive", "Account is inactive. Please contact support.")
	}

	now := uc.now()
	u.LastLoginAt = &now
	if err := uc.repo.UpdateUser(ctx, u, "last_login_at"); err != nil {
		return nil, err
	}

	pair, err := uc.issuer.IssuePair(u.ID, u.Role, u.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: u, Tokens: pair}, nil
}

// resolve tries the identifier as an email first, then as a username.
// A nil user with a nil error means no match.
func (uc *Login) resolve(ctx context.Context, in LoginInput) (*models.User, error) {
	candidates := []string{in.Email, in.Username}

	for _, ident := range candidates {
		ident = strings.TrimSpace(ident)
		if ident == "" {
			continue
		}

		u, err := uc.repo.GetUserByEmail(ctx, normalizeEmail(ident))
		if err == nil {
			return u, nil
		}
		if !httperr.IsKind(err, httperr.KindNotFound) {
			return nil, err
		}

		u, err = uc.repo.GetUserByUsername(ctx, ident)
		if err == nil {
			return u, nil
		}
		if !httperr.IsKind(err, httperr.KindNotFound) {
			return nil, err
		}
	}

	return nil, nil
}
