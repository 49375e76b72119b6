package auth

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type VerifyEmail struct {
	repo identity.Repository
	now  func() time.Time
}

func NewVerifyEmail(repo identity.Repository) *VerifyEmail {
	return &VerifyEmail{repo: repo, now: time.Now}
}

func (uc *VerifyEmail) Execute(ctx context.Context, tok string) (*models.User, error) {
	if tok == "" {
		return nil, httperr.InvalidToken("Verification token is required.")
	}

	u, err := uc.repo.GetUserByVerificationToken(ctx, tok)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return nil, httperr.InvalidToken("Invalid verification token.")
	}
	if err != nil {
		return nil, err
	}

	now := uc.now()
	u.EmailVerifiedAt = &now
	u.EmailVerificationToken = nil
	if err := uc.repo.UpdateUser(ctx, u, "email_verified_at", "email_verification_token"); err != nil {
		return nil, err
	}
	return u, nil
}
