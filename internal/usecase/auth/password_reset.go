package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
)

// ResetRequestedMessage is returned whether or not the email is known.
const ResetRequestedMessage = "If an account with that email exists, a password reset link has been sent."

// ======================================================
// REQUEST
// ======================================================

type RequestPasswordReset struct {
	repo        identity.Repository
	mail        mailer.Sender
	frontendURL string
	ttl         time.Duration
	now         func() time.Time
}

func NewRequestPasswordReset(
	repo identity.Repository,
	mail mailer.Sender,
	frontendURL string,
	ttl time.Duration,
) *RequestPasswordReset {
	return &RequestPasswordReset{
		repo:        repo,
		mail:        mail,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (uc *RequestPasswordReset) Execute(ctx context.Context, email string) error {
	u, err := uc.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if httperr.IsKind(err, httperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !u.IsActive {
		return nil
	}

	tok := uuid.NewString()
	exp := uc.now().Add(uc.ttl)
	u.PasswordResetToken = &tok
	u.PasswordResetExpiration = &exp
	if err := uc.repo.UpdateUser(ctx, u, "password_reset_token", "password_reset_expiration"); err != nil {
		return err
	}

	link := uc.frontendURL + "/reset-password?token=" + tok
	_ = uc.mail.Send(mailer.PasswordResetEmail(u.Email, u.Username, link))
	return nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmPasswordReset struct {
	repo  identity.Repository
	audit audit.Sink
	now   func() time.Time
}

func NewConfirmPasswordReset(repo identity.Repository, audit audit.Sink) *ConfirmPasswordReset {
	return &ConfirmPasswordReset{repo: repo, audit: audit, now: time.Now}
}

// Execute consumes the token: after one attempt, successful or expired, it is gone.
func (uc *ConfirmPasswordReset) Execute(ctx context.Context, tok, newPassword string) error {
	u, err := uc.repo.GetUserByResetToken(ctx, tok)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return httperr.InvalidToken("Invalid or expired token.")
	}
	if err != nil {
		return err
	}

	now := uc.now()
	expired := u.PasswordResetExpiration == nil || now.After(*u.PasswordResetExpiration)

	columns := []string{"password_reset_token", "password_reset_expiration"}
	if !expired {
		hashed, err := hashPassword(newPassword)
		if err != nil {
			return err
		}
		columns = append(columns, setPassword(u, hashed, now)...)
	}

	u.PasswordResetToken = nil
	u.PasswordResetExpiration = nil
	if err := uc.repo.UpdateUser(ctx, u, columns...); err != nil {
		return err
	}

	if expired {
		return httperr.InvalidToken("Invalid or expired token.")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   audit.ActionPasswordReset,
		Entity:   "user",
		EntityID: &u.ID,
	})
	return nil
}
