package auth

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
)

type ChangePasswordInput struct {
	UserID      uint
	JTI         string
	ExpiresAt   time.Time
	OldPassword string
	NewPassword string
}

type ChangePassword struct {
	repo    identity.Repository
	revoked revocation.Store
	audit   audit.Sink
	now     func() time.Time
}

func NewChangePassword(repo identity.Repository, revoked revocation.Store, audit audit.Sink) *ChangePassword {
	return &ChangePassword{repo: repo, revoked: revoked, audit: audit, now: time.Now}
}

// Execute swaps the password and revokes the token that asked for it.
// Refresh tokens issued earlier stop working through the token version.
func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) error {
	u, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if !checkPassword(u.PasswordHash, in.OldPassword) {
		return httperr.Unauthorized("invalid_old_password", "Old password is incorrect.")
	}
	if in.OldPassword == in.NewPassword {
		return httperr.Validation("password_unchanged", "New password must differ from the old one.")
	}

	hashed, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}

	columns := setPassword(u, hashed, uc.now())
	if err := uc.repo.UpdateUser(ctx, u, columns...); err != nil {
		return err
	}

	if err := uc.revoked.Revoke(ctx, in.JTI, u.ID, in.ExpiresAt); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   audit.ActionPasswordChanged,
		Entity:   "user",
		EntityID: &u.ID,
	})

	return nil
}
