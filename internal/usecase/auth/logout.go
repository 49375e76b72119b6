package auth

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
)

type LogoutInput struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time

	// RefreshToken is optional; when it belongs to the same user it is revoked too.
	RefreshToken string
}

type Logout struct {
	issuer  *token.Issuer
	revoked revocation.Store
}

func NewLogout(issuer *token.Issuer, revoked revocation.Store) *Logout {
	return &Logout{issuer: issuer, revoked: revoked}
}

func (uc *Logout) Execute(ctx context.Context, in LogoutInput) error {
	if err := uc.revoked.Revoke(ctx, in.JTI, in.UserID, in.ExpiresAt); err != nil {
		return err
	}

	if in.RefreshToken == "" {
		return nil
	}

	claims, err := uc.issuer.Parse(in.RefreshToken, token.TypeRefresh)
	if err != nil {
		return nil
	}
	if id, _ := claims.UserID(); id != in.UserID {
		return nil
	}
	return uc.revoked.Revoke(ctx, claims.ID, in.UserID, claims.ExpiresAtTime())
}
