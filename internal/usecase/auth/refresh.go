package auth

import (
	"context"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
)

type RefreshOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Refresh trades a refresh token for a new access token. The role claim is
// read again from the store, so a role change shows up here at the latest.
type Refresh struct {
	repo    identity.Repository
	issuer  *token.Issuer
	revoked revocation.Store
}

func NewRefresh(repo identity.Repository, issuer *token.Issuer, revoked revocation.Store) *Refresh {
	return &Refresh{repo: repo, issuer: issuer, revoked: revoked}
}

func (uc *Refresh) Execute(ctx context.Context, raw string) (*RefreshOutput, error) {
	claims, err := uc.issuer.Parse(raw, token.TypeRefresh)
	if err != nil {
		return nil, httperr.Unauthorized("invalid_refresh_token", "Refresh token is invalid or expired.")
	}

	revoked, err := uc.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, httperr.Revoked("Refresh token has been revoked.")
	}

	userID, _ := claims.UserID()
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, httperr.Forbidden("account_inactive", "Account is inactive. Cannot refresh token.")
	}
	if claims.Version != u.TokenVersion {
		return nil, httperr.Revoked("Password changed; please log in again.")
	}

	access, err := uc.issuer.IssueAccess(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &RefreshOutput{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(uc.issuer.AccessTTL().Seconds()),
	}, nil
}
