package provider

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RequestRoleInput struct {
	UserID          uint
	RequestedRole   string
	Message         string
	AreaDescription string
}

// ======================================================
// USE CASE
// ======================================================

type RequestRole struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewRequestRole(repo domain.Repository, audit audit.Sink) *RequestRole {
	return &RequestRole{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute starts provider onboarding. Tokens issued before the change keep
// the customer role until they are refreshed.
func (uc *RequestRole) Execute(ctx context.Context, in RequestRoleInput) (*models.Provider, error) {
	requested := identity.Role(strings.ToLower(strings.TrimSpace(in.RequestedRole)))
	if err := domain.CanRequestRole(identity.RoleCustomer, requested); err != nil {
		return nil, err
	}

	p, err := uc.repo.GrantProviderRole(ctx, domain.GrantInput{
		UserID:          in.UserID,
		Bio:             in.Message,
		AreaDescription: in.AreaDescription,
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   audit.ActionRoleChangeRequested,
		Entity:   "provider",
		EntityID: &p.ID,
		Metadata: map[string]any{"requested_role": string(requested)},
	})

	return p, nil
}
