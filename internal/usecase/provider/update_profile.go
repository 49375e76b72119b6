package provider

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ProfileUpdate lists every field a provider may change on itself. Nil means
// "leave as is". VerificationStatus is only here to be refused.
type ProfileUpdate struct {
	Bio                    *string
	IsAvailable            *bool
	ServiceRadius          *float64
	ServiceAreaDescription *string

	VerificationStatus *string
}

type UpdateProfile struct {
	repo domain.Repository
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{repo: repo}
}

func (uc *UpdateProfile) Execute(ctx context.Context, userID uint, in ProfileUpdate) (*models.Provider, error) {
	if in.VerificationStatus != nil {
		return nil, httperr.Forbidden("verification_status_readonly", "Verification status can only be changed by an admin.")
	}

	p, err := uc.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.ServiceRadius != nil {
		if *in.ServiceRadius < 0 {
			return nil, httperr.Validation("invalid_service_radius", "Service radius cannot be negative.")
		}
		p.ServiceRadius = in.ServiceRadius
	}
	if in.ServiceAreaDescription != nil {
		p.ServiceAreaDescription = *in.ServiceAreaDescription
	}

	if err := uc.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
