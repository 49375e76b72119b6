package provider

import (
	"context"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/catalog"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type OfferedServices struct {
	repo    domain.Repository
	catalog catalog.Repository
}

func NewOfferedServices(repo domain.Repository, catalog catalog.Repository) *OfferedServices {
	return &OfferedServices{repo: repo, catalog: catalog}
}

func (uc *OfferedServices) Add(ctx context.Context, userID, serviceID uint) (*models.ProviderService, error) {
	p, err := uc.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, httperr.InvalidState("service_inactive", "Service is not active.")
	}

	return uc.repo.AddService(ctx, p.ID, svc.ID)
}

func (uc *OfferedServices) Remove(ctx context.Context, userID, serviceID uint) error {
	p, err := uc.repo.GetProviderByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return uc.repo.RemoveService(ctx, p.ID, serviceID)
}
