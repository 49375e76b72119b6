package provider

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type GrantInput struct {
	UserID          uint
	Bio             string
	AreaDescription string
}

type DecisionInput struct {
	UserID uint
	Action Action
	Notes  string
	Now    time.Time
}

type Repository interface {
	// -------- State machine (transactional) --------
	GrantProviderRole(ctx context.Context, in GrantInput) (*models.Provider, error)
	ApplyDecision(ctx context.Context, in DecisionInput) (*models.Provider, *models.User, error)

	// -------- Profile --------
	GetProviderByID(ctx context.Context, id uint) (*models.Provider, error)
	GetProviderByUserID(ctx context.Context, userID uint) (*models.Provider, error)
	// UpdateProfile writes the self-service profile columns only.
	UpdateProfile(ctx context.Context, p *models.Provider) error
	// AttachDocument stores the document URL and reopens a rejected
	// provider in one transaction.
	AttachDocument(ctx context.Context, providerID uint, url string) (*models.Provider, error)
	ListProviders(ctx context.Context, status Status) ([]models.Provider, error)

	// -------- Offered services --------
	AddService(ctx context.Context, providerID, serviceID uint) (*models.ProviderService, error)
	RemoveService(ctx context.Context, providerID, serviceID uint) error
	OffersService(ctx context.Context, providerID, serviceID uint) (bool, error)

	// -------- Rating --------
	RecomputeRating(ctx context.Context, providerID uint) (float64, error)
}
