package catalog

import (
	"context"

	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type ServiceFilter struct {
	CategoryID *uint
	ActiveOnly bool
}

type Repository interface {
	// -------- Categories --------
	CreateCategory(ctx context.Context, c *models.ServiceCategory) error
	GetCategory(ctx context.Context, id uint) (*models.ServiceCategory, error)
	ListCategories(ctx context.Context) ([]models.ServiceCategory, error)
	UpdateCategory(ctx context.Context, c *models.ServiceCategory) error
	DeleteCategory(ctx context.Context, id uint) error

	// -------- Services --------
	CreateService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, f ServiceFilter) ([]models.Service, error)
	UpdateService(ctx context.Context, s *models.Service) error

	// -------- Add-ons --------
	CreateAddOn(ctx context.Context, a *models.ServiceAddOn) error
	GetAddOn(ctx context.Context, id uint) (*models.ServiceAddOn, error)
	UpdateAddOn(ctx context.Context, a *models.ServiceAddOn) error
	DeleteAddOn(ctx context.Context, id uint) error

	// -------- Schedule / area pricing --------
	ReplaceAvailability(ctx context.Context, serviceID uint, windows []models.ServiceAvailability) error
	CreateAreaRule(ctx context.Context, r *models.AreaPricingRule) error
}
