// Package catalog manages categories, services and their pricing data.
package catalog

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/catalog"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type Manager struct {
	repo domain.Repository
}

func NewManager(repo domain.Repository) *Manager {
	return &Manager{repo: repo}
}

// ======================================================
// CATEGORIES
// ======================================================

type CategoryInput struct {
	Name        *string
	Description *string
}

func (m *Manager) CreateCategory(ctx context.Context, in CategoryInput) (*models.ServiceCategory, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, httperr.Validation("name_required", "Category name is required.")
	}

	c := &models.ServiceCategory{Name: strings.TrimSpace(*in.Name)}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := m.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Manager) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.ServiceCategory, error) {
	c, err := m.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := m.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Manager) GetCategory(ctx context.Context, id uint) (*models.ServiceCategory, error) {
	return m.repo.GetCategory(ctx, id)
}

func (m *Manager) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	return m.repo.ListCategories(ctx)
}

func (m *Manager) DeleteCategory(ctx context.Context, id uint) error {
	return m.repo.DeleteCategory(ctx, id)
}

// ======================================================
// SERVICES
// ======================================================

type ServiceInput struct {
	CategoryID        *uint
	Name              *string
	Description       *string
	PricingModel      *string
	BasePrice         *float64
	UnitLabel         *string
	EstimatedDuration *int
	RequiresMaterials *bool
	IsActive          *bool
	ImageURL          *string
}

func (m *Manager) CreateService(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, httperr.Validation("name_required", "Service name is required.")
	}
	if in.BasePrice == nil {
		return nil, httperr.Validation("base_price_required", "Base price is required.")
	}

	s := &models.Service{
		PricingModel: string(domain.PricingFixed),
		IsActive:     true,
	}
	if err := m.apply(ctx, s, in); err != nil {
		return nil, err
	}
	if err := m.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) UpdateService(ctx context.Context, id uint, in ServiceInput) (*models.Service, error) {
	s, err := m.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.apply(ctx, s, in); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateService(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) apply(ctx context.Context, s *models.Service, in ServiceInput) error {
	if in.CategoryID != nil {
		if _, err := m.repo.GetCategory(ctx, *in.CategoryID); err != nil {
			return err
		}
		s.CategoryID = in.CategoryID
		s.Category = nil
	}
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.PricingModel != nil {
		pm, err := domain.ParsePricingModel(*in.PricingModel)
		if err != nil {
			return err
		}
		s.PricingModel = string(pm)
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return httperr.Validation("invalid_base_price", "Base price cannot be negative.")
		}
		s.BasePrice = *in.BasePrice
	}
	if in.UnitLabel != nil {
		s.UnitLabel = *in.UnitLabel
	}
	if in.EstimatedDuration != nil {
		if *in.EstimatedDuration < 0 {
			return httperr.Validation("invalid_duration", "Estimated duration cannot be negative.")
		}
		s.EstimatedDuration = *in.EstimatedDuration
	}
	if in.RequiresMaterials != nil {
		s.RequiresMaterials = *in.RequiresMaterials
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if in.ImageURL != nil {
		s.ImageURL = *in.ImageURL
	}
	return nil
}

func (m *Manager) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return m.repo.GetService(ctx, id)
}

func (m *Manager) ListServices(ctx context.Context, f domain.ServiceFilter) ([]models.Service, error) {
	return m.repo.ListServices(ctx, f)
}

// DeactivateService hides a service from new bookings; past bookings keep it.
func (m *Manager) DeactivateService(ctx context.Context, id uint) error {
	s, err := m.repo.GetService(ctx, id)
	if err != nil {
		return err
	}
	s.IsActive = false
	return m.repo.UpdateService(ctx, s)
}

// ======================================================
// ADD-ONS
// ======================================================

type AddOnInput struct {
	Name        *string
	Description *string
	Price       *float64
	IsActive    *bool
}

func (m *Manager) CreateAddOn(ctx context.Context, serviceID uint, in AddOnInput) (*models.ServiceAddOn, error) {
	if _, err := m.repo.GetService(ctx, serviceID); err != nil {
		return nil, err
	}
	if in.Name == nil || in.Price == nil {
		return nil, httperr.Validation("add_on_incomplete", "Add-on name and price are required.")
	}

	a := &models.ServiceAddOn{ServiceID: serviceID, IsActive: true}
	if err := applyAddOn(a, in); err != nil {
		return nil, err
	}
	if err := m.repo.CreateAddOn(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (m *Manager) UpdateAddOn(ctx context.Context, id uint, in AddOnInput) (*models.ServiceAddOn, error) {
	a, err := m.repo.GetAddOn(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAddOn(a, in); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateAddOn(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func applyAddOn(a *models.ServiceAddOn, in AddOnInput) error {
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return httperr.Validation("invalid_price", "Price cannot be negative.")
		}
		a.Price = *in.Price
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	return nil
}

func (m *Manager) DeleteAddOn(ctx context.Context, id uint) error {
	return m.repo.DeleteAddOn(ctx, id)
}

// ======================================================
// AVAILABILITY / AREA PRICING
// ======================================================

func (m *Manager) SetAvailability(
	ctx context.Context,
	serviceID uint,
	windows []models.ServiceAvailability,
) ([]models.ServiceAvailability, error) {

	if _, err := m.repo.GetService(ctx, serviceID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAvailability(windows); err != nil {
		return nil, err
	}
	if err := m.repo.ReplaceAvailability(ctx, serviceID, windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func (m *Manager) AddAreaRule(ctx context.Context, serviceID uint, rule models.AreaPricingRule) (*models.AreaPricingRule, error) {
	s, err := m.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if domain.PricingModel(s.PricingModel) != domain.PricingAreaBased {
		return nil, httperr.InvalidState("not_area_based", "Area pricing rules only apply to area-based services.")
	}
	if err := domain.ValidateAreaRule(&rule); err != nil {
		return nil, err
	}

	rule.ID = 0
	rule.ServiceID = serviceID
	if err := m.repo.CreateAreaRule(ctx, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}
