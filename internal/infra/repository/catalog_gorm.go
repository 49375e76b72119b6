package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/catalog"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *CatalogGormRepository) CreateCategory(ctx context.Context, c *models.ServiceCategory) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "category")
}

func (r *CatalogGormRepository) GetCategory(ctx context.Context, id uint) (*models.ServiceCategory, error) {
	var c models.ServiceCategory
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &c, nil
}

func (r *CatalogGormRepository) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	var cats []models.ServiceCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *CatalogGormRepository) UpdateCategory(ctx context.Context, c *models.ServiceCategory) error {
	return translate(r.db.WithContext(ctx).Save(c).Error, "category")
}

// DeleteCategory detaches its services before removing the row.
func (r *CatalogGormRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Service{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.ServiceCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("category_not_found", "category not found")
		}
		return nil
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error, "service")
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("AddOns").
		Preload("Availability", func(db *gorm.DB) *gorm.DB { return db.Order("day_of_week ASC") }).
		Preload("AreaPricingRules", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&s, id).Error; err != nil {
		return nil, translate(err, "service")
	}
	return &s, nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, f domain.ServiceFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Model(&models.Service{}).Preload("Category")
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var services []models.Service
	err := q.Order("name ASC").Find(&services).Error
	return services, err
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error, "service")
}

// --------------------------------------------------
// Add-ons
// --------------------------------------------------

func (r *CatalogGormRepository) CreateAddOn(ctx context.Context, a *models.ServiceAddOn) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *CatalogGormRepository) GetAddOn(ctx context.Context, id uint) (*models.ServiceAddOn, error) {
	var a models.ServiceAddOn
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "add_on")
	}
	return &a, nil
}

func (r *CatalogGormRepository) UpdateAddOn(ctx context.Context, a *models.ServiceAddOn) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *CatalogGormRepository) DeleteAddOn(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ServiceAddOn{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("add_on_not_found", "add_on not found")
	}
	return nil
}

// --------------------------------------------------
// Schedule / area pricing
// --------------------------------------------------

// ReplaceAvailability swaps the whole weekly schedule of a service.
func (r *CatalogGormRepository) ReplaceAvailability(
	ctx context.Context,
	serviceID uint,
	windows []models.ServiceAvailability,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_id = ?", serviceID).
			Delete(&models.ServiceAvailability{}).Error; err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].ServiceID = serviceID
		}
		return translate(tx.Create(&windows).Error, "availability")
	})
}

func (r *CatalogGormRepository) CreateAreaRule(ctx context.Context, rule *models.AreaPricingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}
