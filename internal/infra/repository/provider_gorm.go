package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/catalog"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type ProviderGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*ProviderGormRepository)(nil)

func NewProviderGormRepository(db *gorm.DB) *ProviderGormRepository {
	return &ProviderGormRepository{db: db}
}

// --------------------------------------------------
// State machine
// --------------------------------------------------

// GrantProviderRole creates the pending provider record and flips the user's
// role in one transaction. Either both writes land or neither does.
func (r *ProviderGormRepository) GrantProviderRole(
	ctx context.Context,
	in domain.GrantInput,
) (*models.Provider, error) {

	var created *models.Provider

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, in.UserID).Error; err != nil {
			return translate(err, "user")
		}

		var count int64
		if err := tx.Model(&models.Provider{}).
			Where("user_id = ?", u.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.Conflict("provider_exists", "A provider profile already exists for this user.")
		}

		if err := domain.CanRequestRole(identity.Role(u.Role), identity.RoleProvider); err != nil {
			return err
		}

		p := domain.NewPending(u.ID, in.Bio, in.AreaDescription)
		if err := tx.Create(p).Error; err != nil {
			return translate(err, "provider")
		}

		domain.Grant(&u)
		if err := tx.Model(&models.User{}).
			Where("id = ?", u.ID).
			Update("role", u.Role).Error; err != nil {
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ApplyDecision writes the verification outcome to the provider and the
// user's verified flag in one transaction.
func (r *ProviderGormRepository) ApplyDecision(
	ctx context.Context,
	in domain.DecisionInput,
) (*models.Provider, *models.User, error) {

	var (
		p models.Provider
		u models.User
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, in.UserID).Error; err != nil {
			return translate(err, "user")
		}

		if err := domain.CanDecide(identity.Role(u.Role)); err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", u.ID).
			First(&p).Error; err != nil {
			return translate(err, "provider")
		}

		domain.Decide(&p, &u, in.Action, in.Notes, in.Now)

		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", u.ID).
			Update("is_verified", u.IsVerified).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &p, &u, nil
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *ProviderGormRepository) GetProviderByID(ctx context.Context, id uint) (*models.Provider, error) {
	var p models.Provider
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		First(&p, id).Error; err != nil {
		return nil, translate(err, "provider")
	}
	return &p, nil
}

func (r *ProviderGormRepository) GetProviderByUserID(ctx context.Context, userID uint) (*models.Provider, error) {
	var p models.Provider
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, translate(err, "provider")
	}
	return &p, nil
}

// profileColumns never include verification fields, so a profile edit made
// from a stale read cannot undo an admin decision.
var profileColumns = []string{"bio", "is_available", "service_radius", "service_area_description"}

func (r *ProviderGormRepository) UpdateProfile(ctx context.Context, p *models.Provider) error {
	return r.db.WithContext(ctx).
		Model(p).
		Select(profileColumns).
		Omit(clause.Associations).
		Updates(p).Error
}

func (r *ProviderGormRepository) AttachDocument(
	ctx context.Context,
	providerID uint,
	url string,
) (*models.Provider, error) {

	var p models.Provider

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, providerID).Error; err != nil {
			return translate(err, "provider")
		}

		current := domain.Status(p.VerificationStatus)
		next := domain.StatusAfterUpload(current)

		if err := tx.Model(&models.Provider{}).
			Where("id = ? AND verification_status = ?", p.ID, string(current)).
			Updates(map[string]any{
				"verification_document_url": url,
				"verification_status":       string(next),
			}).Error; err != nil {
			return err
		}

		return tx.First(&p, providerID).Error
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProviders filters by verification status when one is given.
func (r *ProviderGormRepository) ListProviders(
	ctx context.Context,
	status domain.Status,
) ([]models.Provider, error) {

	q := r.db.WithContext(ctx).Model(&models.Provider{})
	if status != "" {
		q = q.Where("verification_status = ?", string(status))
	}

	var providers []models.Provider
	err := q.Order("rating DESC, id ASC").Find(&providers).Error
	return providers, err
}

// --------------------------------------------------
// Offered services
// --------------------------------------------------

func (r *ProviderGormRepository) AddService(
	ctx context.Context,
	providerID, serviceID uint,
) (*models.ProviderService, error) {

	ps := &models.ProviderService{ProviderID: providerID, ServiceID: serviceID}
	if err := r.db.WithContext(ctx).Create(ps).Error; err != nil {
		return nil, translate(err, "provider_service")
	}
	return ps, nil
}

func (r *ProviderGormRepository) RemoveService(ctx context.Context, providerID, serviceID uint) error {
	res := r.db.WithContext(ctx).
		Where("provider_id = ? AND service_id = ?", providerID, serviceID).
		Delete(&models.ProviderService{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("provider_service_not_found", "Provider does not offer this service.")
	}
	return nil
}

func (r *ProviderGormRepository) OffersService(ctx context.Context, providerID, serviceID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProviderService{}).
		Where("provider_id = ? AND service_id = ?", providerID, serviceID).
		Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// Rating
// --------------------------------------------------

// RecomputeRating averages approved reviews, or every review while none is
// approved yet. A provider without reviews keeps its current rating.
func (r *ProviderGormRepository) RecomputeRating(ctx context.Context, providerID uint) (float64, error) {
	db := r.db.WithContext(ctx)

	var ratings []int
	if err := db.Model(&models.Review{}).
		Where("provider_id = ? AND is_approved = ?", providerID, true).
		Pluck("rating", &ratings).Error; err != nil {
		return 0, err
	}
	if len(ratings) == 0 {
		if err := db.Model(&models.Review{}).
			Where("provider_id = ?", providerID).
			Pluck("rating", &ratings).Error; err != nil {
			return 0, err
		}
	}

	var p models.Provider
	if err := db.First(&p, providerID).Error; err != nil {
		return 0, translate(err, "provider")
	}
	if len(ratings) == 0 {
		return p.Rating, nil
	}

	sum := 0
	for _, v := range ratings {
		sum += v
	}
	avg := catalog.RoundCents(float64(sum) / float64(len(ratings)))

	if err := db.Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("rating", avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}
