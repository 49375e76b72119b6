package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ identity.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "user")
}

// lockstepColumns change only inside GrantProviderRole and ApplyDecision.
var lockstepColumns = []string{"role", "is_verified"}

func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return translate(
		r.db.WithContext(ctx).
			Model(u).
			Select(columns).
			Omit(append([]string{clause.Associations}, lockstepColumns...)...).
			Updates(u).Error,
		"user",
	)
}

func (r *UserGormRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("Provider").First(&u, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserGormRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserGormRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *UserGormRepository) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, "email_verification_token = ?", token)
}

func (r *UserGormRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, "password_reset_token = ?", token)
}

func (r *UserGormRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserGormRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("password_reset_token IS NOT NULL AND password_reset_expiration < ?", now).
		Updates(map[string]any{
			"password_reset_token":      nil,
			"password_reset_expiration": nil,
		})
	return res.RowsAffected, res.Error
}
