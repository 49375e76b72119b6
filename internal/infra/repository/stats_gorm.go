package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/dto"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) AdminStats(ctx context.Context) (*dto.AdminStatsDTO, error) {
	db := r.db.WithContext(ctx)
	out := &dto.AdminStatsDTO{BookingsByStatus: map[string]int64{}}

	if err := db.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", string(identity.RoleProvider), true).
		Count(&out.TotalProviders).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Provider{}).
		Where("verification_status = ?", string(provider.StatusPending)).
		Count(&out.PendingVerifications).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Booking{}).Count(&out.TotalBookings).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out.BookingsByStatus[row.Status] = row.Total
	}

	if err := db.Model(&models.Service{}).
		Where("is_active = ?", true).
		Count(&out.ActiveServices).Error; err != nil {
		return nil, err
	}

	return out, nil
}
