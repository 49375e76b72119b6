package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*NotificationGormRepository)(nil)

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, id, userID uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return nil, translate(err, "notification")
	}

	n.IsRead = true
	if err := r.db.WithContext(ctx).
		Model(&n).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationGormRepository) DeleteNotification(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("notification_not_found", "notification not found")
	}
	return nil
}
