package notification

import (
	"context"

	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type Type string

const (
	TypeBookingConfirmation  Type = "booking_confirmation"
	TypeBookingUpdate        Type = "booking_update"
	TypeBookingReminder      Type = "booking_reminder"
	TypePaymentConfirmation  Type = "payment_confirmation"
	TypeProviderVerification Type = "provider_verification"
	TypeReviewReceived       Type = "review_received"
)

type Repository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) (*models.Notification, error)
	DeleteNotification(ctx context.Context, id, userID uint) error
}
