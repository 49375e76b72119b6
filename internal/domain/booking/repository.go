package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type ListFilter struct {
	CustomerID *uint
	ProviderID *uint
	Status     *Status
}

// Column groups for UpdateBooking. Each operation writes only its own group.
var (
	FieldsStatus   = []string{"status", "cancellation_reason", "cancellation_fee", "cancelled_at", "completed_at"}
	FieldsSchedule = []string{"scheduled_at", "reminder_sent_at"}
	FieldsNotes    = []string{"notes"}
)

type Repository interface {
	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking, from Status, columns ...string) error
	DeleteBooking(ctx context.Context, id uint) error

	// -------- Payment --------
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	GetPaymentByBooking(ctx context.Context, bookingID uint) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, status *PaymentStatus) ([]models.Payment, error)

	// -------- Review --------
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) error
	ListReviews(ctx context.Context, providerID *uint) ([]models.Review, error)

	// -------- Reminders --------
	ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	MarkReminderSent(ctx context.Context, id uint, at time.Time) error
}
