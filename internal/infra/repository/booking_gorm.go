package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).
		Omit("Customer", "Provider", "Service", "Payment", "Review").
		Create(b).Error
}

func (r *BookingGormRepository) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("AddOns").
		Preload("Payment").
		Preload("Review").
		First(&b, id).Error; err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{}).Preload("Service")

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.ProviderID != nil {
		q = q.Where("provider_id = ?", *f.ProviderID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	var bookings []models.Booking
	err := q.Order("scheduled_at DESC").Find(&bookings).Error
	return bookings, err
}

// UpdateBooking writes the given columns only while the stored status is
// still from. A transition committed since the booking was read fails the
// write instead of being overwritten.
func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
	columns ...string,
) error {

	if len(columns) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(b).
		Where("status = ?", string(from)).
		Select(columns).
		Omit(clause.Associations).
		Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.New(
			httperr.KindInvalidTransition,
			"booking_status_changed",
			"Booking was changed by another request. Reload and try again.",
		)
	}
	return nil
}

// DeleteBooking removes the booking with everything it owns.
func (r *BookingGormRepository) DeleteBooking(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", id).Delete(&models.BookingAddOn{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("booking_not_found", "booking not found")
		}
		return nil
	})
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

// CreatePayment relies on the unique booking_id index: a second payment for
// the same booking is a Conflict even when two requests race.
func (r *BookingGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "payment")
}

func (r *BookingGormRepository) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "payment")
	}
	return &p, nil
}

func (r *BookingGormRepository) GetPaymentByBooking(ctx context.Context, bookingID uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&p).Error; err != nil {
		return nil, translate(err, "payment")
	}
	return &p, nil
}

func (r *BookingGormRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *BookingGormRepository) ListPayments(
	ctx context.Context,
	status *domain.PaymentStatus,
) ([]models.Payment, error) {

	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var payments []models.Payment
	err := q.Order("created_at DESC, id DESC").Find(&payments).Error
	return payments, err
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *BookingGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	return translate(r.db.WithContext(ctx).Create(rv).Error, "review")
}

func (r *BookingGormRepository) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, translate(err, "review")
	}
	return &rv, nil
}

func (r *BookingGormRepository) UpdateReview(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *BookingGormRepository) ListReviews(ctx context.Context, providerID *uint) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if providerID != nil {
		q = q.Where("provider_id = ?", *providerID)
	}

	var reviews []models.Review
	err := q.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *BookingGormRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"status = ? AND reminder_sent_at IS NULL AND scheduled_at BETWEEN ? AND ?",
			string(domain.StatusConfirmed),
			from,
			to,
		).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingGormRepository) MarkReminderSent(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at).Error
}
