package booking

import (
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(b *models.Booking, to Status, now time.Time) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}

	b.Status = string(to)
	switch to {
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return nil
}

// Cancel never touches the payment: refunds are a separate admin action.
func Cancel(b *models.Booking, reason string, fee *float64, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	if fee != nil && *fee < 0 {
		return httperr.Validation("invalid_fee", "Cancellation fee cannot be negative.")
	}

	b.Status = string(StatusCancelled)
	b.CancellationReason = reason
	b.CancellationFee = fee
	b.CancelledAt = &now
	return nil
}

func Reschedule(b *models.Booking, at time.Time, now time.Time) error {
	if err := CanReschedule(Status(b.Status)); err != nil {
		return err
	}
	if !at.After(now) {
		return httperr.Validation("scheduled_in_past", "Scheduled time must be in the future.")
	}

	b.ScheduledAt = at
	b.ReminderSentAt = nil
	return nil
}

// IsParty reports whether userID is the booking's customer or assigned provider user.
func IsParty(b *models.Booking, userID uint, providerID *uint) bool {
	if b.CustomerID == userID {
		return true
	}
	return providerID != nil && b.ProviderID != nil && *b.ProviderID == *providerID
}

// ===============================
// Reviews
// ===============================

func CanReview(b *models.Booking, customerID uint) error {
	if b.CustomerID != customerID {
		return httperr.Forbidden("not_booking_customer", "Only the booking's customer can review it.")
	}
	if Status(b.Status) != StatusCompleted {
		return httperr.InvalidState("booking_not_completed", "Only completed bookings can be reviewed.")
	}
	if b.ProviderID == nil {
		return httperr.InvalidState("booking_without_provider", "Booking has no provider to review.")
	}
	return nil
}

func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return httperr.Validation("invalid_rating", "Rating must be between 1 and 5.")
	}
	return nil
}
