// Package payment records booking payments and their admin-driven updates.
package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	UserID    uint
	Role      identity.Role
	BookingID uint
	Method    string
}

type PaymentUpdate struct {
	Status       *string
	RefundAmount *float64
	RefundStatus *string
}

// ======================================================
// USE CASE
// ======================================================

type Payments struct {
	bookings  booking.Repository
	providers provider.Repository
	notifier  notify.Notifier
	audit     audit.Sink
}

func New(
	bookings booking.Repository,
	providers provider.Repository,
	notifier notify.Notifier,
	audit audit.Sink,
) *Payments {
	return &Payments{
		bookings:  bookings,
		providers: providers,
		notifier:  notifier,
		audit:     audit,
	}
}

// Create opens the single pending payment of a booking for its full cost.
func (uc *Payments) Create(ctx context.Context, in CreateInput) (*models.Payment, error) {
	method := strings.TrimSpace(in.Method)
	if method == "" {
		return nil, httperr.Validation("payment_method_required", "Payment method is required.")
	}

	b, err := uc.bookings.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != in.UserID && in.Role != identity.RoleAdmin {
		return nil, httperr.Forbidden("booking_forbidden", "Only the booking's customer can pay for it.")
	}
	if booking.Status(b.Status) == booking.StatusCancelled {
		return nil, httperr.InvalidState("booking_cancelled", "Cancelled bookings cannot be paid.")
	}

	ref := uuid.NewString()
	p := &models.Payment{
		BookingID:      b.ID,
		UserID:         b.CustomerID,
		Amount:         b.TotalCost,
		PaymentMethod:  method,
		Status:         string(booking.PaymentPending),
		TransactionRef: &ref,
	}
	if err := uc.bookings.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   audit.ActionPaymentCreated,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"booking_id": b.ID, "amount": p.Amount},
	})

	return p, nil
}

// Get returns a payment to its payer, the assigned provider or an admin.
func (uc *Payments) Get(ctx context.Context, userID uint, role identity.Role, id uint) (*models.Payment, error) {
	p, err := uc.bookings.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == identity.RoleAdmin || p.UserID == userID {
		return p, nil
	}

	if role == identity.RoleProvider {
		b, err := uc.bookings.GetBooking(ctx, p.BookingID)
		if err != nil {
			return nil, err
		}
		prov, err := uc.providers.GetProviderByUserID(ctx, userID)
		if err == nil && b.ProviderID != nil && *b.ProviderID == prov.ID {
			return p, nil
		}
	}
	return nil, httperr.Forbidden("payment_forbidden", "You do not have access to this payment.")
}

// List is the admin view over every payment, optionally by status.
func (uc *Payments) List(ctx context.Context, status string) ([]models.Payment, error) {
	if status == "" {
		return uc.bookings.ListPayments(ctx, nil)
	}
	st, err := booking.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.bookings.ListPayments(ctx, &st)
}

// Update applies an admin change. Refunds never exceed the paid amount.
func (uc *Payments) Update(ctx context.Context, adminID, id uint, in PaymentUpdate) (*models.Payment, error) {
	p, err := uc.bookings.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	from := p.Status

	if in.Status != nil {
		st, err := booking.ParsePaymentStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		p.Status = string(st)
	}
	if in.RefundAmount != nil {
		if err := booking.ValidateRefund(p, *in.RefundAmount); err != nil {
			return nil, err
		}
		p.RefundAmount = in.RefundAmount
	}
	if in.RefundStatus != nil {
		p.RefundStatus = *in.RefundStatus
	}

	if err := uc.bookings.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	if p.Status != from && booking.PaymentStatus(p.Status) == booking.PaymentCompleted {
		uc.notifier.Notify(ctx, p.UserID, notification.TypePaymentConfirmation,
			fmt.Sprintf("Payment of %.2f for booking #%d was received.", p.Amount, p.BookingID))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   audit.ActionPaymentUpdated,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"from": from, "to": p.Status},
	})

	return p, nil
}
