package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
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

// BookingUpdate lists everything a party may change on an existing booking.
type BookingUpdate struct {
	Status      *string
	Notes       *string
	ScheduledAt *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type Update struct {
	access
	notifier notify.Notifier
	audit    audit.Sink
	now      func() time.Time
}

func NewUpdate(
	bookings domain.Repository,
	providers provider.Repository,
	notifier notify.Notifier,
	audit audit.Sink,
) *Update {
	return &Update{
		access:   access{bookings: bookings, providers: providers},
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Update) Execute(ctx context.Context, actor Actor, id uint, in BookingUpdate) (*models.Booking, error) {
	b, pid, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	from := b.Status

	var columns []string

	if in.ScheduledAt != nil {
		if err := domain.Reschedule(b, *in.ScheduledAt, now); err != nil {
			return nil, err
		}
		columns = append(columns, domain.FieldsSchedule...)
	}

	if in.Notes != nil {
		b.Notes = *in.Notes
		columns = append(columns, domain.FieldsNotes...)
	}

	if in.Status != nil {
		to, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := uc.authorizeStatus(actor, b, pid, to); err != nil {
			return nil, err
		}
		if err := domain.Transition(b, to, now); err != nil {
			return nil, err
		}
		columns = append(columns, domain.FieldsStatus...)
	}

	if err := uc.bookings.UpdateBooking(ctx, b, domain.Status(from), columns...); err != nil {
		return nil, err
	}

	if b.Status != from {
		for _, uid := range uc.parties(ctx, b, actor.UserID) {
			uc.notifier.Notify(ctx, uid, notification.TypeBookingUpdate,
				fmt.Sprintf("Booking #%d is now %s.", b.ID, b.Status))
		}

		uc.audit.Dispatch(audit.Event{
			UserID:   &actor.UserID,
			Action:   audit.ActionBookingStatusChanged,
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]any{"from": from, "to": b.Status},
		})
	} else if in.ScheduledAt != nil {
		for _, uid := range uc.parties(ctx, b, actor.UserID) {
			uc.notifier.Notify(ctx, uid, notification.TypeBookingUpdate,
				fmt.Sprintf("Booking #%d was rescheduled to %s.", b.ID, b.ScheduledAt.Format(time.RFC3339)))
		}
	}

	return b, nil
}

// authorizeStatus lets providers drive only the bookings assigned to them.
func (uc *Update) authorizeStatus(actor Actor, b *models.Booking, pid *uint, to domain.Status) error {
	if err := domain.CanDrive(actor.Role, to); err != nil {
		return err
	}
	if actor.Role != identity.RoleProvider || to == domain.StatusCancelled {
		return nil
	}
	if pid == nil || b.ProviderID == nil || *b.ProviderID != *pid {
		return httperr.Forbidden("not_assigned_provider", "Only the assigned provider can change this booking.")
	}
	return nil
}
