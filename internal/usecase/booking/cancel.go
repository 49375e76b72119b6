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

type CancelInput struct {
	Reason string
	Fee    *float64
}

type Cancel struct {
	access
	notifier notify.Notifier
	audit    audit.Sink
	now      func() time.Time
}

func NewCancel(
	bookings domain.Repository,
	providers provider.Repository,
	notifier notify.Notifier,
	audit audit.Sink,
) *Cancel {
	return &Cancel{
		access:   access{bookings: bookings, providers: providers},
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

// Execute cancels a booking. The payment, if any, is left as it is.
func (uc *Cancel) Execute(ctx context.Context, actor Actor, id uint, in CancelInput) (*models.Booking, error) {
	b, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Fee != nil && actor.Role != identity.RoleProvider && !actor.IsAdmin() {
		return nil, httperr.Forbidden("fee_forbidden", "Only providers and admins can set a cancellation fee.")
	}

	from := domain.Status(b.Status)
	if err := domain.Cancel(b, in.Reason, in.Fee, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.bookings.UpdateBooking(ctx, b, from, domain.FieldsStatus...); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Booking #%d was cancelled.", b.ID)
	if in.Reason != "" {
		msg = fmt.Sprintf("Booking #%d was cancelled: %s", b.ID, in.Reason)
	}
	for _, uid := range uc.parties(ctx, b, actor.UserID) {
		uc.notifier.Notify(ctx, uid, notification.TypeBookingUpdate, msg)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionBookingCancelled,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": in.Reason, "fee": in.Fee},
	})

	return b, nil
}
