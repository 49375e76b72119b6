package booking

import (
	"context"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

type Delete struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDelete(repo domain.Repository, audit audit.Sink) *Delete {
	return &Delete{repo: repo, audit: audit}
}

// Execute hard deletes a booking together with its payment and review.
func (uc *Delete) Execute(ctx context.Context, actor Actor, id uint) error {
	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && b.CustomerID != actor.UserID {
		return httperr.Forbidden("booking_forbidden", "Only the customer or an admin can delete a booking.")
	}

	if err := uc.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionBookingDeleted,
		Entity:   "booking",
		EntityID: &id,
	})
	return nil
}
