package booking

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type Queries struct {
	access
}

func NewQueries(bookings domain.Repository, providers provider.Repository) *Queries {
	return &Queries{access{bookings: bookings, providers: providers}}
}

// List scopes by role: customers see their own, providers their assigned
// bookings and admins everything.
func (q *Queries) List(ctx context.Context, actor Actor, status string) ([]models.Booking, error) {
	var f domain.ListFilter

	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	switch actor.Role {
	case identity.RoleAdmin:
	case identity.RoleProvider:
		pid, err := q.providerID(ctx, actor)
		if err != nil {
			return nil, err
		}
		if pid == nil {
			return []models.Booking{}, nil
		}
		f.ProviderID = pid
	default:
		f.CustomerID = &actor.UserID
	}

	return q.bookings.ListBookings(ctx, f)
}

func (q *Queries) Get(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	b, _, err := q.load(ctx, actor, id)
	return b, err
}

// Payment returns the payment of a booking visible to actor.
func (q *Queries) Payment(ctx context.Context, actor Actor, bookingID uint) (*models.Payment, error) {
	if _, _, err := q.load(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	return q.bookings.GetPaymentByBooking(ctx, bookingID)
}
