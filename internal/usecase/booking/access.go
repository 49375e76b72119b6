package booking

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// Actor is the authenticated user performing a booking operation.
type Actor struct {
	UserID uint
	Role   identity.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == identity.RoleAdmin
}

type access struct {
	bookings  domain.Repository
	providers provider.Repository
}

// providerID resolves the provider record of a provider actor. Users without
// one get nil.
func (a access) providerID(ctx context.Context, actor Actor) (*uint, error) {
	if actor.Role != identity.RoleProvider {
		return nil, nil
	}
	p, err := a.providers.GetProviderByUserID(ctx, actor.UserID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p.ID, nil
}

// load fetches a booking visible to actor: its customer, its provider or an admin.
func (a access) load(ctx context.Context, actor Actor, id uint) (*models.Booking, *uint, error) {
	b, err := a.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	pid, err := a.providerID(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	if actor.IsAdmin() || domain.IsParty(b, actor.UserID, pid) {
		return b, pid, nil
	}
	return nil, nil, httperr.Forbidden("booking_forbidden", "You do not have access to this booking.")
}

// parties lists the user ids involved in a booking, skipping the actor.
func (a access) parties(ctx context.Context, b *models.Booking, actorID uint) []uint {
	var ids []uint
	if b.CustomerID != actorID {
		ids = append(ids, b.CustomerID)
	}
	if b.ProviderID == nil {
		return ids
	}

	p, err := a.providers.GetProviderByID(ctx, *b.ProviderID)
	if err != nil {
		return ids
	}
	if p.UserID != actorID {
		ids = append(ids, p.UserID)
	}
	return ids
}
