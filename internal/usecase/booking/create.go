package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/catalog"
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
	CustomerID  uint
	ServiceID   uint
	ProviderID  *uint
	ScheduledAt time.Time

	StreetAddress string
	City          string
	State         string
	ZipCode       string
	Latitude      *float64
	Longitude     *float64

	Notes         string
	DurationHours *float64
	Area          *float64
	AddOnIDs      []uint
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	bookings  domain.Repository
	users     identity.Repository
	catalog   catalog.Repository
	providers provider.Repository
	notifier  notify.Notifier
	audit     audit.Sink
	now       func() time.Time
}

func NewCreate(
	bookings domain.Repository,
	users identity.Repository,
	catalog catalog.Repository,
	providers provider.Repository,
	notifier notify.Notifier,
	audit audit.Sink,
) *Create {
	return &Create{
		bookings:  bookings,
		users:     users,
		catalog:   catalog,
		providers: providers,
		notifier:  notifier,
		audit:     audit,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Booking, error) {
	customer, err := uc.users.GetUserByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, httperr.Forbidden("user_inactive", "Inactive users cannot book services.")
	}

	if strings.TrimSpace(in.StreetAddress) == "" || strings.TrimSpace(in.City) == "" {
		return nil, httperr.Validation("address_required", "Street address and city are required.")
	}

	now := uc.now()
	if !in.ScheduledAt.After(now) {
		return nil, httperr.Validation("scheduled_in_past", "Scheduled time must be in the future.")
	}

	svc, err := uc.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, httperr.InvalidState("service_inactive", "Service is not active.")
	}

	var prov *models.Provider
	if in.ProviderID != nil {
		prov, err = uc.checkProvider(ctx, *in.ProviderID, svc.ID)
		if err != nil {
			return nil, err
		}
	}

	addOns, err := selectAddOns(svc, in.AddOnIDs)
	if err != nil {
		return nil, err
	}

	total, err := catalog.Quote(svc, catalog.QuoteInput{
		DurationHours: in.DurationHours,
		Area:          in.Area,
		AddOns:        addOns,
	})
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		CustomerID:    customer.ID,
		ProviderID:    in.ProviderID,
		ServiceID:     svc.ID,
		Status:        string(domain.InitialStatus()),
		ScheduledAt:   in.ScheduledAt,
		StreetAddress: strings.TrimSpace(in.StreetAddress),
		City:          strings.TrimSpace(in.City),
		State:         in.State,
		ZipCode:       in.ZipCode,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Notes:         in.Notes,
		DurationHours: in.DurationHours,
		Area:          in.Area,
		TotalCost:     total,
	}
	for _, a := range addOns {
		b.AddOns = append(b.AddOns, models.BookingAddOn{
			AddOnID: a.ID,
			Name:    a.Name,
			Price:   a.Price,
		})
	}

	if err := uc.bookings.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	b.Service = svc

	if prov != nil {
		uc.notifier.Notify(ctx, prov.UserID, notification.TypeBookingConfirmation,
			fmt.Sprintf("New booking #%d for %s on %s.", b.ID, svc.Name, b.ScheduledAt.Format(time.RFC3339)))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &customer.ID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"service_id": svc.ID, "total_cost": total},
	})

	return b, nil
}

func (uc *Create) checkProvider(ctx context.Context, providerID, serviceID uint) (*models.Provider, error) {
	p, err := uc.providers.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !provider.IsBookable(p) {
		return nil, httperr.InvalidState("provider_unavailable", "Provider is not approved or not available.")
	}

	offers, err := uc.providers.OffersService(ctx, p.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, httperr.Validation("service_not_offered", "Provider does not offer this service.")
	}
	return p, nil
}

// selectAddOns resolves ids against the service's own active add-ons.
func selectAddOns(svc *models.Service, ids []uint) ([]models.ServiceAddOn, error) {
	byID := make(map[uint]models.ServiceAddOn, len(svc.AddOns))
	for _, a := range svc.AddOns {
		byID[a.ID] = a
	}

	seen := make(map[uint]bool, len(ids))
	var out []models.ServiceAddOn
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		a, ok := byID[id]
		if !ok || !a.IsActive {
			return nil, httperr.Validation("invalid_add_on", fmt.Sprintf("Add-on %d is not available for this service.", id))
		}
		out = append(out, a)
	}
	return out, nil
}
