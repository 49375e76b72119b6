package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/testutil"
)

type sent struct {
	UserID  uint
	Type    notification.Type
	Message string
}

type recorder struct {
	mu  sync.Mutex
	out []sent
}

func (r *recorder) Notify(_ context.Context, userID uint, typ notification.Type, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = append(r.out, sent{userID, typ, message})
}

func (r *recorder) to(userID uint) []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []sent
	for _, s := range r.out {
		if s.UserID == userID {
			res = append(res, s)
		}
	}
	return res
}

type fixture struct {
	db       *gorm.DB
	notes    *recorder
	create   *Create
	queries  *Queries
	update   *Update
	cancel   *Cancel
	delete   *Delete
	customer *models.User
	other    *models.User
	provUser *models.User
	provider *models.Provider
	service  *models.Service
}

func ptr[T any](v T) *T { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	f := &fixture{db: db, notes: &recorder{}}

	mk := func(name string, role identity.Role) *models.User {
		u := &models.User{Username: name, Email: name + "@x.com", PasswordHash: "h", Role: string(role), IsActive: true}
		require.NoError(t, db.Create(u).Error)
		return u
	}
	f.customer = mk("carol", identity.RoleCustomer)
	f.other = mk("dave", identity.RoleCustomer)
	f.provUser = mk("pete", identity.RoleProvider)

	f.provider = &models.Provider{UserID: f.provUser.ID, VerificationStatus: "approved", IsAvailable: true, Rating: 5}
	require.NoError(t, db.Create(f.provider).Error)

	f.service = &models.Service{Name: "Window cleaning", PricingModel: "fixed", BasePrice: 50, IsActive: true}
	require.NoError(t, db.Create(f.service).Error)
	require.NoError(t, db.Create(&models.ProviderService{ProviderID: f.provider.ID, ServiceID: f.service.ID}).Error)

	bookings := repository.NewBookingGormRepository(db)
	providers := repository.NewProviderGormRepository(db)

	f.create = NewCreate(bookings, repository.NewUserGormRepository(db), repository.NewCatalogGormRepository(db), providers, f.notes, audit.Nop{})
	f.queries = NewQueries(bookings, providers)
	f.update = NewUpdate(bookings, providers, f.notes, audit.Nop{})
	f.cancel = NewCancel(bookings, providers, f.notes, audit.Nop{})
	f.delete = NewDelete(bookings, audit.Nop{})
	return f
}

func (f *fixture) input() CreateInput {
	return CreateInput{
		CustomerID:    f.customer.ID,
		ServiceID:     f.service.ID,
		ProviderID:    &f.provider.ID,
		ScheduledAt:   time.Now().Add(48 * time.Hour),
		StreetAddress: "1 Main St",
		City:          "Springfield",
	}
}

func (f *fixture) actor(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: identity.Role(u.Role)}
}

func TestCancelLeavesPaymentUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.input())
	require.NoError(t, err)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, 50.0, b.TotalCost)

	got := f.notes.to(f.provUser.ID)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeBookingConfirmation, got[0].Type)

	pay := &models.Payment{BookingID: b.ID, UserID: f.customer.ID, Amount: b.TotalCost, PaymentMethod: "card", Status: "pending"}
	require.NoError(t, f.db.Create(pay).Error)

	cancelled, err := f.cancel.Execute(ctx, f.actor(f.customer), b.ID, CancelInput{Reason: "schedule conflict"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "schedule conflict", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	var stored models.Payment
	require.NoError(t, f.db.First(&stored, pay.ID).Error)
	assert.Equal(t, "pending", stored.Status)
	assert.Equal(t, 50.0, stored.Amount)
	assert.Nil(t, stored.RefundAmount)

	assert.Len(t, f.notes.to(f.provUser.ID), 2)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input()
	in.ScheduledAt = time.Now().Add(-time.Hour)
	_, err := f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "scheduled_in_past"))

	in = f.input()
	in.City = " "
	_, err = f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "address_required"))

	other := &models.Service{Name: "Gutters", PricingModel: "fixed", BasePrice: 10, IsActive: true}
	require.NoError(t, f.db.Create(other).Error)
	in = f.input()
	in.ServiceID = other.ID
	_, err = f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "service_not_offered"))

	foreign := &models.ServiceAddOn{ServiceID: other.ID, Name: "Ladder", Price: 5, IsActive: true}
	require.NoError(t, f.db.Create(foreign).Error)
	in = f.input()
	in.AddOnIDs = []uint{foreign.ID}
	_, err = f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_add_on"))

	require.NoError(t, f.db.Model(f.provider).Update("is_available", false).Error)
	_, err = f.create.Execute(ctx, f.input())
	assert.True(t, httperr.IsBusiness(err, "provider_unavailable"))

	require.NoError(t, f.db.Model(f.customer).Update("is_active", false).Error)
	_, err = f.create.Execute(ctx, f.input())
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestCreateSnapshotsAddOns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	addOn := &models.ServiceAddOn{ServiceID: f.service.ID, Name: "Frames", Price: 12.5, IsActive: true}
	require.NoError(t, f.db.Create(addOn).Error)

	in := f.input()
	in.ProviderID = nil
	in.AddOnIDs = []uint{addOn.ID, addOn.ID}

	b, err := f.create.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 62.5, b.TotalCost)

	require.NoError(t, f.db.Model(addOn).Update("price", 99).Error)

	stored, err := f.queries.Get(ctx, f.actor(f.customer), b.ID)
	require.NoError(t, err)
	require.Len(t, stored.AddOns, 1)
	assert.Equal(t, 12.5, stored.AddOns[0].Price)
	assert.Equal(t, 62.5, stored.TotalCost)
}

func TestUpdateDrivesLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.input())
	require.NoError(t, err)

	_, err = f.update.Execute(ctx, f.actor(f.customer), b.ID, BookingUpdate{Status: ptr("confirmed")})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	prov := f.actor(f.provUser)

	b, err = f.update.Execute(ctx, prov, b.ID, BookingUpdate{Status: ptr("confirmed")})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", b.Status)

	_, err = f.update.Execute(ctx, prov, b.ID, BookingUpdate{Status: ptr("completed")})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

	later := time.Now().Add(72 * time.Hour)
	b, err = f.update.Execute(ctx, f.actor(f.customer), b.ID, BookingUpdate{ScheduledAt: &later, Notes: ptr("gate code 42")})
	require.NoError(t, err)
	assert.Equal(t, "gate code 42", b.Notes)

	_, err = f.update.Execute(ctx, prov, b.ID, BookingUpdate{Status: ptr("in_progress")})
	require.NoError(t, err)

	_, err = f.update.Execute(ctx, prov, b.ID, BookingUpdate{ScheduledAt: &later})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))

	b, err = f.update.Execute(ctx, prov, b.ID, BookingUpdate{Status: ptr("completed")})
	require.NoError(t, err)
	assert.NotNil(t, b.CompletedAt)

	_, err = f.cancel.Execute(ctx, prov, b.ID, CancelInput{Reason: "too late"})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

	updates := f.notes.to(f.customer.ID)
	assert.Len(t, updates, 3)
}

func TestOnlyStaffSetCancellationFee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.input())
	require.NoError(t, err)

	_, err = f.cancel.Execute(ctx, f.actor(f.customer), b.ID, CancelInput{Reason: "x", Fee: ptr(5.0)})
	assert.True(t, httperr.IsBusiness(err, "fee_forbidden"))

	out, err := f.cancel.Execute(ctx, f.actor(f.provUser), b.ID, CancelInput{Reason: "sick", Fee: ptr(5.0)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, *out.CancellationFee)
}

func TestListAndAccessScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.input())
	require.NoError(t, err)

	mine, err := f.queries.List(ctx, f.actor(f.customer), "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.queries.List(ctx, f.actor(f.other), "")
	require.NoError(t, err)
	assert.Empty(t, theirs)

	assigned, err := f.queries.List(ctx, f.actor(f.provUser), "pending")
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	_, err = f.queries.List(ctx, f.actor(f.customer), "archived")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = f.queries.Get(ctx, f.actor(f.other), b.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	_, err = f.queries.Get(ctx, Actor{UserID: f.other.ID, Role: identity.RoleAdmin}, b.ID)
	assert.NoError(t, err)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.input())
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&models.Payment{BookingID: b.ID, UserID: f.customer.ID, Amount: 50, Status: "pending"}).Error)

	err = f.delete.Execute(ctx, f.actor(f.other), b.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	require.NoError(t, f.delete.Execute(ctx, f.actor(f.customer), b.ID))

	var n int64
	require.NoError(t, f.db.Model(&models.Payment{}).Where("booking_id = ?", b.ID).Count(&n).Error)
	assert.Zero(t, n)

	_, err = f.queries.Get(ctx, f.actor(f.customer), b.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
