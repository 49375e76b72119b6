package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/testutil"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID uint, typ notification.Type, message string) {
	m.Called(ctx, userID, typ, message)
}

type world struct {
	db       *gorm.DB
	customer *models.User
	provUser *models.User
	provider *models.Provider
	service  *models.Service
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := testutil.NewDB(t)
	w := &world{db: db}

	w.customer = &models.User{Username: "carol", Email: "carol@x.com", PasswordHash: "h", Role: "customer", IsActive: true}
	w.provUser = &models.User{Username: "pete", Email: "pete@x.com", PasswordHash: "h", Role: "provider", IsActive: true}
	require.NoError(t, db.Create(w.customer).Error)
	require.NoError(t, db.Create(w.provUser).Error)

	w.provider = &models.Provider{UserID: w.provUser.ID, VerificationStatus: "approved", IsAvailable: true, Rating: 5}
	require.NoError(t, db.Create(w.provider).Error)

	w.service = &models.Service{Name: "Plumbing", PricingModel: "fixed", BasePrice: 40, IsActive: true}
	require.NoError(t, db.Create(w.service).Error)
	return w
}

func (w *world) booking(t *testing.T, status string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		CustomerID:    w.customer.ID,
		ProviderID:    &w.provider.ID,
		ServiceID:     w.service.ID,
		Status:        status,
		ScheduledAt:   time.Now().Add(-time.Hour),
		StreetAddress: "1 Main St",
		City:          "Springfield",
		TotalCost:     40,
	}
	require.NoError(t, w.db.Create(b).Error)
	return b
}

func (w *world) rating(t *testing.T) float64 {
	t.Helper()
	var p models.Provider
	require.NoError(t, w.db.First(&p, w.provider.ID).Error)
	return p.Rating
}

func TestReviewLifecycle(t *testing.T) {
	w := newWorld(t)
	n := &mockNotifier{}
	n.On("Notify", mock.Anything, w.provUser.ID, notification.TypeReviewReceived, mock.Anything).Twice()

	uc := New(repository.NewBookingGormRepository(w.db), repository.NewProviderGormRepository(w.db), n, audit.Nop{})
	ctx := context.Background()

	first := w.booking(t, "completed")
	r, err := uc.Create(ctx, CreateInput{CustomerID: w.customer.ID, BookingID: first.ID, Rating: 4, Comment: "good"})
	require.NoError(t, err)
	assert.Equal(t, w.provider.ID, r.ProviderID)
	assert.Equal(t, 4.0, w.rating(t))

	_, err = uc.Create(ctx, CreateInput{CustomerID: w.customer.ID, BookingID: first.ID, Rating: 5})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	second := w.booking(t, "completed")
	r2, err := uc.Create(ctx, CreateInput{CustomerID: w.customer.ID, BookingID: second.ID, Rating: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.5, w.rating(t))

	_, err = uc.Moderate(ctx, r2.ID, ModerateInput{IsApproved: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, w.rating(t))

	reply, err := uc.Reply(ctx, w.provUser.ID, r.ID, "thanks")
	require.NoError(t, err)
	assert.Equal(t, "thanks", reply.ProviderReply)
	assert.NotNil(t, reply.ProviderReplyAt)

	list, err := uc.List(ctx, &w.provider.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := uc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "thanks", got.ProviderReply)

	_, err = uc.Get(ctx, 9999)
	assert.True(t, httperr.IsBusiness(err, "review_not_found"))

	n.AssertExpectations(t)
}

func TestReviewEligibility(t *testing.T) {
	w := newWorld(t)
	uc := New(repository.NewBookingGormRepository(w.db), repository.NewProviderGormRepository(w.db), &mockNotifier{}, audit.Nop{})
	ctx := context.Background()

	open := w.booking(t, "confirmed")
	_, err := uc.Create(ctx, CreateInput{CustomerID: w.customer.ID, BookingID: open.ID, Rating: 5})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))

	done := w.booking(t, "completed")
	_, err = uc.Create(ctx, CreateInput{CustomerID: w.provUser.ID, BookingID: done.ID, Rating: 5})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	_, err = uc.Create(ctx, CreateInput{CustomerID: w.customer.ID, BookingID: done.ID, Rating: 6})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func ptr[T any](v T) *T { return &v }
