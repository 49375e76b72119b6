package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
	"github.com/BruksfildServices01/marketplace-api/internal/testutil"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID uint, typ notification.Type, message string) {
	m.Called(ctx, userID, typ, message)
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@x.com", PasswordHash: "hash", Role: "customer", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestOnboardingScenario(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProviderGormRepository(db)
	ctx := context.Background()

	u := seedCustomer(t, db, "alice")
	admin := seedCustomer(t, db, "root")

	p, err := NewRequestRole(repo, audit.Nop{}).Execute(ctx, RequestRoleInput{
		UserID:        u.ID,
		RequestedRole: "Provider",
		Message:       "I fix sinks",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", p.VerificationStatus)
	assert.Equal(t, "I fix sinks", p.Bio)

	n := &mockNotifier{}
	n.On("Notify", mock.Anything, u.ID, notification.TypeProviderVerification,
		"Your provider application has been approved. Admin notes: welcome").Once()

	out, err := NewReviewVerification(repo, n, audit.Nop{}).Execute(ctx, ReviewVerificationInput{
		AdminID:      admin.ID,
		TargetUserID: u.ID,
		Action:       "approve",
		Notes:        "welcome",
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Provider.VerificationStatus)
	assert.True(t, out.User.IsVerified)
	n.AssertExpectations(t)

	update := NewUpdateProfile(repo)

	updated, err := update.Execute(ctx, u.ID, ProfileUpdate{Bio: ptr("Licensed plumber")})
	require.NoError(t, err)
	assert.Equal(t, "Licensed plumber", updated.Bio)

	_, err = update.Execute(ctx, u.ID, ProfileUpdate{VerificationStatus: ptr("approved")})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestRequestRoleOnlyProvider(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProviderGormRepository(db)
	u := seedCustomer(t, db, "bob")

	_, err := NewRequestRole(repo, audit.Nop{}).Execute(context.Background(), RequestRoleInput{UserID: u.ID, RequestedRole: "admin"})
	assert.True(t, httperr.IsKind(err, httperr.KindUnsupported))

	var count int64
	require.NoError(t, db.Model(&models.Provider{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRequestRoleTwiceConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProviderGormRepository(db)
	u := seedCustomer(t, db, "bob")
	uc := NewRequestRole(repo, audit.Nop{})

	_, err := uc.Execute(context.Background(), RequestRoleInput{UserID: u.ID, RequestedRole: "provider"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RequestRoleInput{UserID: u.ID, RequestedRole: "provider"})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

func TestReviewVerificationRejectsUnknownAction(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewReviewVerification(repository.NewProviderGormRepository(db), &mockNotifier{}, audit.Nop{})

	_, err := uc.Execute(context.Background(), ReviewVerificationInput{TargetUserID: 1, Action: "maybe"})
	assert.True(t, httperr.IsBusiness(err, "invalid_action"))
}

func TestUploadDocumentReopensRejectedProvider(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProviderGormRepository(db)
	ctx := context.Background()
	u := seedCustomer(t, db, "carol")

	_, err := repo.GrantProviderRole(ctx, domain.GrantInput{UserID: u.ID})
	require.NoError(t, err)
	_, _, err = repo.ApplyDecision(ctx, domain.DecisionInput{UserID: u.ID, Action: domain.ActionReject})
	require.NoError(t, err)

	store := storage.NewLocalStore(t.TempDir(), "/uploads")
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

	p, err := NewUploadDocument(repo, store, audit.Nop{}).Execute(ctx, u.ID, pdf)
	require.NoError(t, err)
	assert.Equal(t, "pending", p.VerificationStatus)
	assert.Contains(t, p.VerificationDocumentURL, "/uploads/providers/")
	assert.Contains(t, p.VerificationDocumentURL, ".pdf")
}

func TestQueriesListDefaultsToApproved(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProviderGormRepository(db)
	ctx := context.Background()

	a := seedCustomer(t, db, "a")
	b := seedCustomer(t, db, "b")
	_, err := repo.GrantProviderRole(ctx, domain.GrantInput{UserID: a.ID})
	require.NoError(t, err)
	_, err = repo.GrantProviderRole(ctx, domain.GrantInput{UserID: b.ID})
	require.NoError(t, err)
	_, _, err = repo.ApplyDecision(ctx, domain.DecisionInput{UserID: a.ID, Action: domain.ActionApprove})
	require.NoError(t, err)

	q := NewQueries(repo)

	approved, err := q.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, a.ID, approved[0].UserID)

	pending, err := q.List(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].UserID)

	_, err = q.List(ctx, "bogus")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}
