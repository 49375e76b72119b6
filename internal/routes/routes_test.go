package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/config"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
	"github.com/BruksfildServices01/marketplace-api/internal/testutil"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
	"github.com/BruksfildServices01/marketplace-api/internal/validators"
)

type server struct {
	r      *gin.Engine
	db     *gorm.DB
	issuer *token.Issuer
	files  *storage.LocalStore
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validators.Register())

	db := testutil.NewDB(t)
	cfg := &config.Config{
		FrontendURL:      "http://app.test",
		PasswordResetTTL: time.Hour,
	}
	issuer := token.NewIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	files := storage.NewLocalStore(t.TempDir(), "/uploads")

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:          db,
		Config:      cfg,
		Log:         zap.NewNop(),
		Issuer:      issuer,
		Revoked:     revocation.NewGormStore(db),
		Mail:        mailer.New(cfg, zap.NewNop()),
		Storage:     files,
		Files:       files,
		Audit:       audit.Nop{},
		AuditLogger: audit.New(db),
	})

	return &server{r: r, db: db, issuer: issuer, files: files}
}

// seedUser stores an active user and returns it with a fresh access token.
func (s *server) seedUser(t *testing.T, username string, role identity.Role) (*models.User, string) {
	t.Helper()

	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         string(role),
		IsActive:     true,
		IsVerified:   true,
	}
	require.NoError(t, s.db.Create(u).Error)

	pair, err := s.issuer.IssuePair(u.ID, u.Role, u.TokenVersion)
	require.NoError(t, err)
	return u, pair.AccessToken
}

func (s *server) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthSessionFlow(t *testing.T) {
	s := newServer(t)

	register := map[string]any{
		"username":         "jdoe",
		"email":            "JDoe@Example.com",
		"password":         "supersecret",
		"confirm_password": "supersecret",
	}

	w := s.do(t, http.MethodPost, "/auth/v1/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/auth/v1/register", "", register)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/auth/v1/login", "", map[string]any{
		"username": "jdoe",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	w = s.do(t, http.MethodPost, "/auth/v1/login", "", map[string]any{
		"email":    "jdoe@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode(t, w)
	access := login["access_token"].(string)
	refresh := login["refresh_token"].(string)
	assert.Equal(t, "Bearer", login["token_type"])

	w = s.do(t, http.MethodGet, "/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jdoe@example.com", decode(t, w)["email"])

	w = s.do(t, http.MethodPost, "/auth/v1/refresh", "", map[string]any{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["access_token"])

	w = s.do(t, http.MethodPost, "/auth/v1/refresh", "", map[string]any{"refresh_token": access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_refresh_token", errorCode(t, w))

	w = s.do(t, http.MethodPost, "/auth/v1/logout", access, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/me", access, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_revoked", errorCode(t, w))
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/auth/v1/register", "", map[string]any{
		"username":         "jdoe",
		"email":            "jdoe@example.com",
		"password":         "supersecret",
		"confirm_password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
}

func TestRoleGuards(t *testing.T) {
	s := newServer(t)
	_, customer := s.seedUser(t, "customer1", identity.RoleCustomer)
	_, admin := s.seedUser(t, "admin1", identity.RoleAdmin)

	w := s.do(t, http.MethodGet, "/admin/v1/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/admin/v1/stats", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/services", customer, map[string]any{"name": "Gutters", "base_price": 10})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/provider/profile", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/admin/v1/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode(t, w)["total_users"])
}

func TestBookingCreateAndCancel(t *testing.T) {
	s := newServer(t)
	_, admin := s.seedUser(t, "admin1", identity.RoleAdmin)
	_, customer := s.seedUser(t, "customer1", identity.RoleCustomer)
	_, stranger := s.seedUser(t, "customer2", identity.RoleCustomer)

	w := s.do(t, http.MethodPost, "/services", admin, map[string]any{
		"name":       "Deep clean",
		"base_price": 80,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	serviceID := uint(decode(t, w)["id"].(float64))

	w = s.do(t, http.MethodGet, "/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = s.do(t, http.MethodPost, "/bookings", customer, map[string]any{
		"service_id":     serviceID,
		"scheduled_at":   time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"street_address": "1 Main St",
		"city":           "Springfield",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "pending", created["status"])
	assert.EqualValues(t, 80, created["total_cost"])
	bookingPath := fmt.Sprintf("/bookings/%d", uint(created["id"].(float64)))

	w = s.do(t, http.MethodGet, bookingPath, stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, bookingPath+"/cancel", customer, map[string]any{"reason": "changed plans"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, bookingPath+"/cancel", customer, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, bookingPath, customer, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, bookingPath, customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingRejectsPastSchedule(t *testing.T) {
	s := newServer(t)
	_, admin := s.seedUser(t, "admin1", identity.RoleAdmin)
	_, customer := s.seedUser(t, "customer1", identity.RoleCustomer)

	w := s.do(t, http.MethodPost, "/services", admin, map[string]any{"name": "Lawn", "base_price": 30})
	require.Equal(t, http.StatusCreated, w.Code)
	serviceID := uint(decode(t, w)["id"].(float64))

	w = s.do(t, http.MethodPost, "/bookings", customer, map[string]any{
		"service_id":     serviceID,
		"scheduled_at":   time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		"street_address": "1 Main St",
		"city":           "Springfield",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "scheduled_in_past", errorCode(t, w))
}

func TestAuditLogsPaging(t *testing.T) {
	s := newServer(t)
	admin, bearer := s.seedUser(t, "admin1", identity.RoleAdmin)

	logger := audit.New(s.db)
	for i := 0; i < 3; i++ {
		require.NoError(t, logger.Log(audit.Event{UserID: &admin.ID, Action: audit.ActionBookingCreated, Entity: "booking"}))
	}
	require.NoError(t, logger.Log(audit.Event{Action: audit.ActionPaymentCreated, Entity: "payment"}))

	w := s.do(t, http.MethodGet, "/admin/v1/audit-logs?entity=booking&limit=500", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 50, body["limit"])
	assert.Len(t, body["data"], 3)

	w = s.do(t, http.MethodGet, "/admin/v1/audit-logs?from=yesterday", bearer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserUpdateRefusesVerifiedFlag(t *testing.T) {
	s := newServer(t)
	_, admin := s.seedUser(t, "admin1", identity.RoleAdmin)
	pro, _ := s.seedUser(t, "pro1", identity.RoleProvider)
	require.NoError(t, s.db.Model(pro).Update("is_verified", false).Error)
	require.NoError(t, s.db.Create(&models.Provider{UserID: pro.ID, VerificationStatus: "pending"}).Error)

	path := fmt.Sprintf("/users/%d", pro.ID)
	w := s.do(t, http.MethodPut, path, admin, map[string]any{"is_verified": true})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "verification_readonly", errorCode(t, w))

	w = s.do(t, http.MethodPut, path, admin, map[string]any{"firstname": "Pat"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Pat", body["firstname"])
	assert.Equal(t, false, body["is_verified"])
	assert.Equal(t, "provider", body["role"])
}

func TestPaymentListAndReviewGet(t *testing.T) {
	s := newServer(t)
	_, admin := s.seedUser(t, "admin1", identity.RoleAdmin)
	_, customer := s.seedUser(t, "customer1", identity.RoleCustomer)

	w := s.do(t, http.MethodGet, "/payments", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/payments", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 0, decode(t, w)["total"])

	w = s.do(t, http.MethodGet, "/payments?status=lost", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/reviews/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "review_not_found", errorCode(t, w))
}

func TestUploadsAreOwnerOrAdminOnly(t *testing.T) {
	s := newServer(t)
	_, admin := s.seedUser(t, "admin1", identity.RoleAdmin)
	_, customer := s.seedUser(t, "customer1", identity.RoleCustomer)
	owner, ownerToken := s.seedUser(t, "pro1", identity.RoleProvider)
	other, otherToken := s.seedUser(t, "pro2", identity.RoleProvider)

	mine := &models.Provider{UserID: owner.ID, VerificationStatus: "pending"}
	theirs := &models.Provider{UserID: other.ID, VerificationStatus: "pending"}
	require.NoError(t, s.db.Create(mine).Error)
	require.NoError(t, s.db.Create(theirs).Error)

	key := fmt.Sprintf("providers/%d/id.pdf", mine.ID)
	url, err := s.files.Put(context.Background(), key, []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, url, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, url, customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, url, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// a path that walks out of the caller's own folder is judged by where it lands
	sneaky := fmt.Sprintf("/uploads/providers/%d/../%d/id.pdf", theirs.ID, mine.ID)
	w = s.do(t, http.MethodGet, sneaky, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, url, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	w = s.do(t, http.MethodGet, url, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/uploads/providers/%d/missing.pdf", mine.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
