package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/testutil"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
)

func newRouter(t *testing.T) (*gin.Engine, *token.Issuer, revocation.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := token.NewIssuer("secret", time.Minute, time.Hour)
	store := revocation.NewGormStore(testutil.NewDB(t))

	r := gin.New()
	r.Use(Recovery(zap.NewNop()), RequestLogger(zap.NewNop()))

	secured := r.Group("/", AuthMiddleware(issuer, store))
	secured.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "role": Role(c), "jti": TokenID(c)})
	})
	secured.GET("/admin", RequireRole(identity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	return r, issuer, store
}

func do(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthMiddleware(t *testing.T) {
	r, issuer, store := newRouter(t)

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", errorCode(t, w))

	w = do(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pair, err := issuer.IssuePair(7, "customer", 0)
	require.NoError(t, err)

	w = do(r, "/me", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "customer", body["role"])

	claims, err := issuer.Parse(pair.AccessToken, token.TypeAccess)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.ID, 7, claims.ExpiresAtTime()))

	w = do(r, "/me", pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token_revoked", errorCode(t, w))
}

func TestRequireRole(t *testing.T) {
	r, issuer, _ := newRouter(t)

	customer, err := issuer.IssueAccess(1, "customer")
	require.NoError(t, err)
	w := do(r, "/admin", customer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := issuer.IssueAccess(2, "admin")
	require.NoError(t, err)
	w = do(r, "/admin", admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecovery(t *testing.T) {
	r, _, _ := newRouter(t)

	w := do(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", errorCode(t, w))
}

func TestCORSAllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example/"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/ping", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodGet, "https://app.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = send(http.MethodOptions, "https://app.example")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(http.MethodGet, "https://evil.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = send(http.MethodOptions, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
