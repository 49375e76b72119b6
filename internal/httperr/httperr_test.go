package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(err error) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)
	return w, c
}

func TestRespondMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad_input", "bad"), http.StatusBadRequest},
		{Unsupported("role_not_supported", "no"), http.StatusBadRequest},
		{InvalidToken("expired"), http.StatusBadRequest},
		{Unauthorized("invalid_credentials", "no"), http.StatusUnauthorized},
		{Revoked("token has been revoked"), http.StatusUnauthorized},
		{Forbidden("forbidden", "no"), http.StatusForbidden},
		{NotFound("user_not_found", "no"), http.StatusNotFound},
		{Conflict("email_taken", "no"), http.StatusConflict},
		{InvalidState("not_provider", "no"), http.StatusConflict},
		{InvalidTransition("completed", "pending"), http.StatusConflict},
	}

	for _, tc := range cases {
		w, _ := respond(tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestRespondWrappedBusinessError(t *testing.T) {
	err := fmt.Errorf("create booking: %w", NotFound("service_not_found", "Service not found."))

	w, _ := respond(err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "service_not_found", body.Code)
	assert.Equal(t, "Service not found.", body.Message)
}

func TestRespondHidesInternalErrors(t *testing.T) {
	w, c := respond(errors.New("pq: connection refused"))

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, body.Message, "connection refused")
	assert.Len(t, c.Errors, 1)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Conflict("payment_exists", ""))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.True(t, IsBusiness(err, "payment_exists"))
}
