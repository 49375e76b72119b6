package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

func TestCanRequestRole(t *testing.T) {
	assert.NoError(t, CanRequestRole(identity.RoleCustomer, identity.RoleProvider))

	err := CanRequestRole(identity.RoleCustomer, identity.RoleAdmin)
	assert.True(t, httperr.IsKind(err, httperr.KindUnsupported))

	err = CanRequestRole(identity.RoleB2BClient, identity.RoleProvider)
	assert.True(t, httperr.IsKind(err, httperr.KindUnsupported))
}

func TestDecideKeepsUserAndProviderInLockstep(t *testing.T) {
	p := NewPending(1, "bio", "")
	u := &models.User{ID: 1, Role: string(identity.RoleProvider)}

	Decide(p, u, ActionApprove, "docs ok", time.Now())
	assert.Equal(t, string(StatusApproved), p.VerificationStatus)
	assert.True(t, u.IsVerified)
	assert.NotNil(t, p.VerifiedAt)

	Decide(p, u, ActionReject, "expired id", time.Now())
	assert.Equal(t, string(StatusRejected), p.VerificationStatus)
	assert.False(t, u.IsVerified)
	assert.Nil(t, p.VerifiedAt)
	assert.Equal(t, "expired id", p.VerificationNotes)
}

func TestStatusAfterUploadReopensRejected(t *testing.T) {
	assert.Equal(t, StatusPending, StatusAfterUpload(StatusRejected))
	assert.Equal(t, StatusApproved, StatusAfterUpload(StatusApproved))
	assert.Equal(t, StatusPending, StatusAfterUpload(StatusPending))
}
