package provider

import (
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewPending builds the provider record created with the role grant.
func NewPending(userID uint, bio, areaDescription string) *models.Provider {
	return &models.Provider{
		UserID:                 userID,
		Bio:                    bio,
		ServiceAreaDescription: areaDescription,
		Rating:                 5,
		VerificationStatus:     string(StatusPending),
	}
}

// Grant flips the user to provider. Call after CanRequestRole.
func Grant(u *models.User) {
	u.Role = string(identity.RoleProvider)
}

// Decide applies an admin decision to the provider and its user together.
func Decide(p *models.Provider, u *models.User, action Action, notes string, now time.Time) {
	p.VerificationNotes = notes

	switch action {
	case ActionApprove:
		p.VerificationStatus = string(StatusApproved)
		p.VerifiedAt = &now
		u.IsVerified = true
	case ActionReject:
		p.VerificationStatus = string(StatusRejected)
		p.VerifiedAt = nil
		u.IsVerified = false
	}
}

// StatusAfterUpload is the verification status once a new document lands:
// a rejected provider goes back to pending so an admin reviews the upload.
func StatusAfterUpload(current Status) Status {
	if current == StatusRejected {
		return StatusPending
	}
	return current
}

func IsBookable(p *models.Provider) bool {
	return Status(p.VerificationStatus) == StatusApproved && p.IsAvailable
}
