package provider

import (
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

// ===============================
// Verification Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", httperr.Validation("invalid_verification_status", "Unknown verification status: "+s)
}

// ===============================
// Admin decisions
// ===============================

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionReject:
		return Action(s), nil
	}
	return "", httperr.Validation("invalid_action", "Action must be approve or reject.")
}

// ===============================
// Validations
// ===============================

// CanRequestRole allows only the customer to provider move.
func CanRequestRole(current identity.Role, requested identity.Role) error {
	if requested != identity.RoleProvider {
		return httperr.Unsupported("role_not_supported", "Only the provider role can be requested.")
	}
	if current != identity.RoleCustomer {
		return httperr.Unsupported("role_change_not_allowed", "Only customers can request the provider role.")
	}
	return nil
}

// CanDecide requires the target to hold the provider role.
func CanDecide(target identity.Role) error {
	if target != identity.RoleProvider {
		return httperr.InvalidState("user_not_provider", "User has not requested the provider role.")
	}
	return nil
}
