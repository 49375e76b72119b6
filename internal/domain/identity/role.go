package identity

import "github.com/BruksfildServices01/marketplace-api/internal/httperr"

// ===============================
// User Roles
// ===============================

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleProvider  Role = "provider"
	RoleAdmin     Role = "admin"
	RoleB2BClient Role = "b2b_client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin, RoleB2BClient:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", httperr.Validation("invalid_role", "Unknown role: "+s)
	}
	return r, nil
}

// ===============================
// Genders accepted on registration
// ===============================

var Genders = []string{"Male", "Female", "Other"}
