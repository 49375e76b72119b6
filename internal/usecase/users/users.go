// Package users covers self-service and admin management of accounts.
package users

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// ProfileUpdate is what users may change on their own account.
type ProfileUpdate struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Gender    *string
	Address   *string
	Phone     *string
}

// AdminUserUpdate adds the active flag only admins manage. Role and the
// verified flag are never editable here: they follow the provider
// verification decision.
type AdminUserUpdate struct {
	ProfileUpdate
	IsActive *bool
}

// profileColumns are the user columns ProfileUpdate can touch.
var profileColumns = []string{"email", "phone", "gender", "firstname", "lastname", "address"}

// ======================================================
// USE CASE
// ======================================================

type Users struct {
	repo  identity.Repository
	audit audit.Sink
}

func New(repo identity.Repository, audit audit.Sink) *Users {
	return &Users{repo: repo, audit: audit}
}

// Get returns a user to itself or to an admin.
func (uc *Users) Get(ctx context.Context, actorID uint, role identity.Role, id uint) (*models.User, error) {
	if actorID != id && role != identity.RoleAdmin {
		return nil, httperr.Forbidden("user_forbidden", "You can only view your own account.")
	}
	return uc.repo.GetUserByID(ctx, id)
}

func (uc *Users) List(ctx context.Context) ([]models.User, error) {
	return uc.repo.ListUsers(ctx)
}

func (uc *Users) UpdateSelf(ctx context.Context, id uint, in ProfileUpdate) (*models.User, error) {
	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyProfile(ctx, u, in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateUser(ctx, u, profileColumns...); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Users) UpdateByAdmin(ctx context.Context, id uint, in AdminUserUpdate) (*models.User, error) {
	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyProfile(ctx, u, in.ProfileUpdate); err != nil {
		return nil, err
	}
	columns := profileColumns
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
		columns = append([]string{"is_active"}, profileColumns...)
	}
	if err := uc.repo.UpdateUser(ctx, u, columns...); err != nil {
		return nil, err
	}
	return u, nil
}

// Deactivate is the only way to delete a user: the row stays, the flag flips.
func (uc *Users) Deactivate(ctx context.Context, adminID, id uint) error {
	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return httperr.InvalidState("user_already_inactive", "User is already inactive.")
	}

	u.IsActive = false
	if err := uc.repo.UpdateUser(ctx, u, "is_active"); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   audit.ActionUserDeactivated,
		Entity:   "user",
		EntityID: &u.ID,
	})
	return nil
}

func (uc *Users) applyProfile(ctx context.Context, u *models.User, in ProfileUpdate) error {
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != u.Email {
			if err := uc.assertFree(ctx, u.ID, email, uc.repo.GetUserByEmail, "email_taken", "Email already exists."); err != nil {
				return err
			}
			u.Email = email
		}
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		switch {
		case phone == "":
			u.Phone = nil
		case u.Phone == nil || *u.Phone != phone:
			if err := uc.assertFree(ctx, u.ID, phone, uc.repo.GetUserByPhone, "phone_taken", "Phone number already exists."); err != nil {
				return err
			}
			u.Phone = &phone
		}
	}

	if in.Gender != nil {
		if !validGender(*in.Gender) {
			return httperr.Validation("invalid_gender", "Gender must be Male, Female or Other.")
		}
		u.Gender = *in.Gender
	}
	if in.Firstname != nil {
		u.Firstname = strings.TrimSpace(*in.Firstname)
	}
	if in.Lastname != nil {
		u.Lastname = strings.TrimSpace(*in.Lastname)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	return nil
}

func (uc *Users) assertFree(
	ctx context.Context,
	selfID uint,
	value string,
	lookup func(context.Context, string) (*models.User, error),
	code, msg string,
) error {
	other, err := lookup(ctx, value)
	if err == nil {
		if other.ID != selfID {
			return httperr.Conflict(code, msg)
		}
		return nil
	}
	if httperr.IsKind(err, httperr.KindNotFound) {
		return nil
	}
	return err
}

func validGender(g string) bool {
	for _, v := range identity.Genders {
		if v == g {
			return true
		}
	}
	return false
}
