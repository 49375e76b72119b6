package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	ucUsers "github.com/BruksfildServices01/marketplace-api/internal/usecase/users"
)

type UserHandler struct {
	users *ucUsers.Users
}

func NewUserHandler(users *ucUsers.Users) *UserHandler {
	return &UserHandler{users: users}
}

// --------- Requests ---------

type UpdateUserRequest struct {
	Firstname *string `json:"firstname" binding:"omitempty,max=50"`
	Lastname  *string `json:"lastname" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Gender    *string `json:"gender" binding:"omitempty,gender"`
	Address   *string `json:"address" binding:"omitempty,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`

	IsActive *bool `json:"is_active"`

	// Only here to be refused: the flag follows the provider decision.
	IsVerified *bool `json:"is_verified"`
}

func (r UpdateUserRequest) profile() ucUsers.ProfileUpdate {
	return ucUsers.ProfileUpdate{
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Email:     r.Email,
		Gender:    r.Gender,
		Address:   r.Address,
		Phone:     r.Phone,
	}
}

// --------- Handlers ---------

// Me returns the caller with its provider profile, if any.
func (h *UserHandler) Me(c *gin.Context) {
	id := middleware.UserID(c)
	u, err := h.users.Get(c.Request.Context(), id, middleware.Role(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), middleware.UserID(c), middleware.Role(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

// Update uses the admin DTO for admins and the profile DTO for everyone
// else. Account flags from a non-admin are refused, and is_verified from
// anyone.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bind(c, &req) {
		return
	}

	if req.IsVerified != nil {
		httperr.Respond(c, httperr.Forbidden(
			"verification_readonly",
			"Verification is set by approving or rejecting the provider.",
		))
		return
	}

	ctx := c.Request.Context()
	caller := middleware.UserID(c)

	if middleware.Role(c) == identity.RoleAdmin {
		u, err := h.users.UpdateByAdmin(ctx, id, ucUsers.AdminUserUpdate{
			ProfileUpdate: req.profile(),
			IsActive:      req.IsActive,
		})
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.OK(c, u)
		return
	}

	if caller != id {
		httperr.Respond(c, httperr.Forbidden("user_forbidden", "You can only update your own account."))
		return
	}
	if req.IsActive != nil {
		httperr.Respond(c, httperr.Forbidden("admin_only_fields", "Only admins can change account flags."))
		return
	}

	u, err := h.users.UpdateSelf(ctx, id, req.profile())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "User deactivated."})
}
