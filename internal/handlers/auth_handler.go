package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/httpresp"
	"github.com/BruksfildServices01/marketplace-api/internal/middleware"
	ucAuth "github.com/BruksfildServices01/marketplace-api/internal/usecase/auth"
)

type AuthHandler struct {
	register       *ucAuth.Register
	login          *ucAuth.Login
	refresh        *ucAuth.Refresh
	logout         *ucAuth.Logout
	verifyEmail    *ucAuth.VerifyEmail
	changePassword *ucAuth.ChangePassword
	resetRequest   *ucAuth.RequestPasswordReset
	resetConfirm   *ucAuth.ConfirmPasswordReset
}

type AuthUseCases struct {
	Register       *ucAuth.Register
	Login          *ucAuth.Login
	Refresh        *ucAuth.Refresh
	Logout         *ucAuth.Logout
	VerifyEmail    *ucAuth.VerifyEmail
	ChangePassword *ucAuth.ChangePassword
	ResetRequest   *ucAuth.RequestPasswordReset
	ResetConfirm   *ucAuth.ConfirmPasswordReset
}

func NewAuthHandler(uc AuthUseCases) *AuthHandler {
	return &AuthHandler{
		register:       uc.Register,
		login:          uc.Login,
		refresh:        uc.Refresh,
		logout:         uc.Logout,
		verifyEmail:    uc.VerifyEmail,
		changePassword: uc.ChangePassword,
		resetRequest:   uc.ResetRequest,
		resetConfirm:   uc.ResetConfirm,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=4,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"omitempty,phone"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Firstname       string `json:"firstname" binding:"max=50"`
	Lastname        string `json:"lastname" binding:"max=50"`
	Gender          string `json:"gender" binding:"omitempty,gender"`
	Address         string `json:"address" binding:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

type ResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetConfirmRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.register.Execute(c.Request.Context(), ucAuth.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Gender:    req.Gender,
		Address:   req.Address,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Registration successful. Check your email to verify the account.",
		"user":    u,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}
	if req.Email == "" && req.Username == "" {
		httperr.BadRequest(c, "identifier_required", "Email or username is required.")
		return
	}

	out, err := h.login.Execute(c.Request.Context(), ucAuth.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":          out.User,
		"access_token":  out.Tokens.AccessToken,
		"refresh_token": out.Tokens.RefreshToken,
		"token_type":    out.Tokens.TokenType,
		"expires_in":    out.Tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bind(c, &req) {
		return
	}

	out, err := h.refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}

	err := h.logout.Execute(c.Request.Context(), ucAuth.LogoutInput{
		UserID:       middleware.UserID(c),
		JTI:          middleware.TokenID(c),
		ExpiresAt:    middleware.TokenExpiry(c),
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Successfully logged out."})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	u, err := h.verifyEmail.Execute(c.Request.Context(), c.Query("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Email verified.", "user": u})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bind(c, &req) {
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), ucAuth.ChangePasswordInput{
		UserID:      middleware.UserID(c),
		JTI:         middleware.TokenID(c),
		ExpiresAt:   middleware.TokenExpiry(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Password changed. Please log in again."})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req ResetRequest
	if !bind(c, &req) {
		return
	}

	if err := h.resetRequest.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": ucAuth.ResetRequestedMessage})
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmRequest
	if !bind(c, &req) {
		return
	}

	if err := h.resetConfirm.Execute(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Password has been reset."})
}
