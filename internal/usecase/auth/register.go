package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Username  string
	Email     string
	Phone     string
	Password  string
	Firstname string
	Lastname  string
	Gender    string
	Address   string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo        identity.Repository
	mail        mailer.Sender
	frontendURL string
	emailCheck  func(string) bool
}

// NewRegister builds the use case. emailCheck may be nil to skip the domain lookup.
func NewRegister(
	repo identity.Repository,
	mail mailer.Sender,
	frontendURL string,
	emailCheck func(string) bool,
) *Register {
	return &Register{
		repo:        repo,
		mail:        mail,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		emailCheck:  emailCheck,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	u, err := uc.create(ctx, in, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	// The account exists at this point; delivery errors are the sender's to log.
	link := uc.frontendURL + "/verify-email?token=" + *u.EmailVerificationToken
	_ = uc.mail.Send(mailer.VerificationEmail(u.Email, u.Username, link))

	return u, nil
}

// CreateAdmin registers an already verified admin account.
func (uc *Register) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	return uc.create(ctx, in, identity.RoleAdmin)
}

func (uc *Register) create(ctx context.Context, in RegisterInput, role identity.Role) (*models.User, error) {

	// --------------------------------------------------
	// 1. Normalize
	// --------------------------------------------------
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if uc.emailCheck != nil && !uc.emailCheck(in.Email) {
		return nil, httperr.Validation("invalid_email_domain", "The email domain does not accept mail.")
	}

	// --------------------------------------------------
	// 2. Uniqueness (the unique indexes still guard races)
	// --------------------------------------------------
	if err := uc.assertFree(ctx, in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	u := &models.User{
		Username:               in.Username,
		Email:                  in.Email,
		Firstname:              in.Firstname,
		Lastname:               in.Lastname,
		Gender:                 in.Gender,
		Address:                in.Address,
		PasswordHash:           hashed,
		Role:                   string(role),
		IsActive:               true,
		EmailVerificationToken: &token,
	}
	if in.Phone != "" {
		u.Phone = &in.Phone
	}
	if role == identity.RoleAdmin {
		u.IsVerified = true
		u.EmailVerificationToken = nil
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (uc *Register) assertFree(ctx context.Context, in RegisterInput) error {
	checks := []struct {
		value  string
		lookup func(context.Context, string) (*models.User, error)
		code   string
		msg    string
	}{
		{in.Username, uc.repo.GetUserByUsername, "username_taken", "Username already exists."},
		{in.Email, uc.repo.GetUserByEmail, "email_taken", "Email already exists."},
		{in.Phone, uc.repo.GetUserByPhone, "phone_taken", "Phone number already exists."},
	}

	for _, c := range checks {
		if c.value == "" {
			continue
		}
		_, err := c.lookup(ctx, c.value)
		if err == nil {
			return httperr.Conflict(c.code, c.msg)
		}
		if !httperr.IsKind(err, httperr.KindNotFound) {
			return err
		}
	}
	return nil
}
