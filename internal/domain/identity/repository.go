package identity

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	// UpdateUser writes only the named columns. Role and verification are
	// owned by the provider repository's transactions.
	UpdateUser(ctx context.Context, u *models.User, columns ...string) error

	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)

	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
