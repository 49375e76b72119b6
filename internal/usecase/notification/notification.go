package notification

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

// Inbox exposes a user's own notifications.
type Inbox struct {
	repo domain.Repository
}

func NewInbox(repo domain.Repository) *Inbox {
	return &Inbox{repo: repo}
}

func (i *Inbox) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	return i.repo.ListForUser(ctx, userID)
}

func (i *Inbox) MarkRead(ctx context.Context, userID, id uint) (*models.Notification, error) {
	return i.repo.MarkRead(ctx, id, userID)
}

func (i *Inbox) Delete(ctx context.Context, userID, id uint) error {
	return i.repo.DeleteNotification(ctx, id, userID)
}
