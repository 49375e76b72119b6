// Package notify records in-app notifications for users.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

const statusSent = "sent"

type Notifier interface {
	Notify(ctx context.Context, userID uint, typ notification.Type, message string)
}

type Store struct {
	repo notification.Repository
	log  *zap.Logger
}

var _ Notifier = (*Store)(nil)

func New(repo notification.Repository, log *zap.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Notify is best effort: a failed write is logged and never fails the caller.
func (s *Store) Notify(ctx context.Context, userID uint, typ notification.Type, message string) {
	n := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    string(typ),
		Status:  statusSent,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.log.Warn("notification not stored",
			zap.Uint("user_id", userID),
			zap.String("type", string(typ)),
			zap.Error(err),
		)
	}
}
