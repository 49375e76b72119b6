package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/testutil"
)

func TestInboxIsScopedToOwner(t *testing.T) {
	repo := repository.NewNotificationGormRepository(testutil.NewDB(t))
	inbox := NewInbox(repo)
	ctx := context.Background()

	mine := &models.Notification{UserID: 1, Message: "Booking confirmed", Type: "booking_update", Status: "sent"}
	theirs := &models.Notification{UserID: 2, Message: "Payment received", Type: "payment_confirmation", Status: "sent"}
	require.NoError(t, repo.CreateNotification(ctx, mine))
	require.NoError(t, repo.CreateNotification(ctx, theirs))

	list, err := inbox.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	err = inbox.Delete(ctx, 1, theirs.ID)
	assert.True(t, httperr.IsBusiness(err, "notification_not_found"))

	read, err := inbox.MarkRead(ctx, 1, mine.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	require.NoError(t, inbox.Delete(ctx, 1, mine.ID))
	list, err = inbox.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
