// Package review handles customer reviews of completed bookings.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/notify"
)

type CreateInput struct {
	CustomerID uint
	BookingID  uint
	Rating     int
	Comment    string
}

type ModerateInput struct {
	IsApproved      *bool
	ModerationNotes *string
}

type Reviews struct {
	bookings  booking.Repository
	providers provider.Repository
	notifier  notify.Notifier
	audit     audit.Sink
	now       func() time.Time
}

func New(
	bookings booking.Repository,
	providers provider.Repository,
	notifier notify.Notifier,
	audit audit.Sink,
) *Reviews {
	return &Reviews{
		bookings:  bookings,
		providers: providers,
		notifier:  notifier,
		audit:     audit,
		now:       time.Now,
	}
}

func (uc *Reviews) Create(ctx context.Context, in CreateInput) (*models.Review, error) {
	if err := booking.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	b, err := uc.bookings.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.CanReview(b, in.CustomerID); err != nil {
		return nil, err
	}

	r := &models.Review{
		BookingID:  b.ID,
		UserID:     in.CustomerID,
		ProviderID: *b.ProviderID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := uc.bookings.CreateReview(ctx, r); err != nil {
		return nil, err
	}

	if _, err := uc.providers.RecomputeRating(ctx, r.ProviderID); err != nil {
		return nil, err
	}

	if p, err := uc.providers.GetProviderByID(ctx, r.ProviderID); err == nil {
		uc.notifier.Notify(ctx, p.UserID, notification.TypeReviewReceived,
			fmt.Sprintf("You received a %d-star review for booking #%d.", r.Rating, b.ID))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   audit.ActionReviewCreated,
		Entity:   "review",
		EntityID: &r.ID,
		Metadata: map[string]any{"booking_id": b.ID, "rating": r.Rating},
	})

	return r, nil
}

// Reply stores the answer of the reviewed provider.
func (uc *Reviews) Reply(ctx context.Context, userID, reviewID uint, reply string) (*models.Review, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, httperr.Validation("reply_required", "Reply cannot be empty.")
	}

	r, err := uc.bookings.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	p, err := uc.providers.GetProviderByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r.ProviderID != p.ID {
		return nil, httperr.Forbidden("not_reviewed_provider", "Only the reviewed provider can reply.")
	}

	now := uc.now()
	r.ProviderReply = reply
	r.ProviderReplyAt = &now
	if err := uc.bookings.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Moderate approves or hides a review and refreshes the provider rating.
func (uc *Reviews) Moderate(ctx context.Context, reviewID uint, in ModerateInput) (*models.Review, error) {
	r, err := uc.bookings.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if in.IsApproved != nil {
		r.IsApproved = *in.IsApproved
	}
	if in.ModerationNotes != nil {
		r.ModerationNotes = *in.ModerationNotes
	}

	if err := uc.bookings.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	if _, err := uc.providers.RecomputeRating(ctx, r.ProviderID); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *Reviews) Get(ctx context.Context, id uint) (*models.Review, error) {
	return uc.bookings.GetReview(ctx, id)
}

func (uc *Reviews) List(ctx context.Context, providerID *uint) ([]models.Review, error) {
	return uc.bookings.ListReviews(ctx, providerID)
}
