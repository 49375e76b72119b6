package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
	"github.com/BruksfildServices01/marketplace-api/internal/notify"
)

type ReviewVerificationInput struct {
	AdminID      uint
	TargetUserID uint
	Action       string
	Notes        string
}

type ReviewVerificationOutput struct {
	Provider *models.Provider
	User     *models.User
}

type ReviewVerification struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Sink
	now      func() time.Time
}

func NewReviewVerification(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Sink,
) *ReviewVerification {
	return &ReviewVerification{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

func (uc *ReviewVerification) Execute(
	ctx context.Context,
	in ReviewVerificationInput,
) (*ReviewVerificationOutput, error) {

	action, err := domain.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}

	p, u, err := uc.repo.ApplyDecision(ctx, domain.DecisionInput{
		UserID: in.TargetUserID,
		Action: action,
		Notes:  in.Notes,
		Now:    uc.now(),
	})
	if err != nil {
		return nil, err
	}

	auditAction := audit.ActionProviderApproved
	msg := "Your provider application has been approved."
	if action == domain.ActionReject {
		auditAction = audit.ActionProviderRejected
		msg = "Your provider application has been rejected."
	}
	if in.Notes != "" {
		msg = fmt.Sprintf("%s Admin notes: %s", msg, in.Notes)
	}

	uc.notifier.Notify(ctx, u.ID, notification.TypeProviderVerification, msg)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.AdminID,
		Action:   auditAction,
		Entity:   "provider",
		EntityID: &p.ID,
		Metadata: map[string]any{"target_user_id": u.ID, "notes": in.Notes},
	})

	return &ReviewVerificationOutput{Provider: p, User: u}, nil
}
