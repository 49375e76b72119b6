// Package scheduler runs the periodic reminder and cleanup jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/marketplace-api/internal/domain/booking"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/domain/notification"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
	"github.com/BruksfildServices01/marketplace-api/internal/notify"
	"github.com/BruksfildServices01/marketplace-api/internal/timezone"
)

const (
	reminderSpec = "* * * * *"
	cleanupSpec  = "@hourly"

	reminderFrom = 55 * time.Minute
	reminderTo   = 65 * time.Minute
	jobTimeout   = 30 * time.Second
)

// Purger drops expired revocation entries. Only the database store needs it.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Deps struct {
	Bookings booking.Repository
	Users    identity.Repository
	Purger   Purger
	Notifier notify.Notifier
	Mail     mailer.Sender
	Timezone string
	Log      *zap.Logger
}

type Scheduler struct {
	Deps
	cron *cron.Cron
	now  func() time.Time
}

func New(d Deps) *Scheduler {
	return &Scheduler{
		Deps: d,
		cron: cron.New(),
		now:  time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(reminderSpec, s.run("reminders", s.SendReminders)); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	if _, err := s.cron.AddFunc(cleanupSpec, s.run("cleanup", s.Cleanup)); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.Log.Info("scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := job(ctx); err != nil {
			s.Log.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

// SendReminders notifies customers of confirmed bookings starting in about
// an hour. Each booking is reminded once.
func (s *Scheduler) SendReminders(ctx context.Context) error {
	now := s.now()

	due, err := s.Bookings.ListDueReminders(ctx, now.Add(reminderFrom), now.Add(reminderTo))
	if err != nil {
		return err
	}

	for i := range due {
		b := &due[i]

		service := "your"
		if b.Service != nil {
			service = b.Service.Name
		}
		when := timezone.Format(b.ScheduledAt, s.Timezone)

		s.Notifier.Notify(ctx, b.CustomerID, notification.TypeBookingReminder,
			fmt.Sprintf("Reminder: booking #%d (%s) starts at %s.", b.ID, service, when))

		if b.Customer != nil {
			if err := s.Mail.Send(mailer.ReminderEmail(b.Customer.Email, service, when)); err != nil {
				s.Log.Warn("reminder mail failed", zap.Uint("booking_id", b.ID), zap.Error(err))
			}
		}

		if err := s.Bookings.MarkReminderSent(ctx, b.ID, now); err != nil {
			return fmt.Errorf("mark reminder %d: %w", b.ID, err)
		}
	}

	if len(due) > 0 {
		s.Log.Info("booking reminders sent", zap.Int("count", len(due)))
	}
	return nil
}

// Cleanup purges expired revocations and stale password-reset tokens.
func (s *Scheduler) Cleanup(ctx context.Context) error {
	now := s.now()

	if s.Purger != nil {
		n, err := s.Purger.PurgeExpired(ctx, now)
		if err != nil {
			return fmt.Errorf("purge revocations: %w", err)
		}
		s.Log.Debug("expired revocations purged", zap.Int64("count", n))
	}

	n, err := s.Users.ClearExpiredResetTokens(ctx, now)
	if err != nil {
		return fmt.Errorf("clear reset tokens: %w", err)
	}
	s.Log.Debug("expired reset tokens cleared", zap.Int64("count", n))
	return nil
}
