package audit

import (
	"sync"

	"go.uber.org/zap"
)

const (
	ActionRoleChangeRequested  = "role_change_requested"
	ActionProviderApproved     = "provider_approved"
	ActionProviderRejected     = "provider_rejected"
	ActionProviderDocument     = "provider_document_uploaded"
	ActionBookingCreated       = "booking_created"
	ActionBookingStatusChanged = "booking_status_changed"
	ActionBookingCancelled     = "booking_cancelled"
	ActionBookingDeleted       = "booking_deleted"
	ActionPaymentCreated       = "payment_created"
	ActionPaymentUpdated       = "payment_updated"
	ActionReviewCreated        = "review_created"
	ActionUserDeactivated      = "user_deactivated"
	ActionPasswordChanged      = "password_changed"
	ActionPasswordReset        = "password_reset"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink receives audit events. Dispatcher is the production implementation.
type Sink interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
	wg     sync.WaitGroup
}

var _ Sink = (*Dispatcher)(nil)

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch never blocks the request: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Dispatch(Event) {}
