package booking

import (
	"github.com/BruksfildServices01/marketplace-api/internal/domain/identity"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.Validation("invalid_status", "Unknown booking status: "+s)
	}
	return st, nil
}

// ===============================
// Transition table
// ===============================

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidTransition(string(from), string(to))
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

// CanReschedule allows moving the date until the job has started.
func CanReschedule(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.InvalidState("cannot_reschedule", "Only pending or confirmed bookings can be rescheduled.")
	}
	return nil
}

// CanDrive decides who may request a status. Customers may only cancel.
func CanDrive(role identity.Role, to Status) error {
	switch role {
	case identity.RoleAdmin, identity.RoleProvider:
		return nil
	default:
		if to == StatusCancelled {
			return nil
		}
		return httperr.Forbidden("status_change_forbidden", "Customers can only cancel a booking.")
	}
}

func InitialStatus() Status {
	return StatusPending
}
