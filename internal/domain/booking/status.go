package booking

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the whole lifecycle. A pair missing here is an invalid transition.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusPaid, StatusRejected, StatusCancelled, StatusCompleted},
	StatusPaid:      {StatusCancelled, StatusCompleted},
	StatusRejected:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusApproved, StatusPaid,
		StatusRejected, StatusCompleted, StatusCancelled,
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

// IsTerminal reports whether no transition leaves s. Unknown statuses are terminal.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoldsRoom reports whether a booking in s occupies its room.
func (s Status) HoldsRoom() bool {
	switch s {
	case StatusApproved, StatusPaid:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
