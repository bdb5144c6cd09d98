package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notifier.go -destination=../../mock/commandsmock/notifier_mock.go -package=commandsmock

type BookingApprovedEvent struct {
	BookingID    uuid.UUID
	RoomID       uuid.UUID
	ContactName  string
	ContactEmail string
	ContactPhone string
	TotalPrice   int64
	PaymentDueAt time.Time
}

// Notifier requests delivery of booking messages. It is called after commit and
// its failure never undoes the transition.
type Notifier interface {
	BookingApproved(ctx context.Context, event BookingApprovedEvent) error
}
