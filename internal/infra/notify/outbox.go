// Package notify enqueues booking notifications into the notification_jobs outbox.
// Delivery over email and WhatsApp is done by a separate worker.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/commands"

	"github.com/google/uuid"
)

const (
	TopicBookingApproved = "booking_approved"

	KindEmail    = "email"
	KindWhatsApp = "whatsapp"
)

type JobWriter interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type bookingApprovedPayload struct {
	BookingID    uuid.UUID `json:"booking_id"`
	RoomID       uuid.UUID `json:"room_id"`
	Recipient    string    `json:"recipient"`
	ContactName  string    `json:"contact_name"`
	TotalPrice   int64     `json:"total_price"`
	PaymentDueAt time.Time `json:"payment_due_at"`
}

type OutboxNotifier struct {
	jobs  JobWriter
	clock clock.Clock
}

func NewOutboxNotifier(jobs JobWriter, clk clock.Clock) *OutboxNotifier {
	return &OutboxNotifier{jobs: jobs, clock: clk}
}

// BookingApproved queues one job per contact channel the booking has.
func (n *OutboxNotifier) BookingApproved(ctx context.Context, event commands.BookingApprovedEvent) error {
	channels := []struct {
		kind      string
		recipient string
	}{
		{KindEmail, event.ContactEmail},
		{KindWhatsApp, event.ContactPhone},
	}

	now := n.clock.Now()
	for _, ch := range channels {
		if ch.recipient == "" {
			continue
		}
		payload, err := json.Marshal(bookingApprovedPayload{
			BookingID:    event.BookingID,
			RoomID:       event.RoomID,
			Recipient:    ch.recipient,
			ContactName:  event.ContactName,
			TotalPrice:   event.TotalPrice,
			PaymentDueAt: event.PaymentDueAt,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode notification payload")
		}
		if err := n.jobs.CreateJob(ctx, ch.kind, TopicBookingApproved, payload, now); err != nil {
			return errs.Wrap(err, "failed to enqueue "+ch.kind+" notification")
		}
		slog.DebugContext(ctx, "notification queued",
			"kind", ch.kind,
			"topic", TopicBookingApproved,
			"booking_id", event.BookingID.String())
	}
	return nil
}
