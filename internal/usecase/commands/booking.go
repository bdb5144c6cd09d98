package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/infra"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/queries"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	RoomID   uuid.UUID
	CheckIn  time.Time
	CheckOut *time.Time
	// DurationMonths or CheckOut must be set. With both, CheckOut must match the duration.
	DurationMonths      *int
	GuestCount          int
	ContactName         string
	ContactEmail        string
	ContactPhone        string
	IdentityDocumentRef *string
	PaymentMethod       string
	SpecialRequests     string
}

type TransitionResult struct {
	Booking *queries.BookingView
	From    booking.Status
	To      booking.Status
	// Changed is false when the request was an accepted no-op (sweeper retries).
	Changed bool
}

type BookingSettings struct {
	PaymentWindow time.Duration
	MaxMonths     int
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*queries.BookingView, error)
	ChangeStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, target booking.Status) (*TransitionResult, error)
	AttachPaymentProof(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, proofRef string) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	calculator     *booking.PriceCalculator
	tracker        *RoomAvailabilityTracker
	notifier       Notifier
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	settings       BookingSettings
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	calculator *booking.PriceCalculator,
	tracker *RoomAvailabilityTracker,
	notifier Notifier,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
	settings BookingSettings,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		calculator:     calculator,
		tracker:        tracker,
		notifier:       notifier,
		bookingQueries: bookingQueries,
		clock:          clock,
		settings:       settings,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*queries.BookingView, error) {
	now := c.clock.Now()

	checkIn := booking.Date(in.CheckIn)
	if checkIn.Before(booking.Date(now)) {
		return nil, tag(nil, ErrCheckInInPast, errs.ErrValidation)
	}
	months, checkOut, err := c.resolveStay(checkIn, in.CheckOut, in.DurationMonths)
	if err != nil {
		return nil, err
	}

	contact, err := booking.NewContact(in.ContactName, in.ContactEmail, in.ContactPhone)
	if err != nil {
		return nil, tag(err, ErrInvalidBookingInput, errs.ErrValidation)
	}
	method, err := booking.NewPaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, tag(err, ErrInvalidBookingInput, errs.ErrValidation)
	}

	b, err := booking.NewBooking(booking.NewBookingParams{
		UserID:              actor.OwnerID(),
		RoomID:              in.RoomID,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		DurationMonths:      months,
		TotalPrice:          c.calculator.TotalPrice(months),
		PaymentMethod:       method,
		GuestCount:          in.GuestCount,
		Contact:             contact,
		IdentityDocumentRef: in.IdentityDocumentRef,
		SpecialRequests:     in.SpecialRequests,
	}, now)
	if err != nil {
		return nil, tag(err, ErrInvalidBookingInput, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Locked so a concurrent approval cannot slip between the check and the insert.
		room, err := tx.Reads().RoomByIDForUpdate(ctx, in.RoomID)
		if err != nil {
			return roomLookupErr(err)
		}
		if in.GuestCount > room.Capacity {
			return tag(nil, ErrGuestCountOverLimit, errs.ErrValidation)
		}
		if !room.IsAvailable {
			return tag(nil, ErrRoomUnavailable, errs.ErrRoomUnavailable)
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", b.ID(),
		"room_id", b.RoomID(),
		"actor", actor.String(),
		"months", months)

	return c.bookingQueries.GetByIDSystem(ctx, b.ID())
}

// resolveStay settles the billable months and check-out from whichever of the two the caller sent.
func (c *bookingCommandsImpl) resolveStay(checkIn time.Time, checkOut *time.Time, duration *int) (int, time.Time, error) {
	var months int
	switch {
	case duration != nil:
		months = *duration
	case checkOut != nil:
		if !booking.Date(*checkOut).After(checkIn) {
			return 0, time.Time{}, tag(booking.ErrInvalidStay, ErrInvalidBookingInput, errs.ErrValidation)
		}
		months = c.calculator.MonthsBetween(checkIn, *checkOut)
	default:
		return 0, time.Time{}, tag(nil, ErrStayRequired, errs.ErrValidation)
	}

	if months < 1 {
		return 0, time.Time{}, tag(booking.ErrInvalidDuration, ErrInvalidBookingInput, errs.ErrValidation)
	}
	if c.settings.MaxMonths > 0 && months > c.settings.MaxMonths {
		return 0, time.Time{}, tag(nil, ErrDurationTooLong, errs.ErrValidation)
	}

	if checkOut == nil {
		return months, c.calculator.CheckOutFrom(checkIn, months), nil
	}
	if duration != nil && !c.calculator.ValidateCheckOut(checkIn, *checkOut, months) {
		return 0, time.Time{}, tag(nil, ErrCheckOutMismatch, errs.ErrValidation)
	}
	return months, booking.Date(*checkOut), nil
}

func (c *bookingCommandsImpl) ChangeStatus(
	ctx context.Context,
	actor shared.Actor,
	bookingID uuid.UUID,
	target booking.Status,
) (*TransitionResult, error) {
	if !target.IsValid() {
		return nil, tag(nil, ErrUnknownStatus, errs.ErrValidation)
	}

	var (
		effects booking.Effects
		changed bool
		event   *BookingApprovedEvent
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		changed, event = false, nil
		now := c.clock.Now()

		b, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return bookingLookupErr(err)
		}
		if err := authorizeTransition(actor, b, target); err != nil {
			return err
		}

		if actor.IsSystem() {
			// Sweeper reruns and races with admins end here without an error.
			if b.Status() == booking.StatusCancelled || !b.PaymentOverdue(now) {
				effects = booking.Effects{From: b.Status(), To: b.Status()}
				return nil
			}
		}

		room, err := tx.Reads().RoomByIDForUpdate(ctx, b.RoomID())
		if err != nil {
			return roomLookupErr(err)
		}
		if target == booking.StatusApproved && b.Status().CanTransitionTo(target) && !room.IsAvailable {
			return tag(nil, ErrRoomNoLongerAvailable, errs.ErrRoomUnavailable)
		}

		effects, err = b.Transition(target, booking.TransitionOptions{
			Now:           now,
			PaymentWindow: c.settings.PaymentWindow,
			Automatic:     actor.IsSystem(),
		})
		if err != nil {
			return transitionErr(err)
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if effects.TouchesRoom {
			if err := c.tracker.Apply(ctx, tx.Rooms(), b.RoomID(), effects.To); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		changed = true
		if effects.NotifyApproved {
			event = approvedEvent(b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		slog.Info("booking status changed",
			"booking_id", bookingID,
			"from", effects.From,
			"to", effects.To,
			"actor", actor.String())
	}
	if event != nil {
		c.notifyApproved(ctx, *event)
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &TransitionResult{
		Booking: view,
		From:    effects.From,
		To:      effects.To,
		Changed: changed,
	}, nil
}

func (c *bookingCommandsImpl) AttachPaymentProof(
	ctx context.Context,
	actor shared.Actor,
	bookingID uuid.UUID,
	proofRef string,
) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return bookingLookupErr(err)
		}
		if !actor.IsAdmin() && (actor.Kind != shared.ActorUser || !b.IsOwnedBy(actor.UserID)) {
			return tag(nil, ErrNotAllowed, errs.ErrForbidden)
		}

		if err := b.AttachPaymentProof(proofRef, c.clock.Now()); err != nil {
			switch {
			case errors.Is(err, booking.ErrProofNotAccepted):
				return tag(err, ErrProofNotAccepted, errs.ErrInvalidTransition)
			default:
				return tag(err, ErrInvalidBookingInput, errs.ErrValidation)
			}
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payment proof attached", "booking_id", bookingID, "actor", actor.String())
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) notifyApproved(ctx context.Context, event BookingApprovedEvent) {
	if err := c.notifier.BookingApproved(ctx, event); err != nil {
		slog.Error("failed to request booking approved notification",
			"booking_id", event.BookingID,
			"error", err.Error())
	}
}

// authorizeTransition: admins drive the whole table, owners may withdraw a booking
// that is not yet paid, the sweeper may only cancel.
func authorizeTransition(actor shared.Actor, b *booking.Booking, target booking.Status) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsSystem():
		if target == booking.StatusCancelled {
			return nil
		}
	case actor.Kind == shared.ActorUser && b.IsOwnedBy(actor.UserID):
		if target == booking.StatusCancelled && b.Status() != booking.StatusPaid {
			return nil
		}
	}
	return tag(nil, ErrNotAllowed, errs.ErrForbidden)
}

func transitionErr(err error) error {
	if errors.Is(err, booking.ErrPaymentProofRequired) {
		return tag(err, ErrPaymentProofMissing, errs.ErrInvalidTransition)
	}
	return tag(err, ErrInvalidTransition, errs.ErrInvalidTransition)
}

func bookingLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return tag(nil, ErrBookingNotFound, errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func roomLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return tag(nil, ErrRoomNotFound, errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func approvedEvent(b *booking.Booking) *BookingApprovedEvent {
	event := &BookingApprovedEvent{
		BookingID:    b.ID(),
		RoomID:       b.RoomID(),
		ContactName:  b.Contact().Name(),
		ContactEmail: b.Contact().Email(),
		ContactPhone: b.Contact().Phone(),
		TotalPrice:   b.TotalPrice().Amount(),
	}
	if due := b.PaymentDueAt(); due != nil {
		event.PaymentDueAt = *due
	}
	return event
}
