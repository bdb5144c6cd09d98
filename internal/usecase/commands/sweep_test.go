package commands_test

import (
	"context"
	"testing"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_CancelsOverdueAndReleasesRoom(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	created := f.create(shared.AnonymousActor(), f.roomID)
	approved := f.changeStatus(f.admin, created.ID, booking.StatusApproved)
	f.clock.Add(25 * time.Hour)

	result, err := f.sweeper.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, commands.SweepResult{Candidates: 1, Cancelled: 1}, result)
	view := f.get(created.ID)
	assert.Equal(t, booking.StatusCancelled.String(), view.Status)
	assert.Equal(t, approved.Booking.PaymentDueAt, view.PaymentDueAt, "elapsed deadline stays for audit")
	assert.True(t, f.roomAvailable(f.roomID))
	f.assertRoomInvariant()
}

func TestSweep_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	created := f.create(shared.AnonymousActor(), f.roomID)
	f.changeStatus(f.admin, created.ID, booking.StatusApproved)
	f.clock.Add(25 * time.Hour)

	_, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	afterFirst := f.get(created.ID)

	second, err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, commands.SweepResult{}, second)

	res, err := f.bookings.ChangeStatus(context.Background(), shared.SystemActor(), created.ID, booking.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, afterFirst, f.get(created.ID))
}

func TestSweep_LeavesBookingsThatAreNotOverdue(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	other := f.addRoom("A-102", 1)

	withProof := f.create(f.owner, f.roomID)
	f.changeStatus(f.admin, withProof.ID, booking.StatusApproved)
	_, err := f.bookings.AttachPaymentProof(context.Background(), f.owner, withProof.ID, "proofs/ok.jpg")
	require.NoError(t, err)

	notDue := f.create(shared.AnonymousActor(), other)
	pending := f.create(shared.AnonymousActor(), other)
	f.clock.Add(23 * time.Hour)
	f.changeStatus(f.admin, notDue.ID, booking.StatusApproved)
	f.clock.Add(2 * time.Hour)

	result, err := f.sweeper.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.Candidates)
	assert.Equal(t, booking.StatusApproved.String(), f.get(withProof.ID).Status)
	assert.Equal(t, booking.StatusApproved.String(), f.get(notDue.ID).Status)
	assert.Equal(t, booking.StatusPending.String(), f.get(pending.ID).Status)
	f.assertRoomInvariant()
}

func TestSweep_SystemCancelRechecksUnderLock(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	created := f.create(f.owner, f.roomID)
	f.changeStatus(f.admin, created.ID, booking.StatusApproved)
	f.clock.Add(25 * time.Hour)

	// Proof lands between candidate selection and the cancel.
	racing := &interceptingBookings{
		BookingCommands: f.bookings,
		before: func(id uuid.UUID) error {
			_, err := f.bookings.AttachPaymentProof(context.Background(), f.owner, id, "proofs/late.jpg")
			return err
		},
	}
	sweeper := commands.NewPaymentDeadlineSweeper(f.uow, racing, f.clock)

	result, err := sweeper.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, commands.SweepResult{Candidates: 1, Skipped: 1}, result)
	assert.Equal(t, booking.StatusApproved.String(), f.get(created.ID).Status)
	assert.False(t, f.roomAvailable(f.roomID))
}

func TestSweep_FailureDoesNotAbortBatch(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	other := f.addRoom("A-102", 1)

	first := f.create(shared.AnonymousActor(), f.roomID)
	second := f.create(shared.AnonymousActor(), other)
	f.changeStatus(f.admin, first.ID, booking.StatusApproved)
	f.changeStatus(f.admin, second.ID, booking.StatusApproved)
	f.clock.Add(25 * time.Hour)

	failing := &interceptingBookings{
		BookingCommands: f.bookings,
		before: func(id uuid.UUID) error {
			if id == first.ID {
				return errs.Mark(errs.New("connection reset"), errs.ErrDatabaseOperationFailed)
			}
			return nil
		},
	}
	sweeper := commands.NewPaymentDeadlineSweeper(f.uow, failing, f.clock)

	result, err := sweeper.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, commands.SweepResult{Candidates: 2, Cancelled: 1, Failed: 1}, result)
	assert.Equal(t, booking.StatusApproved.String(), f.get(first.ID).Status)
	assert.Equal(t, booking.StatusCancelled.String(), f.get(second.ID).Status)
	f.assertRoomInvariant()
}

func TestSweep_StopsOnCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.allowNotifications()
	created := f.create(shared.AnonymousActor(), f.roomID)
	f.changeStatus(f.admin, created.ID, booking.StatusApproved)
	f.clock.Add(25 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.sweeper.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, booking.StatusApproved.String(), f.get(created.ID).Status)
}

// interceptingBookings runs before ahead of every ChangeStatus and fails the call when it errors.
type interceptingBookings struct {
	commands.BookingCommands
	before func(id uuid.UUID) error
}

func (b *interceptingBookings) ChangeStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, target booking.Status) (*commands.TransitionResult, error) {
	if err := b.before(id); err != nil {
		return nil, err
	}
	return b.BookingCommands.ChangeStatus(ctx, actor, id, target)
}
