package commands

import (
	"context"
	"log/slog"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/shared"
)

// sweepBatchLimit bounds one run; whatever is left is picked up by the next tick.
const sweepBatchLimit = 1000

type SweepResult struct {
	Candidates int `json:"candidates"`
	Cancelled  int `json:"cancelled"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// PaymentDeadlineSweeper cancels approved bookings whose payment deadline passed
// without proof. Each booking goes through ChangeStatus as the system actor.
type PaymentDeadlineSweeper interface {
	Run(ctx context.Context) (SweepResult, error)
}

type paymentDeadlineSweeperImpl struct {
	uow      shared.UnitOfWork
	bookings BookingCommands
	clock    clock.Clock
}

func NewPaymentDeadlineSweeper(uow shared.UnitOfWork, bookings BookingCommands, clock clock.Clock) PaymentDeadlineSweeper {
	return &paymentDeadlineSweeperImpl{
		uow:      uow,
		bookings: bookings,
		clock:    clock,
	}
}

func (s *paymentDeadlineSweeperImpl) Run(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	ids, err := s.uow.CommandReads().OverdueBookingIDs(ctx, s.clock.Now(), sweepBatchLimit)
	if err != nil {
		return result, errs.Mark(errs.Wrap(err, "select overdue bookings"), errs.ErrDatabaseOperationFailed)
	}
	result.Candidates = len(ids)
	if len(ids) == sweepBatchLimit {
		slog.Warn("sweep batch limit reached", "limit", sweepBatchLimit)
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			slog.Warn("sweep interrupted", "remaining", len(ids)-result.Cancelled-result.Skipped-result.Failed)
			return result, ctx.Err()
		}

		res, err := s.bookings.ChangeStatus(ctx, shared.SystemActor(), id, booking.StatusCancelled)
		switch {
		case err != nil:
			result.Failed++
			slog.Warn("sweep failed to cancel booking", "booking_id", id, "error", err.Error())
		case res.Changed:
			result.Cancelled++
		default:
			result.Skipped++
		}
	}

	slog.Info("payment deadline sweep finished",
		"candidates", result.Candidates,
		"cancelled", result.Cancelled,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}
