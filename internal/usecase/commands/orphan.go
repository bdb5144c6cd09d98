package commands

import (
	"context"
	"log/slog"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/infra"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/queries"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
)

// OrphanBookingAssociator hands bookings made without an account to the user
// whose contact details match. It never touches status or rooms.
type OrphanBookingAssociator interface {
	AssociateOrphanBookings(ctx context.Context, userID uuid.UUID, email, phone string) (int64, error)
	// ClaimForActor runs the association with the stored contact of the logged-in user.
	ClaimForActor(ctx context.Context, actor shared.Actor) (int64, error)
}

type orphanBookingAssociatorImpl struct {
	uow   shared.UnitOfWork
	users queries.UserReadStore
}

func NewOrphanBookingAssociator(uow shared.UnitOfWork, users queries.UserReadStore) OrphanBookingAssociator {
	return &orphanBookingAssociatorImpl{uow: uow, users: users}
}

func (a *orphanBookingAssociatorImpl) AssociateOrphanBookings(ctx context.Context, userID uuid.UUID, email, phone string) (int64, error) {
	email = booking.NormalizeEmail(email)
	phone = booking.NormalizePhone(phone)
	if email == "" && phone == "" {
		return 0, nil
	}

	var claimed int64
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Bookings().ClaimOrphans(ctx, userID, email, phone)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		claimed = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	if claimed > 0 {
		slog.Info("orphan bookings claimed", "user_id", userID, "count", claimed)
	}
	return claimed, nil
}

func (a *orphanBookingAssociatorImpl) ClaimForActor(ctx context.Context, actor shared.Actor) (int64, error) {
	if actor.Kind != shared.ActorUser {
		return 0, tag(nil, ErrNotAllowed, errs.ErrForbidden)
	}
	u, err := a.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, tag(nil, ErrUserNotFound, errs.ErrNotFound)
		}
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return a.AssociateOrphanBookings(ctx, u.ID, u.Email, u.Phone)
}
