package repository

import (
	"context"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/infra"
	"boardinghouse/internal/infra/repository/converter"
	sqlc "boardinghouse/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	UpdateBookingState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStateParams) (int64, error)
	ClaimOrphanBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOrphanBookingsParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, r.db, converter.BookingToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// Update persists the mutable lifecycle columns: status, proof and deadline.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	affected, err := r.queries.UpdateBookingState(ctx, r.db, converter.BookingToStateParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if affected == 0 {
		return infra.NotFound("booking not found")
	}
	return nil
}

func (r *BookingRepository) ClaimOrphans(ctx context.Context, userID uuid.UUID, email, phone string) (int64, error) {
	claimed, err := r.queries.ClaimOrphanBookings(ctx, r.db, sqlc.ClaimOrphanBookingsParams{
		UserID: userID,
		Email:  email,
		Phone:  phone,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim orphan bookings", err)
	}
	return claimed, nil
}
