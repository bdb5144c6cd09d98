package shared

import (
	"context"
	"time"

	"boardinghouse/internal/domain/booking"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. Every write of a lifecycle operation goes through it.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: unlocked reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx hands out repositories bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Users() UserRepository
	Reads() LockingReads
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	// OverdueBookingIDs lists approved bookings without proof whose deadline is before now.
	OverdueBookingIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// LockingReads take row locks held until the transaction ends.
// Callers lock the booking row before the room row.
type LockingReads interface {
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	RoomByIDForUpdate(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

// Minimal snapshot for command read operations
type RoomSnapshot struct {
	ID          uuid.UUID
	Number      string
	Capacity    int
	IsAvailable bool
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	// ClaimOrphans sets userID on bookings without an owner whose contact matches.
	// email must be lower-cased and trimmed, phone digits only; an empty value never matches.
	ClaimOrphans(ctx context.Context, userID uuid.UUID, email, phone string) (int64, error)
}

type RoomRepository interface {
	// SetAvailability is idempotent.
	SetAvailability(ctx context.Context, roomID uuid.UUID, available bool) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}
