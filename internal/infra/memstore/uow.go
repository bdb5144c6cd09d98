package memstore

import (
	"context"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/infra"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
)

type unitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &unitOfWork{store: store}
}

// Within runs fn against a copy of the tables and publishes the copy only when fn succeeds.
func (u *unitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	work := u.store.data.clone()
	if err := fn(ctx, &memTx{data: work}); err != nil {
		return err
	}
	u.store.data = work
	return nil
}

func (u *unitOfWork) CommandReads() shared.CommandReads {
	return &commandReads{store: u.store}
}

type memTx struct {
	data tables
}

func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepo{data: t.data} }
func (t *memTx) Rooms() shared.RoomRepository       { return &roomRepo{data: t.data} }
func (t *memTx) Users() shared.UserRepository       { return &userRepo{data: t.data} }
func (t *memTx) Reads() shared.LockingReads         { return &lockingReads{data: t.data} }

type lockingReads struct {
	data tables
}

func (r *lockingReads) BookingByIDForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, ok := r.data.bookings[id]
	if !ok {
		return nil, infra.NotFound("booking not found")
	}
	b, err := row.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	return b, nil
}

func (r *lockingReads) RoomByIDForUpdate(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	row, ok := r.data.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	return roomSnapshot(row), nil
}

type bookingRepo struct {
	data tables
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.data.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	if _, ok := r.data.rooms[b.RoomID()]; !ok {
		return infra.WrapRepoErr("room does not exist", nil, infra.KindForeignKeyViolated)
	}
	r.data.bookings[b.ID()] = toBookingRow(b)
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.data.bookings[b.ID()]; !ok {
		return infra.NotFound("booking not found")
	}
	r.data.bookings[b.ID()] = toBookingRow(b)
	return nil
}

func (r *bookingRepo) ClaimOrphans(_ context.Context, userID uuid.UUID, email, phone string) (int64, error) {
	var claimed int64
	now := time.Now()
	for id, row := range r.data.bookings {
		if row.UserID != nil {
			continue
		}
		emailMatch := email != "" && booking.NormalizeEmail(row.ContactEmail) == email
		phoneMatch := phone != "" && booking.NormalizePhone(row.ContactPhone) == phone
		if !emailMatch && !phoneMatch {
			continue
		}
		owner := userID
		row.UserID = &owner
		row.UpdatedAt = now
		r.data.bookings[id] = row
		claimed++
	}
	return claimed, nil
}

type roomRepo struct {
	data tables
}

func (r *roomRepo) SetAvailability(_ context.Context, roomID uuid.UUID, available bool) error {
	row, ok := r.data.rooms[roomID]
	if !ok {
		return infra.NotFound("room not found")
	}
	if row.IsAvailable == available {
		return nil
	}
	row.IsAvailable = available
	row.UpdatedAt = time.Now()
	r.data.rooms[roomID] = row
	return nil
}

type userRepo struct {
	data tables
}

func (r *userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	row, ok := r.data.users[userID]
	if !ok {
		return infra.NotFound("user not found")
	}
	row.LastLogin = &at
	r.data.users[userID] = row
	return nil
}

type commandReads struct {
	store *Store
}

func (c *commandReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	row, ok := c.store.data.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	return roomSnapshot(row), nil
}

func (c *commandReads) OverdueBookingIDs(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	rows := make([]bookingRow, 0)
	for _, row := range c.store.data.bookings {
		if row.Status != booking.StatusApproved.String() || row.PaymentProofRef != nil {
			continue
		}
		if row.PaymentDueAt == nil || !row.PaymentDueAt.Before(now) {
			continue
		}
		rows = append(rows, row)
	}
	sortByDueAt(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func roomSnapshot(row roomRow) *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:          row.ID,
		Number:      row.Number,
		Capacity:    row.Capacity,
		IsAvailable: row.IsAvailable,
	}
}
