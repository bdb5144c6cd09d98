// Package memstore is an in-process implementation of the persistence ports.
// One mutex serialises every unit of work, which gives the same guarantees as
// the row locks taken by the Postgres store for a single process.
package memstore

import (
	"context"
	"encoding/json"
	"maps"
	"sync"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/domain/room"
	"boardinghouse/internal/domain/user"

	"github.com/google/uuid"
)

type roomRow struct {
	ID           uuid.UUID
	Number       string
	Floor        int
	MonthlyPrice int64
	Capacity     int
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type bookingRow struct {
	ID                  uuid.UUID
	UserID              *uuid.UUID
	RoomID              uuid.UUID
	CheckIn             time.Time
	CheckOut            time.Time
	DurationMonths      int
	TotalPrice          int64
	PaymentMethod       string
	GuestCount          int
	ContactName         string
	ContactEmail        string
	ContactPhone        string
	IdentityDocumentRef *string
	PaymentProofRef     *string
	SpecialRequests     string
	Status              string
	PaymentDueAt        *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type userRow struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NotificationJob struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload json.RawMessage
	RunAt   time.Time
	Status  string
}

type tables struct {
	rooms    map[uuid.UUID]roomRow
	bookings map[uuid.UUID]bookingRow
	users    map[uuid.UUID]userRow
}

func (t tables) clone() tables {
	return tables{
		rooms:    maps.Clone(t.rooms),
		bookings: maps.Clone(t.bookings),
		users:    maps.Clone(t.users),
	}
}

type Store struct {
	mu   sync.RWMutex
	data tables
	jobs []NotificationJob
}

func New() *Store {
	return &Store{
		data: tables{
			rooms:    map[uuid.UUID]roomRow{},
			bookings: map[uuid.UUID]bookingRow{},
			users:    map[uuid.UUID]userRow{},
		},
	}
}

func (s *Store) SeedRoom(r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.data.rooms[r.ID()] = roomRow{
		ID:           r.ID(),
		Number:       r.Number(),
		Floor:        r.Floor(),
		MonthlyPrice: r.MonthlyPrice(),
		Capacity:     r.Capacity(),
		IsAvailable:  r.IsAvailable(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *Store) SeedUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.data.users[u.ID()] = userRow{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Phone:        u.Phone(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SeedBooking stores b as is, bypassing the lifecycle. Room flags are not touched.
func (s *Store) SeedBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.bookings[b.ID()] = toBookingRow(b)
}

func (s *Store) RoomAvailable(id uuid.UUID) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data.rooms[id]
	return r.IsAvailable, ok
}

// SetRoomAvailability is the administrative override.
func (s *Store) SetRoomAvailability(id uuid.UUID, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.data.rooms[id]; ok {
		r.IsAvailable = available
		s.data.rooms[id] = r
	}
}

// ActiveBookingCount counts approved or paid bookings of a room.
func (s *Store) ActiveBookingCount(roomID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.data.bookings {
		if b.RoomID == roomID && booking.Status(b.Status).HoldsRoom() {
			n++
		}
	}
	return n
}

func (s *Store) RoomIDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.data.rooms))
	for id := range s.data.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, NotificationJob{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   runAt,
		Status:  "queued",
	})
	return nil
}

func (s *Store) Jobs() []NotificationJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]NotificationJob(nil), s.jobs...)
}

func toBookingRow(b *booking.Booking) bookingRow {
	return bookingRow{
		ID:                  b.ID(),
		UserID:              b.UserID(),
		RoomID:              b.RoomID(),
		CheckIn:             b.CheckIn(),
		CheckOut:            b.CheckOut(),
		DurationMonths:      b.DurationMonths(),
		TotalPrice:          b.TotalPrice().Amount(),
		PaymentMethod:       b.PaymentMethod().String(),
		GuestCount:          b.GuestCount(),
		ContactName:         b.Contact().Name(),
		ContactEmail:        b.Contact().Email(),
		ContactPhone:        b.Contact().Phone(),
		IdentityDocumentRef: b.IdentityDocumentRef(),
		PaymentProofRef:     b.PaymentProofRef(),
		SpecialRequests:     b.SpecialRequests(),
		Status:              b.Status().String(),
		PaymentDueAt:        b.PaymentDueAt(),
		CreatedAt:           b.CreatedAt(),
		UpdatedAt:           b.UpdatedAt(),
	}
}

func (r bookingRow) toDomain() (*booking.Booking, error) {
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(r.TotalPrice)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		r.ID,
		r.UserID,
		r.RoomID,
		r.CheckIn, r.CheckOut,
		r.DurationMonths,
		price,
		booking.PaymentMethod(r.PaymentMethod),
		r.GuestCount,
		booking.ReconstructContact(r.ContactName, r.ContactEmail, r.ContactPhone),
		r.IdentityDocumentRef, r.PaymentProofRef,
		r.SpecialRequests,
		status,
		r.PaymentDueAt,
		r.CreatedAt, r.UpdatedAt,
	), nil
}
