package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"boardinghouse/internal/infra"
	"boardinghouse/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type bookingReadStore struct {
	store *Store
}

func NewBookingReadStore(store *Store) queries.BookingReadStore {
	return &bookingReadStore{store: store}
}

func (s *bookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	row, ok := s.store.data.bookings[id]
	if !ok {
		return nil, infra.NotFound("booking not found")
	}
	return s.view(row)
}

func (s *bookingReadStore) List(_ context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rows := make([]bookingRow, 0)
	for _, row := range s.store.data.bookings {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.UserID != nil && (row.UserID == nil || *row.UserID != *filter.UserID) {
			continue
		}
		if filter.RoomID != nil && row.RoomID != *filter.RoomID {
			continue
		}
		rows = append(rows, row)
	}
	// newest first, like the SQL store
	slices.SortFunc(rows, func(a, b bookingRow) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	page := filter.Page.Normalize()
	if page.Offset >= len(rows) {
		return []*queries.BookingView{}, nil
	}
	rows = rows[page.Offset:min(page.Offset+page.Limit, len(rows))]

	views := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		v, err := s.view(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *bookingReadStore) view(row bookingRow) (*queries.BookingView, error) {
	var v queries.BookingView
	if err := copier.Copy(&v, &row); err != nil {
		return nil, infra.WrapRepoErr("failed to map booking", err)
	}
	if r, ok := s.store.data.rooms[row.RoomID]; ok {
		v.RoomNumber = r.Number
	}
	return &v, nil
}

type roomReadStore struct {
	store *Store
}

func NewRoomReadStore(store *Store) queries.RoomReadStore {
	return &roomReadStore{store: store}
}

func (s *roomReadStore) List(_ context.Context, onlyAvailable bool) ([]*queries.RoomView, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	rows := make([]roomRow, 0, len(s.store.data.rooms))
	for _, row := range s.store.data.rooms {
		if onlyAvailable && !row.IsAvailable {
			continue
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b roomRow) int {
		if c := cmp.Compare(a.Floor, b.Floor); c != 0 {
			return c
		}
		return strings.Compare(a.Number, b.Number)
	})

	views := make([]*queries.RoomView, len(rows))
	for i, row := range rows {
		v := queries.RoomView(row)
		views[i] = &v
	}
	return views, nil
}

func (s *roomReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RoomView, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	row, ok := s.store.data.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	v := queries.RoomView(row)
	return &v, nil
}

type userReadStore struct {
	store *Store
}

func NewUserReadStore(store *Store) queries.UserReadStore {
	return &userReadStore{store: store}
}

func (s *userReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	row, ok := s.store.data.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	return userView(row), nil
}

func (s *userReadStore) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, row := range s.store.data.users {
		if strings.ToLower(row.Email) == email {
			return userView(row), row.PasswordHash, nil
		}
	}
	return nil, "", infra.NotFound("user not found")
}

func userView(row userRow) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       row.ID,
		Email:    row.Email,
		Phone:    row.Phone,
		Role:     row.Role,
		IsActive: row.IsActive,
	}
}

func sortByDueAt(rows []bookingRow) {
	slices.SortFunc(rows, func(a, b bookingRow) int {
		return a.PaymentDueAt.Compare(*b.PaymentDueAt)
	})
}
