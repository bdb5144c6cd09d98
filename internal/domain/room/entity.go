package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidNumber   = errors.New("room number is required")
	ErrInvalidCapacity = errors.New("room capacity must be at least one")
	ErrNegativePrice   = errors.New("room price cannot be negative")
)

type Room struct {
	id           uuid.UUID
	number       string
	floor        int
	monthlyPrice int64
	capacity     int
	isAvailable  bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewRoom(number string, floor int, monthlyPrice int64, capacity int) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrInvalidNumber
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if monthlyPrice < 0 {
		return nil, ErrNegativePrice
	}
	return &Room{
		id:           uuid.New(),
		number:       number,
		floor:        floor,
		monthlyPrice: monthlyPrice,
		capacity:     capacity,
		isAvailable:  true,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	number string,
	floor int,
	monthlyPrice int64,
	capacity int,
	isAvailable bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:           id,
		number:       number,
		floor:        floor,
		monthlyPrice: monthlyPrice,
		capacity:     capacity,
		isAvailable:  isAvailable,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Room) Fits(guests int) bool {
	return guests >= 1 && guests <= r.capacity
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() string       { return r.number }
func (r *Room) Floor() int           { return r.floor }
func (r *Room) MonthlyPrice() int64  { return r.monthlyPrice }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) IsAvailable() bool    { return r.isAvailable }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
