package queries

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// BookingView is the read model of one booking joined with its room number.
type BookingView struct {
	ID                  uuid.UUID
	UserID              *uuid.UUID
	RoomID              uuid.UUID
	RoomNumber          string
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

type RoomView struct {
	ID           uuid.UUID
	Number       string
	Floor        int
	MonthlyPrice int64
	Capacity     int
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AuthorizedUserView struct {
	ID       uuid.UUID
	Email    string
	Phone    string
	Role     string
	IsActive bool
}

type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page into the allowed window.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type BookingFilter struct {
	// Status is empty for all statuses.
	Status string
	UserID *uuid.UUID
	RoomID *uuid.UUID
	Page   Page
}
