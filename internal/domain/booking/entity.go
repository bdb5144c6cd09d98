package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidTransition    = errors.New("booking status transition not allowed")
	ErrPaymentProofRequired = errors.New("payment proof is required before marking paid")
	ErrInvalidStay          = errors.New("check-out must be after check-in")
	ErrInvalidDuration      = errors.New("duration must be at least one month")
	ErrInvalidGuestCount    = errors.New("guest count must be at least one")
	ErrMissingRoom          = errors.New("room is required")
	ErrMissingProof         = errors.New("payment proof reference is required")
	ErrProofNotAccepted     = errors.New("payment proof cannot be attached in the current status")
)

type Booking struct {
	id                  uuid.UUID
	userID              *uuid.UUID
	roomID              uuid.UUID
	checkIn             time.Time
	checkOut            time.Time
	durationMonths      int
	totalPrice          Money
	paymentMethod       PaymentMethod
	guestCount          int
	contact             Contact
	identityDocumentRef *string
	paymentProofRef     *string
	specialRequests     string
	status              Status
	paymentDueAt        *time.Time
	createdAt           time.Time
	updatedAt           time.Time
}

type NewBookingParams struct {
	UserID              *uuid.UUID
	RoomID              uuid.UUID
	CheckIn             time.Time
	CheckOut            time.Time
	DurationMonths      int
	TotalPrice          Money
	PaymentMethod       PaymentMethod
	GuestCount          int
	Contact             Contact
	IdentityDocumentRef *string
	SpecialRequests     string
}

// NewBooking admits a booking in pending. Room capacity and availability are checked by the caller.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if p.RoomID == uuid.Nil {
		return nil, ErrMissingRoom
	}
	checkIn, checkOut := Date(p.CheckIn), Date(p.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidStay
	}
	if p.DurationMonths < 1 {
		return nil, ErrInvalidDuration
	}
	if p.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}
	return &Booking{
		id:                  uuid.New(),
		userID:              p.UserID,
		roomID:              p.RoomID,
		checkIn:             checkIn,
		checkOut:            checkOut,
		durationMonths:      p.DurationMonths,
		totalPrice:          p.TotalPrice,
		paymentMethod:       p.PaymentMethod,
		guestCount:          p.GuestCount,
		contact:             p.Contact,
		identityDocumentRef: p.IdentityDocumentRef,
		specialRequests:     strings.TrimSpace(p.SpecialRequests),
		status:              StatusPending,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	userID *uuid.UUID,
	roomID uuid.UUID,
	checkIn, checkOut time.Time,
	durationMonths int,
	totalPrice Money,
	paymentMethod PaymentMethod,
	guestCount int,
	contact Contact,
	identityDocumentRef, paymentProofRef *string,
	specialRequests string,
	status Status,
	paymentDueAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                  id,
		userID:              userID,
		roomID:              roomID,
		checkIn:             checkIn,
		checkOut:            checkOut,
		durationMonths:      durationMonths,
		totalPrice:          totalPrice,
		paymentMethod:       paymentMethod,
		guestCount:          guestCount,
		contact:             contact,
		identityDocumentRef: identityDocumentRef,
		paymentProofRef:     paymentProofRef,
		specialRequests:     specialRequests,
		status:              status,
		paymentDueAt:        paymentDueAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// TransitionOptions carries what a transition needs from outside the aggregate.
type TransitionOptions struct {
	Now           time.Time
	PaymentWindow time.Duration
	// Automatic marks a deadline expiry; the elapsed deadline stays on the row for audit.
	Automatic bool
}

// Effects lists the writes a committed transition requires beyond the booking row.
type Effects struct {
	From           Status
	To             Status
	TouchesRoom    bool
	NotifyApproved bool
}

// Transition moves the booking to target following the lifecycle table.
func (b *Booking) Transition(target Status, opts TransitionOptions) (Effects, error) {
	if !b.status.CanTransitionTo(target) {
		return Effects{}, ErrInvalidTransition
	}
	if target == StatusPaid && !b.HasPaymentProof() {
		return Effects{}, ErrPaymentProofRequired
	}

	from := b.status
	switch target {
	case StatusApproved:
		due := opts.Now.Add(opts.PaymentWindow)
		b.paymentDueAt = &due
	case StatusCancelled:
		if !(opts.Automatic && from == StatusApproved) {
			b.paymentDueAt = nil
		}
	default:
		b.paymentDueAt = nil
	}
	b.status = target
	b.updatedAt = opts.Now

	return Effects{
		From:           from,
		To:             target,
		TouchesRoom:    from.HoldsRoom() || target.HoldsRoom(),
		NotifyApproved: target == StatusApproved,
	}, nil
}

// AttachPaymentProof records proof. On an approved booking status and deadline are
// left alone; any other reviewable booking goes back to pending review.
func (b *Booking) AttachPaymentProof(ref string, now time.Time) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrMissingProof
	}
	switch b.status {
	case StatusApproved:
	case StatusPending:
		b.status = StatusPending
	default:
		// Paid and closed bookings refuse proof rather than reopening as pending.
		// A paid booking moved to pending would drop its hold while the room flag
		// stays false. Product decision pending; see DESIGN.md open questions.
		return ErrProofNotAccepted
	}
	b.paymentProofRef = &ref
	b.updatedAt = now
	return nil
}

// PaymentOverdue reports whether the sweeper may expire the booking at now.
func (b *Booking) PaymentOverdue(now time.Time) bool {
	return b.status == StatusApproved &&
		b.paymentDueAt != nil &&
		b.paymentDueAt.Before(now) &&
		!b.HasPaymentProof()
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID != nil && *b.userID == userID
}

func (b *Booking) IsOrphan() bool {
	return b.userID == nil
}

func (b *Booking) HasPaymentProof() bool {
	return b.paymentProofRef != nil && *b.paymentProofRef != ""
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) UserID() *uuid.UUID           { return b.userID }
func (b *Booking) RoomID() uuid.UUID            { return b.roomID }
func (b *Booking) CheckIn() time.Time           { return b.checkIn }
func (b *Booking) CheckOut() time.Time          { return b.checkOut }
func (b *Booking) DurationMonths() int          { return b.durationMonths }
func (b *Booking) TotalPrice() Money            { return b.totalPrice }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) GuestCount() int              { return b.guestCount }
func (b *Booking) Contact() Contact             { return b.contact }
func (b *Booking) IdentityDocumentRef() *string { return b.identityDocumentRef }
func (b *Booking) PaymentProofRef() *string     { return b.paymentProofRef }
func (b *Booking) SpecialRequests() string      { return b.specialRequests }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentDueAt() *time.Time     { return b.paymentDueAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
