package request

import (
	"strings"
	"time"

	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for check-in and check-out.
const DateLayout = "2006-01-02"

type CreateBookingRequest struct {
	RoomID              uuid.UUID `json:"room_id" binding:"required"`
	CheckIn             string    `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut            *string   `json:"check_out,omitempty" binding:"omitempty,datetime=2006-01-02"`
	DurationMonths      *int      `json:"duration_months,omitempty" binding:"omitempty,min=1"`
	GuestCount          int       `json:"guest_count" binding:"required,min=1"`
	ContactName         string    `json:"contact_name" binding:"required,max=200"`
	ContactEmail        string    `json:"contact_email" binding:"required"`
	ContactPhone        string    `json:"contact_phone" binding:"required,max=32"`
	IdentityDocumentRef *string   `json:"identity_document_ref,omitempty" binding:"omitempty,max=500"`
	PaymentMethod       string    `json:"payment_method" binding:"required"`
	SpecialRequests     string    `json:"special_requests" binding:"max=1000"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	checkIn, err := time.Parse(DateLayout, r.CheckIn)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}

	var checkOut *time.Time
	if r.CheckOut != nil {
		parsed, err := time.Parse(DateLayout, *r.CheckOut)
		if err != nil {
			return commands.CreateBookingInput{}, err
		}
		checkOut = &parsed
	}

	return commands.CreateBookingInput{
		RoomID:              r.RoomID,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		DurationMonths:      r.DurationMonths,
		GuestCount:          r.GuestCount,
		ContactName:         r.ContactName,
		ContactEmail:        r.ContactEmail,
		ContactPhone:        r.ContactPhone,
		IdentityDocumentRef: trimmedOrNil(r.IdentityDocumentRef),
		PaymentMethod:       r.PaymentMethod,
		SpecialRequests:     r.SpecialRequests,
	}, nil
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentProofRequest struct {
	PaymentProofRef string `json:"payment_proof_ref" binding:"required,max=500"`
}

type ListBookingsQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

func (q ListBookingsQuery) Page() queries.Page {
	return queries.Page{Limit: q.Limit, Offset: q.Offset}
}

func (q ListBookingsQuery) Filter() queries.BookingFilter {
	return queries.BookingFilter{
		Status: strings.ToLower(strings.TrimSpace(q.Status)),
		Page:   q.Page(),
	}
}

type ListRoomsQuery struct {
	Available bool `form:"available"`
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
