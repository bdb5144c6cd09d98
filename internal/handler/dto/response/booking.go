package response

import (
	"time"

	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              *uuid.UUID `json:"user_id"`
	RoomID              uuid.UUID  `json:"room_id"`
	RoomNumber          string     `json:"room_number"`
	CheckIn             string     `json:"check_in"`
	CheckOut            string     `json:"check_out"`
	DurationMonths      int        `json:"duration_months"`
	TotalPrice          int64      `json:"total_price"`
	PaymentMethod       string     `json:"payment_method"`
	GuestCount          int        `json:"guest_count"`
	ContactName         string     `json:"contact_name"`
	ContactEmail        string     `json:"contact_email"`
	ContactPhone        string     `json:"contact_phone"`
	IdentityDocumentRef *string    `json:"identity_document_ref,omitempty"`
	PaymentProofRef     *string    `json:"payment_proof_ref,omitempty"`
	SpecialRequests     string     `json:"special_requests"`
	Status              string     `json:"status"`
	PaymentDueAt        *time.Time `json:"payment_due_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type TransitionResponse struct {
	Booking *BookingResponse `json:"booking"`
	From    string           `json:"from"`
	To      string           `json:"to"`
	Changed bool             `json:"changed"`
}

type ClaimResponse struct {
	Claimed int64 `json:"claimed"`
}

type SweepResponse struct {
	Candidates int `json:"candidates"`
	Cancelled  int `json:"cancelled"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// Calendar dates leave as YYYY-MM-DD; timestamps keep RFC 3339.
var dateOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(time.Time).Format(dateLayout), nil
			},
		},
	},
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.CopyWithOption(&res, v, dateOption); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	out := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		res, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func FromTransitionResult(r *commands.TransitionResult) (*TransitionResponse, error) {
	b, err := FromBookingView(r.Booking)
	if err != nil {
		return nil, err
	}
	return &TransitionResponse{
		Booking: b,
		From:    r.From.String(),
		To:      r.To.String(),
		Changed: r.Changed,
	}, nil
}

func FromSweepResult(r commands.SweepResult) SweepResponse {
	return SweepResponse(r)
}
