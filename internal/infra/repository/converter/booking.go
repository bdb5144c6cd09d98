package converter

import (
	"fmt"
	"math"

	"boardinghouse/internal/domain/booking"
	sqlc "boardinghouse/internal/infra/sqlc/generated"
	"boardinghouse/internal/pkg/pgconv"
)

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	return sqlc.CreateBookingParams{
		ID:                  b.ID(),
		UserID:              pgconv.UUIDPtrToPgtype(b.UserID()),
		RoomID:              b.RoomID(),
		CheckIn:             pgconv.DateToPgtype(b.CheckIn()),
		CheckOut:            pgconv.DateToPgtype(b.CheckOut()),
		DurationMonths:      toInt32(b.DurationMonths()),
		TotalPrice:          b.TotalPrice().Amount(),
		PaymentMethod:       b.PaymentMethod().String(),
		GuestCount:          toInt32(b.GuestCount()),
		ContactName:         b.Contact().Name(),
		ContactEmail:        b.Contact().Email(),
		ContactPhone:        b.Contact().Phone(),
		IdentityDocumentRef: pgconv.StringPtrToPgtype(b.IdentityDocumentRef()),
		PaymentProofRef:     pgconv.StringPtrToPgtype(b.PaymentProofRef()),
		SpecialRequests:     b.SpecialRequests(),
		Status:              b.Status().String(),
		PaymentDueAt:        pgconv.TimePtrToPgtype(b.PaymentDueAt()),
		CreatedAt:           pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:           pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingToStateParams(b *booking.Booking) sqlc.UpdateBookingStateParams {
	return sqlc.UpdateBookingStateParams{
		ID:              b.ID(),
		Status:          b.Status().String(),
		PaymentProofRef: pgconv.StringPtrToPgtype(b.PaymentProofRef()),
		PaymentDueAt:    pgconv.TimePtrToPgtype(b.PaymentDueAt()),
		UpdatedAt:       pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingFromRow(row sqlc.Bookings) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(row.TotalPrice)
	if err != nil {
		return nil, err
	}
	method, err := booking.NewPaymentMethod(row.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		row.ID,
		pgconv.UUIDPtrFromPgtype(row.UserID),
		row.RoomID,
		pgconv.DateFromPgtype(row.CheckIn),
		pgconv.DateFromPgtype(row.CheckOut),
		int(row.DurationMonths),
		price,
		method,
		int(row.GuestCount),
		booking.ReconstructContact(row.ContactName, row.ContactEmail, row.ContactPhone),
		pgconv.StringPtrFromPgtype(row.IdentityDocumentRef),
		pgconv.StringPtrFromPgtype(row.PaymentProofRef),
		row.SpecialRequests,
		status,
		pgconv.TimePtrFromPgtype(row.PaymentDueAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func toInt32(n int) int32 {
	if n > math.MaxInt32 || n < math.MinInt32 {
		panic(fmt.Sprintf("value out of int32 range: %d", n))
	}
	return int32(n)
}
