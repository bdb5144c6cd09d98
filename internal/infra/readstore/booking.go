package readstore

import (
	"context"
	"time"

	"boardinghouse/internal/infra"
	sqlc "boardinghouse/internal/infra/sqlc/generated"
	"boardinghouse/internal/pkg/pgconv"
	"boardinghouse/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

//go:generate mockgen -source=$GOFILE -destination=../../mock/readstoremock/booking_mock.go -package=readstoremock

type BookingReadQueries interface {
	FindBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.FindBookingByIDRow, error)
	ListBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsParams) ([]sqlc.ListBookingsRow, error)
	ListOverdueBookingIDs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOverdueBookingIDsParams) ([]uuid.UUID, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.FindBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return toBookingView(row), nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	page := filter.Page.Normalize()
	params := sqlc.ListBookingsParams{
		UserID: pgconv.UUIDPtrToPgtype(filter.UserID),
		RoomID: pgconv.UUIDPtrToPgtype(filter.RoomID),
		Limit:  int32(page.Limit),  // #nosec G115 -- bounded by MaxListLimit
		Offset: int32(page.Offset), // #nosec G115 -- page offsets stay far below int32
	}
	if filter.Status != "" {
		params.Status = pgtype.Text{String: filter.Status, Valid: true}
	}

	rows, err := r.queries.ListBookings(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	views := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toBookingView(row))
	}
	return views, nil
}

// OverdueIDs lists approved bookings without proof whose payment deadline is before now.
func (r *BookingReadStore) OverdueIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.queries.ListOverdueBookingIDs(ctx, r.db, sqlc.ListOverdueBookingIDsParams{
		PaymentDueAt: pgconv.TimeToPgtype(now),
		Limit:        int32(limit), // #nosec G115 -- callers pass a small batch size
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overdue bookings", err)
	}
	return ids, nil
}

func toBookingView(row sqlc.FindBookingByIDRow) *queries.BookingView {
	b := row.Bookings
	return &queries.BookingView{
		ID:                  b.ID,
		UserID:              pgconv.UUIDPtrFromPgtype(b.UserID),
		RoomID:              b.RoomID,
		RoomNumber:          row.RoomNumber,
		CheckIn:             pgconv.DateFromPgtype(b.CheckIn),
		CheckOut:            pgconv.DateFromPgtype(b.CheckOut),
		DurationMonths:      int(b.DurationMonths),
		TotalPrice:          b.TotalPrice,
		PaymentMethod:       b.PaymentMethod,
		GuestCount:          int(b.GuestCount),
		ContactName:         b.ContactName,
		ContactEmail:        b.ContactEmail,
		ContactPhone:        b.ContactPhone,
		IdentityDocumentRef: pgconv.StringPtrFromPgtype(b.IdentityDocumentRef),
		PaymentProofRef:     pgconv.StringPtrFromPgtype(b.PaymentProofRef),
		SpecialRequests:     b.SpecialRequests,
		Status:              b.Status,
		PaymentDueAt:        pgconv.TimePtrFromPgtype(b.PaymentDueAt),
		CreatedAt:           pgconv.TimeFromPgtype(b.CreatedAt),
		UpdatedAt:           pgconv.TimeFromPgtype(b.UpdatedAt),
	}
}
