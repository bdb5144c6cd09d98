// source: booking.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `b.id, b.user_id, b.room_id, b.check_in, b.check_out, b.duration_months, b.total_price,
    b.payment_method, b.guest_count, b.contact_name, b.contact_email, b.contact_phone,
    b.identity_document_ref, b.payment_proof_ref, b.special_requests, b.status,
    b.payment_due_at, b.created_at, b.updated_at`

const claimOrphanBookings = `-- name: ClaimOrphanBookings :execrows
UPDATE bookings
SET user_id = $1, updated_at = now()
WHERE user_id IS NULL
  AND (
    ($2::text <> '' AND lower(trim(contact_email)) = $2::text)
    OR ($3::text <> '' AND regexp_replace(contact_phone, '\D', '', 'g') = $3::text)
  )
`

type ClaimOrphanBookingsParams struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
}

func (q *Queries) ClaimOrphanBookings(ctx context.Context, db DBTX, arg ClaimOrphanBookingsParams) (int64, error) {
	result, err := db.Exec(ctx, claimOrphanBookings, arg.UserID, arg.Email, arg.Phone)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createBooking = `-- name: CreateBooking :exec
INSERT INTO bookings (
    id, user_id, room_id, check_in, check_out, duration_months, total_price,
    payment_method, guest_count, contact_name, contact_email, contact_phone,
    identity_document_ref, payment_proof_ref, special_requests, status,
    payment_due_at, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
`

type CreateBookingParams struct {
	ID                  uuid.UUID          `json:"id"`
	UserID              pgtype.UUID        `json:"user_id"`
	RoomID              uuid.UUID          `json:"room_id"`
	CheckIn             pgtype.Date        `json:"check_in"`
	CheckOut            pgtype.Date        `json:"check_out"`
	DurationMonths      int32              `json:"duration_months"`
	TotalPrice          int64              `json:"total_price"`
	PaymentMethod       string             `json:"payment_method"`
	GuestCount          int32              `json:"guest_count"`
	ContactName         string             `json:"contact_name"`
	ContactEmail        string             `json:"contact_email"`
	ContactPhone        string             `json:"contact_phone"`
	IdentityDocumentRef pgtype.Text        `json:"identity_document_ref"`
	PaymentProofRef     pgtype.Text        `json:"payment_proof_ref"`
	SpecialRequests     string             `json:"special_requests"`
	Status              string             `json:"status"`
	PaymentDueAt        pgtype.Timestamptz `json:"payment_due_at"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID,
		arg.UserID,
		arg.RoomID,
		arg.CheckIn,
		arg.CheckOut,
		arg.DurationMonths,
		arg.TotalPrice,
		arg.PaymentMethod,
		arg.GuestCount,
		arg.ContactName,
		arg.ContactEmail,
		arg.ContactPhone,
		arg.IdentityDocumentRef,
		arg.PaymentProofRef,
		arg.SpecialRequests,
		arg.Status,
		arg.PaymentDueAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const findBookingByID = `-- name: FindBookingByID :one
SELECT ` + bookingColumns + `, r.number AS room_number
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.id = $1
`

type FindBookingByIDRow struct {
	Bookings
	RoomNumber string `json:"room_number"`
}

func (q *Queries) FindBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (FindBookingByIDRow, error) {
	row := db.QueryRow(ctx, findBookingByID, id)
	var i FindBookingByIDRow
	err := row.Scan(append(bookingScanDest(&i.Bookings), &i.RoomNumber)...)
	return i, err
}

const getBookingForUpdate = `-- name: GetBookingForUpdate :one
SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 FOR UPDATE
`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	row := db.QueryRow(ctx, getBookingForUpdate, id)
	var i Bookings
	err := row.Scan(bookingScanDest(&i)...)
	return i, err
}

const listBookings = `-- name: ListBookings :many
SELECT ` + bookingColumns + `, r.number AS room_number
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE ($1::text IS NULL OR b.status = $1::text)
  AND ($2::uuid IS NULL OR b.user_id = $2::uuid)
  AND ($3::uuid IS NULL OR b.room_id = $3::uuid)
ORDER BY b.created_at DESC, b.id
LIMIT $4 OFFSET $5
`

type ListBookingsParams struct {
	Status pgtype.Text `json:"status"`
	UserID pgtype.UUID `json:"user_id"`
	RoomID pgtype.UUID `json:"room_id"`
	Limit  int32       `json:"limit"`
	Offset int32       `json:"offset"`
}

type ListBookingsRow = FindBookingByIDRow

func (q *Queries) ListBookings(ctx context.Context, db DBTX, arg ListBookingsParams) ([]ListBookingsRow, error) {
	rows, err := db.Query(ctx, listBookings,
		arg.Status,
		arg.UserID,
		arg.RoomID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListBookingsRow{}
	for rows.Next() {
		var i ListBookingsRow
		if err := rows.Scan(append(bookingScanDest(&i.Bookings), &i.RoomNumber)...); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOverdueBookingIDs = `-- name: ListOverdueBookingIDs :many
SELECT id
FROM bookings
WHERE status = 'approved'
  AND payment_proof_ref IS NULL
  AND payment_due_at < $1
ORDER BY payment_due_at
LIMIT $2
`

type ListOverdueBookingIDsParams struct {
	PaymentDueAt pgtype.Timestamptz `json:"payment_due_at"`
	Limit        int32              `json:"limit"`
}

func (q *Queries) ListOverdueBookingIDs(ctx context.Context, db DBTX, arg ListOverdueBookingIDsParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listOverdueBookingIDs, arg.PaymentDueAt, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateBookingState = `-- name: UpdateBookingState :execrows
UPDATE bookings
SET status = $2,
    payment_proof_ref = $3,
    payment_due_at = $4,
    updated_at = $5
WHERE id = $1
`

type UpdateBookingStateParams struct {
	ID              uuid.UUID          `json:"id"`
	Status          string             `json:"status"`
	PaymentProofRef pgtype.Text        `json:"payment_proof_ref"`
	PaymentDueAt    pgtype.Timestamptz `json:"payment_due_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBookingState(ctx context.Context, db DBTX, arg UpdateBookingStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateBookingState,
		arg.ID,
		arg.Status,
		arg.PaymentProofRef,
		arg.PaymentDueAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func bookingScanDest(i *Bookings) []any {
	return []any{
		&i.ID,
		&i.UserID,
		&i.RoomID,
		&i.CheckIn,
		&i.CheckOut,
		&i.DurationMonths,
		&i.TotalPrice,
		&i.PaymentMethod,
		&i.GuestCount,
		&i.ContactName,
		&i.ContactEmail,
		&i.ContactPhone,
		&i.IdentityDocumentRef,
		&i.PaymentProofRef,
		&i.SpecialRequests,
		&i.Status,
		&i.PaymentDueAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
}
