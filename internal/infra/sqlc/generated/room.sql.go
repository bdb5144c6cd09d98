// source: room.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
)

const findRoomByID = `-- name: FindRoomByID :one
SELECT id, number, floor, monthly_price, capacity, is_available, created_at, updated_at FROM rooms WHERE id = $1
`

func (q *Queries) FindRoomByID(ctx context.Context, db DBTX, id uuid.UUID) (Rooms, error) {
	row := db.QueryRow(ctx, findRoomByID, id)
	var i Rooms
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Floor,
		&i.MonthlyPrice,
		&i.Capacity,
		&i.IsAvailable,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getRoomForUpdate = `-- name: GetRoomForUpdate :one
SELECT id, number, capacity, is_available FROM rooms WHERE id = $1 FOR UPDATE
`

type GetRoomForUpdateRow struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	Capacity    int32     `json:"capacity"`
	IsAvailable bool      `json:"is_available"`
}

func (q *Queries) GetRoomForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (GetRoomForUpdateRow, error) {
	row := db.QueryRow(ctx, getRoomForUpdate, id)
	var i GetRoomForUpdateRow
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Capacity,
		&i.IsAvailable,
	)
	return i, err
}

const listRooms = `-- name: ListRooms :many
SELECT id, number, floor, monthly_price, capacity, is_available, created_at, updated_at FROM rooms
WHERE (NOT $1::boolean OR is_available)
ORDER BY floor, number
`

func (q *Queries) ListRooms(ctx context.Context, db DBTX, onlyAvailable bool) ([]Rooms, error) {
	rows, err := db.Query(ctx, listRooms, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Rooms{}
	for rows.Next() {
		var i Rooms
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Floor,
			&i.MonthlyPrice,
			&i.Capacity,
			&i.IsAvailable,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setRoomAvailability = `-- name: SetRoomAvailability :execrows
UPDATE rooms SET is_available = $2, updated_at = now() WHERE id = $1
`

type SetRoomAvailabilityParams struct {
	ID          uuid.UUID `json:"id"`
	IsAvailable bool      `json:"is_available"`
}

func (q *Queries) SetRoomAvailability(ctx context.Context, db DBTX, arg SetRoomAvailabilityParams) (int64, error) {
	result, err := db.Exec(ctx, setRoomAvailability, arg.ID, arg.IsAvailable)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
