package readstore

import (
	"context"

	"boardinghouse/internal/infra"
	sqlc "boardinghouse/internal/infra/sqlc/generated"
	"boardinghouse/internal/pkg/pgconv"
	"boardinghouse/internal/usecase/queries"

	"github.com/google/uuid"
)

//go:generate mockgen -source=$GOFILE -destination=../../mock/readstoremock/room_mock.go -package=readstoremock

type RoomReadQueries interface {
	FindRoomByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Rooms, error)
	ListRooms(ctx context.Context, db sqlc.DBTX, onlyAvailable bool) ([]sqlc.Rooms, error)
}

type RoomReadStore struct {
	queries RoomReadQueries
	db      sqlc.DBTX
}

func NewRoomReadStore(queries RoomReadQueries, db sqlc.DBTX) *RoomReadStore {
	return &RoomReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row, err := r.queries.FindRoomByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return toRoomView(row), nil
}

func (r *RoomReadStore) List(ctx context.Context, onlyAvailable bool) ([]*queries.RoomView, error) {
	rows, err := r.queries.ListRooms(ctx, r.db, onlyAvailable)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	views := make([]*queries.RoomView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toRoomView(row))
	}
	return views, nil
}

func toRoomView(row sqlc.Rooms) *queries.RoomView {
	return &queries.RoomView{
		ID:           row.ID,
		Number:       row.Number,
		Floor:        int(row.Floor),
		MonthlyPrice: row.MonthlyPrice,
		Capacity:     int(row.Capacity),
		IsAvailable:  row.IsAvailable,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
