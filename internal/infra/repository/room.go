package repository

import (
	"context"

	"boardinghouse/internal/infra"
	sqlc "boardinghouse/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type RoomWriteQueries interface {
	SetRoomAvailability(ctx context.Context, db sqlc.DBTX, arg sqlc.SetRoomAvailabilityParams) (int64, error)
}

type RoomRepository struct {
	queries RoomWriteQueries
	db      sqlc.DBTX
}

func NewRoomRepository(queries RoomWriteQueries, db sqlc.DBTX) *RoomRepository {
	return &RoomRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RoomRepository) SetAvailability(ctx context.Context, roomID uuid.UUID, available bool) error {
	affected, err := r.queries.SetRoomAvailability(ctx, r.db, sqlc.SetRoomAvailabilityParams{
		ID:          roomID,
		IsAvailable: available,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to set room availability", err)
	}
	if affected == 0 {
		return infra.NotFound("room not found")
	}
	return nil
}
