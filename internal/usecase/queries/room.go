package queries

import (
	"context"

	"boardinghouse/internal/infra"
	"boardinghouse/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomQueries interface {
	List(ctx context.Context, onlyAvailable bool) ([]*RoomView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
}

type RoomReadStore interface {
	List(ctx context.Context, onlyAvailable bool) ([]*RoomView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) List(ctx context.Context, onlyAvailable bool) ([]*RoomView, error) {
	rooms, err := q.store.List(ctx, onlyAvailable)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rooms, nil
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	room, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrRoomNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return room, nil
}
