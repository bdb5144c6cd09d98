package response

import (
	"boardinghouse/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID           uuid.UUID `json:"id"`
	Number       string    `json:"number"`
	Floor        int       `json:"floor"`
	MonthlyPrice int64     `json:"monthly_price"`
	Capacity     int       `json:"capacity"`
	IsAvailable  bool      `json:"is_available"`
}

func FromRoomViews(views []*queries.RoomView) ([]*RoomResponse, error) {
	out := make([]*RoomResponse, 0, len(views))
	if err := copier.Copy(&out, &views); err != nil {
		return nil, err
	}
	return out, nil
}

func FromRoomView(v *queries.RoomView) (*RoomResponse, error) {
	var res RoomResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}
