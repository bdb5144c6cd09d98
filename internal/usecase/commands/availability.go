package commands

import (
	"context"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/domain/room"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
)

// RoomAvailabilityTracker keeps rooms.is_available in line with the status of the
// booking that holds the room. It trusts the lifecycle manager to call it once per
// committed transition and never looks at other bookings.
type RoomAvailabilityTracker struct{}

func NewRoomAvailabilityTracker() *RoomAvailabilityTracker {
	return &RoomAvailabilityTracker{}
}

func (t *RoomAvailabilityTracker) Apply(ctx context.Context, rooms shared.RoomRepository, roomID uuid.UUID, resulting booking.Status) error {
	return rooms.SetAvailability(ctx, roomID, room.AvailabilityFor(resulting))
}
