package room

import "boardinghouse/internal/domain/booking"

// AvailabilityFor maps the status a booking ends up in to its room's flag.
// Only approved and paid bookings hold a room.
func AvailabilityFor(status booking.Status) bool {
	return !status.HoldsRoom()
}
