package commands

import "boardinghouse/internal/pkg/errs"

// Returned errors carry one of the errs category markers; check them with errs.Is.
var (
	ErrBookingNotFound       = errs.New("booking not found")
	ErrRoomNotFound          = errs.New("room not found")
	ErrInvalidBookingInput   = errs.New("invalid booking input")
	ErrCheckOutMismatch      = errs.New("check-out does not match the requested duration")
	ErrStayRequired          = errs.New("either duration or check-out is required")
	ErrCheckInInPast         = errs.New("check-in cannot be in the past")
	ErrDurationTooLong       = errs.New("duration exceeds the maximum stay")
	ErrGuestCountOverLimit   = errs.New("guest count exceeds room capacity")
	ErrUnknownStatus         = errs.New("unknown booking status")
	ErrRoomUnavailable       = errs.New("room is not available")
	ErrRoomNoLongerAvailable = errs.New("room is no longer available")
	ErrInvalidTransition     = errs.New("status transition not allowed")
	ErrPaymentProofMissing   = errs.New("payment proof is required before marking paid")
	ErrProofNotAccepted      = errs.New("payment proof cannot be attached in the current status")
	ErrNotAllowed            = errs.New("not allowed to change this booking")
)

// tag marks err with a usecase sentinel and its category. A nil err yields the sentinel itself.
func tag(err, sentinel, category error) error {
	return errs.Mark(errs.Mark(err, sentinel), category)
}
