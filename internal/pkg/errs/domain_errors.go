package errs

import "errors"

// Category markers shared by the usecase layer. Concrete errors are marked with one of
// these so the handler can map them to a stable error code without knowing every sentinel.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
