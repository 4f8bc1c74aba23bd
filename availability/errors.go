package availability

import "errors"

// Resolution failures. Callers match them with errors.Is; returned errors
// wrap one of these with request details.
var (
	ErrInvalidRange       = errors.New("invalid range")
	ErrSlotTooLong        = errors.New("slot too long")
	ErrPastBooking        = errors.New("booking in the past")
	ErrInsufficientNotice = errors.New("insufficient booking notice")
	ErrUserNotFound       = errors.New("user not found")
	ErrScheduleParse      = errors.New("schedule parse error")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidTimeZone    = errors.New("invalid time zone")
)
