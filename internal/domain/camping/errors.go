package camping

import "errors"

var (
	// ErrInvalidRange means the arrival/departure ordering is violated.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNotFound means a referenced park, campground or site is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict means an overlapping reservation was detected at commit time.
	ErrConflict = errors.New("reservation conflict")

	// ErrBookingFailed wraps persistence failures surfaced while booking.
	ErrBookingFailed = errors.New("booking failed")
)
