package domain

import "errors"

var (
	// ErrInsufficientCapacity is returned when a reservation asks for more
	// seats than the slot has left. Callers should offer the waitlist.
	ErrInsufficientCapacity = errors.New("insufficient capacity")

	ErrSlotNotFound     = errors.New("slot not found")
	ErrScheduleNotFound = errors.New("schedule definition not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrHoldNotFound     = errors.New("hold not found")
	ErrHoldExpired      = errors.New("hold expired")

	// ErrWaitlistDuplicate guards the one-ACTIVE-entry-per-(guest,slot) rule.
	ErrWaitlistDuplicate = errors.New("guest already on waitlist for this slot")
	ErrWaitlistNotFound  = errors.New("waitlist entry not found")

	// ErrNotReleasable means a release was attempted on a booking that is not
	// in a releasable state. Sweeps treat this as a logged no-op, never a crash.
	ErrNotReleasable = errors.New("booking not in a releasable state")

	// ErrGateway wraps definitive payment gateway failures.
	ErrGateway = errors.New("payment gateway error")
)
