package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCheckedIn BookingStatus = "CHECKED_IN"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentCaptured      PaymentStatus = "CAPTURED"
	PaymentFailed        PaymentStatus = "FAILED"
	PaymentExpired       PaymentStatus = "EXPIRED"
	PaymentFullyRefunded PaymentStatus = "FULLY_REFUNDED"
)

// Guest is the contact info carried on bookings and waitlist entries. The
// booking path is unauthenticated; email doubles as the guest identity.
type Guest struct {
	Name  string
	Email string
	Phone string
}

// Booking is a reservation against exactly one SlotInstance. A booking holds
// capacity on its slot for as long as it is not cancelled, failed or
// expired. Rows are never deleted.
type Booking struct {
	ID                 uuid.UUID
	SlotID             uuid.UUID
	OfferingID         uuid.UUID
	PartySize          int
	Guest              Guest
	AmountCents        int64
	Currency           string
	Status             BookingStatus
	PaymentStatus      PaymentStatus
	PaymentIntentID    *string
	WalkIn             bool
	ConfirmedAt        *time.Time
	ConfirmationSentAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HoldsCapacity reports whether the booking still accounts for seats on its
// slot. The conservation property (sum of held party sizes + remaining =
// total) is defined over bookings for which this is true.
func (b *Booking) HoldsCapacity() bool {
	if b.Status == BookingCancelled {
		return false
	}
	return b.PaymentStatus != PaymentFailed && b.PaymentStatus != PaymentExpired
}

// Hold is a short-lived checkout placeholder: capacity is already reserved,
// the guest has until ExpiresAt to turn it into a booking.
type Hold struct {
	ID         uuid.UUID
	Token      string
	SlotID     uuid.UUID
	OfferingID uuid.UUID
	PartySize  int
	GuestEmail string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
