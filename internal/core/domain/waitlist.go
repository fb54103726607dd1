package domain

import (
	"time"

	"github.com/google/uuid"
)

type WaitlistStatus string

const (
	WaitlistActive    WaitlistStatus = "ACTIVE"
	WaitlistNotified  WaitlistStatus = "NOTIFIED"
	WaitlistExpired   WaitlistStatus = "EXPIRED"
	WaitlistConverted WaitlistStatus = "CONVERTED"
)

// WaitlistEntry is a guest queued for a full slot. At most one ACTIVE entry
// exists per (guest, slot). Promotion picks by priority descending, then
// creation time ascending, among entries whose party fits the freed seats.
type WaitlistEntry struct {
	ID         uuid.UUID
	OfferingID uuid.UUID
	SlotID     uuid.UUID
	PartySize  int
	Guest      Guest
	Status     WaitlistStatus
	Priority   int
	NotifiedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// Fits reports whether the entry's party fits the currently free seats.
func (e *WaitlistEntry) Fits(spotsAvailable int) bool {
	return e.PartySize <= spotsAvailable
}
