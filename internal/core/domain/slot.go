package domain

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotFull      SlotStatus = "FULL"
	SlotCancelled SlotStatus = "CANCELLED"
)

// SlotInstance is one concrete bookable unit of capacity. Unique per
// (offering, start timestamp). RemainingCapacity is mutated only through the
// repository's atomic Reserve/Release; rows are never deleted, cancellation
// is a status flag.
type SlotInstance struct {
	ID                uuid.UUID
	OfferingID        uuid.UUID
	ScheduleID        uuid.UUID
	Date              time.Time
	StartAt           time.Time
	EndAt             time.Time
	TotalCapacity     int
	RemainingCapacity int
	Status            SlotStatus
	CreatedAt         time.Time
}

func (s *SlotInstance) IsBookable() bool {
	return s.Status == SlotAvailable
}

func (s *SlotInstance) HasRoom(partySize int) bool {
	return s.Status == SlotAvailable && partySize <= s.RemainingCapacity
}
