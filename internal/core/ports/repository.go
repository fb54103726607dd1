package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
)

// ReleasedCapacity describes a slot whose seats were just returned to the
// pool. Carried back to callers so they can invalidate caches and trigger
// waitlist promotion after the releasing transaction has committed.
type ReleasedCapacity struct {
	SlotID     uuid.UUID
	OfferingID uuid.UUID
	Date       time.Time
	PartySize  int
	Remaining  int
}

type ScheduleRepository interface {
	Create(ctx context.Context, def *domain.ScheduleDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleDefinition, error)
	ListActive(ctx context.Context) ([]domain.ScheduleDefinition, error)
	ListActiveByOffering(ctx context.Context, offeringID uuid.UUID) ([]domain.ScheduleDefinition, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	SetLastGenerated(ctx context.Context, id uuid.UUID, watermark time.Time) error
}

// SlotRepository owns SlotInstance rows. Reserve and Release are the
// capacity ledger: each is a single conditional UPDATE, safe under arbitrary
// concurrent callers, and the only code allowed to touch remaining_capacity.
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.SlotInstance) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotInstance, error)
	ExistsByStart(ctx context.Context, offeringID uuid.UUID, startAt time.Time) (bool, error)
	ListByOfferingDate(ctx context.Context, offeringID uuid.UUID, date time.Time) ([]domain.SlotInstance, error)

	// Reserve decrements remaining capacity by partySize and flips the slot
	// to FULL when it reaches zero. Returns domain.ErrInsufficientCapacity
	// when the slot has too few seats left, domain.ErrSlotNotFound when the
	// slot does not exist or is cancelled.
	Reserve(ctx context.Context, slotID uuid.UUID, partySize int) (remaining int, err error)

	// Release increments remaining capacity by partySize, clamped to total
	// capacity, and flips FULL back to AVAILABLE.
	Release(ctx context.Context, slotID uuid.UUID, partySize int) (*ReleasedCapacity, error)

	Cancel(ctx context.Context, slotID uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*domain.Booking, error)

	// SetPaymentIntent records the gateway intent id once a charge has been
	// initiated for the booking.
	SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error

	// MarkConfirmed flips a PENDING booking to CONFIRMED/CAPTURED. Returns
	// false when the booking was not in the expected prior state.
	MarkConfirmed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkConfirmationSent(ctx context.Context, id uuid.UUID, at time.Time) error

	// Transition performs a conditional booking-status flip (host actions).
	Transition(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (bool, error)

	// TransitionPayment performs a conditional payment-status flip. Used to
	// claim money movements: only the caller that wins the flip may talk to
	// the gateway, so concurrent cancellations cannot refund twice.
	TransitionPayment(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) (bool, error)

	// CancelAndRelease atomically flips the booking to the given terminal
	// statuses and returns its capacity to the slot, in one transaction.
	// Returns domain.ErrNotReleasable when the booking no longer holds
	// capacity, so re-entrant sweeps stay no-ops.
	CancelAndRelease(ctx context.Context, id uuid.UUID, status domain.BookingStatus, payStatus domain.PaymentStatus) (*ReleasedCapacity, error)

	// ListAbandoned returns PENDING/PENDING bookings created before cutoff.
	ListAbandoned(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error)
}

type HoldRepository interface {
	Create(ctx context.Context, h *domain.Hold) error
	GetByToken(ctx context.Context, token string) (*domain.Hold, error)

	// Delete removes a hold without touching capacity (conversion path:
	// the new booking takes over the reserved seats).
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Hold, error)

	// DeleteAndRelease removes an expired hold and returns its seats to the
	// slot in one transaction. Returns domain.ErrHoldNotFound when another
	// sweep already claimed it.
	DeleteAndRelease(ctx context.Context, id uuid.UUID) (*ReleasedCapacity, error)
}

type WaitlistRepository interface {
	// Create inserts an ACTIVE entry; domain.ErrWaitlistDuplicate when the
	// guest already has an ACTIVE entry for the slot.
	Create(ctx context.Context, e *domain.WaitlistEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error)
	ListActiveBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.WaitlistEntry, error)

	// MarkNotified flips ACTIVE→NOTIFIED with the claim window stamps.
	// Returns false when the entry was no longer ACTIVE.
	MarkNotified(ctx context.Context, id uuid.UUID, notifiedAt, expiresAt time.Time) (bool, error)

	// MarkConverted flips NOTIFIED→CONVERTED when the guest books in time.
	MarkConverted(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkExpired flips NOTIFIED→EXPIRED after the claim window lapses.
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)

	FindNotifiedByGuest(ctx context.Context, slotID uuid.UUID, guestEmail string) (*domain.WaitlistEntry, error)
	ListExpiredNotified(ctx context.Context, now time.Time, limit int) ([]domain.WaitlistEntry, error)
}
