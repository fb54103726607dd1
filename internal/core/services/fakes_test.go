package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
)

// In-memory repositories with the same conditional-transition semantics as
// the SQL layer, used where concurrency or multi-step lifecycles make
// call-by-call mocks unwieldy.

type memSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*domain.SlotInstance
}

func newMemSlotRepo() *memSlotRepo {
	return &memSlotRepo{slots: make(map[uuid.UUID]*domain.SlotInstance)}
}

func (r *memSlotRepo) Create(_ context.Context, slot *domain.SlotInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *memSlotRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.SlotInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSlotRepo) ExistsByStart(_ context.Context, offeringID uuid.UUID, startAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.OfferingID == offeringID && s.StartAt.Equal(startAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSlotRepo) ListByOfferingDate(_ context.Context, offeringID uuid.UUID, date time.Time) ([]domain.SlotInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SlotInstance
	for _, s := range r.slots {
		if s.OfferingID == offeringID && s.Date.Equal(date) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) Reserve(_ context.Context, slotID uuid.UUID, partySize int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reserveLocked(slotID, partySize)
}

func (r *memSlotRepo) reserveLocked(slotID uuid.UUID, partySize int) (int, error) {
	s, ok := r.slots[slotID]
	if !ok || s.Status == domain.SlotCancelled {
		return 0, domain.ErrSlotNotFound
	}
	if s.Status != domain.SlotAvailable || s.RemainingCapacity < partySize {
		return 0, domain.ErrInsufficientCapacity
	}
	s.RemainingCapacity -= partySize
	if s.RemainingCapacity == 0 {
		s.Status = domain.SlotFull
	}
	return s.RemainingCapacity, nil
}

func (r *memSlotRepo) Release(_ context.Context, slotID uuid.UUID, partySize int) (*ports.ReleasedCapacity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.releaseLocked(slotID, partySize)
}

func (r *memSlotRepo) releaseLocked(slotID uuid.UUID, partySize int) (*ports.ReleasedCapacity, error) {
	s, ok := r.slots[slotID]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	s.RemainingCapacity += partySize
	if s.RemainingCapacity > s.TotalCapacity {
		s.RemainingCapacity = s.TotalCapacity
	}
	if s.Status == domain.SlotFull {
		s.Status = domain.SlotAvailable
	}
	return &ports.ReleasedCapacity{
		SlotID:     s.ID,
		OfferingID: s.OfferingID,
		Date:       s.Date,
		PartySize:  partySize,
		Remaining:  s.RemainingCapacity,
	}, nil
}

func (r *memSlotRepo) Cancel(_ context.Context, slotID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return domain.ErrSlotNotFound
	}
	s.Status = domain.SlotCancelled
	return nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
	slots    *memSlotRepo
}

func newMemBookingRepo(slots *memSlotRepo) *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking), slots: slots}
}

func (r *memBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) GetByPaymentIntent(_ context.Context, intentID string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentIntentID != nil && *b.PaymentIntentID == intentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *memBookingRepo) SetPaymentIntent(_ context.Context, id uuid.UUID, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.PaymentIntentID = &intentID
	return nil
}

func (r *memBookingRepo) MarkConfirmed(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, domain.ErrBookingNotFound
	}
	if b.Status != domain.BookingPending || b.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.PaymentCaptured
	b.ConfirmedAt = &at
	return true, nil
}

func (r *memBookingRepo) MarkConfirmationSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.ConfirmationSentAt = &at
	}
	return nil
}

func (r *memBookingRepo) Transition(_ context.Context, id uuid.UUID, from, to domain.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *memBookingRepo) TransitionPayment(_ context.Context, id uuid.UUID, from, to domain.PaymentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.PaymentStatus != from {
		return false, nil
	}
	b.PaymentStatus = to
	return true, nil
}

func (r *memBookingRepo) CancelAndRelease(_ context.Context, id uuid.UUID, status domain.BookingStatus, payStatus domain.PaymentStatus) (*ports.ReleasedCapacity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if !b.HoldsCapacity() {
		return nil, domain.ErrNotReleasable
	}
	b.Status = status
	b.PaymentStatus = payStatus

	r.slots.mu.Lock()
	defer r.slots.mu.Unlock()
	return r.slots.releaseLocked(b.SlotID, b.PartySize)
}

func (r *memBookingRepo) ListAbandoned(_ context.Context, cutoff time.Time, limit int) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.Status == domain.BookingPending && b.PaymentStatus == domain.PaymentPending && b.CreatedAt.Before(cutoff) {
			out = append(out, *b)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type memHoldRepo struct {
	mu    sync.Mutex
	holds map[uuid.UUID]*domain.Hold
	slots *memSlotRepo
}

func newMemHoldRepo(slots *memSlotRepo) *memHoldRepo {
	return &memHoldRepo{holds: make(map[uuid.UUID]*domain.Hold), slots: slots}
}

func (r *memHoldRepo) Create(_ context.Context, h *domain.Hold) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *h
	r.holds[h.ID] = &cp
	return nil
}

func (r *memHoldRepo) GetByToken(_ context.Context, token string) (*domain.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.holds {
		if h.Token == token {
			cp := *h
			return &cp, nil
		}
	}
	return nil, domain.ErrHoldNotFound
}

func (r *memHoldRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.holds[id]; !ok {
		return false, nil
	}
	delete(r.holds, id)
	return true, nil
}

func (r *memHoldRepo) ListExpired(_ context.Context, now time.Time, limit int) ([]domain.Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Hold
	for _, h := range r.holds {
		if h.ExpiresAt.Before(now) {
			out = append(out, *h)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memHoldRepo) DeleteAndRelease(_ context.Context, id uuid.UUID) (*ports.ReleasedCapacity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok {
		return nil, domain.ErrHoldNotFound
	}
	delete(r.holds, id)

	r.slots.mu.Lock()
	defer r.slots.mu.Unlock()
	return r.slots.releaseLocked(h.SlotID, h.PartySize)
}

type memWaitlistRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.WaitlistEntry
}

func newMemWaitlistRepo() *memWaitlistRepo {
	return &memWaitlistRepo{entries: make(map[uuid.UUID]*domain.WaitlistEntry)}
}

func (r *memWaitlistRepo) Create(_ context.Context, e *domain.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.entries {
		if x.SlotID == e.SlotID && x.Guest.Email == e.Guest.Email && x.Status == domain.WaitlistActive {
			return domain.ErrWaitlistDuplicate
		}
	}
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *memWaitlistRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrWaitlistNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memWaitlistRepo) ListActiveBySlot(_ context.Context, slotID uuid.UUID) ([]domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WaitlistEntry
	for _, e := range r.entries {
		if e.SlotID == slotID && e.Status == domain.WaitlistActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memWaitlistRepo) MarkNotified(_ context.Context, id uuid.UUID, notifiedAt, expiresAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.Status != domain.WaitlistActive {
		return false, nil
	}
	e.Status = domain.WaitlistNotified
	e.NotifiedAt = &notifiedAt
	e.ExpiresAt = &expiresAt
	return true, nil
}

func (r *memWaitlistRepo) MarkConverted(_ context.Context, id uuid.UUID) (bool, error) {
	return r.flip(id, domain.WaitlistNotified, domain.WaitlistConverted)
}

func (r *memWaitlistRepo) MarkExpired(_ context.Context, id uuid.UUID) (bool, error) {
	return r.flip(id, domain.WaitlistNotified, domain.WaitlistExpired)
}

func (r *memWaitlistRepo) flip(id uuid.UUID, from, to domain.WaitlistStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	return true, nil
}

func (r *memWaitlistRepo) FindNotifiedByGuest(_ context.Context, slotID uuid.UUID, guestEmail string) (*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.SlotID == slotID && e.Guest.Email == guestEmail && e.Status == domain.WaitlistNotified {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWaitlistRepo) ListExpiredNotified(_ context.Context, now time.Time, limit int) ([]domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WaitlistEntry
	for _, e := range r.entries {
		if e.Status == domain.WaitlistNotified && e.ExpiresAt != nil && e.ExpiresAt.Before(now) {
			out = append(out, *e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// memGateway captures every charge immediately and records refunds. A
// non-zero refundDelay simulates gateway network latency.
type memGateway struct {
	mu          sync.Mutex
	charges     int
	refunds     []string
	refundDelay time.Duration
}

func (g *memGateway) Charge(_ context.Context, _ string, _ int64, _ string, bookingID uuid.UUID) (*ports.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges++
	return &ports.ChargeResult{IntentID: "ch_" + bookingID.String(), Captured: true}, nil
}

func (g *memGateway) Refund(_ context.Context, intentID string, _ int64) error {
	if g.refundDelay > 0 {
		time.Sleep(g.refundDelay)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunds = append(g.refunds, intentID)
	return nil
}

type memNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *memNotifier) Notify(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, fmt.Sprintf("%s:%s", to, subject))
	return nil
}

func (n *memNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
