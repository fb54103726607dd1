package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.uber.org/atomic"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
)

// ReaperService reclaims capacity from checkout flows that never finished:
// expired holds, bookings abandoned mid-payment, and lapsed waitlist claims.
// Each invocation is stateless and every action is a conditional state
// transition, so overlapping sweeps cannot double-release.
type ReaperService struct {
	bookingRepo  ports.BookingRepository
	holdRepo     ports.HoldRepository
	waitlistRepo ports.WaitlistRepository
	slotRepo     ports.SlotRepository
	waitlist     *WaitlistService
	cache        *SlotCache

	abandonAfter time.Duration
	sweepLimit   int
	now          func() time.Time

	reclaimedBookings atomic.Int64
	expiredHolds      atomic.Int64
	expiredClaims     atomic.Int64
}

type ReaperStats struct {
	ReclaimedBookings int64 `json:"reclaimed_bookings"`
	ExpiredHolds      int64 `json:"expired_holds"`
	ExpiredClaims     int64 `json:"expired_claims"`
}

func NewReaperService(
	bookingRepo ports.BookingRepository,
	holdRepo ports.HoldRepository,
	waitlistRepo ports.WaitlistRepository,
	slotRepo ports.SlotRepository,
	waitlist *WaitlistService,
	cache *SlotCache,
	abandonAfter time.Duration,
) *ReaperService {
	if abandonAfter <= 0 {
		abandonAfter = 15 * time.Minute
	}
	return &ReaperService{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		waitlistRepo: waitlistRepo,
		slotRepo:     slotRepo,
		waitlist:     waitlist,
		cache:        cache,
		abandonAfter: abandonAfter,
		sweepLimit:   100,
		now:          time.Now,
	}
}

// Run executes one full sweep. Per-row failures are logged and skipped;
// they never abort the rest of the sweep.
func (s *ReaperService) Run(ctx context.Context) error {
	s.reapHolds(ctx)
	s.reapAbandonedBookings(ctx)
	s.reapLapsedClaims(ctx)
	return nil
}

// RunBackground drives periodic sweeps until the context is cancelled.
func (s *ReaperService) RunBackground(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("reaper started: sweeping every %s", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("reaper stopped")
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				log.Printf("reaper sweep failed: %v", err)
			}
		}
	}
}

func (s *ReaperService) Stats() ReaperStats {
	return ReaperStats{
		ReclaimedBookings: s.reclaimedBookings.Load(),
		ExpiredHolds:      s.expiredHolds.Load(),
		ExpiredClaims:     s.expiredClaims.Load(),
	}
}

func (s *ReaperService) reapHolds(ctx context.Context) {
	holds, err := s.holdRepo.ListExpired(ctx, s.now(), s.sweepLimit)
	if err != nil {
		log.Printf("reaper: listing expired holds failed: %v", err)
		return
	}

	for _, h := range holds {
		rel, err := s.holdRepo.DeleteAndRelease(ctx, h.ID)
		if err != nil {
			if errors.Is(err, domain.ErrHoldNotFound) {
				continue // another sweep claimed it
			}
			log.Printf("reaper: releasing hold %s failed: %v", h.ID, err)
			continue
		}

		s.expiredHolds.Inc()
		s.afterRelease(ctx, rel)
	}
}

func (s *ReaperService) reapAbandonedBookings(ctx context.Context) {
	cutoff := s.now().Add(-s.abandonAfter)
	bookings, err := s.bookingRepo.ListAbandoned(ctx, cutoff, s.sweepLimit)
	if err != nil {
		log.Printf("reaper: listing abandoned bookings failed: %v", err)
		return
	}

	for _, b := range bookings {
		rel, err := s.bookingRepo.CancelAndRelease(ctx, b.ID, domain.BookingCancelled, domain.PaymentExpired)
		if err != nil {
			if errors.Is(err, domain.ErrNotReleasable) {
				// Paid or cancelled since we listed it.
				log.Printf("reaper: booking %s no longer releasable, skipping", b.ID)
				continue
			}
			log.Printf("reaper: expiring booking %s failed: %v", b.ID, err)
			continue
		}

		s.reclaimedBookings.Inc()
		log.Printf("reaper: booking %s abandoned, %d seats back on slot %s", b.ID, rel.PartySize, rel.SlotID)
		s.afterRelease(ctx, rel)
	}
}

func (s *ReaperService) reapLapsedClaims(ctx context.Context) {
	entries, err := s.waitlistRepo.ListExpiredNotified(ctx, s.now(), s.sweepLimit)
	if err != nil {
		log.Printf("reaper: listing lapsed claims failed: %v", err)
		return
	}

	for _, e := range entries {
		ok, err := s.waitlistRepo.MarkExpired(ctx, e.ID)
		if err != nil {
			log.Printf("reaper: expiring claim %s failed: %v", e.ID, err)
			continue
		}
		if !ok {
			continue // converted or already expired
		}

		s.expiredClaims.Inc()

		// The forfeited spot goes to the next eligible entry.
		slot, err := s.slotRepo.GetByID(ctx, e.SlotID)
		if err != nil {
			log.Printf("reaper: slot lookup for claim %s failed: %v", e.ID, err)
			continue
		}
		if err := s.waitlist.Promote(ctx, slot.ID, slot.RemainingCapacity); err != nil {
			log.Printf("reaper: re-promotion for slot %s failed: %v", slot.ID, err)
		}
	}
}

func (s *ReaperService) afterRelease(ctx context.Context, rel *ports.ReleasedCapacity) {
	s.cache.Invalidate(ctx, rel.OfferingID, dateOf(rel.Date))
	if err := s.waitlist.Promote(ctx, rel.SlotID, rel.Remaining); err != nil {
		log.Printf("reaper: promotion for slot %s failed: %v", rel.SlotID, err)
	}
}
