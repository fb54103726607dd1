package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
)

const promotionLockTTL = 30 * time.Second

// WaitlistService queues guests for full slots and promotes the next
// eligible party whenever capacity frees up. Promotion never reserves
// capacity itself; the notified guest books through the normal allocator
// within the claim window.
type WaitlistService struct {
	waitlistRepo ports.WaitlistRepository
	notifier     ports.Notifier
	rdb          *redis.Client
	claimWindow  time.Duration
	now          func() time.Time
}

func NewWaitlistService(waitlistRepo ports.WaitlistRepository, notifier ports.Notifier, rdb *redis.Client, claimWindow time.Duration) *WaitlistService {
	if claimWindow <= 0 {
		claimWindow = 2 * time.Hour
	}
	return &WaitlistService{
		waitlistRepo: waitlistRepo,
		notifier:     notifier,
		rdb:          rdb,
		claimWindow:  claimWindow,
		now:          time.Now,
	}
}

func (s *WaitlistService) Join(ctx context.Context, offeringID, slotID uuid.UUID, partySize int, guest domain.Guest, priority int) (*domain.WaitlistEntry, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1")
	}
	if guest.Email == "" {
		return nil, fmt.Errorf("guest email required")
	}

	entry := &domain.WaitlistEntry{
		ID:         uuid.New(),
		OfferingID: offeringID,
		SlotID:     slotID,
		PartySize:  partySize,
		Guest:      guest,
		Status:     domain.WaitlistActive,
		Priority:   priority,
		CreatedAt:  s.now(),
	}

	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Promote runs one promotion cycle for a slot that just gained free
// capacity. At most one entry is offered the spot per release event; parties
// that do not fit the freed seats stay ACTIVE for a future round.
func (s *WaitlistService) Promote(ctx context.Context, slotID uuid.UUID, spotsAvailable int) error {
	if spotsAvailable <= 0 {
		return nil
	}
	if !s.acquirePromotionLock(ctx, slotID) {
		return nil
	}
	defer s.releasePromotionLock(ctx, slotID)

	entries, err := s.waitlistRepo.ListActiveBySlot(ctx, slotID)
	if err != nil {
		return fmt.Errorf("failed to list waitlist for slot %s: %w", slotID, err)
	}

	next := PickNext(entries, spotsAvailable)
	if next == nil {
		return nil
	}

	notifiedAt := s.now()
	expiresAt := notifiedAt.Add(s.claimWindow)
	ok, err := s.waitlistRepo.MarkNotified(ctx, next.ID, notifiedAt, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to notify waitlist entry %s: %w", next.ID, err)
	}
	if !ok {
		// Another promoter got there first.
		return nil
	}

	subject := "A spot opened up"
	body := fmt.Sprintf("A table for %d is available. Book within %s using your waitlist link: /book?slot=%s&claim=%s",
		next.PartySize, s.claimWindow, slotID, next.ID)
	if err := s.notifier.Notify(ctx, next.Guest.Email, subject, body); err != nil {
		log.Printf("waitlist: notification to %s failed: %v", next.Guest.Email, err)
	}

	return nil
}

// MarkClaimed converts the guest's NOTIFIED entry once their booking for the
// slot completes. No-op when the guest was never promoted.
func (s *WaitlistService) MarkClaimed(ctx context.Context, slotID uuid.UUID, guestEmail string) {
	entry, err := s.waitlistRepo.FindNotifiedByGuest(ctx, slotID, guestEmail)
	if err != nil {
		log.Printf("waitlist: claim lookup for %s failed: %v", guestEmail, err)
		return
	}
	if entry == nil {
		return
	}

	if _, err := s.waitlistRepo.MarkConverted(ctx, entry.ID); err != nil {
		log.Printf("waitlist: convert of entry %s failed: %v", entry.ID, err)
	}
}

// PickNext selects the head of the waitlist under the fairness policy:
// highest priority first, earliest join as tiebreak, restricted to parties
// that fit the free seats. No partial or split allocation.
func PickNext(entries []domain.WaitlistEntry, spotsAvailable int) *domain.WaitlistEntry {
	var fitting []domain.WaitlistEntry
	for _, e := range entries {
		if e.Status == domain.WaitlistActive && e.Fits(spotsAvailable) {
			fitting = append(fitting, e)
		}
	}
	if len(fitting) == 0 {
		return nil
	}

	sort.SliceStable(fitting, func(i, j int) bool {
		if fitting[i].Priority != fitting[j].Priority {
			return fitting[i].Priority > fitting[j].Priority
		}
		return fitting[i].CreatedAt.Before(fitting[j].CreatedAt)
	})

	return &fitting[0]
}

// acquirePromotionLock bounds duplicate notifications when concurrent
// releases race on the same slot. Correctness does not depend on it: the
// conditional ACTIVE→NOTIFIED flip already makes promotion idempotent.
func (s *WaitlistService) acquirePromotionLock(ctx context.Context, slotID uuid.UUID) bool {
	if s.rdb == nil {
		return true
	}

	ok, err := s.rdb.SetNX(ctx, "waitlist:promote:"+slotID.String(), 1, promotionLockTTL).Result()
	if err != nil {
		log.Printf("waitlist: promotion lock for %s unavailable: %v", slotID, err)
		return true
	}
	return ok
}

func (s *WaitlistService) releasePromotionLock(ctx context.Context, slotID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "waitlist:promote:"+slotID.String()).Err(); err != nil {
		log.Printf("waitlist: promotion lock release for %s failed: %v", slotID, err)
	}
}
