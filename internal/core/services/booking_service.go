package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
)

type CreateBookingRequest struct {
	SlotID        string `json:"slot_id"`
	PartySize     int    `json:"party_size"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	GuestPhone    string `json:"guest_phone"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	HoldToken     string `json:"hold_token,omitempty"`
	WalkIn        bool   `json:"walk_in,omitempty"`
}

type CreateHoldRequest struct {
	SlotID     string `json:"slot_id"`
	PartySize  int    `json:"party_size"`
	GuestEmail string `json:"guest_email"`
}

// BookingService is the public allocation entry point: it turns a desired
// (slot, party size) into a booking tied to a payment attempt. Capacity is
// reserved before any booking row exists, and every failure after the
// reservation compensates with a release, so no partial state survives.
type BookingService struct {
	slotRepo    ports.SlotRepository
	bookingRepo ports.BookingRepository
	holdRepo    ports.HoldRepository
	gateway     ports.PaymentGateway
	notifier    ports.Notifier
	waitlist    *WaitlistService
	cache       *SlotCache
	holdTTL     time.Duration
	now         func() time.Time
}

func NewBookingService(
	slotRepo ports.SlotRepository,
	bookingRepo ports.BookingRepository,
	holdRepo ports.HoldRepository,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
	waitlist *WaitlistService,
	cache *SlotCache,
	holdTTL time.Duration,
) *BookingService {
	if holdTTL <= 0 {
		holdTTL = 15 * time.Minute
	}
	return &BookingService{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		holdRepo:    holdRepo,
		gateway:     gateway,
		notifier:    notifier,
		waitlist:    waitlist,
		cache:       cache,
		holdTTL:     holdTTL,
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot id")
	}
	if req.PartySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1")
	}
	if req.GuestEmail == "" {
		return nil, fmt.Errorf("guest email required")
	}

	if req.WalkIn {
		return s.createWalkIn(ctx, slotID, req)
	}

	partySize, err := s.secureCapacity(ctx, slotID, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &domain.Booking{
		ID:            uuid.New(),
		SlotID:        slotID,
		PartySize:     partySize,
		Guest:         domain.Guest{Name: req.GuestName, Email: req.GuestEmail, Phone: req.GuestPhone},
		AmountCents:   req.AmountCents,
		Currency:      currencyOrDefault(req.Currency),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	slotDate := s.stampOffering(ctx, booking)

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Compensate: the reservation must not outlive the failed insert.
		s.releaseAndPromote(ctx, slotID, partySize)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	s.cache.Invalidate(ctx, booking.OfferingID, slotDate)

	return s.capturePayment(ctx, booking, req.PaymentMethod)
}

// secureCapacity reserves seats for the request, either by converting an
// existing checkout hold (whose seats are already reserved) or by a fresh
// ledger reservation.
func (s *BookingService) secureCapacity(ctx context.Context, slotID uuid.UUID, req CreateBookingRequest) (int, error) {
	if req.HoldToken == "" {
		if _, err := s.slotRepo.Reserve(ctx, slotID, req.PartySize); err != nil {
			return 0, err
		}
		return req.PartySize, nil
	}

	hold, err := s.holdRepo.GetByToken(ctx, req.HoldToken)
	if err != nil {
		return 0, err
	}
	if hold.SlotID != slotID {
		return 0, fmt.Errorf("hold does not belong to this slot")
	}
	if req.PartySize != hold.PartySize {
		return 0, fmt.Errorf("hold is for a party of %d, not %d", hold.PartySize, req.PartySize)
	}
	if s.now().After(hold.ExpiresAt) {
		return 0, domain.ErrHoldExpired
	}

	deleted, err := s.holdRepo.Delete(ctx, hold.ID)
	if err != nil {
		return 0, err
	}
	if deleted {
		// The hold's reservation transfers to the booking untouched.
		return hold.PartySize, nil
	}

	// The reaper reclaimed the hold between lookup and delete; its seats
	// are back in the pool, so reserve fresh.
	if _, err := s.slotRepo.Reserve(ctx, slotID, hold.PartySize); err != nil {
		return 0, err
	}
	return hold.PartySize, nil
}

func (s *BookingService) capturePayment(ctx context.Context, booking *domain.Booking, methodRef string) (*domain.Booking, error) {
	result, err := s.gateway.Charge(ctx, methodRef, booking.AmountCents, booking.Currency, booking.ID)
	if err != nil {
		// Ambiguous outcome: leave the booking PENDING for the webhook, or
		// the reaper if nothing ever arrives.
		log.Printf("booking %s: charge outcome unknown, awaiting webhook: %v", booking.ID, err)
		return booking, nil
	}

	if result.IntentID != "" {
		intentID := result.IntentID
		booking.PaymentIntentID = &intentID
		if err := s.bookingRepo.SetPaymentIntent(ctx, booking.ID, intentID); err != nil {
			log.Printf("booking %s: failed to record payment intent: %v", booking.ID, err)
		}
	}

	switch {
	case result.Captured:
		s.confirm(ctx, booking)
		return booking, nil
	case result.Failed:
		s.failBooking(ctx, booking.ID)
		return nil, fmt.Errorf("%w: %s", domain.ErrGateway, result.FailureReason)
	default:
		return booking, nil
	}
}

// createWalkIn bypasses the payment flow entirely: the guest is at the
// venue, so the booking starts CHECKED_IN with a zero amount and payment is
// settled in person.
func (s *BookingService) createWalkIn(ctx context.Context, slotID uuid.UUID, req CreateBookingRequest) (*domain.Booking, error) {
	if _, err := s.slotRepo.Reserve(ctx, slotID, req.PartySize); err != nil {
		return nil, err
	}

	now := s.now()
	booking := &domain.Booking{
		ID:            uuid.New(),
		SlotID:        slotID,
		PartySize:     req.PartySize,
		Guest:         domain.Guest{Name: req.GuestName, Email: req.GuestEmail, Phone: req.GuestPhone},
		AmountCents:   0,
		Currency:      currencyOrDefault(req.Currency),
		Status:        domain.BookingCheckedIn,
		PaymentStatus: domain.PaymentCaptured,
		WalkIn:        true,
		ConfirmedAt:   &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	slotDate := s.stampOffering(ctx, booking)

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.releaseAndPromote(ctx, slotID, req.PartySize)
		return nil, fmt.Errorf("failed to create walk-in booking: %w", err)
	}

	s.cache.Invalidate(ctx, booking.OfferingID, slotDate)
	if req.GuestEmail != "" {
		s.waitlist.MarkClaimed(ctx, slotID, req.GuestEmail)
	}

	return booking, nil
}

func (s *BookingService) CreateHold(ctx context.Context, req CreateHoldRequest) (*domain.Hold, error) {
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot id")
	}
	if req.PartySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1")
	}

	if _, err := s.slotRepo.Reserve(ctx, slotID, req.PartySize); err != nil {
		return nil, err
	}

	now := s.now()
	hold := &domain.Hold{
		ID:         uuid.New(),
		Token:      uuid.NewString(),
		SlotID:     slotID,
		PartySize:  req.PartySize,
		GuestEmail: req.GuestEmail,
		ExpiresAt:  now.Add(s.holdTTL),
		CreatedAt:  now,
	}
	if slot, err := s.slotRepo.GetByID(ctx, slotID); err == nil {
		hold.OfferingID = slot.OfferingID
		s.cache.Invalidate(ctx, slot.OfferingID, dateOf(slot.Date))
	}

	if err := s.holdRepo.Create(ctx, hold); err != nil {
		s.releaseAndPromote(ctx, slotID, req.PartySize)
		return nil, fmt.Errorf("failed to create hold: %w", err)
	}

	return hold, nil
}

// CancelBooking releases the booking's capacity and triggers promotion. A
// captured booking is refunded in full first: the conditional payment flip
// claims the refund, so of any number of concurrent cancellations exactly
// one talks to the gateway.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	payStatus := booking.PaymentStatus
	if booking.PaymentStatus == domain.PaymentCaptured && booking.PaymentIntentID != nil {
		claimed, err := s.bookingRepo.TransitionPayment(ctx, bookingID, domain.PaymentCaptured, domain.PaymentFullyRefunded)
		if err != nil {
			return err
		}
		if !claimed {
			// Another cancellation owns the refund and the release.
			return domain.ErrNotReleasable
		}
		if err := s.gateway.Refund(ctx, *booking.PaymentIntentID, booking.AmountCents); err != nil {
			// The claim stands; the money is owed regardless of whether the
			// release below goes through. Flag for operational retry.
			log.Printf("booking %s: refund of %d failed, needs manual retry: %v", bookingID, booking.AmountCents, err)
		}
		payStatus = domain.PaymentFullyRefunded
	}

	rel, err := s.bookingRepo.CancelAndRelease(ctx, bookingID, domain.BookingCancelled, payStatus)
	if err != nil {
		return err
	}

	log.Printf("booking %s cancelled (%s): %d seats back on slot %s", bookingID, reason, rel.PartySize, rel.SlotID)
	s.afterRelease(ctx, rel)
	return nil
}

// HandlePaymentSucceeded reacts to the gateway's capture webhook. The
// conditional confirm makes duplicate webhook deliveries harmless. A capture
// arriving after the reaper already expired the booking is refunded: the
// guest's seats are gone, so their money must not stay captured.
func (s *BookingService) HandlePaymentSucceeded(ctx context.Context, intentID string) error {
	booking, err := s.bookingRepo.GetByPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}

	booking.PaymentIntentID = &intentID
	if s.confirm(ctx, booking) {
		return nil
	}

	return s.refundLateCapture(ctx, booking.ID, intentID)
}

// refundLateCapture returns captured funds on a booking the reaper reclaimed
// before its capture webhook arrived. The conditional payment flip claims
// the refund, so redelivered webhooks cannot refund twice.
func (s *BookingService) refundLateCapture(ctx context.Context, bookingID uuid.UUID, intentID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingCancelled || booking.PaymentStatus != domain.PaymentExpired {
		return nil
	}

	claimed, err := s.bookingRepo.TransitionPayment(ctx, bookingID, domain.PaymentExpired, domain.PaymentFullyRefunded)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	log.Printf("booking %s: capture arrived after expiry, refunding %d", bookingID, booking.AmountCents)
	if err := s.gateway.Refund(ctx, intentID, booking.AmountCents); err != nil {
		log.Printf("booking %s: late-capture refund failed, needs manual retry: %v", bookingID, err)
	}
	return nil
}

// HandlePaymentFailed cancels the booking and returns its capacity. Safe to
// deliver more than once: a booking that already released matches nothing.
func (s *BookingService) HandlePaymentFailed(ctx context.Context, intentID, reason string) error {
	booking, err := s.bookingRepo.GetByPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}

	log.Printf("booking %s: payment failed: %s", booking.ID, reason)
	s.failBooking(ctx, booking.ID)
	return nil
}

func (s *BookingService) CheckIn(ctx context.Context, bookingID uuid.UUID) error {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingCheckedIn)
}

func (s *BookingService) MarkNoShow(ctx context.Context, bookingID uuid.UUID) error {
	return s.transition(ctx, bookingID, domain.BookingConfirmed, domain.BookingNoShow)
}

func (s *BookingService) Complete(ctx context.Context, bookingID uuid.UUID) error {
	return s.transition(ctx, bookingID, domain.BookingCheckedIn, domain.BookingCompleted)
}

func (s *BookingService) transition(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error {
	ok, err := s.bookingRepo.Transition(ctx, bookingID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("booking %s is not %s", bookingID, from)
	}
	return nil
}

// confirm reports whether this call performed the PENDING→CONFIRMED flip.
func (s *BookingService) confirm(ctx context.Context, booking *domain.Booking) bool {
	now := s.now()
	ok, err := s.bookingRepo.MarkConfirmed(ctx, booking.ID, now)
	if err != nil {
		log.Printf("booking %s: confirm failed: %v", booking.ID, err)
		return false
	}
	if !ok {
		log.Printf("booking %s: confirm skipped, not pending", booking.ID)
		return false
	}

	booking.Status = domain.BookingConfirmed
	booking.PaymentStatus = domain.PaymentCaptured
	booking.ConfirmedAt = &now

	s.waitlist.MarkClaimed(ctx, booking.SlotID, booking.Guest.Email)

	subject := "Booking confirmed"
	body := fmt.Sprintf("Your booking for %d is confirmed. Reference: %s", booking.PartySize, booking.ID)
	if err := s.notifier.Notify(ctx, booking.Guest.Email, subject, body); err != nil {
		log.Printf("booking %s: confirmation notification failed: %v", booking.ID, err)
		return true
	}
	if err := s.bookingRepo.MarkConfirmationSent(ctx, booking.ID, s.now()); err != nil {
		log.Printf("booking %s: confirmation stamp failed: %v", booking.ID, err)
	}
	return true
}

func (s *BookingService) failBooking(ctx context.Context, bookingID uuid.UUID) {
	rel, err := s.bookingRepo.CancelAndRelease(ctx, bookingID, domain.BookingCancelled, domain.PaymentFailed)
	if err != nil {
		if errors.Is(err, domain.ErrNotReleasable) {
			log.Printf("booking %s: release skipped, capacity already returned", bookingID)
			return
		}
		log.Printf("booking %s: cancel after payment failure failed: %v", bookingID, err)
		return
	}

	s.afterRelease(ctx, rel)
}

func (s *BookingService) releaseAndPromote(ctx context.Context, slotID uuid.UUID, partySize int) {
	rel, err := s.slotRepo.Release(ctx, slotID, partySize)
	if err != nil {
		log.Printf("slot %s: compensating release failed: %v", slotID, err)
		return
	}
	s.afterRelease(ctx, rel)
}

// afterRelease runs once the releasing transaction has committed: the cache
// entry for the slot's day is dropped and exactly one promotion cycle fires.
func (s *BookingService) afterRelease(ctx context.Context, rel *ports.ReleasedCapacity) {
	s.cache.Invalidate(ctx, rel.OfferingID, dateOf(rel.Date))
	if err := s.waitlist.Promote(ctx, rel.SlotID, rel.Remaining); err != nil {
		log.Printf("slot %s: promotion failed: %v", rel.SlotID, err)
	}
}

// stampOffering denormalizes the slot's offering onto the booking and
// returns the slot's date for cache invalidation.
func (s *BookingService) stampOffering(ctx context.Context, booking *domain.Booking) time.Time {
	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		log.Printf("booking %s: offering lookup failed: %v", booking.ID, err)
		return dateOf(booking.CreatedAt)
	}
	booking.OfferingID = slot.OfferingID
	return dateOf(slot.Date)
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "usd"
	}
	return c
}
