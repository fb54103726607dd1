package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
	"github.com/dineflow/dineflow/internal/core/ports/mocks"
	"github.com/dineflow/dineflow/internal/core/services"
)

func newBookingFixture(t *testing.T) (*services.BookingService, *mocks.SlotRepository, *mocks.BookingRepository, *mocks.HoldRepository, *mocks.PaymentGateway, *mocks.Notifier, *mocks.WaitlistRepository, redismock.ClientMock) {
	slotRepo := mocks.NewSlotRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	holdRepo := mocks.NewHoldRepository(t)
	gateway := mocks.NewPaymentGateway(t)
	notifier := mocks.NewNotifier(t)
	waitlistRepo := mocks.NewWaitlistRepository(t)

	db, redisMock := redismock.NewClientMock()

	waitlist := services.NewWaitlistService(waitlistRepo, notifier, nil, 2*time.Hour)
	cache := services.NewSlotCache(db, time.Minute)
	svc := services.NewBookingService(slotRepo, bookingRepo, holdRepo, gateway, notifier, waitlist, cache, 15*time.Minute)

	return svc, slotRepo, bookingRepo, holdRepo, gateway, notifier, waitlistRepo, redisMock
}

func TestCreateBooking_Success(t *testing.T) {
	svc, slotRepo, bookingRepo, _, gateway, notifier, waitlistRepo, redisMock := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()
	offeringID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	slot := &domain.SlotInstance{
		ID:                slotID,
		OfferingID:        offeringID,
		Date:              date,
		TotalCapacity:     10,
		RemainingCapacity: 8,
		Status:            domain.SlotAvailable,
	}

	req := services.CreateBookingRequest{
		SlotID:        slotID.String(),
		PartySize:     2,
		GuestName:     "Ada",
		GuestEmail:    "ada@example.com",
		AmountCents:   5000,
		Currency:      "usd",
		PaymentMethod: "tok_visa",
	}

	slotRepo.On("Reserve", ctx, slotID, 2).Return(6, nil)
	slotRepo.On("GetByID", ctx, slotID).Return(slot, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	redisMock.ExpectDel(fmt.Sprintf("slots:%s:2026-09-04", offeringID)).SetVal(1)

	gateway.On("Charge", ctx, "tok_visa", int64(5000), "usd", mock.AnythingOfType("uuid.UUID")).
		Return(&ports.ChargeResult{IntentID: "ch_123", Captured: true}, nil)
	bookingRepo.On("SetPaymentIntent", ctx, mock.AnythingOfType("uuid.UUID"), "ch_123").Return(nil)
	bookingRepo.On("MarkConfirmed", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("time.Time")).Return(true, nil)
	waitlistRepo.On("FindNotifiedByGuest", ctx, slotID, "ada@example.com").Return(nil, nil)
	notifier.On("Notify", ctx, "ada@example.com", mock.Anything, mock.Anything).Return(nil)
	bookingRepo.On("MarkConfirmationSent", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("time.Time")).Return(nil)

	booking, err := svc.CreateBooking(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
		assert.Equal(t, domain.PaymentCaptured, booking.PaymentStatus)
		assert.Equal(t, offeringID, booking.OfferingID)
		assert.Equal(t, int64(5000), booking.AmountCents)
	}

	if err := redisMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateBooking_Fail_InsufficientCapacity(t *testing.T) {
	svc, slotRepo, _, _, _, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()

	req := services.CreateBookingRequest{
		SlotID:     slotID.String(),
		PartySize:  6,
		GuestEmail: "ada@example.com",
	}

	slotRepo.On("Reserve", ctx, slotID, 6).Return(0, domain.ErrInsufficientCapacity)

	booking, err := svc.CreateBooking(ctx, req)

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	assert.Nil(t, booking)
}

func TestCreateBooking_GatewayDeclined_ReleasesCapacity(t *testing.T) {
	svc, slotRepo, bookingRepo, _, gateway, _, waitlistRepo, redisMock := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()
	offeringID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	slot := &domain.SlotInstance{ID: slotID, OfferingID: offeringID, Date: date, RemainingCapacity: 4, Status: domain.SlotAvailable}

	req := services.CreateBookingRequest{
		SlotID:        slotID.String(),
		PartySize:     2,
		GuestEmail:    "ada@example.com",
		AmountCents:   5000,
		PaymentMethod: "tok_declined",
	}

	cacheKey := fmt.Sprintf("slots:%s:2026-09-04", offeringID)

	slotRepo.On("Reserve", ctx, slotID, 2).Return(2, nil)
	slotRepo.On("GetByID", ctx, slotID).Return(slot, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	redisMock.ExpectDel(cacheKey).SetVal(1)

	gateway.On("Charge", ctx, "tok_declined", int64(5000), "usd", mock.AnythingOfType("uuid.UUID")).
		Return(&ports.ChargeResult{IntentID: "ch_bad", Failed: true, FailureReason: "insufficient_funds"}, nil)
	bookingRepo.On("SetPaymentIntent", ctx, mock.AnythingOfType("uuid.UUID"), "ch_bad").Return(nil)

	rel := &ports.ReleasedCapacity{SlotID: slotID, OfferingID: offeringID, Date: date, PartySize: 2, Remaining: 4}
	bookingRepo.On("CancelAndRelease", ctx, mock.AnythingOfType("uuid.UUID"), domain.BookingCancelled, domain.PaymentFailed).Return(rel, nil)
	redisMock.ExpectDel(cacheKey).SetVal(1)
	waitlistRepo.On("ListActiveBySlot", ctx, slotID).Return(nil, nil)

	booking, err := svc.CreateBooking(ctx, req)

	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Nil(t, booking)
	assert.Contains(t, err.Error(), "insufficient_funds")

	if err := redisMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateBooking_AmbiguousCharge_StaysPending(t *testing.T) {
	svc, slotRepo, bookingRepo, _, gateway, _, _, redisMock := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()
	offeringID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	slot := &domain.SlotInstance{ID: slotID, OfferingID: offeringID, Date: date, RemainingCapacity: 4, Status: domain.SlotAvailable}

	slotRepo.On("Reserve", ctx, slotID, 2).Return(2, nil)
	slotRepo.On("GetByID", ctx, slotID).Return(slot, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	redisMock.ExpectDel(fmt.Sprintf("slots:%s:2026-09-04", offeringID)).SetVal(1)
	gateway.On("Charge", ctx, "tok_timeout", int64(5000), "usd", mock.AnythingOfType("uuid.UUID")).
		Return(nil, fmt.Errorf("gateway timeout"))

	booking, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		SlotID:        slotID.String(),
		PartySize:     2,
		GuestEmail:    "ada@example.com",
		AmountCents:   5000,
		PaymentMethod: "tok_timeout",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingPending, booking.Status)
		assert.Equal(t, domain.PaymentPending, booking.PaymentStatus)
	}
}

func TestCreateBooking_WalkIn_BypassesPayment(t *testing.T) {
	svc, slotRepo, bookingRepo, _, _, _, waitlistRepo, redisMock := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()
	offeringID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	slot := &domain.SlotInstance{ID: slotID, OfferingID: offeringID, Date: date, RemainingCapacity: 4, Status: domain.SlotAvailable}

	slotRepo.On("Reserve", ctx, slotID, 3).Return(1, nil)
	slotRepo.On("GetByID", ctx, slotID).Return(slot, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	redisMock.ExpectDel(fmt.Sprintf("slots:%s:2026-09-04", offeringID)).SetVal(1)
	waitlistRepo.On("FindNotifiedByGuest", ctx, slotID, "walkin@example.com").Return(nil, nil)

	booking, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		SlotID:      slotID.String(),
		PartySize:   3,
		GuestName:   "Walk In",
		GuestEmail:  "walkin@example.com",
		AmountCents: 9000,
		WalkIn:      true,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.True(t, booking.WalkIn)
		assert.Equal(t, domain.BookingCheckedIn, booking.Status)
		assert.Equal(t, domain.PaymentCaptured, booking.PaymentStatus)
		assert.Equal(t, int64(0), booking.AmountCents)
	}
}

func TestCreateBooking_HoldConversion_SkipsFreshReserve(t *testing.T) {
	svc, slotRepo, bookingRepo, holdRepo, gateway, notifier, waitlistRepo, redisMock := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()
	offeringID := uuid.New()
	holdID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	hold := &domain.Hold{
		ID:        holdID,
		Token:     "tok-hold",
		SlotID:    slotID,
		PartySize: 4,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	slot := &domain.SlotInstance{ID: slotID, OfferingID: offeringID, Date: date, RemainingCapacity: 2, Status: domain.SlotAvailable}

	holdRepo.On("GetByToken", ctx, "tok-hold").Return(hold, nil)
	holdRepo.On("Delete", ctx, holdID).Return(true, nil)
	slotRepo.On("GetByID", ctx, slotID).Return(slot, nil)
	bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	redisMock.ExpectDel(fmt.Sprintf("slots:%s:2026-09-04", offeringID)).SetVal(1)

	gateway.On("Charge", ctx, "tok_visa", int64(8000), "usd", mock.AnythingOfType("uuid.UUID")).
		Return(&ports.ChargeResult{IntentID: "ch_hold", Captured: true}, nil)
	bookingRepo.On("SetPaymentIntent", ctx, mock.AnythingOfType("uuid.UUID"), "ch_hold").Return(nil)
	bookingRepo.On("MarkConfirmed", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("time.Time")).Return(true, nil)
	waitlistRepo.On("FindNotifiedByGuest", ctx, slotID, "ada@example.com").Return(nil, nil)
	notifier.On("Notify", ctx, "ada@example.com", mock.Anything, mock.Anything).Return(nil)
	bookingRepo.On("MarkConfirmationSent", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("time.Time")).Return(nil)

	booking, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		SlotID:        slotID.String(),
		PartySize:     4,
		GuestEmail:    "ada@example.com",
		AmountCents:   8000,
		PaymentMethod: "tok_visa",
		HoldToken:     "tok-hold",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		// Party size comes from the hold, and no fresh Reserve happened.
		assert.Equal(t, 4, booking.PartySize)
	}
	slotRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_HoldPartySizeMismatch(t *testing.T) {
	svc, slotRepo, _, holdRepo, _, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()

	hold := &domain.Hold{
		ID:        uuid.New(),
		Token:     "tok-hold",
		SlotID:    slotID,
		PartySize: 4,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	holdRepo.On("GetByToken", ctx, "tok-hold").Return(hold, nil)

	booking, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		SlotID:        slotID.String(),
		PartySize:     2,
		GuestEmail:    "ada@example.com",
		PaymentMethod: "tok_visa",
		HoldToken:     "tok-hold",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "party of 4")
	assert.Nil(t, booking)
	// The hold stays intact for a corrected retry.
	holdRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	slotRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_HoldExpired(t *testing.T) {
	svc, _, _, holdRepo, _, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()

	hold := &domain.Hold{
		ID:        uuid.New(),
		Token:     "tok-stale",
		SlotID:    slotID,
		PartySize: 2,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	holdRepo.On("GetByToken", ctx, "tok-stale").Return(hold, nil)

	booking, err := svc.CreateBooking(ctx, services.CreateBookingRequest{
		SlotID:        slotID.String(),
		PartySize:     2,
		GuestEmail:    "ada@example.com",
		PaymentMethod: "tok_visa",
		HoldToken:     "tok-stale",
	})

	assert.ErrorIs(t, err, domain.ErrHoldExpired)
	assert.Nil(t, booking)
}

func TestCancelBooking_RefundsCapturedAndPromotes(t *testing.T) {
	svc, _, bookingRepo, _, gateway, notifier, waitlistRepo, redisMock := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()
	slotID := uuid.New()
	offeringID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	intentID := "ch_123"

	booking := &domain.Booking{
		ID:              bookingID,
		SlotID:          slotID,
		PartySize:       2,
		AmountCents:     5000,
		Status:          domain.BookingConfirmed,
		PaymentStatus:   domain.PaymentCaptured,
		PaymentIntentID: &intentID,
	}
	bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
	bookingRepo.On("TransitionPayment", ctx, bookingID, domain.PaymentCaptured, domain.PaymentFullyRefunded).Return(true, nil)
	gateway.On("Refund", ctx, "ch_123", int64(5000)).Return(nil)

	rel := &ports.ReleasedCapacity{SlotID: slotID, OfferingID: offeringID, Date: date, PartySize: 2, Remaining: 2}
	bookingRepo.On("CancelAndRelease", ctx, bookingID, domain.BookingCancelled, domain.PaymentFullyRefunded).Return(rel, nil)
	redisMock.ExpectDel(fmt.Sprintf("slots:%s:2026-09-04", offeringID)).SetVal(1)

	waiting := domain.WaitlistEntry{
		ID:        uuid.New(),
		SlotID:    slotID,
		PartySize: 2,
		Guest:     domain.Guest{Email: "queued@example.com"},
		Status:    domain.WaitlistActive,
	}
	waitlistRepo.On("ListActiveBySlot", ctx, slotID).Return([]domain.WaitlistEntry{waiting}, nil)
	waitlistRepo.On("MarkNotified", ctx, waiting.ID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(true, nil)
	notifier.On("Notify", ctx, "queued@example.com", mock.Anything, mock.Anything).Return(nil)

	err := svc.CancelBooking(ctx, bookingID, "guest request")

	assert.NoError(t, err)
	if err := redisMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCancelBooking_RefundClaimLost_DoesNotRefundAgain(t *testing.T) {
	svc, _, bookingRepo, _, gateway, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()
	intentID := "ch_123"

	booking := &domain.Booking{
		ID:              bookingID,
		PartySize:       2,
		AmountCents:     5000,
		Status:          domain.BookingConfirmed,
		PaymentStatus:   domain.PaymentCaptured,
		PaymentIntentID: &intentID,
	}
	bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
	// A concurrent cancellation won the payment flip first.
	bookingRepo.On("TransitionPayment", ctx, bookingID, domain.PaymentCaptured, domain.PaymentFullyRefunded).Return(false, nil)

	err := svc.CancelBooking(ctx, bookingID, "guest request")

	assert.ErrorIs(t, err, domain.ErrNotReleasable)
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	bookingRepo.AssertNotCalled(t, "CancelAndRelease", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_AlreadyReleased(t *testing.T) {
	svc, _, bookingRepo, _, _, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	booking := &domain.Booking{ID: bookingID, Status: domain.BookingCancelled, PaymentStatus: domain.PaymentExpired}
	bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
	bookingRepo.On("CancelAndRelease", ctx, bookingID, domain.BookingCancelled, domain.PaymentExpired).Return(nil, domain.ErrNotReleasable)

	err := svc.CancelBooking(ctx, bookingID, "retry")

	assert.ErrorIs(t, err, domain.ErrNotReleasable)
}

func TestHandlePaymentSucceeded_DuplicateDeliveryIsHarmless(t *testing.T) {
	svc, _, bookingRepo, _, _, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	booking := &domain.Booking{
		ID:            bookingID,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentCaptured,
		Guest:         domain.Guest{Email: "ada@example.com"},
	}
	bookingRepo.On("GetByPaymentIntent", ctx, "ch_123").Return(booking, nil)
	// Already confirmed: the conditional flip matches nothing and no
	// notification goes out.
	bookingRepo.On("MarkConfirmed", ctx, bookingID, mock.AnythingOfType("time.Time")).Return(false, nil)
	bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)

	err := svc.HandlePaymentSucceeded(ctx, "ch_123")

	assert.NoError(t, err)
}

func TestHandlePaymentSucceeded_AfterExpiry_RefundsCapture(t *testing.T) {
	svc, _, bookingRepo, _, gateway, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	// The reaper reclaimed the booking before the capture webhook landed.
	expired := &domain.Booking{
		ID:            bookingID,
		AmountCents:   5000,
		Status:        domain.BookingCancelled,
		PaymentStatus: domain.PaymentExpired,
		Guest:         domain.Guest{Email: "ada@example.com"},
	}
	bookingRepo.On("GetByPaymentIntent", ctx, "ch_late").Return(expired, nil)
	bookingRepo.On("MarkConfirmed", ctx, bookingID, mock.AnythingOfType("time.Time")).Return(false, nil)
	bookingRepo.On("GetByID", ctx, bookingID).Return(expired, nil)
	bookingRepo.On("TransitionPayment", ctx, bookingID, domain.PaymentExpired, domain.PaymentFullyRefunded).Return(true, nil)
	gateway.On("Refund", ctx, "ch_late", int64(5000)).Return(nil)

	err := svc.HandlePaymentSucceeded(ctx, "ch_late")

	assert.NoError(t, err)
}

func TestHandlePaymentSucceeded_AfterExpiry_RedeliveryRefundsOnce(t *testing.T) {
	svc, _, bookingRepo, _, gateway, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	expired := &domain.Booking{
		ID:            bookingID,
		AmountCents:   5000,
		Status:        domain.BookingCancelled,
		PaymentStatus: domain.PaymentExpired,
	}
	bookingRepo.On("GetByPaymentIntent", ctx, "ch_late").Return(expired, nil)
	bookingRepo.On("MarkConfirmed", ctx, bookingID, mock.AnythingOfType("time.Time")).Return(false, nil)
	bookingRepo.On("GetByID", ctx, bookingID).Return(expired, nil)
	// A previous delivery already claimed the refund.
	bookingRepo.On("TransitionPayment", ctx, bookingID, domain.PaymentExpired, domain.PaymentFullyRefunded).Return(false, nil)

	err := svc.HandlePaymentSucceeded(ctx, "ch_late")

	assert.NoError(t, err)
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckIn_WrongState(t *testing.T) {
	svc, _, bookingRepo, _, _, _, _, _ := newBookingFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	bookingRepo.On("Transition", ctx, bookingID, domain.BookingConfirmed, domain.BookingCheckedIn).Return(false, nil)

	err := svc.CheckIn(ctx, bookingID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not CONFIRMED")
}

func TestCreateHold_ReservesAndReturnsToken(t *testing.T) {
	svc, slotRepo, _, holdRepo, _, _, _, redisMock := newBookingFixture(t)

	ctx := context.Background()
	slotID := uuid.New()
	offeringID := uuid.New()
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	slot := &domain.SlotInstance{ID: slotID, OfferingID: offeringID, Date: date, RemainingCapacity: 4, Status: domain.SlotAvailable}

	slotRepo.On("Reserve", ctx, slotID, 2).Return(2, nil)
	slotRepo.On("GetByID", ctx, slotID).Return(slot, nil)
	redisMock.ExpectDel(fmt.Sprintf("slots:%s:2026-09-04", offeringID)).SetVal(1)
	holdRepo.On("Create", ctx, mock.AnythingOfType("*domain.Hold")).Return(nil)

	hold, err := svc.CreateHold(ctx, services.CreateHoldRequest{
		SlotID:     slotID.String(),
		PartySize:  2,
		GuestEmail: "ada@example.com",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, hold) {
		assert.NotEmpty(t, hold.Token)
		assert.Equal(t, 2, hold.PartySize)
		assert.True(t, hold.ExpiresAt.After(time.Now()))
	}
}
