package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
	"github.com/dineflow/dineflow/internal/core/recurrence"
)

// AvailabilityService materializes slot instances from schedule definitions
// and serves availability listings. Materialization is idempotent: an
// existence check by (offering, start timestamp) guards every insert, so the
// periodic job and the lazy on-demand path can overlap freely.
type AvailabilityService struct {
	scheduleRepo ports.ScheduleRepository
	slotRepo     ports.SlotRepository
	cache        *SlotCache
	horizonDays  int
	now          func() time.Time
}

func NewAvailabilityService(scheduleRepo ports.ScheduleRepository, slotRepo ports.SlotRepository, cache *SlotCache, horizonDays int) *AvailabilityService {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	return &AvailabilityService{
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		cache:        cache,
		horizonDays:  horizonDays,
		now:          time.Now,
	}
}

func (s *AvailabilityService) CreateSchedule(ctx context.Context, def *domain.ScheduleDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	now := s.now()
	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}
	def.Active = true
	def.CreatedAt = now
	def.UpdatedAt = now

	return s.scheduleRepo.Create(ctx, def)
}

func (s *AvailabilityService) DeactivateSchedule(ctx context.Context, id uuid.UUID) error {
	return s.scheduleRepo.Deactivate(ctx, id)
}

// MaterializeUpcomingSlots expands every active definition over the rolling
// horizon. A definition that fails to expand is logged and skipped; it never
// aborts generation for the others.
func (s *AvailabilityService) MaterializeUpcomingSlots(ctx context.Context) error {
	defs, err := s.scheduleRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active schedule definitions: %w", err)
	}

	from := dateOf(s.now())
	until := from.AddDate(0, 0, s.horizonDays)

	var failed int
	for _, def := range defs {
		if err := s.materializeDefinition(ctx, &def, from, until); err != nil {
			failed++
			log.Printf("materialize: definition %s skipped: %v", def.ID, err)
			continue
		}

		if err := s.scheduleRepo.SetLastGenerated(ctx, def.ID, until); err != nil {
			log.Printf("materialize: watermark update for %s failed: %v", def.ID, err)
		}
	}

	log.Printf("materialize: %d definitions processed, %d skipped", len(defs)-failed, failed)
	return nil
}

// GetAvailableSlots lists the slots for one offering and date, generating
// them on the fly when none exist yet.
func (s *AvailabilityService) GetAvailableSlots(ctx context.Context, offeringID uuid.UUID, date time.Time) ([]domain.SlotInstance, error) {
	date = dateOf(date)

	if slots, ok := s.cache.Get(ctx, offeringID, date); ok {
		return slots, nil
	}

	slots, err := s.slotRepo.ListByOfferingDate(ctx, offeringID, date)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		if err := s.materializeForDate(ctx, offeringID, date); err != nil {
			return nil, err
		}
		slots, err = s.slotRepo.ListByOfferingDate(ctx, offeringID, date)
		if err != nil {
			return nil, err
		}
	}

	s.cache.Set(ctx, offeringID, date, slots)
	return slots, nil
}

func (s *AvailabilityService) materializeForDate(ctx context.Context, offeringID uuid.UUID, date time.Time) error {
	defs, err := s.scheduleRepo.ListActiveByOffering(ctx, offeringID)
	if err != nil {
		return err
	}

	until := date.AddDate(0, 0, 1)
	for _, def := range defs {
		if err := s.materializeDefinition(ctx, &def, date, until); err != nil {
			log.Printf("lazy materialize: definition %s skipped: %v", def.ID, err)
		}
	}
	return nil
}

func (s *AvailabilityService) materializeDefinition(ctx context.Context, def *domain.ScheduleDefinition, from, until time.Time) error {
	dates, err := s.expandDates(def, from, until)
	if err != nil {
		return fmt.Errorf("recurrence expansion: %w", err)
	}

	start, err := domain.ParseClock(def.StartTime)
	if err != nil {
		return err
	}
	last, err := domain.ParseClock(def.LastSeating)
	if err != nil {
		return err
	}
	interval := time.Duration(def.IntervalMinutes) * time.Minute
	capacity := def.Capacity.PerSlot()

	for _, date := range dates {
		for c := start; c <= last; c += domain.Clock(def.IntervalMinutes) {
			startAt := c.At(date)

			exists, err := s.slotRepo.ExistsByStart(ctx, def.OfferingID, startAt)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			slot := &domain.SlotInstance{
				ID:                uuid.New(),
				OfferingID:        def.OfferingID,
				ScheduleID:        def.ID,
				Date:              date,
				StartAt:           startAt,
				EndAt:             startAt.Add(interval),
				TotalCapacity:     capacity,
				RemainingCapacity: capacity,
				Status:            domain.SlotAvailable,
				CreatedAt:         s.now(),
			}
			if capacity == 0 {
				slot.Status = domain.SlotFull
			}

			if err := s.slotRepo.Create(ctx, slot); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *AvailabilityService) expandDates(def *domain.ScheduleDefinition, from, until time.Time) ([]time.Time, error) {
	if def.Rule != nil {
		anchor := def.CreatedAt
		if anchor.IsZero() {
			anchor = from
		}
		return recurrence.Expand(*def.Rule, anchor, from, until)
	}

	var dates []time.Time
	for d := dateOf(from); d.Before(until); d = d.AddDate(0, 0, 1) {
		if def.MatchesDate(d) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
