package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/recurrence"
)

// CapacityMode decides how many seats a generated slot starts with.
type CapacityMode interface {
	PerSlot() int
}

// SimpleCapacity is a flat per-slot seat count.
type SimpleCapacity struct {
	MaxPerSlot int
}

func (c SimpleCapacity) PerSlot() int { return c.MaxPerSlot }

// TableCapacity derives per-slot capacity from the seats of the tables
// assigned to the service period.
type TableCapacity struct {
	TableSeats []int
}

func (c TableCapacity) PerSlot() int {
	total := 0
	for _, s := range c.TableSeats {
		total += s
	}
	return total
}

// ScheduleDefinition is a recurring availability template: when slots should
// exist for an offering and how many seats each one carries.
//
// Weekdays is the simple weekly mask; Rule, when set, takes precedence and
// expands non-weekly patterns. Definitions are soft-deactivated, never
// deleted, because historical slots reference them.
type ScheduleDefinition struct {
	ID              uuid.UUID
	OfferingID      uuid.UUID
	Weekdays        []time.Weekday
	Rule            *recurrence.Rule
	StartTime       string // "17:00"
	LastSeating     string // "21:30", inclusive last slot start
	IntervalMinutes int
	Capacity        CapacityMode
	Active          bool
	LastGenerated   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (d ScheduleDefinition) Validate() error {
	start, err := ParseClock(d.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	last, err := ParseClock(d.LastSeating)
	if err != nil {
		return fmt.Errorf("last_seating: %w", err)
	}
	if !start.Before(last) && start != last {
		return fmt.Errorf("start_time %s must not be after last_seating %s", d.StartTime, d.LastSeating)
	}
	if d.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive, got %d", d.IntervalMinutes)
	}
	if d.Capacity == nil || d.Capacity.PerSlot() < 0 {
		return fmt.Errorf("capacity must be set and non-negative")
	}
	if len(d.Weekdays) == 0 && d.Rule == nil {
		return fmt.Errorf("either weekdays or a recurrence rule is required")
	}
	if d.Rule != nil {
		if err := d.Rule.Validate(); err != nil {
			return fmt.Errorf("recurrence rule: %w", err)
		}
	}
	return nil
}

// MatchesDate reports whether the weekly mask covers the given date. Rule
// based definitions are expanded elsewhere.
func (d ScheduleDefinition) MatchesDate(date time.Time) bool {
	for _, wd := range d.Weekdays {
		if date.Weekday() == wd {
			return true
		}
	}
	return false
}

// Clock is a time of day in minutes from midnight.
type Clock int

func (c Clock) Before(o Clock) bool { return c < o }

func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(c)/60, int(c)%60, 0, 0, date.Location())
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}
