package recurrence

import (
	"fmt"
	"sort"
	"time"
)

// Frequency is the base step unit of a recurrence rule.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

// Rule describes a recurring date pattern anchored at a series start date.
//
// Semantics:
//   - Freq/Interval step the series: every Interval days, weeks or months.
//   - Count, when > 0, caps the total number of occurrences counted from the
//     series start, not from the expansion window.
//   - Until, when set, is an inclusive upper bound on occurrence dates.
//   - ByWeekday filters (DAILY) or selects days within the week (WEEKLY).
//   - ByMonthDay selects days of month (MONTHLY); days absent from a month
//     (e.g. 31 in April) are skipped, not rolled over.
type Rule struct {
	Freq       Frequency
	Interval   int
	Count      int
	Until      *time.Time
	ByWeekday  []time.Weekday
	ByMonthDay []int
}

func (r Rule) Validate() error {
	switch r.Freq {
	case Daily, Weekly, Monthly:
	default:
		return fmt.Errorf("unknown frequency %q", r.Freq)
	}
	if r.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %d", r.Interval)
	}
	if r.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", r.Count)
	}
	for _, d := range r.ByMonthDay {
		if d < 1 || d > 31 {
			return fmt.Errorf("month day %d out of range", d)
		}
	}
	return nil
}

// hard cap on series iterations so a degenerate rule can never spin forever
const maxIterations = 10000

// Expand returns every occurrence date of the rule that falls inside
// [from, until). The series is anchored at start (time-of-day is discarded);
// occurrences before from are still consumed from the Count budget. A zero
// Interval is treated as 1.
func Expand(r Rule, start, from, until time.Time) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	interval := r.Interval
	if interval == 0 {
		interval = 1
	}

	start = dateOnly(start)
	from = dateOnly(from)
	until = dateOnly(until)

	bound := until
	if r.Until != nil {
		ruleUntil := dateOnly(*r.Until).AddDate(0, 0, 1) // inclusive bound
		if ruleUntil.Before(bound) {
			bound = ruleUntil
		}
	}

	var out []time.Time
	emitted := 0
	emit := func(d time.Time) bool {
		if !d.Before(bound) {
			return false
		}
		emitted++
		if !d.Before(from) {
			out = append(out, d)
		}
		if r.Count > 0 && emitted >= r.Count {
			return false
		}
		return true
	}

	switch r.Freq {
	case Daily:
		d := start
		for i := 0; i < maxIterations; i++ {
			if !d.Before(bound) {
				break
			}
			if matchesWeekday(d, r.ByWeekday) {
				if !emit(d) {
					break
				}
			}
			d = d.AddDate(0, 0, interval)
		}

	case Weekly:
		days := r.ByWeekday
		if len(days) == 0 {
			days = []time.Weekday{start.Weekday()}
		}
		week := startOfWeek(start)
		done := false
		for i := 0; i < maxIterations && !done; i++ {
			for off := 0; off < 7; off++ {
				d := week.AddDate(0, 0, off)
				if d.Before(start) || !matchesWeekday(d, days) {
					continue
				}
				if !d.Before(bound) {
					done = true
					break
				}
				if !emit(d) {
					done = true
					break
				}
			}
			week = week.AddDate(0, 0, 7*interval)
			if week.After(bound) {
				break
			}
		}

	case Monthly:
		monthDays := append([]int(nil), r.ByMonthDay...)
		sort.Ints(monthDays)
		if len(monthDays) == 0 {
			monthDays = []int{start.Day()}
		}
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		done := false
		for i := 0; i < maxIterations && !done; i++ {
			for _, md := range monthDays {
				d := time.Date(month.Year(), month.Month(), md, 0, 0, 0, 0, month.Location())
				if d.Month() != month.Month() {
					continue // day does not exist in this month
				}
				if d.Before(start) {
					continue
				}
				if !d.Before(bound) {
					done = true
					break
				}
				if !emit(d) {
					done = true
					break
				}
			}
			month = month.AddDate(0, interval, 0)
			if month.After(bound) {
				break
			}
		}
	}

	return out, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func matchesWeekday(d time.Time, days []time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, wd := range days {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}

func startOfWeek(t time.Time) time.Time {
	// weeks start on Monday
	off := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -off)
}
