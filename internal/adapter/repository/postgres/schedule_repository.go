package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/recurrence"
)

type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, offering_id, weekdays, start_time, last_seating, interval_minutes,
	capacity_mode, max_per_slot, table_seats,
	rule_freq, rule_interval, rule_count, rule_until, rule_weekdays, rule_monthdays,
	active, last_generated, created_at, updated_at`

func (r *ScheduleRepository) Create(ctx context.Context, def *domain.ScheduleDefinition) error {
	mode, maxPerSlot, tableSeats := encodeCapacity(def.Capacity)
	freq, interval, count, until, ruleWeekdays, ruleMonthdays := encodeRule(def.Rule)

	query := `
	INSERT INTO schedule_definitions (` + scheduleColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		def.ID, def.OfferingID, pq.Array(weekdaysToInts(def.Weekdays)), def.StartTime, def.LastSeating, def.IntervalMinutes,
		mode, maxPerSlot, pq.Array(tableSeats),
		freq, interval, count, until, pq.Array(ruleWeekdays), pq.Array(ruleMonthdays),
		def.Active, def.LastGenerated, def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert schedule definition: %w", err)
	}

	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedule_definitions WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrScheduleNotFound
	}

	def, err := scanSchedule(rows)
	if err != nil {
		return nil, err
	}
	return def, rows.Err()
}

func (r *ScheduleRepository) ListActive(ctx context.Context) ([]domain.ScheduleDefinition, error) {
	return r.list(ctx, `SELECT `+scheduleColumns+` FROM schedule_definitions WHERE active ORDER BY created_at ASC`)
}

func (r *ScheduleRepository) ListActiveByOffering(ctx context.Context, offeringID uuid.UUID) ([]domain.ScheduleDefinition, error) {
	return r.list(ctx,
		`SELECT `+scheduleColumns+` FROM schedule_definitions WHERE active AND offering_id = $1 ORDER BY created_at ASC`,
		offeringID)
}

func (r *ScheduleRepository) list(ctx context.Context, query string, args ...any) ([]domain.ScheduleDefinition, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScheduleDefinition
	for rows.Next() {
		def, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *def)
	}

	return out, rows.Err()
}

func (r *ScheduleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schedule_definitions SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrScheduleNotFound
	}

	return nil
}

func (r *ScheduleRepository) SetLastGenerated(ctx context.Context, id uuid.UUID, watermark time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE schedule_definitions SET last_generated = $2, updated_at = now() WHERE id = $1`,
		id, watermark)
	return err
}

func scanSchedule(rows *sql.Rows) (*domain.ScheduleDefinition, error) {
	var def domain.ScheduleDefinition
	var weekdays, ruleWeekdays, ruleMonthdays pq.Int64Array
	var tableSeats pq.Int64Array
	var mode string
	var maxPerSlot int
	var ruleFreq sql.NullString
	var ruleInterval, ruleCount sql.NullInt64
	var ruleUntil sql.NullTime

	err := rows.Scan(
		&def.ID, &def.OfferingID, &weekdays, &def.StartTime, &def.LastSeating, &def.IntervalMinutes,
		&mode, &maxPerSlot, &tableSeats,
		&ruleFreq, &ruleInterval, &ruleCount, &ruleUntil, &ruleWeekdays, &ruleMonthdays,
		&def.Active, &def.LastGenerated, &def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	def.Weekdays = intsToWeekdays(weekdays)
	def.Capacity = decodeCapacity(mode, maxPerSlot, tableSeats)

	if ruleFreq.Valid {
		rule := recurrence.Rule{
			Freq:      recurrence.Frequency(ruleFreq.String),
			Interval:  int(ruleInterval.Int64),
			Count:     int(ruleCount.Int64),
			ByWeekday: intsToWeekdays(ruleWeekdays),
		}
		if ruleUntil.Valid {
			t := ruleUntil.Time
			rule.Until = &t
		}
		for _, d := range ruleMonthdays {
			rule.ByMonthDay = append(rule.ByMonthDay, int(d))
		}
		def.Rule = &rule
	}

	return &def, nil
}

func encodeCapacity(c domain.CapacityMode) (mode string, maxPerSlot int, tableSeats []int64) {
	switch v := c.(type) {
	case domain.TableCapacity:
		for _, s := range v.TableSeats {
			tableSeats = append(tableSeats, int64(s))
		}
		return "table", 0, tableSeats
	case domain.SimpleCapacity:
		return "simple", v.MaxPerSlot, nil
	default:
		return "simple", 0, nil
	}
}

func decodeCapacity(mode string, maxPerSlot int, tableSeats pq.Int64Array) domain.CapacityMode {
	if mode == "table" {
		seats := make([]int, 0, len(tableSeats))
		for _, s := range tableSeats {
			seats = append(seats, int(s))
		}
		return domain.TableCapacity{TableSeats: seats}
	}
	return domain.SimpleCapacity{MaxPerSlot: maxPerSlot}
}

func encodeRule(r *recurrence.Rule) (freq *string, interval, count *int, until *time.Time, weekdays, monthdays []int64) {
	if r == nil {
		return nil, nil, nil, nil, nil, nil
	}
	f := string(r.Freq)
	i := r.Interval
	c := r.Count
	for _, wd := range r.ByWeekday {
		weekdays = append(weekdays, int64(wd))
	}
	for _, md := range r.ByMonthDay {
		monthdays = append(monthdays, int64(md))
	}
	return &f, &i, &c, r.Until, weekdays, monthdays
}

func weekdaysToInts(days []time.Weekday) []int64 {
	out := make([]int64, 0, len(days))
	for _, d := range days {
		out = append(out, int64(d))
	}
	return out
}

func intsToWeekdays(in pq.Int64Array) []time.Weekday {
	var out []time.Weekday
	for _, d := range in {
		out = append(out, time.Weekday(d))
	}
	return out
}
