package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/ports"
)

type SlotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.SlotInstance) error {
	query := `
	INSERT INTO slot_instances (id, offering_id, schedule_id, date, start_at, end_at, total_capacity, remaining_capacity, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		slot.ID, slot.OfferingID, slot.ScheduleID, slot.Date, slot.StartAt, slot.EndAt,
		slot.TotalCapacity, slot.RemainingCapacity, slot.Status, slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert slot instance: %w", err)
	}

	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotInstance, error) {
	query := `
	SELECT id, offering_id, schedule_id, date, start_at, end_at, total_capacity, remaining_capacity, status, created_at
	FROM slot_instances
	WHERE id = $1
	`

	var s domain.SlotInstance
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.OfferingID, &s.ScheduleID, &s.Date, &s.StartAt, &s.EndAt,
		&s.TotalCapacity, &s.RemainingCapacity, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *SlotRepository) ExistsByStart(ctx context.Context, offeringID uuid.UUID, startAt time.Time) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM slot_instances
		WHERE offering_id = $1 AND start_at = $2
	)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, offeringID, startAt).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *SlotRepository) ListByOfferingDate(ctx context.Context, offeringID uuid.UUID, date time.Time) ([]domain.SlotInstance, error) {
	query := `
	SELECT id, offering_id, schedule_id, date, start_at, end_at, total_capacity, remaining_capacity, status, created_at
	FROM slot_instances
	WHERE offering_id = $1 AND date = $2 AND status <> 'CANCELLED'
	ORDER BY start_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, offeringID, date)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var slots []domain.SlotInstance
	for rows.Next() {
		var s domain.SlotInstance
		if err := rows.Scan(
			&s.ID, &s.OfferingID, &s.ScheduleID, &s.Date, &s.StartAt, &s.EndAt,
			&s.TotalCapacity, &s.RemainingCapacity, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, err
		}

		slots = append(slots, s)
	}

	return slots, rows.Err()
}

// Reserve is the decrement half of the capacity ledger: one conditional
// UPDATE, serialized per slot by the row lock the UPDATE takes. The guard
// `remaining_capacity >= party` makes overbooking impossible no matter how
// many callers race.
func (r *SlotRepository) Reserve(ctx context.Context, slotID uuid.UUID, partySize int) (int, error) {
	query := `
	UPDATE slot_instances
	SET remaining_capacity = remaining_capacity - $2,
		status = CASE WHEN remaining_capacity - $2 = 0 THEN 'FULL' ELSE status END
	WHERE id = $1 AND status = 'AVAILABLE' AND remaining_capacity >= $2
	RETURNING remaining_capacity
	`

	var remaining int
	err := r.db.QueryRowContext(ctx, query, slotID, partySize).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	// No row matched: tell the caller whether the slot is full or missing.
	var exists bool
	checkErr := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM slot_instances WHERE id = $1 AND status <> 'CANCELLED')`,
		slotID,
	).Scan(&exists)
	if checkErr != nil {
		return 0, checkErr
	}
	if exists {
		return 0, domain.ErrInsufficientCapacity
	}

	return 0, domain.ErrSlotNotFound
}

// Release is the increment half of the ledger. The LEAST clamp is the
// defensive invariant against double-release bugs: remaining can never
// exceed total.
func (r *SlotRepository) Release(ctx context.Context, slotID uuid.UUID, partySize int) (*ports.ReleasedCapacity, error) {
	query := `
	UPDATE slot_instances
	SET remaining_capacity = LEAST(total_capacity, remaining_capacity + $2),
		status = CASE WHEN status = 'FULL' THEN 'AVAILABLE' ELSE status END
	WHERE id = $1
	RETURNING offering_id, date, remaining_capacity
	`

	rel := ports.ReleasedCapacity{SlotID: slotID, PartySize: partySize}
	err := r.db.QueryRowContext(ctx, query, slotID, partySize).Scan(&rel.OfferingID, &rel.Date, &rel.Remaining)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	return &rel, nil
}

func (r *SlotRepository) Cancel(ctx context.Context, slotID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE slot_instances SET status = 'CANCELLED' WHERE id = $1`, slotID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSlotNotFound
	}

	return nil
}
