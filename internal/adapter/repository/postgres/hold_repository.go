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

type HoldRepository struct {
	db *sql.DB
}

func NewHoldRepository(db *sql.DB) *HoldRepository {
	return &HoldRepository{db: db}
}

func (r *HoldRepository) Create(ctx context.Context, h *domain.Hold) error {
	query := `
	INSERT INTO holds (id, token, slot_id, offering_id, party_size, guest_email, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.Token, h.SlotID, h.OfferingID, h.PartySize, h.GuestEmail, h.ExpiresAt, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hold: %w", err)
	}

	return nil
}

func (r *HoldRepository) GetByToken(ctx context.Context, token string) (*domain.Hold, error) {
	query := `
	SELECT id, token, slot_id, offering_id, party_size, guest_email, expires_at, created_at
	FROM holds
	WHERE token = $1
	`

	var h domain.Hold
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&h.ID, &h.Token, &h.SlotID, &h.OfferingID, &h.PartySize, &h.GuestEmail, &h.ExpiresAt, &h.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrHoldNotFound
		}
		return nil, err
	}

	return &h, nil
}

func (r *HoldRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holds WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *HoldRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Hold, error) {
	query := `
	SELECT id, token, slot_id, offering_id, party_size, guest_email, expires_at, created_at
	FROM holds
	WHERE expires_at < $1
	ORDER BY expires_at ASC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []domain.Hold
	for rows.Next() {
		var h domain.Hold
		if err := rows.Scan(
			&h.ID, &h.Token, &h.SlotID, &h.OfferingID, &h.PartySize, &h.GuestEmail, &h.ExpiresAt, &h.CreatedAt,
		); err != nil {
			return nil, err
		}

		out = append(out, h)
	}

	return out, rows.Err()
}

// DeleteAndRelease removes the hold and returns its seats in one
// transaction. The DELETE doubles as the idempotency guard: a concurrent
// sweep that already deleted the row gets zero rows and releases nothing.
func (r *HoldRepository) DeleteAndRelease(ctx context.Context, id uuid.UUID) (*ports.ReleasedCapacity, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	var slotID uuid.UUID
	var partySize int
	err = tx.QueryRowContext(ctx,
		`DELETE FROM holds WHERE id = $1 RETURNING slot_id, party_size`, id,
	).Scan(&slotID, &partySize)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrHoldNotFound
		}
		return nil, err
	}

	rel := ports.ReleasedCapacity{SlotID: slotID, PartySize: partySize}
	err = tx.QueryRowContext(ctx, `
	UPDATE slot_instances
	SET remaining_capacity = LEAST(total_capacity, remaining_capacity + $2),
		status = CASE WHEN status = 'FULL' THEN 'AVAILABLE' ELSE status END
	WHERE id = $1
	RETURNING offering_id, date, remaining_capacity
	`, slotID, partySize).Scan(&rel.OfferingID, &rel.Date, &rel.Remaining)
	if err != nil {
		return nil, fmt.Errorf("failed to release capacity for hold %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit hold cleanup %s: %w", id, err)
	}

	return &rel, nil
}
