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

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, slot_id, offering_id, party_size, guest_name, guest_email, guest_phone,
	amount_cents, currency, status, payment_status, payment_intent_id, walk_in,
	confirmed_at, confirmation_sent_at, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.SlotID, b.OfferingID, b.PartySize, b.Guest.Name, b.Guest.Email, b.Guest.Phone,
		b.AmountCents, b.Currency, b.Status, b.PaymentStatus, b.PaymentIntentID, b.WalkIn,
		b.ConfirmedAt, b.ConfirmationSentAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.SlotID, &b.OfferingID, &b.PartySize, &b.Guest.Name, &b.Guest.Email, &b.Guest.Phone,
		&b.AmountCents, &b.Currency, &b.Status, &b.PaymentStatus, &b.PaymentIntentID, &b.WalkIn,
		&b.ConfirmedAt, &b.ConfirmationSentAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *BookingRepository) GetByPaymentIntent(ctx context.Context, intentID string) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE payment_intent_id = $1`, intentID)
	return scanBooking(row)
}

func (r *BookingRepository) SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_intent_id = $2, updated_at = now() WHERE id = $1`, id, intentID)
	return err
}

func (r *BookingRepository) MarkConfirmed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
	UPDATE bookings
	SET status = 'CONFIRMED', payment_status = 'CAPTURED', confirmed_at = $2, updated_at = $2
	WHERE id = $1 AND status = 'PENDING' AND payment_status = 'PENDING'
	`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *BookingRepository) MarkConfirmationSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET confirmation_sent_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	return err
}

func (r *BookingRepository) Transition(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *BookingRepository) TransitionPayment(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $3, updated_at = now() WHERE id = $1 AND payment_status = $2`,
		id, from, to)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// CancelAndRelease flips the booking to its terminal statuses and returns
// its seats to the slot, both inside one transaction. The status guard on
// the booking UPDATE makes the whole operation re-entrant: a booking whose
// capacity was already released matches zero rows and nothing happens.
func (r *BookingRepository) CancelAndRelease(ctx context.Context, id uuid.UUID, status domain.BookingStatus, payStatus domain.PaymentStatus) (*ports.ReleasedCapacity, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	var slotID uuid.UUID
	var partySize int
	err = tx.QueryRowContext(ctx, `
	UPDATE bookings
	SET status = $2, payment_status = $3, updated_at = now()
	WHERE id = $1
	  AND status IN ('PENDING', 'CONFIRMED', 'CHECKED_IN')
	  AND payment_status NOT IN ('FAILED', 'EXPIRED')
	RETURNING slot_id, party_size
	`, id, status, payStatus).Scan(&slotID, &partySize)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotReleasable
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
		return nil, fmt.Errorf("failed to release capacity for booking %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancel of booking %s: %w", id, err)
	}

	return &rel, nil
}

func (r *BookingRepository) ListAbandoned(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE status = 'PENDING' AND payment_status = 'PENDING' AND created_at < $1
	ORDER BY created_at ASC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.SlotID, &b.OfferingID, &b.PartySize, &b.Guest.Name, &b.Guest.Email, &b.Guest.Phone,
			&b.AmountCents, &b.Currency, &b.Status, &b.PaymentStatus, &b.PaymentIntentID, &b.WalkIn,
			&b.ConfirmedAt, &b.ConfirmationSentAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}

		out = append(out, b)
	}

	return out, rows.Err()
}
