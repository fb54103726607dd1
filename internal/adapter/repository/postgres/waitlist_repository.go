package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dineflow/dineflow/internal/core/domain"
)

type WaitlistRepository struct {
	db *sql.DB
}

func NewWaitlistRepository(db *sql.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

const waitlistColumns = `id, offering_id, slot_id, party_size, guest_name, guest_email, guest_phone,
	status, priority, notified_at, expires_at, created_at`

// Create relies on a partial unique index on (slot_id, guest_email) WHERE
// status = 'ACTIVE' to enforce one active entry per guest per slot.
func (r *WaitlistRepository) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	query := `
	INSERT INTO waitlist_entries (` + waitlistColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OfferingID, e.SlotID, e.PartySize, e.Guest.Name, e.Guest.Email, e.Guest.Phone,
		e.Status, e.Priority, e.NotifiedAt, e.ExpiresAt, e.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrWaitlistDuplicate
		}
		return fmt.Errorf("failed to insert waitlist entry: %w", err)
	}

	return nil
}

func scanWaitlistEntry(scan func(dest ...any) error) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry
	err := scan(
		&e.ID, &e.OfferingID, &e.SlotID, &e.PartySize, &e.Guest.Name, &e.Guest.Email, &e.Guest.Phone,
		&e.Status, &e.Priority, &e.NotifiedAt, &e.ExpiresAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *WaitlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist_entries WHERE id = $1`, id)
	e, err := scanWaitlistEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrWaitlistNotFound
	}
	return e, err
}

func (r *WaitlistRepository) ListActiveBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.WaitlistEntry, error) {
	query := `
	SELECT ` + waitlistColumns + `
	FROM waitlist_entries
	WHERE slot_id = $1 AND status = 'ACTIVE'
	ORDER BY priority DESC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, slotID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []domain.WaitlistEntry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}

	return out, rows.Err()
}

func (r *WaitlistRepository) MarkNotified(ctx context.Context, id uuid.UUID, notifiedAt, expiresAt time.Time) (bool, error) {
	return r.flip(ctx,
		`UPDATE waitlist_entries SET status = 'NOTIFIED', notified_at = $2, expires_at = $3
		 WHERE id = $1 AND status = 'ACTIVE'`,
		id, notifiedAt, expiresAt)
}

func (r *WaitlistRepository) MarkConverted(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.flip(ctx,
		`UPDATE waitlist_entries SET status = 'CONVERTED' WHERE id = $1 AND status = 'NOTIFIED'`, id)
}

func (r *WaitlistRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.flip(ctx,
		`UPDATE waitlist_entries SET status = 'EXPIRED' WHERE id = $1 AND status = 'NOTIFIED'`, id)
}

func (r *WaitlistRepository) flip(ctx context.Context, query string, args ...any) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *WaitlistRepository) FindNotifiedByGuest(ctx context.Context, slotID uuid.UUID, guestEmail string) (*domain.WaitlistEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+waitlistColumns+` FROM waitlist_entries
		 WHERE slot_id = $1 AND guest_email = $2 AND status = 'NOTIFIED'
		 ORDER BY notified_at DESC LIMIT 1`,
		slotID, guestEmail)

	e, err := scanWaitlistEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *WaitlistRepository) ListExpiredNotified(ctx context.Context, now time.Time, limit int) ([]domain.WaitlistEntry, error) {
	query := `
	SELECT ` + waitlistColumns + `
	FROM waitlist_entries
	WHERE status = 'NOTIFIED' AND expires_at < $1
	ORDER BY expires_at ASC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []domain.WaitlistEntry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}

	return out, rows.Err()
}
