package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines booking settings data access
type Repository interface {
	Get(ctx context.Context) (*BookingSettings, error)
	Save(ctx context.Context, s *BookingSettings) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates the settings repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Get returns the singleton settings row, falling back to the defaults when
// the salon has never saved its own.
func (r *repository) Get(ctx context.Context) (*BookingSettings, error) {
	var s BookingSettings
	query := `SELECT id, visible_weekdays, day_start, day_end, slot_minutes, cancellation_policy, updated_at
	          FROM booking_settings WHERE id = 1`

	if err := r.db.GetContext(ctx, &s, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Default(), nil
		}
		return nil, err
	}
	return &s, nil
}

// Save upserts the singleton row
func (r *repository) Save(ctx context.Context, s *BookingSettings) error {
	query := `INSERT INTO booking_settings (id, visible_weekdays, day_start, day_end, slot_minutes, cancellation_policy, updated_at)
	          VALUES (1, $1, $2, $3, $4, $5, NOW())
	          ON CONFLICT (id) DO UPDATE SET
	              visible_weekdays = EXCLUDED.visible_weekdays,
	              day_start = EXCLUDED.day_start,
	              day_end = EXCLUDED.day_end,
	              slot_minutes = EXCLUDED.slot_minutes,
	              cancellation_policy = EXCLUDED.cancellation_policy,
	              updated_at = NOW()
	          RETURNING id, updated_at`

	return r.db.QueryRowContext(ctx, query,
		s.VisibleWeekdays, s.DayStart, s.DayEnd, s.SlotMinutes, s.CancellationPolicy,
	).Scan(&s.ID, &s.UpdatedAt)
}
