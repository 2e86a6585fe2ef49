package schedule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/glowdesk/glowdesk-api/internal/pkg/timegrid"
)

// WorkdayRepository defines workday data access
type WorkdayRepository interface {
	ListByStaffRange(ctx context.Context, staffID int64, from, to timegrid.Date) ([]*Workday, error)
	GetByStaffDate(ctx context.Context, staffID int64, date timegrid.Date) (*Workday, error)
	Create(ctx context.Context, w *Workday) error
	Update(ctx context.Context, w *Workday) error
	DeleteByStaffDate(ctx context.Context, staffID int64, date timegrid.Date) error
}

// EntryRepository defines booking/break data access
type EntryRepository interface {
	ListByStaffRange(ctx context.Context, staffID int64, from, to timegrid.Date, includeCanceled bool) ([]*Entry, error)
	GetByID(ctx context.Context, id int64) (*Entry, error)
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	SetCanceled(ctx context.Context, id int64, canceled bool) error
	Delete(ctx context.Context, id int64) error
}

type workdayRepository struct {
	db *sqlx.DB
}

// NewWorkdayRepository creates the workday repository
func NewWorkdayRepository(db *sqlx.DB) WorkdayRepository {
	return &workdayRepository{db: db}
}

const workdayColumns = `id, staff_id, date, start_time, end_time, created_at`

func (r *workdayRepository) ListByStaffRange(ctx context.Context, staffID int64, from, to timegrid.Date) ([]*Workday, error) {
	var workdays []*Workday
	query := `SELECT ` + workdayColumns + ` FROM workdays
	          WHERE staff_id = $1 AND date BETWEEN $2 AND $3
	          ORDER BY date`
	if err := r.db.SelectContext(ctx, &workdays, query, staffID, from, to); err != nil {
		return nil, err
	}
	return workdays, nil
}

func (r *workdayRepository) GetByStaffDate(ctx context.Context, staffID int64, date timegrid.Date) (*Workday, error) {
	var w Workday
	query := `SELECT ` + workdayColumns + ` FROM workdays WHERE staff_id = $1 AND date = $2`
	if err := r.db.GetContext(ctx, &w, query, staffID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkdayNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *workdayRepository) Create(ctx context.Context, w *Workday) error {
	query := `INSERT INTO workdays (staff_id, date, start_time, end_time)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, w.StaffID, w.Date, w.Start, w.End).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		// The unique (staff_id, date) index backs the local duplicate guard
		// against racing sessions
		return ErrWorkdayExists
	}
	return err
}

func (r *workdayRepository) Update(ctx context.Context, w *Workday) error {
	query := `UPDATE workdays SET start_time = $2, end_time = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, w.ID, w.Start, w.End)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrWorkdayNotFound
	}
	return nil
}

// DeleteByStaffDate removes the single workday for (staff, date). Bookings on
// that date are deliberately left intact: removing a workday does not cascade.
func (r *workdayRepository) DeleteByStaffDate(ctx context.Context, staffID int64, date timegrid.Date) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workdays WHERE staff_id = $1 AND date = $2`, staffID, date)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrWorkdayNotFound
	}
	return nil
}

type entryRepository struct {
	db *sqlx.DB
}

// NewEntryRepository creates the booking/break repository
func NewEntryRepository(db *sqlx.DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, kind, staff_id, date, start_time, end_time, duration_minutes,
	category_id, service_id, extra_service_ids, price,
	guest_name, guest_email, guest_phone, observations, reason,
	canceled, created_at`

func (r *entryRepository) ListByStaffRange(ctx context.Context, staffID int64, from, to timegrid.Date, includeCanceled bool) ([]*Entry, error) {
	var entries []*Entry
	query := `SELECT ` + entryColumns + ` FROM calendar_entries
	          WHERE staff_id = $1 AND date BETWEEN $2 AND $3`
	if !includeCanceled {
		query += ` AND NOT canceled`
	}
	query += ` ORDER BY date, start_time`

	if err := r.db.SelectContext(ctx, &entries, query, staffID, from, to); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) GetByID(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	query := `SELECT ` + entryColumns + ` FROM calendar_entries WHERE id = $1`
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *entryRepository) Create(ctx context.Context, e *Entry) error {
	query := `INSERT INTO calendar_entries (
	              kind, staff_id, date, start_time, end_time, duration_minutes,
	              category_id, service_id, extra_service_ids, price,
	              guest_name, guest_email, guest_phone, observations, reason, canceled
	          ) VALUES (
	              $1, $2, $3, $4, $5, $6,
	              $7, $8, $9, $10,
	              $11, $12, $13, $14, $15, $16
	          )
	          RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		e.Kind, e.StaffID, e.Date, e.Start, e.End, e.DurationMinutes,
		e.CategoryID, e.ServiceID, e.ExtraServiceIDs, e.Price,
		e.GuestName, e.GuestEmail, e.GuestPhone, e.Observations, e.Reason, e.Canceled,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *entryRepository) Update(ctx context.Context, e *Entry) error {
	query := `UPDATE calendar_entries SET
	              staff_id = $2, date = $3, start_time = $4, end_time = $5, duration_minutes = $6,
	              category_id = $7, service_id = $8, extra_service_ids = $9, price = $10,
	              guest_name = $11, guest_email = $12, guest_phone = $13, observations = $14, reason = $15
	          WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		e.ID, e.StaffID, e.Date, e.Start, e.End, e.DurationMinutes,
		e.CategoryID, e.ServiceID, e.ExtraServiceIDs, e.Price,
		e.GuestName, e.GuestEmail, e.GuestPhone, e.Observations, e.Reason,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// SetCanceled flips the canceled flag. Canceled entries stay queryable for
// the booking-history view; they only drop out of the active projection.
func (r *entryRepository) SetCanceled(ctx context.Context, id int64, canceled bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE calendar_entries SET canceled = $2 WHERE id = $1`, id, canceled)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete is the hard removal used for administrative correction
func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
