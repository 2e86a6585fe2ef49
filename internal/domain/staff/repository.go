package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines staff directory data access
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]*Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates the staff repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const memberColumns = `id, name, role, email, phone, active, weekly_schedule, created_at`

func (r *repository) List(ctx context.Context, activeOnly bool) ([]*Member, error) {
	var members []*Member
	query := `SELECT ` + memberColumns + ` FROM staff_members`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	var m Member
	query := `SELECT ` + memberColumns + ` FROM staff_members WHERE id = $1`
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	query := `INSERT INTO staff_members (name, role, email, phone, active, weekly_schedule)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, m.Name, m.Role, m.Email, m.Phone, m.Active, m.WeeklySchedule).
		Scan(&m.ID, &m.CreatedAt)
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `UPDATE staff_members
	          SET name = $2, role = $3, email = $4, phone = $5, active = $6, weekly_schedule = $7
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Role, m.Email, m.Phone, m.Active, m.WeeklySchedule)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete removes a member with no booking history. Members who already have
// bookings keep their history and are deactivated instead.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrMemberHasBookings
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}
