package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines catalog data access
type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListServices(ctx context.Context, categoryID *int64) ([]*Service, error)
	GetService(ctx context.Context, id int64) (*Service, error)
	CreateService(ctx context.Context, s *Service) error
	UpdateService(ctx context.Context, s *Service) error
	DeleteService(ctx context.Context, id int64) error

	ListExtraServices(ctx context.Context) ([]*ExtraService, error)
	CreateExtraService(ctx context.Context, e *ExtraService) error
	UpdateExtraService(ctx context.Context, e *ExtraService) error
	DeleteExtraService(ctx context.Context, id int64) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates the catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// --- Categories ---

func (r *repository) ListCategories(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	query := `SELECT id, name, position, created_at FROM categories ORDER BY position, name`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	query := `INSERT INTO categories (name, position) VALUES ($1, $2) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Position).Scan(&c.ID, &c.CreatedAt)
}

func (r *repository) UpdateCategory(ctx context.Context, c *Category) error {
	query := `UPDATE categories SET name = $2, position = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Position)
	if err != nil {
		return err
	}
	return requireRow(result, ErrCategoryNotFound)
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	return requireRow(result, ErrCategoryNotFound)
}

// --- Services ---

func (r *repository) ListServices(ctx context.Context, categoryID *int64) ([]*Service, error) {
	var services []*Service
	query := `SELECT id, category_id, name, duration_minutes, price, active, created_at
	          FROM services`
	args := []interface{}{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name`

	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repository) GetService(ctx context.Context, id int64) (*Service, error) {
	var s Service
	query := `SELECT id, category_id, name, duration_minutes, price, active, created_at
	          FROM services WHERE id = $1`
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) CreateService(ctx context.Context, s *Service) error {
	query := `INSERT INTO services (category_id, name, duration_minutes, price, active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, s.CategoryID, s.Name, s.DurationMinutes, s.Price, s.Active).
		Scan(&s.ID, &s.CreatedAt)
}

func (r *repository) UpdateService(ctx context.Context, s *Service) error {
	query := `UPDATE services SET category_id = $2, name = $3, duration_minutes = $4, price = $5, active = $6
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, s.ID, s.CategoryID, s.Name, s.DurationMinutes, s.Price, s.Active)
	if err != nil {
		return err
	}
	return requireRow(result, ErrServiceNotFound)
}

func (r *repository) DeleteService(ctx context.Context, id int64) error {
	query := `DELETE FROM services WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrServiceInUse
		}
		return err
	}
	return requireRow(result, ErrServiceNotFound)
}

// --- Extra services ---

func (r *repository) ListExtraServices(ctx context.Context) ([]*ExtraService, error) {
	var extras []*ExtraService
	query := `SELECT id, name, duration_minutes, price, active, created_at
	          FROM extra_services ORDER BY name`
	if err := r.db.SelectContext(ctx, &extras, query); err != nil {
		return nil, err
	}
	return extras, nil
}

func (r *repository) CreateExtraService(ctx context.Context, e *ExtraService) error {
	query := `INSERT INTO extra_services (name, duration_minutes, price, active)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, e.Name, e.DurationMinutes, e.Price, e.Active).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *repository) UpdateExtraService(ctx context.Context, e *ExtraService) error {
	query := `UPDATE extra_services SET name = $2, duration_minutes = $3, price = $4, active = $5
	          WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.DurationMinutes, e.Price, e.Active)
	if err != nil {
		return err
	}
	return requireRow(result, ErrExtraServiceNotFound)
}

// DeleteExtraService removes an extra service. Bookings keep the id in their
// selection list; the duration aggregator drops ids that no longer resolve.
func (r *repository) DeleteExtraService(ctx context.Context, id int64) error {
	query := `DELETE FROM extra_services WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrExtraServiceNotFound)
}

// --- helpers ---

func requireRow(result sql.Result, notFound error) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound
	}
	return nil
}

// isForeignKeyViolation reports whether err is a Postgres referential
// integrity violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}
