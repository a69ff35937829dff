// Package postgres provides a PostgreSQL-backed implementation of storage.Store
// using a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS departments (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    color TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS employees (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    department TEXT NOT NULL,
    owner_id TEXT
);

CREATE TABLE IF NOT EXISTS attendance (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL,
    employee_id TEXT NOT NULL,
    date TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('absent', 'present', 'present_with_dog')),
    owner_id TEXT,
    password TEXT,
    UNIQUE (employee_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);
`

type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL, checks the connection and applies the schema.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE attendance, employees, departments`)
	if err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	return nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, department, COALESCE(owner_id, '') FROM employees ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e := &models.Employee{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, department, COALESCE(owner_id, '') FROM employees WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Department, &e.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("employee %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e *models.Employee) error {
	if e.ID == "" {
		e.ID = storage.NewID()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO employees (id, name, department, owner_id) VALUES ($1, $2, $3, NULLIF($4, ''))`,
		e.ID, e.Name, e.Department, e.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE employees SET name = $1, department = $2, owner_id = NULLIF($3, '') WHERE id = $4`,
		e.Name, e.Department, e.OwnerID, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireAffected(tag, "employee", e.ID)
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employee: %w", err)
	}
	if err := requireAffected(tag, "employee", id); err != nil {
		return 0, err
	}

	tag, err = tx.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance for employee: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, color FROM departments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Color); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, d *models.Department) error {
	if d.ID == "" {
		d.ID = storage.NewID()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO departments (id, name, color) VALUES ($1, $2, $3)`, d.ID, d.Name, d.Color)
	if err != nil {
		return fmt.Errorf("failed to insert department: %w", err)
	}
	return nil
}

func (s *Store) UpdateDepartment(ctx context.Context, d *models.Department) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE departments SET name = $1, color = $2 WHERE id = $3`, d.Name, d.Color, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	return requireAffected(tag, "department", d.ID)
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return requireAffected(tag, "department", id)
}

func (s *Store) ListAttendance(ctx context.Context) ([]models.AttendanceEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, employee_id, date, status, COALESCE(owner_id, ''), COALESCE(password, '')
		 FROM attendance ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var out []models.AttendanceEntry
	for rows.Next() {
		var e models.AttendanceEntry
		var status string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &status, &e.OwnerID, &e.Password); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		e.Status = models.Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpsertAttendance(ctx context.Context, e *models.AttendanceEntry) error {
	if e.ID == "" {
		e.ID = storage.NewID()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO attendance (id, employee_id, date, status, owner_id, password)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		 ON CONFLICT (employee_id, date) DO UPDATE SET
		     id = EXCLUDED.id,
		     status = EXCLUDED.status,
		     owner_id = EXCLUDED.owner_id,
		     password = EXCLUDED.password`,
		e.ID, e.EmployeeID, e.Date, string(e.Status), e.OwnerID, e.Password,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteAttendance(ctx context.Context, key models.EntryKey) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM attendance WHERE employee_id = $1 AND date = $2`, key.EmployeeID, key.Date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int, error) {
	return s.deleteAttendance(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID)
}

func (s *Store) DeleteAttendanceBefore(ctx context.Context, cutoff string) (int, error) {
	return s.deleteAttendance(ctx, `DELETE FROM attendance WHERE date < $1`, cutoff)
}

func (s *Store) DeleteAttendanceExcept(ctx context.Context, employeeIDs []string) (int, error) {
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	// <> ALL of an empty array is true, so an empty set removes everything.
	return s.deleteAttendance(ctx, `DELETE FROM attendance WHERE employee_id <> ALL($1)`, employeeIDs)
}

func (s *Store) DeleteOrphanedAttendance(ctx context.Context) (int, error) {
	return s.deleteAttendance(ctx, `DELETE FROM attendance a WHERE NOT EXISTS (SELECT 1 FROM employees e WHERE e.id = a.employee_id)`)
}

func (s *Store) deleteAttendance(ctx context.Context, query string, args ...any) (int, error) {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func requireAffected(tag pgconn.CommandTag, kind, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
