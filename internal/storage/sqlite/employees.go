package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

// ListEmployees returns all employees in creation order.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, department, owner_id FROM employees ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		var owner sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &owner); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.OwnerID = owner.String
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetEmployee retrieves an employee by ID.
func (s *SQLiteStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e := &models.Employee{}
	var owner sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, department, owner_id FROM employees WHERE id = ?",
		id,
	).Scan(&e.ID, &e.Name, &e.Department, &owner)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("employee %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	e.OwnerID = owner.String
	return e, nil
}

// CreateEmployee inserts a new employee.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = storage.NewID()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (id, name, department, owner_id) VALUES (?, ?, ?, ?)",
		employee.ID, employee.Name, employee.Department, nullable(employee.OwnerID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// UpdateEmployee replaces the mutable fields of an existing employee.
func (s *SQLiteStore) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE employees SET name = ?, department = ?, owner_id = ? WHERE id = ?",
		employee.Name, employee.Department, nullable(employee.OwnerID), employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireAffected(res, "employee", employee.ID)
}

// DeleteEmployee removes an employee and all of its attendance entries.
func (s *SQLiteStore) DeleteEmployee(ctx context.Context, id string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employee: %w", err)
	}
	if err := requireAffected(res, "employee", id); err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM attendance WHERE employee_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance for employee: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(removed), nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
