package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

// ListDepartments returns all departments in creation order.
func (s *SQLiteStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, color FROM departments ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Color); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return departments, nil
}

// CreateDepartment inserts a new department.
func (s *SQLiteStore) CreateDepartment(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = storage.NewID()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO departments (id, name, color) VALUES (?, ?, ?)",
		department.ID, department.Name, department.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to insert department: %w", err)
	}
	return nil
}

// UpdateDepartment replaces name and color of an existing department.
func (s *SQLiteStore) UpdateDepartment(ctx context.Context, department *models.Department) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE departments SET name = ?, color = ? WHERE id = ?",
		department.Name, department.Color, department.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	return requireAffected(res, "department", department.ID)
}

// DeleteDepartment removes a department. Employees keep their department name.
func (s *SQLiteStore) DeleteDepartment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM departments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return requireAffected(res, "department", id)
}
