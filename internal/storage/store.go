// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/officeplan/internal/models"
)

// ErrNotFound is returned when a record addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

// EmployeeStore persists employees.
type EmployeeStore interface {
	// ListEmployees returns all employees in creation order.
	ListEmployees(ctx context.Context) ([]models.Employee, error)

	// GetEmployee returns ErrNotFound if the employee does not exist.
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)

	// CreateEmployee persists a new employee.
	// The employee.ID field is populated by the store when empty.
	CreateEmployee(ctx context.Context, employee *models.Employee) error

	// UpdateEmployee replaces name, department and owner.
	// Returns ErrNotFound if the employee does not exist.
	UpdateEmployee(ctx context.Context, employee *models.Employee) error

	// DeleteEmployee removes the employee and, in the same transaction, every
	// attendance entry referencing it. Returns the number of entries removed.
	DeleteEmployee(ctx context.Context, id string) (int, error)
}

// DepartmentStore persists department reference data.
type DepartmentStore interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	CreateDepartment(ctx context.Context, department *models.Department) error
	UpdateDepartment(ctx context.Context, department *models.Department) error
	DeleteDepartment(ctx context.Context, id string) error
}

// AttendanceStore persists attendance entries keyed by (employee, date).
type AttendanceStore interface {
	// ListAttendance returns all entries in insertion order. Replacing an
	// entry keeps its position.
	ListAttendance(ctx context.Context) ([]models.AttendanceEntry, error)

	// UpsertAttendance replaces the entry with the same (employee, date) or
	// appends a new one. entry.ID is populated by the store when empty.
	UpsertAttendance(ctx context.Context, entry *models.AttendanceEntry) error

	// DeleteAttendance removes one entry. Deleting a missing entry is not an error.
	DeleteAttendance(ctx context.Context, key models.EntryKey) error

	// DeleteAttendanceByEmployee removes every entry of one employee.
	DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int, error)

	// DeleteAttendanceBefore removes entries dated strictly before cutoff (yyyy-mm-dd).
	DeleteAttendanceBefore(ctx context.Context, cutoff string) (int, error)

	// DeleteAttendanceExcept removes entries whose employee is not in employeeIDs.
	DeleteAttendanceExcept(ctx context.Context, employeeIDs []string) (int, error)

	// DeleteOrphanedAttendance removes entries whose employee no longer
	// exists, checked against the employees table in the same statement.
	DeleteOrphanedAttendance(ctx context.Context) (int, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	EmployeeStore
	DepartmentStore
	AttendanceStore

	// Reset removes all data.
	Reset(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
