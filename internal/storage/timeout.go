package storage

import (
	"context"
	"time"

	"github.com/mmynk/officeplan/internal/models"
)

// WithTimeout bounds every call to store by d. Retrying is left to callers.
func WithTimeout(store Store, d time.Duration) Store {
	if d <= 0 {
		return store
	}
	return &timeoutStore{next: store, d: d}
}

type timeoutStore struct {
	next Store
	d    time.Duration
}

var _ Store = (*timeoutStore)(nil)

func (s *timeoutStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.ListEmployees(ctx)
}

func (s *timeoutStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.GetEmployee(ctx, id)
}

func (s *timeoutStore) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.CreateEmployee(ctx, employee)
}

func (s *timeoutStore) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.UpdateEmployee(ctx, employee)
}

func (s *timeoutStore) DeleteEmployee(ctx context.Context, id string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteEmployee(ctx, id)
}

func (s *timeoutStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.ListDepartments(ctx)
}

func (s *timeoutStore) CreateDepartment(ctx context.Context, department *models.Department) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.CreateDepartment(ctx, department)
}

func (s *timeoutStore) UpdateDepartment(ctx context.Context, department *models.Department) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.UpdateDepartment(ctx, department)
}

func (s *timeoutStore) DeleteDepartment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteDepartment(ctx, id)
}

func (s *timeoutStore) ListAttendance(ctx context.Context) ([]models.AttendanceEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.ListAttendance(ctx)
}

func (s *timeoutStore) UpsertAttendance(ctx context.Context, entry *models.AttendanceEntry) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.UpsertAttendance(ctx, entry)
}

func (s *timeoutStore) DeleteAttendance(ctx context.Context, key models.EntryKey) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteAttendance(ctx, key)
}

func (s *timeoutStore) DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteAttendanceByEmployee(ctx, employeeID)
}

func (s *timeoutStore) DeleteAttendanceBefore(ctx context.Context, cutoff string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteAttendanceBefore(ctx, cutoff)
}

func (s *timeoutStore) DeleteAttendanceExcept(ctx context.Context, employeeIDs []string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteAttendanceExcept(ctx, employeeIDs)
}

func (s *timeoutStore) DeleteOrphanedAttendance(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.DeleteOrphanedAttendance(ctx)
}

func (s *timeoutStore) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.d)
	defer cancel()
	return s.next.Reset(ctx)
}

func (s *timeoutStore) Close() error {
	return s.next.Close()
}
