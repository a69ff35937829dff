package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

// ListAttendance returns all attendance entries in insertion order.
func (s *SQLiteStore) ListAttendance(ctx context.Context) ([]models.AttendanceEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, employee_id, date, status, owner_id, password FROM attendance ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var entries []models.AttendanceEntry
	for rows.Next() {
		var e models.AttendanceEntry
		var status string
		var owner, password sql.NullString
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &status, &owner, &password); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		e.Status = models.Status(status)
		e.OwnerID = owner.String
		e.Password = password.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return entries, nil
}

// UpsertAttendance inserts the entry or replaces the one with the same
// (employee_id, date) in place.
func (s *SQLiteStore) UpsertAttendance(ctx context.Context, entry *models.AttendanceEntry) error {
	if entry.ID == "" {
		entry.ID = storage.NewID()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (id, employee_id, date, status, owner_id, password)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (employee_id, date) DO UPDATE SET
		     id = excluded.id,
		     status = excluded.status,
		     owner_id = excluded.owner_id,
		     password = excluded.password`,
		entry.ID, entry.EmployeeID, entry.Date, string(entry.Status),
		nullable(entry.OwnerID), nullable(entry.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance entry: %w", err)
	}
	return nil
}

// DeleteAttendance removes the entry for one (employee, date).
func (s *SQLiteStore) DeleteAttendance(ctx context.Context, key models.EntryKey) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM attendance WHERE employee_id = ? AND date = ?",
		key.EmployeeID, key.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete attendance entry: %w", err)
	}
	return nil
}

// DeleteAttendanceByEmployee removes every entry of one employee.
func (s *SQLiteStore) DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int, error) {
	return s.deleteAttendance(ctx, "DELETE FROM attendance WHERE employee_id = ?", employeeID)
}

// DeleteAttendanceBefore removes entries dated strictly before cutoff.
func (s *SQLiteStore) DeleteAttendanceBefore(ctx context.Context, cutoff string) (int, error) {
	return s.deleteAttendance(ctx, "DELETE FROM attendance WHERE date < ?", cutoff)
}

// DeleteAttendanceExcept removes entries of employees not in employeeIDs.
func (s *SQLiteStore) DeleteAttendanceExcept(ctx context.Context, employeeIDs []string) (int, error) {
	if len(employeeIDs) == 0 {
		return s.deleteAttendance(ctx, "DELETE FROM attendance")
	}

	args := make([]interface{}, len(employeeIDs))
	for i, id := range employeeIDs {
		args[i] = id
	}
	query := "DELETE FROM attendance WHERE employee_id NOT IN (" + placeholders(len(employeeIDs)) + ")"
	return s.deleteAttendance(ctx, query, args...)
}

// DeleteOrphanedAttendance removes entries of employees that no longer exist.
func (s *SQLiteStore) DeleteOrphanedAttendance(ctx context.Context) (int, error) {
	return s.deleteAttendance(ctx, "DELETE FROM attendance WHERE employee_id NOT IN (SELECT id FROM employees)")
}

func (s *SQLiteStore) deleteAttendance(ctx context.Context, query string, args ...interface{}) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted attendance: %w", err)
	}
	return int(n), nil
}
