// Package ledger is the authoritative collection of attendance entries.
//
// It sits on top of a storage.Store and adds the domain rules the store does
// not know about: entries are identified by (employee, date), entries older
// than the retention window are purged on every read, and entries of deleted
// employees are swept away. Every storage failure is reported as
// ErrPersistence so callers can tell it apart from authorization outcomes.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/officeplan/internal/metrics"
	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

// ErrPersistence marks a failed read or write of the underlying store. Nothing
// was applied when it is returned.
var ErrPersistence = errors.New("persistence failure")

// RetentionWeeks is how many full weeks before the current one are kept.
const RetentionWeeks = 1

type Ledger struct {
	store storage.Store
	now   func() time.Time
}

type Option func(*Ledger)

// WithClock replaces time.Now as the reference for retention sweeps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the ledger's reference time.
func (l *Ledger) Now() time.Time {
	return l.now()
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// Upsert replaces the entry with the same (employee, date) in place or appends
// it. Repeating an upsert leaves the ledger unchanged.
func (l *Ledger) Upsert(ctx context.Context, entry models.AttendanceEntry) (models.AttendanceEntry, error) {
	if _, err := models.ParseStatus(string(entry.Status)); err != nil {
		return models.AttendanceEntry{}, err
	}
	if err := l.store.UpsertAttendance(ctx, &entry); err != nil {
		return models.AttendanceEntry{}, persistence("upsert", err)
	}
	return entry, nil
}

// ListAll returns every entry in insertion order after purging expired ones.
// A failed purge is logged and does not fail the read.
func (l *Ledger) ListAll(ctx context.Context) ([]models.AttendanceEntry, error) {
	if _, err := l.SweepRetention(ctx, l.now()); err != nil {
		slog.Warn("Retention sweep failed", "error", err)
	}
	entries, err := l.store.ListAttendance(ctx)
	if err != nil {
		return nil, persistence("list", err)
	}
	return entries, nil
}

// ForDate returns the entries of one date.
func (l *Ledger) ForDate(ctx context.Context, date string) ([]models.AttendanceEntry, error) {
	entries, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.AttendanceEntry, 0)
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

// ForEmployee returns one employee's entries with start <= date <= end.
// An empty bound is open.
func (l *Ledger) ForEmployee(ctx context.Context, employeeID, start, end string) ([]models.AttendanceEntry, error) {
	entries, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.AttendanceEntry, 0)
	for _, e := range entries {
		if e.EmployeeID != employeeID {
			continue
		}
		if (start != "" && e.Date < start) || (end != "" && e.Date > end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Find returns the entry for (employeeID, date) in entries, or nil.
func Find(entries []models.AttendanceEntry, employeeID, date string) *models.AttendanceEntry {
	for i := range entries {
		if entries[i].EmployeeID == employeeID && entries[i].Date == date {
			return &entries[i]
		}
	}
	return nil
}

// Delete removes one entry. A missing entry is not an error.
func (l *Ledger) Delete(ctx context.Context, key models.EntryKey) error {
	if err := l.store.DeleteAttendance(ctx, key); err != nil {
		return persistence("delete", err)
	}
	return nil
}

// DeleteByEmployee removes every entry of employeeID.
func (l *Ledger) DeleteByEmployee(ctx context.Context, employeeID string) (int, error) {
	n, err := l.store.DeleteAttendanceByEmployee(ctx, employeeID)
	if err != nil {
		return 0, persistence("delete by employee", err)
	}
	if n > 0 {
		metrics.SweepRemoved.WithLabelValues(metrics.SweepCascade).Add(float64(n))
	}
	return n, nil
}

// DeleteEmployee removes an employee together with all of its entries in one
// store transaction. storage.ErrNotFound is returned unchanged.
func (l *Ledger) DeleteEmployee(ctx context.Context, employeeID string) (int, error) {
	n, err := l.store.DeleteEmployee(ctx, employeeID)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, persistence("delete employee", err)
	}
	if n > 0 {
		metrics.SweepRemoved.WithLabelValues(metrics.SweepCascade).Add(float64(n))
	}
	return n, nil
}

// RetentionCutoff returns the oldest date kept when ref is today: the Monday
// of the previous week.
func RetentionCutoff(ref time.Time) string {
	return models.FormatDate(models.WeekStart(ref).AddDate(0, 0, -7*RetentionWeeks))
}

// SweepRetention removes entries dated before RetentionCutoff(ref).
func (l *Ledger) SweepRetention(ctx context.Context, ref time.Time) (int, error) {
	cutoff := RetentionCutoff(ref)
	n, err := l.store.DeleteAttendanceBefore(ctx, cutoff)
	if err != nil {
		return 0, persistence("retention sweep", err)
	}
	if n > 0 {
		slog.Info("Removed expired attendance entries", "count", n, "cutoff", cutoff)
		metrics.SweepRemoved.WithLabelValues(metrics.SweepRetention).Add(float64(n))
	}
	return n, nil
}

// SweepOrphans removes entries whose employee is not in valid.
func (l *Ledger) SweepOrphans(ctx context.Context, valid map[string]struct{}) (int, error) {
	ids := make([]string, 0, len(valid))
	for id := range valid {
		ids = append(ids, id)
	}
	n, err := l.store.DeleteAttendanceExcept(ctx, ids)
	return l.orphansRemoved(n, err)
}

func (l *Ledger) orphansRemoved(n int, err error) (int, error) {
	if err != nil {
		return 0, persistence("orphan sweep", err)
	}
	if n > 0 {
		slog.Info("Removed orphaned attendance entries", "count", n)
		metrics.SweepRemoved.WithLabelValues(metrics.SweepOrphans).Add(float64(n))
	}
	return n, nil
}

// SweepReport counts what one Sweep removed.
type SweepReport struct {
	Expired  int
	Orphaned int
}

// Sweep runs the retention sweep and removes entries of employees that no
// longer exist.
func (l *Ledger) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	expired, err := l.SweepRetention(ctx, l.now())
	if err != nil {
		return report, err
	}
	report.Expired = expired

	// The store checks against the current employees, so an employee
	// created while the sweep runs keeps its entries.
	orphaned, err := l.orphansRemoved(l.store.DeleteOrphanedAttendance(ctx))
	if err != nil {
		return report, err
	}
	report.Orphaned = orphaned
	return report, nil
}

// Run sweeps every interval until ctx is done. Failures are logged.
func (l *Ledger) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			report, err := l.Sweep(ctx)
			if err != nil {
				slog.Error("Periodic sweep failed", "error", err)
				continue
			}
			slog.Debug("Periodic sweep finished", "expired", report.Expired, "orphaned", report.Orphaned)
		}
	}
}
