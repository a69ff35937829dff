package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/internal/storage/sqlite"
)

// Wednesday
var refDate = time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*Ledger, storage.Store) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, WithClock(func() time.Time { return refDate })), store
}

func entry(employeeID, date string, status models.Status) models.AttendanceEntry {
	return models.AttendanceEntry{EmployeeID: employeeID, Date: date, Status: status}
}

func TestUpsertIsIdempotent(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	e := entry("e1", "2024-03-20", models.StatusPresent)
	first, err := l.Upsert(ctx, e)
	require.NoError(t, err)
	second, err := l.Upsert(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	for _, e := range []models.AttendanceEntry{
		entry("e1", "2024-03-20", models.StatusPresent),
		entry("e2", "2024-03-20", models.StatusPresent),
		entry("e1", "2024-03-20", models.StatusPresentWithDog),
	} {
		_, err := l.Upsert(ctx, e)
		require.NoError(t, err)
	}

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e1", entries[0].EmployeeID)
	assert.Equal(t, models.StatusPresentWithDog, entries[0].Status)
	assert.Equal(t, "e2", entries[1].EmployeeID)
}

func TestUpsertRejectsUnknownStatus(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Upsert(context.Background(), entry("e1", "2024-03-20", "sleeping"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrPersistence))
}

func TestRetentionCutoff(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want string
	}{
		{"wednesday", refDate, "2024-03-11"},
		{"monday", time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), "2024-03-11"},
		{"sunday", time.Date(2024, 3, 24, 23, 0, 0, 0, time.UTC), "2024-03-11"},
		{"year boundary", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), "2024-12-23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RetentionCutoff(tt.ref))
		})
	}
}

func TestSweepRetention(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-04", "2024-03-10", "2024-03-11", "2024-03-20"} {
		_, err := l.Upsert(ctx, entry("e1", date, models.StatusPresent))
		require.NoError(t, err)
	}

	removed, err := l.SweepRetention(ctx, refDate)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = l.SweepRetention(ctx, refDate)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestListAllRunsRetention(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Upsert(ctx, entry("e1", "2024-03-04", models.StatusPresent))
	require.NoError(t, err)
	_, err = l.Upsert(ctx, entry("e1", "2024-03-11", models.StatusPresent))
	require.NoError(t, err)

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-11", entries[0].Date)
}

func TestForDateAndEmployee(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	for _, e := range []models.AttendanceEntry{
		entry("e1", "2024-03-18", models.StatusPresent),
		entry("e1", "2024-03-19", models.StatusAbsent),
		entry("e1", "2024-03-22", models.StatusPresent),
		entry("e2", "2024-03-19", models.StatusPresentWithDog),
	} {
		_, err := l.Upsert(ctx, e)
		require.NoError(t, err)
	}

	day, err := l.ForDate(ctx, "2024-03-19")
	require.NoError(t, err)
	assert.Len(t, day, 2)

	ranged, err := l.ForEmployee(ctx, "e1", "2024-03-19", "2024-03-21")
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2024-03-19", ranged[0].Date)

	open, err := l.ForEmployee(ctx, "e1", "", "")
	require.NoError(t, err)
	assert.Len(t, open, 3)

	none, err := l.ForDate(ctx, "2024-03-21")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFind(t *testing.T) {
	entries := []models.AttendanceEntry{
		entry("e1", "2024-03-18", models.StatusPresent),
		entry("e2", "2024-03-18", models.StatusAbsent),
	}

	got := Find(entries, "e2", "2024-03-18")
	require.NotNil(t, got)
	assert.Equal(t, models.StatusAbsent, got.Status)
	assert.Nil(t, Find(entries, "e2", "2024-03-19"))
}

func TestSweepOrphansAndCascade(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEmployee(ctx, &models.Employee{ID: "e1", Name: "Max Mustermann", Department: "IT"}))
	for _, e := range []models.AttendanceEntry{
		entry("e1", "2024-03-18", models.StatusPresent),
		entry("e1", "2024-03-19", models.StatusPresent),
		entry("ghost", "2024-03-18", models.StatusPresent),
	} {
		_, err := l.Upsert(ctx, e)
		require.NoError(t, err)
	}

	report, err := l.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepReport{Expired: 0, Orphaned: 1}, report)

	removed, err := l.DeleteByEmployee(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := l.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteEmployee(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEmployee(ctx, &models.Employee{ID: "e1", Name: "Anna Schmidt", Department: "Marketing"}))
	_, err := l.Upsert(ctx, entry("e1", "2024-03-18", models.StatusPresent))
	require.NoError(t, err)

	removed, err := l.DeleteEmployee(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = l.DeleteEmployee(ctx, "e1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.False(t, errors.Is(err, ErrPersistence))
}

func TestSweepOrphansEmptySetRemovesAll(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Upsert(ctx, entry("e1", "2024-03-18", models.StatusPresent))
	require.NoError(t, err)

	removed, err := l.SweepOrphans(ctx, map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

// racingStore creates an employee with an entry once the sweep has started
// looking at employees, as another device would while a sweep is in flight.
type racingStore struct {
	storage.Store
	t    *testing.T
	once *sync.Once
}

func (r racingStore) createLate(ctx context.Context) {
	r.once.Do(func() {
		require.NoError(r.t, r.Store.CreateEmployee(ctx, &models.Employee{ID: "late", Name: "Tom Weber", Department: "Vertrieb"}))
		require.NoError(r.t, r.Store.UpsertAttendance(ctx, &models.AttendanceEntry{EmployeeID: "late", Date: "2024-03-20", Status: models.StatusPresent}))
	})
}

func (r racingStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := r.Store.ListEmployees(ctx)
	r.createLate(ctx)
	return employees, err
}

func (r racingStore) DeleteOrphanedAttendance(ctx context.Context) (int, error) {
	r.createLate(ctx)
	return r.Store.DeleteOrphanedAttendance(ctx)
}

func TestSweepKeepsEntriesOfEmployeesCreatedDuringSweep(t *testing.T) {
	_, base := newTestLedger(t)
	ctx := context.Background()
	l := New(racingStore{Store: base, t: t, once: &sync.Once{}}, WithClock(func() time.Time { return refDate }))

	_, err := l.Upsert(ctx, entry("ghost", "2024-03-19", models.StatusPresent))
	require.NoError(t, err)

	report, err := l.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Orphaned)

	entries, err := base.ListAttendance(ctx)
	require.NoError(t, err)
	assert.NotNil(t, Find(entries, "late", "2024-03-20"))
	assert.Nil(t, Find(entries, "ghost", "2024-03-19"))
}

type brokenStore struct {
	storage.Store
}

var errDisk = errors.New("disk on fire")

func (brokenStore) UpsertAttendance(context.Context, *models.AttendanceEntry) error { return errDisk }
func (brokenStore) ListAttendance(context.Context) ([]models.AttendanceEntry, error) {
	return nil, errDisk
}
func (brokenStore) DeleteAttendanceBefore(context.Context, string) (int, error) { return 0, errDisk }

func TestPersistenceFailures(t *testing.T) {
	l := New(brokenStore{}, WithClock(func() time.Time { return refDate }))
	ctx := context.Background()

	_, err := l.Upsert(ctx, entry("e1", "2024-03-20", models.StatusPresent))
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = l.ListAll(ctx)
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = l.Sweep(ctx)
	assert.ErrorIs(t, err, ErrPersistence)
}
