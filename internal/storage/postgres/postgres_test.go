package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

func setup(t *testing.T) *Store {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	st, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEmployeeCascade(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	e := &models.Employee{Name: "Max Mustermann", Department: "IT", OwnerID: "device-a"}
	if err := st.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	for _, date := range []string{"2024-03-18", "2024-03-19"} {
		if err := st.UpsertAttendance(ctx, &models.AttendanceEntry{
			EmployeeID: e.ID, Date: date, Status: models.StatusPresent, OwnerID: "device-a",
		}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	st.UpsertAttendance(ctx, &models.AttendanceEntry{EmployeeID: "other", Date: "2024-03-18", Status: models.StatusAbsent})

	removed, err := st.DeleteEmployee(ctx, e.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	if _, err := st.GetEmployee(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	entries, err := st.ListAttendance(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].EmployeeID != "other" {
		t.Errorf("unexpected remaining entries: %+v", entries)
	}
}

func TestUpsertInPlace(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	a := &models.AttendanceEntry{EmployeeID: "e1", Date: "2024-03-20", Status: models.StatusPresent, Password: "xyz"}
	b := &models.AttendanceEntry{EmployeeID: "e2", Date: "2024-03-20", Status: models.StatusPresent}
	st.UpsertAttendance(ctx, a)
	st.UpsertAttendance(ctx, b)
	st.UpsertAttendance(ctx, &models.AttendanceEntry{
		ID: "fresh", EmployeeID: "e1", Date: "2024-03-20", Status: models.StatusAbsent, Password: "xyz",
	})

	entries, err := st.ListAttendance(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "fresh" || entries[0].Status != models.StatusAbsent || entries[0].Password != "xyz" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}

func TestSweeps(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	for _, e := range []models.AttendanceEntry{
		{EmployeeID: "e1", Date: "2024-03-04", Status: models.StatusPresent},
		{EmployeeID: "e1", Date: "2024-03-11", Status: models.StatusPresent},
		{EmployeeID: "gone", Date: "2024-03-12", Status: models.StatusPresent},
	} {
		e := e
		st.UpsertAttendance(ctx, &e)
	}

	if n, err := st.DeleteAttendanceBefore(ctx, "2024-03-11"); err != nil || n != 1 {
		t.Errorf("DeleteAttendanceBefore = %d, %v; want 1", n, err)
	}
	if n, err := st.DeleteAttendanceExcept(ctx, []string{"e1"}); err != nil || n != 1 {
		t.Errorf("DeleteAttendanceExcept = %d, %v; want 1", n, err)
	}
	if n, err := st.DeleteAttendanceExcept(ctx, nil); err != nil || n != 1 {
		t.Errorf("DeleteAttendanceExcept(empty) = %d, %v; want 1", n, err)
	}
}

func TestDeleteOrphanedAttendance(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	if err := st.CreateEmployee(ctx, &models.Employee{ID: "e1", Name: "Max Mustermann", Department: "IT"}); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	st.UpsertAttendance(ctx, &models.AttendanceEntry{EmployeeID: "e1", Date: "2024-03-18", Status: models.StatusPresent})
	st.UpsertAttendance(ctx, &models.AttendanceEntry{EmployeeID: "gone", Date: "2024-03-18", Status: models.StatusPresent})

	if n, err := st.DeleteOrphanedAttendance(ctx); err != nil || n != 1 {
		t.Errorf("DeleteOrphanedAttendance = %d, %v; want 1", n, err)
	}
}
