package transition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/officeplan/internal/models"
)

const day = "2024-03-20"

func statusPtr(s models.Status) *models.Status { return &s }

func TestNext(t *testing.T) {
	tests := []struct {
		name         string
		current      *models.Status
		dogAvailable bool
		want         models.Status
	}{
		{"new entry starts present", nil, true, models.StatusPresent},
		{"new entry ignores quota", nil, false, models.StatusPresent},
		{"absent to present", statusPtr(models.StatusAbsent), true, models.StatusPresent},
		{"absent to present without quota", statusPtr(models.StatusAbsent), false, models.StatusPresent},
		{"present to dog", statusPtr(models.StatusPresent), true, models.StatusPresentWithDog},
		{"present skips dog when quota met", statusPtr(models.StatusPresent), false, models.StatusAbsent},
		{"dog to absent", statusPtr(models.StatusPresentWithDog), true, models.StatusAbsent},
		{"dog to absent without quota", statusPtr(models.StatusPresentWithDog), false, models.StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.current, tt.dogAvailable))
		})
	}
}

// apply mimics a ledger upsert keyed by (employee, date).
func apply(snapshot []models.AttendanceEntry, employeeID string, status models.Status) []models.AttendanceEntry {
	for i := range snapshot {
		if snapshot[i].EmployeeID == employeeID && snapshot[i].Date == day {
			snapshot[i].Status = status
			return snapshot
		}
	}
	return append(snapshot, models.AttendanceEntry{EmployeeID: employeeID, Date: day, Status: status})
}

func TestActivate_CycleCloses(t *testing.T) {
	snapshot := []models.AttendanceEntry{{EmployeeID: "max", Date: day, Status: models.StatusAbsent}}

	var seen []models.Status
	for i := 0; i < 3; i++ {
		out := Activate(snapshot, "max", day)
		seen = append(seen, out.Next)
		snapshot = apply(snapshot, "max", out.Next)
	}

	assert.Equal(t, []models.Status{
		models.StatusPresent,
		models.StatusPresentWithDog,
		models.StatusAbsent,
	}, seen)
}

func TestActivate_NewEntry(t *testing.T) {
	out := Activate(nil, "max", day)
	assert.True(t, out.Created())
	assert.Equal(t, models.StatusPresent, out.Next)
	assert.Equal(t, 1, out.ProjectedActive)
	assert.Equal(t, 0, out.ProjectedDogs)
	assert.False(t, out.OverCapacity)
}

func TestActivate_DogQuotaMetByOthers(t *testing.T) {
	snapshot := []models.AttendanceEntry{
		{EmployeeID: "anna", Date: day, Status: models.StatusPresentWithDog},
		{EmployeeID: "tom", Date: day, Status: models.StatusPresentWithDog},
		{EmployeeID: "max", Date: day, Status: models.StatusPresent},
	}

	out := Activate(snapshot, "max", day)
	require.False(t, out.Created())
	assert.Equal(t, models.StatusPresent, *out.Previous)
	assert.Equal(t, models.StatusAbsent, out.Next)
	assert.Equal(t, 2, out.ProjectedDogs)
	assert.Equal(t, 2, out.ProjectedActive)
}

func TestActivate_OwnDogNotDoubleCounted(t *testing.T) {
	// max already holds one of the two dog slots; anna holds the other.
	snapshot := []models.AttendanceEntry{
		{EmployeeID: "anna", Date: day, Status: models.StatusPresentWithDog},
		{EmployeeID: "max", Date: day, Status: models.StatusPresentWithDog},
	}

	out := Activate(snapshot, "max", day)
	assert.Equal(t, models.StatusAbsent, out.Next)
	assert.Equal(t, 1, out.ProjectedDogs)

	// With one other dog on the date, max may take the second slot.
	snapshot = apply(snapshot, "max", models.StatusPresent)
	out = Activate(snapshot, "max", day)
	assert.Equal(t, models.StatusPresentWithDog, out.Next)
	assert.Equal(t, 2, out.ProjectedDogs)
}

func TestActivate_OtherDatesIgnored(t *testing.T) {
	snapshot := []models.AttendanceEntry{
		{EmployeeID: "anna", Date: "2024-03-21", Status: models.StatusPresentWithDog},
		{EmployeeID: "tom", Date: "2024-03-21", Status: models.StatusPresentWithDog},
		{EmployeeID: "max", Date: day, Status: models.StatusPresent},
	}
	assert.Equal(t, models.StatusPresentWithDog, Activate(snapshot, "max", day).Next)
}

func TestActivate_OverCapacityAdvisory(t *testing.T) {
	var snapshot []models.AttendanceEntry
	for i := 0; i < 25; i++ {
		snapshot = append(snapshot, models.AttendanceEntry{
			EmployeeID: fmt.Sprintf("e%d", i), Date: day, Status: models.StatusPresent,
		})
	}
	snapshot = append(snapshot, models.AttendanceEntry{EmployeeID: "max", Date: day, Status: models.StatusAbsent})

	out := Activate(snapshot, "max", day)
	assert.Equal(t, models.StatusPresent, out.Next, "advisory must not block the transition")
	assert.Equal(t, 26, out.ProjectedActive)
	assert.True(t, out.OverCapacity)

	// Leaving the active set never warns, even on a crowded day.
	snapshot = apply(snapshot, "max", models.StatusPresentWithDog)
	out = Activate(snapshot, "max", day)
	assert.Equal(t, models.StatusAbsent, out.Next)
	assert.False(t, out.OverCapacity)
}
