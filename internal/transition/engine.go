// Package transition implements the status cycle of a calendar cell.
//
//	(no entry) -> present
//	absent     -> present
//	present    -> present_with_dog, or absent when the dog quota is met by others
//	present_with_dog -> absent
package transition

import (
	"github.com/mmynk/officeplan/internal/capacity"
	"github.com/mmynk/officeplan/internal/models"
)

// Next returns the status that follows current. current is nil when the cell
// has no entry yet. dogAvailable is the capacity outcome for the cell's date,
// computed without the acting employee's own entry.
func Next(current *models.Status, dogAvailable bool) models.Status {
	if current == nil {
		return models.StatusPresent
	}
	switch *current {
	case models.StatusAbsent:
		return models.StatusPresent
	case models.StatusPresent:
		if dogAvailable {
			return models.StatusPresentWithDog
		}
		return models.StatusAbsent
	default:
		return models.StatusAbsent
	}
}

// Outcome describes one activation of a cell.
type Outcome struct {
	// Previous is the status before activation, nil when the entry is new.
	Previous *models.Status
	Next     models.Status

	// ProjectedActive is the headcount on the date once Next is applied.
	ProjectedActive int
	// ProjectedDogs is the dog count on the date once Next is applied.
	ProjectedDogs int

	// OverCapacity is an advisory. The transition is applied regardless.
	OverCapacity bool
}

// Created reports whether the activation creates the entry.
func (o Outcome) Created() bool {
	return o.Previous == nil
}

// Activate computes the transition for (employeeID, date) against a snapshot
// of stored entries. The snapshot is not modified.
func Activate(snapshot []models.AttendanceEntry, employeeID, date string) Outcome {
	var previous *models.Status
	for _, e := range snapshot {
		if e.EmployeeID == employeeID && e.Date == date {
			s := e.Status
			previous = &s
			break
		}
	}

	next := Next(previous, capacity.CanAddDog(snapshot, date, employeeID))
	projected := capacity.Project(capacity.ActiveCount(snapshot, date), previous, next)

	dogs := capacity.DogCount(snapshot, date)
	if previous != nil && *previous == models.StatusPresentWithDog {
		dogs--
	}
	if next == models.StatusPresentWithDog {
		dogs++
	}

	return Outcome{
		Previous:        previous,
		Next:            next,
		ProjectedActive: projected,
		ProjectedDogs:   dogs,
		OverCapacity:    next.Active() && capacity.IsOverCapacity(projected),
	}
}
