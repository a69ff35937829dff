// Package capacity computes per-day dog and headcount figures from a snapshot
// of attendance entries.
//
// The limits are advisory. Two devices acting on the same date at the same
// time can both pass a check and together exceed a limit; nothing here or in
// the ledger prevents that.
package capacity

import (
	"time"

	"github.com/mmynk/officeplan/internal/models"
)

const (
	// MaxDogsPerDay is the dog quota per date.
	MaxDogsPerDay = 2

	// MaxActivePerDay is the seat count. Exceeding it only produces a warning.
	MaxActivePerDay = 25
)

// DogCount returns the number of entries on date with status PresentWithDog.
func DogCount(entries []models.AttendanceEntry, date string) int {
	return countDogs(entries, date, "")
}

// ActiveCount returns the number of entries on date that are Present or PresentWithDog.
func ActiveCount(entries []models.AttendanceEntry, date string) int {
	n := 0
	for _, e := range entries {
		if e.Date == date && e.Status.Active() {
			n++
		}
	}
	return n
}

// CanAddDog reports whether another dog fits on date. The entry of
// excludingEmployeeID, if any, is not counted so an employee's own current
// status never blocks their transition. Pass "" to count every entry.
func CanAddDog(entries []models.AttendanceEntry, date, excludingEmployeeID string) bool {
	return countDogs(entries, date, excludingEmployeeID) < MaxDogsPerDay
}

// IsOverCapacity reports whether a projected headcount exceeds the seat count.
func IsOverCapacity(projectedActiveCount int) bool {
	return projectedActiveCount > MaxActivePerDay
}

// Project adjusts a current active count for a transition from -> to.
// from is nil when the cell had no entry.
func Project(activeCount int, from *models.Status, to models.Status) int {
	if from != nil && from.Active() {
		activeCount--
	}
	if to.Active() {
		activeCount++
	}
	return activeCount
}

func countDogs(entries []models.AttendanceEntry, date, excludingEmployeeID string) int {
	n := 0
	for _, e := range entries {
		if e.Date != date || e.Status != models.StatusPresentWithDog {
			continue
		}
		if excludingEmployeeID != "" && e.EmployeeID == excludingEmployeeID {
			continue
		}
		n++
	}
	return n
}

// DaySummary holds the capacity figures for one workday.
type DaySummary struct {
	Date            string
	DogCount        int
	ActiveCount     int
	DogLimitReached bool
	OverCapacity    bool
}

// Week summarizes Monday to Friday of the week containing day.
func Week(entries []models.AttendanceEntry, day time.Time) []DaySummary {
	dates := models.Workweek(day)
	out := make([]DaySummary, len(dates))
	for i, date := range dates {
		dogs := DogCount(entries, date)
		active := ActiveCount(entries, date)
		out[i] = DaySummary{
			Date:            date,
			DogCount:        dogs,
			ActiveCount:     active,
			DogLimitReached: dogs >= MaxDogsPerDay,
			OverCapacity:    IsOverCapacity(active),
		}
	}
	return out
}
