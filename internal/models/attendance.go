package models

import "fmt"

// Status is an employee's attendance state on one date.
type Status string

const (
	StatusAbsent         Status = "absent"
	StatusPresent        Status = "present"
	StatusPresentWithDog Status = "present_with_dog"
)

// ParseStatus validates a wire or storage value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAbsent, StatusPresent, StatusPresentWithDog:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid attendance status %q", s)
	}
}

// Active reports whether the status counts towards the office headcount.
func (s Status) Active() bool {
	return s == StatusPresent || s == StatusPresentWithDog
}

// AttendanceEntry is one employee's status on one date.
//
// At most one entry exists per (EmployeeID, Date). ID is a storage handle and
// may change when the entry is replaced.
type AttendanceEntry struct {
	ID         string
	EmployeeID string
	Date       string
	Status     Status

	// OwnerID is the device that created the entry. Empty for legacy entries,
	// which any device may modify.
	OwnerID string

	// Password optionally lets other devices modify the entry. It is a shared
	// PIN kept in clear, not a credential.
	Password string
}

// Key returns the composite identity of the entry.
func (e AttendanceEntry) Key() EntryKey {
	return EntryKey{EmployeeID: e.EmployeeID, Date: e.Date}
}

// EntryKey is the (employee, date) identity of an attendance entry.
type EntryKey struct {
	EmployeeID string
	Date       string
}

func (k EntryKey) String() string {
	return k.EmployeeID + "@" + k.Date
}
