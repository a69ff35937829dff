// Package auth decides whether a device may modify a record.
//
// There are no accounts. A device is identified by an opaque identifier it
// generates itself and sends with every request, so any client can claim any
// identity. The gate is a courtesy lock between cooperating devices, not a
// security boundary.
package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/mmynk/officeplan/internal/models"
)

var (
	// ErrPasswordRequired means the entry belongs to another device but has
	// a password; the caller should challenge for it.
	ErrPasswordRequired = errors.New("entry is locked by another device: password required")

	// ErrWrongPassword means a password challenge failed. The user may retry.
	ErrWrongPassword = errors.New("wrong password")

	// ErrDeviceLocked means the entry belongs to another device and has no
	// password. It can only be changed from the owning device.
	ErrDeviceLocked = errors.New("entry can only be changed on the device that created it")

	// ErrNotOwner means an employee record belongs to another device.
	ErrNotOwner = errors.New("employee can only be changed on the device that created it")
)

// CanDirectlyModify reports whether deviceID may mutate entry without a
// password challenge. A nil entry is always free to create.
func CanDirectlyModify(entry *models.AttendanceEntry, deviceID string) bool {
	if entry == nil || entry.OwnerID == "" {
		return true
	}
	return entry.OwnerID == deviceID
}

// Check returns nil when deviceID may mutate entry directly, otherwise
// ErrPasswordRequired or ErrDeviceLocked.
func Check(entry *models.AttendanceEntry, deviceID string) error {
	if CanDirectlyModify(entry, deviceID) {
		return nil
	}
	if entry.Password == "" {
		return ErrDeviceLocked
	}
	return ErrPasswordRequired
}

// VerifyPassword answers a password challenge for entry.
func VerifyPassword(entry *models.AttendanceEntry, password string) error {
	if entry.Password == "" {
		return ErrDeviceLocked
	}
	if subtle.ConstantTimeCompare([]byte(entry.Password), []byte(password)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

// CanModifyEmployee applies the ownership rule to employee records, which
// have no password escape hatch.
func CanModifyEmployee(employee *models.Employee, deviceID string) error {
	if employee.OwnerID == "" || employee.OwnerID == deviceID {
		return nil
	}
	return ErrNotOwner
}
