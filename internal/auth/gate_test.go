package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/officeplan/internal/models"
)

func TestCanDirectlyModify(t *testing.T) {
	owned := &models.AttendanceEntry{EmployeeID: "1", Date: "2024-03-20", OwnerID: "device-a"}
	legacy := &models.AttendanceEntry{EmployeeID: "1", Date: "2024-03-20"}

	tests := []struct {
		name   string
		entry  *models.AttendanceEntry
		device string
		want   bool
	}{
		{"no entry", nil, "device-b", true},
		{"legacy entry", legacy, "device-b", true},
		{"owner", owned, "device-a", true},
		{"other device", owned, "device-b", false},
		{"empty device id", owned, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDirectlyModify(tt.entry, tt.device))
		})
	}
}

func TestCheck(t *testing.T) {
	noPassword := &models.AttendanceEntry{OwnerID: "device-a"}
	withPassword := &models.AttendanceEntry{OwnerID: "device-a", Password: "xyz"}

	assert.NoError(t, Check(noPassword, "device-a"))
	assert.NoError(t, Check(nil, "device-b"))
	assert.ErrorIs(t, Check(noPassword, "device-b"), ErrDeviceLocked)
	assert.ErrorIs(t, Check(withPassword, "device-b"), ErrPasswordRequired)
}

func TestVerifyPassword(t *testing.T) {
	withPassword := &models.AttendanceEntry{OwnerID: "device-a", Password: "xyz"}

	assert.NoError(t, VerifyPassword(withPassword, "xyz"))
	assert.ErrorIs(t, VerifyPassword(withPassword, "xy"), ErrWrongPassword)
	assert.ErrorIs(t, VerifyPassword(withPassword, ""), ErrWrongPassword)
	assert.ErrorIs(t, VerifyPassword(&models.AttendanceEntry{OwnerID: "device-a"}, ""), ErrDeviceLocked)
}

func TestCanModifyEmployee(t *testing.T) {
	assert.NoError(t, CanModifyEmployee(&models.Employee{ID: "1"}, "device-b"))
	assert.NoError(t, CanModifyEmployee(&models.Employee{ID: "1", OwnerID: "device-a"}, "device-a"))
	assert.ErrorIs(t, CanModifyEmployee(&models.Employee{ID: "1", OwnerID: "device-a"}, "device-b"), ErrNotOwner)
}
