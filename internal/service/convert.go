package service

import (
	"context"
	"time"

	"github.com/mmynk/officeplan/internal/capacity"
	"github.com/mmynk/officeplan/internal/middleware"
	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/pkg/api"
)

func getDeviceID(ctx context.Context) string {
	return middleware.GetDeviceID(ctx)
}

// requireDevice returns the caller's device id, or InvalidArgument when the
// request carried none.
func requireDevice(ctx context.Context) (string, error) {
	deviceID := middleware.GetDeviceID(ctx)
	if deviceID == "" {
		return "", invalidArgument(errDeviceRequired)
	}
	return deviceID, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := models.ParseDate(s, time.UTC)
	if err != nil {
		return time.Time{}, invalidArgument(err)
	}
	return t, nil
}

func toAPIEmployee(e *models.Employee, deviceID string) *api.Employee {
	return &api.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		Owned:      e.OwnerID != "",
		Mine:       e.OwnerID != "" && e.OwnerID == deviceID,
	}
}

func toAPIDepartment(d *models.Department) *api.Department {
	return &api.Department{ID: d.ID, Name: d.Name, Color: d.Color}
}

func toAPIEntry(e *models.AttendanceEntry, deviceID string) *api.AttendanceEntry {
	return &api.AttendanceEntry{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Date:        e.Date,
		Status:      string(e.Status),
		Owned:       e.OwnerID != "",
		Mine:        e.OwnerID != "" && e.OwnerID == deviceID,
		HasPassword: e.Password != "",
	}
}

func toAPIEntries(entries []models.AttendanceEntry, deviceID string) []*api.AttendanceEntry {
	out := make([]*api.AttendanceEntry, len(entries))
	for i := range entries {
		out[i] = toAPIEntry(&entries[i], deviceID)
	}
	return out
}

func toAPIDays(days []capacity.DaySummary) []*api.DaySummary {
	out := make([]*api.DaySummary, len(days))
	for i, d := range days {
		out[i] = &api.DaySummary{
			Date:            d.Date,
			DogCount:        d.DogCount,
			ActiveCount:     d.ActiveCount,
			DogLimitReached: d.DogLimitReached,
			OverCapacity:    d.OverCapacity,
		}
	}
	return out
}
