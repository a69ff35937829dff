package models

// Employee represents a person on the attendance calendar.
type Employee struct {
	// ID is the unique identifier for the employee (time-ordered UUID for new
	// records, short numeric strings for seed data).
	ID string

	// Name is the display name (e.g., "Max Mustermann").
	Name string

	// Department is the department name. It is free text and not a reference
	// to Department.ID.
	Department string

	// OwnerID is the device that created the employee.
	// Empty means unowned: any device may edit or delete it.
	OwnerID string
}

// Department is reference data used for display only.
type Department struct {
	// ID is the unique identifier for the department.
	ID string

	// Name is the display name (e.g., "Marketing").
	Name string

	// Color is a CSS hex color (e.g., "#3b82f6").
	Color string
}
