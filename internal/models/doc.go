// Package models defines the core domain models for officeplan.
//
// # Models
//
//   - Employee: a person who can be marked present on a workday
//   - Department: reference data for grouping and coloring employees
//   - AttendanceEntry: one employee's status on one date
//
// There are no user accounts. Anything a device creates is stamped with that
// device's identifier (OwnerID); records without an OwnerID are seed or legacy
// data and anyone may edit them.
//
// # Design Principles
//
// 1. **Composite identity**: an AttendanceEntry is identified by (EmployeeID, Date);
// its ID is only a storage handle
// 2. **No foreign keys**: relationships are plain ID strings, integrity is restored by sweeps
// 3. **Dates as strings**: workdays are ISO yyyy-mm-dd strings in the office's local time,
// which keeps comparisons lexicographic
package models
