package api

import "time"

// Employee as seen by the calling device. Owner device ids never leave the
// server; Owned and Mine describe the relationship instead.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Owned      bool   `json:"owned"`
	Mine       bool   `json:"mine"`
}

type Department struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// AttendanceEntry as seen by the calling device. The password itself is
// never returned.
type AttendanceEntry struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Owned       bool   `json:"owned"`
	Mine        bool   `json:"mine"`
	HasPassword bool   `json:"hasPassword"`
}

type DaySummary struct {
	Date            string `json:"date"`
	DogCount        int    `json:"dogCount"`
	ActiveCount     int    `json:"activeCount"`
	DogLimitReached bool   `json:"dogLimitReached"`
	OverCapacity    bool   `json:"overCapacity"`
}

// EmployeeService

type ListEmployeesRequest struct{}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

type CreateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type UpdateEmployeeRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type UpdateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type DeleteEmployeeRequest struct {
	ID string `json:"id"`
}

type DeleteEmployeeResponse struct {
	// RemovedEntries is the number of attendance entries deleted with the employee.
	RemovedEntries int `json:"removedEntries"`
}

// DepartmentService

type ListDepartmentsRequest struct{}

type ListDepartmentsResponse struct {
	Departments []*Department `json:"departments"`
}

type CreateDepartmentRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CreateDepartmentResponse struct {
	Department *Department `json:"department"`
}

type UpdateDepartmentRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateDepartmentResponse struct {
	Department *Department `json:"department"`
}

type DeleteDepartmentRequest struct {
	ID string `json:"id"`
}

// AttendanceService

// ListAttendanceRequest filters by Date, or by EmployeeID with optional
// StartDate and EndDate. An empty request lists everything.
type ListAttendanceRequest struct {
	Date       string `json:"date,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
}

type ListAttendanceResponse struct {
	Entries []*AttendanceEntry `json:"entries"`
}

type UpsertAttendanceRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	// Password is stored only when the entry is created.
	Password    string `json:"password,omitempty"`
	UnlockToken string `json:"unlockToken,omitempty"`
}

type UpsertAttendanceResponse struct {
	Entry *AttendanceEntry `json:"entry"`
}

type DeleteAttendanceRequest struct {
	EmployeeID  string `json:"employeeId"`
	Date        string `json:"date"`
	UnlockToken string `json:"unlockToken,omitempty"`
}

type ActivateCellRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	// Password is stored only when the activation creates the entry.
	Password string `json:"password,omitempty"`
	// UnlockToken is a grant from UnlockCell for an entry owned by another device.
	UnlockToken string `json:"unlockToken,omitempty"`
}

type ActivateCellResponse struct {
	Entry          *AttendanceEntry `json:"entry"`
	Created        bool             `json:"created"`
	PreviousStatus string           `json:"previousStatus,omitempty"`
	// OverCapacity warns that the date now exceeds the seat count. The
	// transition was applied regardless.
	OverCapacity bool `json:"overCapacity"`
	ActiveCount  int  `json:"activeCount"`
	DogCount     int  `json:"dogCount"`
}

// Operations an unlock grant can be requested for.
const (
	OperationActivate = "activate"
	OperationUpsert   = "upsert"
	OperationDelete   = "delete"
)

type UnlockCellRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Password   string `json:"password"`
	// Operation is the mutation the grant will be spent on. Empty means activate.
	Operation string `json:"operation,omitempty"`
	// Status is the target status when Operation is upsert.
	Status string `json:"status,omitempty"`
}

type UnlockCellResponse struct {
	UnlockToken string    `json:"unlockToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type GetWeekSummaryRequest struct {
	// Date is any day of the requested week.
	Date string `json:"date"`
}

type GetWeekSummaryResponse struct {
	WeekStart       string        `json:"weekStart"`
	Days            []*DaySummary `json:"days"`
	MaxDogsPerDay   int           `json:"maxDogsPerDay"`
	MaxActivePerDay int           `json:"maxActivePerDay"`
}
