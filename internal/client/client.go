// Package client talks to an officeplan server on behalf of one device.
//
// It stamps every request with the device id, keeps a read-through cache of
// the attendance ledger and drives the password challenge when a cell
// belongs to another device.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/officeplan/internal/identity"
	"github.com/mmynk/officeplan/internal/middleware"
	"github.com/mmynk/officeplan/pkg/api"
)

var (
	// ErrWrongPassword means the unlock password did not match. The user may retry.
	ErrWrongPassword = errors.New("wrong password")

	// ErrDeviceLocked means the cell belongs to another device and has no
	// password. Only that device can change it.
	ErrDeviceLocked = errors.New("entry can only be changed on the device that created it")

	// ErrPersistence means the server could not read or write its store.
	// Nothing was applied.
	ErrPersistence = errors.New("server storage unavailable")

	// ErrCanceled means the user dismissed a password prompt.
	ErrCanceled = errors.New("canceled")
)

// Prompter asks the user for passwords.
type Prompter interface {
	// NewEntryPassword asks for an optional password protecting a cell the
	// device is about to create. An empty string means no password.
	NewEntryPassword(ctx context.Context, employeeID, date string) (string, error)

	// UnlockPassword asks for the password of a cell owned by another device.
	UnlockPassword(ctx context.Context, employeeID, date string) (string, error)
}

type Client struct {
	device      *identity.Provider
	prompter    Prompter
	cache       *Cache
	employees   api.EmployeeServiceClient
	departments api.DepartmentServiceClient
	attendance  api.AttendanceServiceClient
}

// New returns a client for the server at baseURL. httpClient may be nil.
func New(httpClient connect.HTTPClient, baseURL string, device *identity.Provider, prompter Prompter) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	opts := connect.WithInterceptors(middleware.DeviceHeaderInterceptor(device.DeviceID))

	c := &Client{
		device:      device,
		prompter:    prompter,
		employees:   api.NewEmployeeServiceClient(httpClient, baseURL, opts),
		departments: api.NewDepartmentServiceClient(httpClient, baseURL, opts),
		attendance:  api.NewAttendanceServiceClient(httpClient, baseURL, opts),
	}
	c.cache = NewCache(c.fetchAttendance)
	return c
}

// DeviceID returns the id this client sends with every request.
func (c *Client) DeviceID() string {
	return c.device.DeviceID()
}

// Cache exposes the attendance cache for subscriptions.
func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) fetchAttendance(ctx context.Context) ([]*api.AttendanceEntry, error) {
	resp, err := c.attendance.ListAttendance(ctx, connect.NewRequest(&api.ListAttendanceRequest{}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Entries, nil
}

// Attendance returns the cached ledger.
func (c *Client) Attendance(ctx context.Context) ([]api.AttendanceEntry, error) {
	return c.cache.Snapshot(ctx)
}

func (c *Client) Employees(ctx context.Context) ([]*api.Employee, error) {
	resp, err := c.employees.ListEmployees(ctx, connect.NewRequest(&api.ListEmployeesRequest{}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, name, department string) (*api.Employee, error) {
	resp, err := c.employees.CreateEmployee(ctx, connect.NewRequest(&api.CreateEmployeeRequest{
		Name:       name,
		Department: department,
	}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Employee, nil
}

// DeleteEmployee removes an employee and its entries, then invalidates the cache.
func (c *Client) DeleteEmployee(ctx context.Context, id string) (int, error) {
	resp, err := c.employees.DeleteEmployee(ctx, connect.NewRequest(&api.DeleteEmployeeRequest{ID: id}))
	if err != nil {
		return 0, translate(err)
	}
	c.cache.Invalidate()
	return resp.Msg.RemovedEntries, nil
}

func (c *Client) Departments(ctx context.Context) ([]*api.Department, error) {
	resp, err := c.departments.ListDepartments(ctx, connect.NewRequest(&api.ListDepartmentsRequest{}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Departments, nil
}

// Week returns the capacity summary for the week containing date.
func (c *Client) Week(ctx context.Context, date string) (*api.GetWeekSummaryResponse, error) {
	resp, err := c.attendance.GetWeekSummary(ctx, connect.NewRequest(&api.GetWeekSummaryRequest{Date: date}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg, nil
}

// Activate advances the cell (employeeID, date) by one status.
//
// A new cell may be protected with a password from NewEntryPassword. A cell
// owned by another device is unlocked with a password from UnlockPassword;
// the unlock authorizes this single activation only.
func (c *Client) Activate(ctx context.Context, employeeID, date string) (*api.ActivateCellResponse, error) {
	snapshot, err := c.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	existing := find(snapshot, employeeID, date)

	req := &api.ActivateCellRequest{EmployeeID: employeeID, Date: date}
	switch {
	case existing == nil:
		if req.Password, err = c.prompter.NewEntryPassword(ctx, employeeID, date); err != nil {
			return nil, err
		}
	case existing.Owned && !existing.Mine && !existing.HasPassword:
		return nil, ErrDeviceLocked
	case existing.Owned && !existing.Mine:
		if req.UnlockToken, err = c.unlock(ctx, employeeID, date); err != nil {
			return nil, err
		}
	}

	resp, err := c.attendance.ActivateCell(ctx, connect.NewRequest(req))
	if api.Reason(err) == api.ReasonPasswordRequired {
		// The cache was stale: someone else owns the cell now.
		c.cache.Invalidate()
		if req.UnlockToken, err = c.unlock(ctx, employeeID, date); err != nil {
			return nil, err
		}
		resp, err = c.attendance.ActivateCell(ctx, connect.NewRequest(req))
	}
	if err != nil {
		return nil, translate(err)
	}

	c.cache.Invalidate()
	return resp.Msg, nil
}

func (c *Client) unlock(ctx context.Context, employeeID, date string) (string, error) {
	password, err := c.prompter.UnlockPassword(ctx, employeeID, date)
	if err != nil {
		return "", err
	}
	resp, err := c.attendance.UnlockCell(ctx, connect.NewRequest(&api.UnlockCellRequest{
		EmployeeID: employeeID,
		Date:       date,
		Password:   password,
		Operation:  api.OperationActivate,
	}))
	if err != nil {
		return "", translate(err)
	}
	return resp.Msg.UnlockToken, nil
}

func find(entries []api.AttendanceEntry, employeeID, date string) *api.AttendanceEntry {
	for i := range entries {
		if entries[i].EmployeeID == employeeID && entries[i].Date == date {
			return &entries[i]
		}
	}
	return nil
}

// translate turns server error reasons into this package's sentinel errors.
func translate(err error) error {
	switch api.Reason(err) {
	case api.ReasonWrongPassword:
		return ErrWrongPassword
	case api.ReasonDeviceLocked:
		return ErrDeviceLocked
	case api.ReasonPersistence:
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if connect.CodeOf(err) == connect.CodeUnavailable {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return err
}
