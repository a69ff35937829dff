package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/officeplan/internal/auth"
	"github.com/mmynk/officeplan/internal/ledger"
	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/pkg/api"
)

var errNameRequired = errors.New("name is required")

// EmployeeService implements the Connect EmployeeService
type EmployeeService struct {
	api.UnimplementedEmployeeServiceHandler
	store  storage.Store
	ledger *ledger.Ledger
}

// NewEmployeeService creates a new EmployeeService with the given storage backend.
func NewEmployeeService(store storage.Store, l *ledger.Ledger) *EmployeeService {
	return &EmployeeService{store: store, ledger: l}
}

// ListEmployees returns all employees in creation order.
func (s *EmployeeService) ListEmployees(ctx context.Context, req *connect.Request[api.ListEmployeesRequest]) (*connect.Response[api.ListEmployeesResponse], error) {
	slog.Info("ListEmployees request received")
	deviceID := getDeviceID(ctx)

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		slog.Error("ListEmployees failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Employee, len(employees))
	for i := range employees {
		out[i] = toAPIEmployee(&employees[i], deviceID)
	}

	slog.Info("ListEmployees successful", "count", len(employees))

	return connect.NewResponse(&api.ListEmployeesResponse{Employees: out}), nil
}

// CreateEmployee creates an employee owned by the calling device.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *connect.Request[api.CreateEmployeeRequest]) (*connect.Response[api.CreateEmployeeResponse], error) {
	slog.Info("CreateEmployee request received",
		"name", req.Msg.Name,
		"department", req.Msg.Department,
	)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument(errNameRequired)
	}

	employee := &models.Employee{
		Name:       name,
		Department: strings.TrimSpace(req.Msg.Department),
		OwnerID:    deviceID,
	}
	if err := s.store.CreateEmployee(ctx, employee); err != nil {
		slog.Error("CreateEmployee failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Employee created", "employee_id", employee.ID)

	return connect.NewResponse(&api.CreateEmployeeResponse{
		Employee: toAPIEmployee(employee, deviceID),
	}), nil
}

// UpdateEmployee renames an employee or moves it to another department.
// Ownership never changes.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, req *connect.Request[api.UpdateEmployeeRequest]) (*connect.Response[api.UpdateEmployeeResponse], error) {
	slog.Info("UpdateEmployee request received", "employee_id", req.Msg.ID)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument(errNameRequired)
	}

	employee, err := s.store.GetEmployee(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("UpdateEmployee failed", "employee_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}
	if err := auth.CanModifyEmployee(employee, deviceID); err != nil {
		slog.Warn("UpdateEmployee refused", "employee_id", employee.ID, "device_id", deviceID)
		return nil, toConnectError(err)
	}

	employee.Name = name
	employee.Department = strings.TrimSpace(req.Msg.Department)
	if err := s.store.UpdateEmployee(ctx, employee); err != nil {
		slog.Error("UpdateEmployee failed", "employee_id", employee.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Employee updated", "employee_id", employee.ID)

	return connect.NewResponse(&api.UpdateEmployeeResponse{
		Employee: toAPIEmployee(employee, deviceID),
	}), nil
}

// DeleteEmployee removes an employee and every attendance entry of it.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, req *connect.Request[api.DeleteEmployeeRequest]) (*connect.Response[api.DeleteEmployeeResponse], error) {
	slog.Info("DeleteEmployee request received", "employee_id", req.Msg.ID)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}

	employee, err := s.store.GetEmployee(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("DeleteEmployee failed", "employee_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}
	if err := auth.CanModifyEmployee(employee, deviceID); err != nil {
		slog.Warn("DeleteEmployee refused", "employee_id", employee.ID, "device_id", deviceID)
		return nil, toConnectError(err)
	}

	removed, err := s.ledger.DeleteEmployee(ctx, employee.ID)
	if err != nil {
		slog.Error("DeleteEmployee failed", "employee_id", employee.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Employee deleted", "employee_id", employee.ID, "removed_entries", removed)

	return connect.NewResponse(&api.DeleteEmployeeResponse{RemovedEntries: removed}), nil
}
