package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/pkg/api"
)

// defaultColor is used when a department is created without one.
const defaultColor = "#6b7280"

var (
	colorPattern    = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	errInvalidColor = errors.New("color must be of the form #rrggbb")
)

// DepartmentService manages department reference data. Departments carry no
// owner; any device may change them.
type DepartmentService struct {
	api.UnimplementedDepartmentServiceHandler
	store storage.Store
}

func NewDepartmentService(store storage.Store) *DepartmentService {
	return &DepartmentService{store: store}
}

func (s *DepartmentService) ListDepartments(ctx context.Context, req *connect.Request[api.ListDepartmentsRequest]) (*connect.Response[api.ListDepartmentsResponse], error) {
	departments, err := s.store.ListDepartments(ctx)
	if err != nil {
		slog.Error("ListDepartments failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Department, len(departments))
	for i := range departments {
		out[i] = toAPIDepartment(&departments[i])
	}
	return connect.NewResponse(&api.ListDepartmentsResponse{Departments: out}), nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, req *connect.Request[api.CreateDepartmentRequest]) (*connect.Response[api.CreateDepartmentResponse], error) {
	slog.Info("CreateDepartment request received", "name", req.Msg.Name)

	if _, err := requireDevice(ctx); err != nil {
		return nil, err
	}
	department, err := validateDepartment("", req.Msg.Name, req.Msg.Color)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateDepartment(ctx, department); err != nil {
		slog.Error("CreateDepartment failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Department created", "department_id", department.ID)

	return connect.NewResponse(&api.CreateDepartmentResponse{Department: toAPIDepartment(department)}), nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, req *connect.Request[api.UpdateDepartmentRequest]) (*connect.Response[api.UpdateDepartmentResponse], error) {
	slog.Info("UpdateDepartment request received", "department_id", req.Msg.ID)

	if _, err := requireDevice(ctx); err != nil {
		return nil, err
	}
	department, err := validateDepartment(req.Msg.ID, req.Msg.Name, req.Msg.Color)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateDepartment(ctx, department); err != nil {
		slog.Error("UpdateDepartment failed", "department_id", department.ID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.UpdateDepartmentResponse{Department: toAPIDepartment(department)}), nil
}

// DeleteDepartment removes a department. Employees keep the department name
// they were saved with.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, req *connect.Request[api.DeleteDepartmentRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("DeleteDepartment request received", "department_id", req.Msg.ID)

	if _, err := requireDevice(ctx); err != nil {
		return nil, err
	}
	if err := s.store.DeleteDepartment(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteDepartment failed", "department_id", req.Msg.ID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&emptypb.Empty{}), nil
}

func validateDepartment(id, name, color string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument(errNameRequired)
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = defaultColor
	}
	if !colorPattern.MatchString(color) {
		return nil, invalidArgument(errInvalidColor)
	}
	return &models.Department{ID: id, Name: name, Color: strings.ToLower(color)}, nil
}
