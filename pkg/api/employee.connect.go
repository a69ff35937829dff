package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const EmployeeServiceName = "officeplan.v1.EmployeeService"

const (
	EmployeeServiceListEmployeesProcedure  = "/officeplan.v1.EmployeeService/ListEmployees"
	EmployeeServiceCreateEmployeeProcedure = "/officeplan.v1.EmployeeService/CreateEmployee"
	EmployeeServiceUpdateEmployeeProcedure = "/officeplan.v1.EmployeeService/UpdateEmployee"
	EmployeeServiceDeleteEmployeeProcedure = "/officeplan.v1.EmployeeService/DeleteEmployee"
)

// EmployeeServiceClient is a client for the officeplan.v1.EmployeeService service.
type EmployeeServiceClient interface {
	ListEmployees(context.Context, *connect.Request[ListEmployeesRequest]) (*connect.Response[ListEmployeesResponse], error)
	CreateEmployee(context.Context, *connect.Request[CreateEmployeeRequest]) (*connect.Response[CreateEmployeeResponse], error)
	UpdateEmployee(context.Context, *connect.Request[UpdateEmployeeRequest]) (*connect.Response[UpdateEmployeeResponse], error)
	DeleteEmployee(context.Context, *connect.Request[DeleteEmployeeRequest]) (*connect.Response[DeleteEmployeeResponse], error)
}

// NewEmployeeServiceClient constructs a client for the
// officeplan.v1.EmployeeService service. baseURL is the server root, e.g.
// http://localhost:8080.
func NewEmployeeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EmployeeServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &employeeServiceClient{
		listEmployees: connect.NewClient[ListEmployeesRequest, ListEmployeesResponse](
			httpClient, baseURL+EmployeeServiceListEmployeesProcedure, opts...),
		createEmployee: connect.NewClient[CreateEmployeeRequest, CreateEmployeeResponse](
			httpClient, baseURL+EmployeeServiceCreateEmployeeProcedure, opts...),
		updateEmployee: connect.NewClient[UpdateEmployeeRequest, UpdateEmployeeResponse](
			httpClient, baseURL+EmployeeServiceUpdateEmployeeProcedure, opts...),
		deleteEmployee: connect.NewClient[DeleteEmployeeRequest, DeleteEmployeeResponse](
			httpClient, baseURL+EmployeeServiceDeleteEmployeeProcedure, opts...),
	}
}

type employeeServiceClient struct {
	listEmployees  *connect.Client[ListEmployeesRequest, ListEmployeesResponse]
	createEmployee *connect.Client[CreateEmployeeRequest, CreateEmployeeResponse]
	updateEmployee *connect.Client[UpdateEmployeeRequest, UpdateEmployeeResponse]
	deleteEmployee *connect.Client[DeleteEmployeeRequest, DeleteEmployeeResponse]
}

func (c *employeeServiceClient) ListEmployees(ctx context.Context, req *connect.Request[ListEmployeesRequest]) (*connect.Response[ListEmployeesResponse], error) {
	return c.listEmployees.CallUnary(ctx, req)
}

func (c *employeeServiceClient) CreateEmployee(ctx context.Context, req *connect.Request[CreateEmployeeRequest]) (*connect.Response[CreateEmployeeResponse], error) {
	return c.createEmployee.CallUnary(ctx, req)
}

func (c *employeeServiceClient) UpdateEmployee(ctx context.Context, req *connect.Request[UpdateEmployeeRequest]) (*connect.Response[UpdateEmployeeResponse], error) {
	return c.updateEmployee.CallUnary(ctx, req)
}

func (c *employeeServiceClient) DeleteEmployee(ctx context.Context, req *connect.Request[DeleteEmployeeRequest]) (*connect.Response[DeleteEmployeeResponse], error) {
	return c.deleteEmployee.CallUnary(ctx, req)
}

// EmployeeServiceHandler is an implementation of the officeplan.v1.EmployeeService service.
type EmployeeServiceHandler interface {
	ListEmployees(context.Context, *connect.Request[ListEmployeesRequest]) (*connect.Response[ListEmployeesResponse], error)
	CreateEmployee(context.Context, *connect.Request[CreateEmployeeRequest]) (*connect.Response[CreateEmployeeResponse], error)
	UpdateEmployee(context.Context, *connect.Request[UpdateEmployeeRequest]) (*connect.Response[UpdateEmployeeResponse], error)
	DeleteEmployee(context.Context, *connect.Request[DeleteEmployeeRequest]) (*connect.Response[DeleteEmployeeResponse], error)
}

// NewEmployeeServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewEmployeeServiceHandler(svc EmployeeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
	listEmployees := connect.NewUnaryHandler(
		EmployeeServiceListEmployeesProcedure, svc.ListEmployees,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	createEmployee := connect.NewUnaryHandler(EmployeeServiceCreateEmployeeProcedure, svc.CreateEmployee, opts...)
	updateEmployee := connect.NewUnaryHandler(EmployeeServiceUpdateEmployeeProcedure, svc.UpdateEmployee, opts...)
	deleteEmployee := connect.NewUnaryHandler(EmployeeServiceDeleteEmployeeProcedure, svc.DeleteEmployee, opts...)

	return "/" + EmployeeServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EmployeeServiceListEmployeesProcedure:
			listEmployees.ServeHTTP(w, r)
		case EmployeeServiceCreateEmployeeProcedure:
			createEmployee.ServeHTTP(w, r)
		case EmployeeServiceUpdateEmployeeProcedure:
			updateEmployee.ServeHTTP(w, r)
		case EmployeeServiceDeleteEmployeeProcedure:
			deleteEmployee.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedEmployeeServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedEmployeeServiceHandler struct{}

func (UnimplementedEmployeeServiceHandler) ListEmployees(context.Context, *connect.Request[ListEmployeesRequest]) (*connect.Response[ListEmployeesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.EmployeeService.ListEmployees is not implemented"))
}

func (UnimplementedEmployeeServiceHandler) CreateEmployee(context.Context, *connect.Request[CreateEmployeeRequest]) (*connect.Response[CreateEmployeeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.EmployeeService.CreateEmployee is not implemented"))
}

func (UnimplementedEmployeeServiceHandler) UpdateEmployee(context.Context, *connect.Request[UpdateEmployeeRequest]) (*connect.Response[UpdateEmployeeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.EmployeeService.UpdateEmployee is not implemented"))
}

func (UnimplementedEmployeeServiceHandler) DeleteEmployee(context.Context, *connect.Request[DeleteEmployeeRequest]) (*connect.Response[DeleteEmployeeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.EmployeeService.DeleteEmployee is not implemented"))
}
