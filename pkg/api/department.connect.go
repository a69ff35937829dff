package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
)

const DepartmentServiceName = "officeplan.v1.DepartmentService"

const (
	DepartmentServiceListDepartmentsProcedure  = "/officeplan.v1.DepartmentService/ListDepartments"
	DepartmentServiceCreateDepartmentProcedure = "/officeplan.v1.DepartmentService/CreateDepartment"
	DepartmentServiceUpdateDepartmentProcedure = "/officeplan.v1.DepartmentService/UpdateDepartment"
	DepartmentServiceDeleteDepartmentProcedure = "/officeplan.v1.DepartmentService/DeleteDepartment"
)

// DepartmentServiceClient is a client for the officeplan.v1.DepartmentService service.
type DepartmentServiceClient interface {
	ListDepartments(context.Context, *connect.Request[ListDepartmentsRequest]) (*connect.Response[ListDepartmentsResponse], error)
	CreateDepartment(context.Context, *connect.Request[CreateDepartmentRequest]) (*connect.Response[CreateDepartmentResponse], error)
	UpdateDepartment(context.Context, *connect.Request[UpdateDepartmentRequest]) (*connect.Response[UpdateDepartmentResponse], error)
	DeleteDepartment(context.Context, *connect.Request[DeleteDepartmentRequest]) (*connect.Response[emptypb.Empty], error)
}

func NewDepartmentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DepartmentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &departmentServiceClient{
		listDepartments: connect.NewClient[ListDepartmentsRequest, ListDepartmentsResponse](
			httpClient, baseURL+DepartmentServiceListDepartmentsProcedure, opts...),
		createDepartment: connect.NewClient[CreateDepartmentRequest, CreateDepartmentResponse](
			httpClient, baseURL+DepartmentServiceCreateDepartmentProcedure, opts...),
		updateDepartment: connect.NewClient[UpdateDepartmentRequest, UpdateDepartmentResponse](
			httpClient, baseURL+DepartmentServiceUpdateDepartmentProcedure, opts...),
		deleteDepartment: connect.NewClient[DeleteDepartmentRequest, emptypb.Empty](
			httpClient, baseURL+DepartmentServiceDeleteDepartmentProcedure, opts...),
	}
}

type departmentServiceClient struct {
	listDepartments  *connect.Client[ListDepartmentsRequest, ListDepartmentsResponse]
	createDepartment *connect.Client[CreateDepartmentRequest, CreateDepartmentResponse]
	updateDepartment *connect.Client[UpdateDepartmentRequest, UpdateDepartmentResponse]
	deleteDepartment *connect.Client[DeleteDepartmentRequest, emptypb.Empty]
}

func (c *departmentServiceClient) ListDepartments(ctx context.Context, req *connect.Request[ListDepartmentsRequest]) (*connect.Response[ListDepartmentsResponse], error) {
	return c.listDepartments.CallUnary(ctx, req)
}

func (c *departmentServiceClient) CreateDepartment(ctx context.Context, req *connect.Request[CreateDepartmentRequest]) (*connect.Response[CreateDepartmentResponse], error) {
	return c.createDepartment.CallUnary(ctx, req)
}

func (c *departmentServiceClient) UpdateDepartment(ctx context.Context, req *connect.Request[UpdateDepartmentRequest]) (*connect.Response[UpdateDepartmentResponse], error) {
	return c.updateDepartment.CallUnary(ctx, req)
}

func (c *departmentServiceClient) DeleteDepartment(ctx context.Context, req *connect.Request[DeleteDepartmentRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteDepartment.CallUnary(ctx, req)
}

// DepartmentServiceHandler is an implementation of the officeplan.v1.DepartmentService service.
type DepartmentServiceHandler interface {
	ListDepartments(context.Context, *connect.Request[ListDepartmentsRequest]) (*connect.Response[ListDepartmentsResponse], error)
	CreateDepartment(context.Context, *connect.Request[CreateDepartmentRequest]) (*connect.Response[CreateDepartmentResponse], error)
	UpdateDepartment(context.Context, *connect.Request[UpdateDepartmentRequest]) (*connect.Response[UpdateDepartmentResponse], error)
	DeleteDepartment(context.Context, *connect.Request[DeleteDepartmentRequest]) (*connect.Response[emptypb.Empty], error)
}

func NewDepartmentServiceHandler(svc DepartmentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
	listDepartments := connect.NewUnaryHandler(
		DepartmentServiceListDepartmentsProcedure, svc.ListDepartments,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	createDepartment := connect.NewUnaryHandler(DepartmentServiceCreateDepartmentProcedure, svc.CreateDepartment, opts...)
	updateDepartment := connect.NewUnaryHandler(DepartmentServiceUpdateDepartmentProcedure, svc.UpdateDepartment, opts...)
	deleteDepartment := connect.NewUnaryHandler(DepartmentServiceDeleteDepartmentProcedure, svc.DeleteDepartment, opts...)

	return "/" + DepartmentServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DepartmentServiceListDepartmentsProcedure:
			listDepartments.ServeHTTP(w, r)
		case DepartmentServiceCreateDepartmentProcedure:
			createDepartment.ServeHTTP(w, r)
		case DepartmentServiceUpdateDepartmentProcedure:
			updateDepartment.ServeHTTP(w, r)
		case DepartmentServiceDeleteDepartmentProcedure:
			deleteDepartment.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedDepartmentServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedDepartmentServiceHandler struct{}

func (UnimplementedDepartmentServiceHandler) ListDepartments(context.Context, *connect.Request[ListDepartmentsRequest]) (*connect.Response[ListDepartmentsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.DepartmentService.ListDepartments is not implemented"))
}

func (UnimplementedDepartmentServiceHandler) CreateDepartment(context.Context, *connect.Request[CreateDepartmentRequest]) (*connect.Response[CreateDepartmentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.DepartmentService.CreateDepartment is not implemented"))
}

func (UnimplementedDepartmentServiceHandler) UpdateDepartment(context.Context, *connect.Request[UpdateDepartmentRequest]) (*connect.Response[UpdateDepartmentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.DepartmentService.UpdateDepartment is not implemented"))
}

func (UnimplementedDepartmentServiceHandler) DeleteDepartment(context.Context, *connect.Request[DeleteDepartmentRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.DepartmentService.DeleteDepartment is not implemented"))
}
