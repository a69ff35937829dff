package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
)

const AttendanceServiceName = "officeplan.v1.AttendanceService"

const (
	AttendanceServiceListAttendanceProcedure   = "/officeplan.v1.AttendanceService/ListAttendance"
	AttendanceServiceUpsertAttendanceProcedure = "/officeplan.v1.AttendanceService/UpsertAttendance"
	AttendanceServiceDeleteAttendanceProcedure = "/officeplan.v1.AttendanceService/DeleteAttendance"
	AttendanceServiceActivateCellProcedure     = "/officeplan.v1.AttendanceService/ActivateCell"
	AttendanceServiceUnlockCellProcedure       = "/officeplan.v1.AttendanceService/UnlockCell"
	AttendanceServiceGetWeekSummaryProcedure   = "/officeplan.v1.AttendanceService/GetWeekSummary"
)

// AttendanceServiceClient is a client for the officeplan.v1.AttendanceService service.
type AttendanceServiceClient interface {
	ListAttendance(context.Context, *connect.Request[ListAttendanceRequest]) (*connect.Response[ListAttendanceResponse], error)
	UpsertAttendance(context.Context, *connect.Request[UpsertAttendanceRequest]) (*connect.Response[UpsertAttendanceResponse], error)
	DeleteAttendance(context.Context, *connect.Request[DeleteAttendanceRequest]) (*connect.Response[emptypb.Empty], error)
	ActivateCell(context.Context, *connect.Request[ActivateCellRequest]) (*connect.Response[ActivateCellResponse], error)
	UnlockCell(context.Context, *connect.Request[UnlockCellRequest]) (*connect.Response[UnlockCellResponse], error)
	GetWeekSummary(context.Context, *connect.Request[GetWeekSummaryRequest]) (*connect.Response[GetWeekSummaryResponse], error)
}

func NewAttendanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AttendanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &attendanceServiceClient{
		listAttendance: connect.NewClient[ListAttendanceRequest, ListAttendanceResponse](
			httpClient, baseURL+AttendanceServiceListAttendanceProcedure, opts...),
		upsertAttendance: connect.NewClient[UpsertAttendanceRequest, UpsertAttendanceResponse](
			httpClient, baseURL+AttendanceServiceUpsertAttendanceProcedure, opts...),
		deleteAttendance: connect.NewClient[DeleteAttendanceRequest, emptypb.Empty](
			httpClient, baseURL+AttendanceServiceDeleteAttendanceProcedure, opts...),
		activateCell: connect.NewClient[ActivateCellRequest, ActivateCellResponse](
			httpClient, baseURL+AttendanceServiceActivateCellProcedure, opts...),
		unlockCell: connect.NewClient[UnlockCellRequest, UnlockCellResponse](
			httpClient, baseURL+AttendanceServiceUnlockCellProcedure, opts...),
		getWeekSummary: connect.NewClient[GetWeekSummaryRequest, GetWeekSummaryResponse](
			httpClient, baseURL+AttendanceServiceGetWeekSummaryProcedure, opts...),
	}
}

type attendanceServiceClient struct {
	listAttendance   *connect.Client[ListAttendanceRequest, ListAttendanceResponse]
	upsertAttendance *connect.Client[UpsertAttendanceRequest, UpsertAttendanceResponse]
	deleteAttendance *connect.Client[DeleteAttendanceRequest, emptypb.Empty]
	activateCell     *connect.Client[ActivateCellRequest, ActivateCellResponse]
	unlockCell       *connect.Client[UnlockCellRequest, UnlockCellResponse]
	getWeekSummary   *connect.Client[GetWeekSummaryRequest, GetWeekSummaryResponse]
}

func (c *attendanceServiceClient) ListAttendance(ctx context.Context, req *connect.Request[ListAttendanceRequest]) (*connect.Response[ListAttendanceResponse], error) {
	return c.listAttendance.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) UpsertAttendance(ctx context.Context, req *connect.Request[UpsertAttendanceRequest]) (*connect.Response[UpsertAttendanceResponse], error) {
	return c.upsertAttendance.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) DeleteAttendance(ctx context.Context, req *connect.Request[DeleteAttendanceRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteAttendance.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) ActivateCell(ctx context.Context, req *connect.Request[ActivateCellRequest]) (*connect.Response[ActivateCellResponse], error) {
	return c.activateCell.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) UnlockCell(ctx context.Context, req *connect.Request[UnlockCellRequest]) (*connect.Response[UnlockCellResponse], error) {
	return c.unlockCell.CallUnary(ctx, req)
}

func (c *attendanceServiceClient) GetWeekSummary(ctx context.Context, req *connect.Request[GetWeekSummaryRequest]) (*connect.Response[GetWeekSummaryResponse], error) {
	return c.getWeekSummary.CallUnary(ctx, req)
}

// AttendanceServiceHandler is an implementation of the officeplan.v1.AttendanceService service.
type AttendanceServiceHandler interface {
	ListAttendance(context.Context, *connect.Request[ListAttendanceRequest]) (*connect.Response[ListAttendanceResponse], error)
	UpsertAttendance(context.Context, *connect.Request[UpsertAttendanceRequest]) (*connect.Response[UpsertAttendanceResponse], error)
	DeleteAttendance(context.Context, *connect.Request[DeleteAttendanceRequest]) (*connect.Response[emptypb.Empty], error)
	ActivateCell(context.Context, *connect.Request[ActivateCellRequest]) (*connect.Response[ActivateCellResponse], error)
	UnlockCell(context.Context, *connect.Request[UnlockCellRequest]) (*connect.Response[UnlockCellResponse], error)
	GetWeekSummary(context.Context, *connect.Request[GetWeekSummaryRequest]) (*connect.Response[GetWeekSummaryResponse], error)
}

func NewAttendanceServiceHandler(svc AttendanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
	readOnly := append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))

	listAttendance := connect.NewUnaryHandler(AttendanceServiceListAttendanceProcedure, svc.ListAttendance, readOnly...)
	upsertAttendance := connect.NewUnaryHandler(AttendanceServiceUpsertAttendanceProcedure, svc.UpsertAttendance, opts...)
	deleteAttendance := connect.NewUnaryHandler(AttendanceServiceDeleteAttendanceProcedure, svc.DeleteAttendance, opts...)
	activateCell := connect.NewUnaryHandler(AttendanceServiceActivateCellProcedure, svc.ActivateCell, opts...)
	unlockCell := connect.NewUnaryHandler(AttendanceServiceUnlockCellProcedure, svc.UnlockCell, opts...)
	getWeekSummary := connect.NewUnaryHandler(AttendanceServiceGetWeekSummaryProcedure, svc.GetWeekSummary, readOnly...)

	return "/" + AttendanceServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AttendanceServiceListAttendanceProcedure:
			listAttendance.ServeHTTP(w, r)
		case AttendanceServiceUpsertAttendanceProcedure:
			upsertAttendance.ServeHTTP(w, r)
		case AttendanceServiceDeleteAttendanceProcedure:
			deleteAttendance.ServeHTTP(w, r)
		case AttendanceServiceActivateCellProcedure:
			activateCell.ServeHTTP(w, r)
		case AttendanceServiceUnlockCellProcedure:
			unlockCell.ServeHTTP(w, r)
		case AttendanceServiceGetWeekSummaryProcedure:
			getWeekSummary.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAttendanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAttendanceServiceHandler struct{}

func (UnimplementedAttendanceServiceHandler) ListAttendance(context.Context, *connect.Request[ListAttendanceRequest]) (*connect.Response[ListAttendanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.AttendanceService.ListAttendance is not implemented"))
}

func (UnimplementedAttendanceServiceHandler) UpsertAttendance(context.Context, *connect.Request[UpsertAttendanceRequest]) (*connect.Response[UpsertAttendanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.AttendanceService.UpsertAttendance is not implemented"))
}

func (UnimplementedAttendanceServiceHandler) DeleteAttendance(context.Context, *connect.Request[DeleteAttendanceRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.AttendanceService.DeleteAttendance is not implemented"))
}

func (UnimplementedAttendanceServiceHandler) ActivateCell(context.Context, *connect.Request[ActivateCellRequest]) (*connect.Response[ActivateCellResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.AttendanceService.ActivateCell is not implemented"))
}

func (UnimplementedAttendanceServiceHandler) UnlockCell(context.Context, *connect.Request[UnlockCellRequest]) (*connect.Response[UnlockCellResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.AttendanceService.UnlockCell is not implemented"))
}

func (UnimplementedAttendanceServiceHandler) GetWeekSummary(context.Context, *connect.Request[GetWeekSummaryRequest]) (*connect.Response[GetWeekSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("officeplan.v1.AttendanceService.GetWeekSummary is not implemented"))
}
