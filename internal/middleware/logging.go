package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/officeplan/pkg/api"
)

// LoggingInterceptor logs one line per RPC with the calling device and the
// attendance cell it targets. Refusals by the ownership gate are logged at
// Info with the reason detail, so a password challenge, a device lock and a
// spent grant can be told apart. Storage and internal failures are errors.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"device_id", GetDeviceID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			attrs = append(attrs, cellAttrs(req.Any())...)

			if err == nil {
				slog.Debug("RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String())
			if reason := api.Reason(err); reason != "" {
				attrs = append(attrs, "reason", reason)
			}

			switch code {
			case connect.CodeUnauthenticated, connect.CodePermissionDenied, connect.CodeFailedPrecondition:
				slog.Info("RPC refused", attrs...)
			case connect.CodeUnavailable, connect.CodeInternal, connect.CodeUnknown, connect.CodeDeadlineExceeded:
				slog.Error("RPC failed", append(attrs, "error", err)...)
			default:
				slog.Warn("RPC rejected", append(attrs, "error", err)...)
			}
			return resp, err
		}
	}
}

// cellAttrs returns the employee and date of requests aimed at one cell.
func cellAttrs(msg any) []any {
	var employeeID, date string
	switch m := msg.(type) {
	case *api.ActivateCellRequest:
		employeeID, date = m.EmployeeID, m.Date
	case *api.UnlockCellRequest:
		employeeID, date = m.EmployeeID, m.Date
	case *api.UpsertAttendanceRequest:
		employeeID, date = m.EmployeeID, m.Date
	case *api.DeleteAttendanceRequest:
		employeeID, date = m.EmployeeID, m.Date
	default:
		return nil
	}
	return []any{"employee_id", employeeID, "date", date}
}
