package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/officeplan/pkg/api"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// DeviceIDKey is the context key for the caller's device id.
const DeviceIDKey contextKey = "device_id"

// maxDeviceIDLength bounds the header value stored as an owner id.
const maxDeviceIDLength = 128

var errDeviceIDTooLong = errors.New("device id header is too long")

// GetDeviceID extracts the device id from the context.
// Returns empty string if the caller sent none.
func GetDeviceID(ctx context.Context) string {
	deviceID, _ := ctx.Value(DeviceIDKey).(string)
	return deviceID
}

// WithDeviceID returns a copy of ctx carrying deviceID.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, DeviceIDKey, deviceID)
}

// DeviceInterceptor copies the device id header into the request context.
// The value is whatever the client claims; it is never verified.
func DeviceInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			deviceID := strings.TrimSpace(req.Header().Get(api.DeviceHeader))
			if len(deviceID) > maxDeviceIDLength {
				return nil, connect.NewError(connect.CodeInvalidArgument, errDeviceIDTooLong)
			}
			if deviceID != "" {
				ctx = WithDeviceID(ctx, deviceID)
			}
			return next(ctx, req)
		}
	}
}

// DeviceHeaderInterceptor is the client side of DeviceInterceptor: it stamps
// every outgoing request with the id returned by deviceID.
func DeviceHeaderInterceptor(deviceID func() string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set(api.DeviceHeader, deviceID())
			}
			return next(ctx, req)
		}
	}
}
