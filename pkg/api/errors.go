package api

import (
	"errors"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Reasons attached to errors as a detail. Several share a Connect code, so
// clients switch on the reason rather than the code.
const (
	ReasonPasswordRequired = "PASSWORD_REQUIRED"
	ReasonWrongPassword    = "WRONG_PASSWORD"
	ReasonDeviceLocked     = "DEVICE_LOCKED"
	ReasonNotOwner         = "NOT_OWNER"
	ReasonInvalidGrant     = "INVALID_GRANT"
	ReasonPersistence      = "PERSISTENCE"
)

// NewError returns a Connect error carrying reason as a detail.
func NewError(code connect.Code, reason string, err error) *connect.Error {
	cerr := connect.NewError(code, err)
	if detail, derr := connect.NewErrorDetail(wrapperspb.String(reason)); derr == nil {
		cerr.AddDetail(detail)
	}
	return cerr
}

// Reason returns the reason attached by NewError, or "" when err carries none.
func Reason(err error) string {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return ""
	}
	for _, detail := range cerr.Details() {
		msg, err := detail.Value()
		if err != nil {
			continue
		}
		if s, ok := msg.(*wrapperspb.StringValue); ok {
			return s.GetValue()
		}
	}
	return ""
}
