package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/officeplan/internal/auth"
	"github.com/mmynk/officeplan/internal/ledger"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/pkg/api"
)

var errDeviceRequired = fmt.Errorf("%s header required", api.DeviceHeader)

// toConnectError maps domain errors to Connect codes. Unknown errors are Internal.
func toConnectError(err error) *connect.Error {
	var cerr *connect.Error
	switch {
	case errors.As(err, &cerr):
		return cerr
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrPasswordRequired):
		return api.NewError(connect.CodeUnauthenticated, api.ReasonPasswordRequired, err)
	case errors.Is(err, auth.ErrWrongPassword):
		return api.NewError(connect.CodeUnauthenticated, api.ReasonWrongPassword, err)
	case errors.Is(err, auth.ErrInvalidGrant):
		return api.NewError(connect.CodeUnauthenticated, api.ReasonInvalidGrant, err)
	case errors.Is(err, auth.ErrDeviceLocked):
		return api.NewError(connect.CodePermissionDenied, api.ReasonDeviceLocked, err)
	case errors.Is(err, auth.ErrNotOwner):
		return api.NewError(connect.CodePermissionDenied, api.ReasonNotOwner, err)
	case errors.Is(err, ledger.ErrPersistence):
		return api.NewError(connect.CodeUnavailable, api.ReasonPersistence, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// storeError classifies an error returned directly by the store.
func storeError(err error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return toConnectError(fmt.Errorf("%w: %v", ledger.ErrPersistence, err))
}

func invalidArgument(err error) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
