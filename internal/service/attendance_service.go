package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/officeplan/internal/auth"
	"github.com/mmynk/officeplan/internal/capacity"
	"github.com/mmynk/officeplan/internal/ledger"
	"github.com/mmynk/officeplan/internal/metrics"
	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/internal/transition"
	"github.com/mmynk/officeplan/pkg/api"
)

var (
	errEntryNotFound = errors.New("no attendance entry for this employee and date")
	errNotLocked     = errors.New("entry is not locked for this device")
)

// AttendanceService implements the Connect AttendanceService.
//
// Every mutation loads a fresh snapshot of the ledger, checks the ownership
// gate against it and writes the result back. Nothing coordinates concurrent
// mutations of the same cell; the last write wins.
type AttendanceService struct {
	api.UnimplementedAttendanceServiceHandler
	store  storage.Store
	ledger *ledger.Ledger
	grants *auth.GrantIssuer
}

func NewAttendanceService(store storage.Store, l *ledger.Ledger, grants *auth.GrantIssuer) *AttendanceService {
	return &AttendanceService{store: store, ledger: l, grants: grants}
}

// ListAttendance returns the entries for one date, for one employee within an
// optional date range, or all of them.
func (s *AttendanceService) ListAttendance(ctx context.Context, req *connect.Request[api.ListAttendanceRequest]) (*connect.Response[api.ListAttendanceResponse], error) {
	msg := req.Msg
	deviceID := getDeviceID(ctx)

	for _, d := range []string{msg.Date, msg.StartDate, msg.EndDate} {
		if d == "" {
			continue
		}
		if _, err := parseDate(d); err != nil {
			return nil, err
		}
	}

	var (
		entries []models.AttendanceEntry
		err     error
	)
	switch {
	case msg.Date != "":
		entries, err = s.ledger.ForDate(ctx, msg.Date)
	case msg.EmployeeID != "":
		entries, err = s.ledger.ForEmployee(ctx, msg.EmployeeID, msg.StartDate, msg.EndDate)
	default:
		entries, err = s.ledger.ListAll(ctx)
	}
	if err != nil {
		slog.Error("ListAttendance failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListAttendanceResponse{
		Entries: toAPIEntries(entries, deviceID),
	}), nil
}

// UpsertAttendance sets the status of a cell directly. It is subject to the
// same ownership gate as ActivateCell.
func (s *AttendanceService) UpsertAttendance(ctx context.Context, req *connect.Request[api.UpsertAttendanceRequest]) (*connect.Response[api.UpsertAttendanceResponse], error) {
	msg := req.Msg
	slog.Info("UpsertAttendance request received",
		"employee_id", msg.EmployeeID,
		"date", msg.Date,
		"status", msg.Status,
	)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := parseDate(msg.Date); err != nil {
		return nil, err
	}
	status, err := models.ParseStatus(msg.Status)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if _, err := s.store.GetEmployee(ctx, msg.EmployeeID); err != nil {
		return nil, storeError(err)
	}

	key := models.EntryKey{EmployeeID: msg.EmployeeID, Date: msg.Date}
	existing, _, err := s.lookup(ctx, key)
	if err != nil {
		return nil, toConnectError(err)
	}
	release, err := s.authorize(existing, deviceID, key, msg.UnlockToken, auth.Action{Op: auth.OpUpsert, Status: status})
	if err != nil {
		slog.Warn("UpsertAttendance refused", "entry", key.String(), "device_id", deviceID, "error", err)
		return nil, toConnectError(err)
	}

	entry := newEntry(existing, key, deviceID, msg.Password)
	entry.Status = status

	saved, err := s.ledger.Upsert(ctx, entry)
	if err != nil {
		release()
		slog.Error("UpsertAttendance failed", "entry", key.String(), "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UpsertAttendance successful", "entry", key.String(), "status", saved.Status)

	return connect.NewResponse(&api.UpsertAttendanceResponse{Entry: toAPIEntry(&saved, deviceID)}), nil
}

// DeleteAttendance removes a cell. Deleting an empty cell succeeds.
func (s *AttendanceService) DeleteAttendance(ctx context.Context, req *connect.Request[api.DeleteAttendanceRequest]) (*connect.Response[emptypb.Empty], error) {
	msg := req.Msg
	slog.Info("DeleteAttendance request received", "employee_id", msg.EmployeeID, "date", msg.Date)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := parseDate(msg.Date); err != nil {
		return nil, err
	}

	key := models.EntryKey{EmployeeID: msg.EmployeeID, Date: msg.Date}
	existing, _, err := s.lookup(ctx, key)
	if err != nil {
		return nil, toConnectError(err)
	}
	if existing == nil {
		return connect.NewResponse(&emptypb.Empty{}), nil
	}
	release, err := s.authorize(existing, deviceID, key, msg.UnlockToken, auth.Action{Op: auth.OpDelete})
	if err != nil {
		slog.Warn("DeleteAttendance refused", "entry", key.String(), "device_id", deviceID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.ledger.Delete(ctx, key); err != nil {
		release()
		slog.Error("DeleteAttendance failed", "entry", key.String(), "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("DeleteAttendance successful", "entry", key.String())

	return connect.NewResponse(&emptypb.Empty{}), nil
}

// ActivateCell advances the status of one cell by one step of the cycle
// none -> present -> present_with_dog -> absent -> present.
//
// When the cell belongs to another device, the call fails with
// ReasonPasswordRequired or ReasonDeviceLocked. A grant from UnlockCell passed
// as UnlockToken authorizes exactly this one activation.
func (s *AttendanceService) ActivateCell(ctx context.Context, req *connect.Request[api.ActivateCellRequest]) (*connect.Response[api.ActivateCellResponse], error) {
	msg := req.Msg
	slog.Info("ActivateCell request received", "employee_id", msg.EmployeeID, "date", msg.Date)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := parseDate(msg.Date); err != nil {
		return nil, err
	}
	if _, err := s.store.GetEmployee(ctx, msg.EmployeeID); err != nil {
		slog.Error("ActivateCell failed", "employee_id", msg.EmployeeID, "error", err)
		return nil, storeError(err)
	}

	key := models.EntryKey{EmployeeID: msg.EmployeeID, Date: msg.Date}
	existing, snapshot, err := s.lookup(ctx, key)
	if err != nil {
		slog.Error("ActivateCell failed", "entry", key.String(), "error", err)
		return nil, toConnectError(err)
	}
	release, err := s.authorize(existing, deviceID, key, msg.UnlockToken, auth.Action{Op: auth.OpActivate})
	if err != nil {
		slog.Warn("ActivateCell refused", "entry", key.String(), "device_id", deviceID, "error", err)
		return nil, toConnectError(err)
	}

	outcome := transition.Activate(snapshot, key.EmployeeID, key.Date)

	entry := newEntry(existing, key, deviceID, msg.Password)
	entry.Status = outcome.Next

	saved, err := s.ledger.Upsert(ctx, entry)
	if err != nil {
		release()
		slog.Error("ActivateCell failed", "entry", key.String(), "error", err)
		return nil, toConnectError(err)
	}

	metrics.Transitions.WithLabelValues(metrics.StatusLabel(outcome.Previous), string(outcome.Next)).Inc()
	if outcome.OverCapacity {
		metrics.CapacityAdvisories.Inc()
		slog.Warn("Date is over capacity",
			"date", key.Date,
			"active", outcome.ProjectedActive,
			"capacity", capacity.MaxActivePerDay,
		)
	}

	slog.Info("ActivateCell successful",
		"entry", key.String(),
		"from", metrics.StatusLabel(outcome.Previous),
		"to", outcome.Next,
		"created", outcome.Created(),
	)

	resp := &api.ActivateCellResponse{
		Entry:        toAPIEntry(&saved, deviceID),
		Created:      outcome.Created(),
		OverCapacity: outcome.OverCapacity,
		ActiveCount:  outcome.ProjectedActive,
		DogCount:     outcome.ProjectedDogs,
	}
	if outcome.Previous != nil {
		resp.PreviousStatus = string(*outcome.Previous)
	}
	return connect.NewResponse(resp), nil
}

// UnlockCell answers the password challenge of a cell owned by another
// device. A correct password yields a short-lived grant for one mutation of
// that cell by the calling device.
func (s *AttendanceService) UnlockCell(ctx context.Context, req *connect.Request[api.UnlockCellRequest]) (*connect.Response[api.UnlockCellResponse], error) {
	msg := req.Msg
	slog.Info("UnlockCell request received", "employee_id", msg.EmployeeID, "date", msg.Date)

	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := parseDate(msg.Date); err != nil {
		return nil, err
	}

	action, err := parseAction(msg.Operation, msg.Status)
	if err != nil {
		return nil, err
	}

	key := models.EntryKey{EmployeeID: msg.EmployeeID, Date: msg.Date}
	existing, _, err := s.lookup(ctx, key)
	if err != nil {
		return nil, toConnectError(err)
	}
	if existing == nil {
		return nil, connect.NewError(connect.CodeNotFound, errEntryNotFound)
	}
	if auth.CanDirectlyModify(existing, deviceID) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errNotLocked)
	}

	if err := auth.VerifyPassword(existing, msg.Password); err != nil {
		result := "wrong_password"
		if errors.Is(err, auth.ErrDeviceLocked) {
			result = "device_locked"
		}
		metrics.UnlockAttempts.WithLabelValues(result).Inc()
		slog.Warn("UnlockCell refused", "entry", key.String(), "device_id", deviceID, "result", result)
		return nil, toConnectError(err)
	}

	token, expires, err := s.grants.Issue(key, deviceID, action)
	if err != nil {
		slog.Error("UnlockCell failed", "entry", key.String(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	metrics.UnlockAttempts.WithLabelValues("granted").Inc()

	slog.Info("UnlockCell successful", "entry", key.String(), "device_id", deviceID, "operation", action.Op, "expires_at", expires)

	return connect.NewResponse(&api.UnlockCellResponse{UnlockToken: token, ExpiresAt: expires}), nil
}

// GetWeekSummary reports dog and headcount figures for Monday to Friday of
// the week containing Date, or of the current week when Date is empty.
func (s *AttendanceService) GetWeekSummary(ctx context.Context, req *connect.Request[api.GetWeekSummaryRequest]) (*connect.Response[api.GetWeekSummaryResponse], error) {
	day := s.ledger.Now()
	if req.Msg.Date != "" {
		var err error
		if day, err = parseDate(req.Msg.Date); err != nil {
			return nil, err
		}
	}

	entries, err := s.ledger.ListAll(ctx)
	if err != nil {
		slog.Error("GetWeekSummary failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetWeekSummaryResponse{
		WeekStart:       models.FormatDate(models.WeekStart(day)),
		Days:            toAPIDays(capacity.Week(entries, day)),
		MaxDogsPerDay:   capacity.MaxDogsPerDay,
		MaxActivePerDay: capacity.MaxActivePerDay,
	}), nil
}

// lookup loads a fresh snapshot and finds the entry for key in it.
func (s *AttendanceService) lookup(ctx context.Context, key models.EntryKey) (*models.AttendanceEntry, []models.AttendanceEntry, error) {
	snapshot, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ledger.Find(snapshot, key.EmployeeID, key.Date), snapshot, nil
}

// authorize applies the ownership gate. A locked entry with a password may
// be modified once by redeeming an unlock grant for action. The returned
// release hands the grant back and must be called when the write fails.
func (s *AttendanceService) authorize(existing *models.AttendanceEntry, deviceID string, key models.EntryKey, unlockToken string, action auth.Action) (release func(), err error) {
	err = auth.Check(existing, deviceID)
	if err == nil {
		return func() {}, nil
	}
	if errors.Is(err, auth.ErrPasswordRequired) && unlockToken != "" {
		return s.grants.Redeem(unlockToken, key, deviceID, action)
	}
	return nil, err
}

// parseAction maps the operation named in an UnlockCell request to the
// action its grant authorizes.
func parseAction(operation, status string) (auth.Action, error) {
	switch operation {
	case "", api.OperationActivate:
		return auth.Action{Op: auth.OpActivate}, nil
	case api.OperationDelete:
		return auth.Action{Op: auth.OpDelete}, nil
	case api.OperationUpsert:
		st, err := models.ParseStatus(status)
		if err != nil {
			return auth.Action{}, invalidArgument(err)
		}
		return auth.Action{Op: auth.OpUpsert, Status: st}, nil
	default:
		return auth.Action{}, invalidArgument(fmt.Errorf("unknown operation %q", operation))
	}
}

// newEntry returns the entry to write for key. An existing entry keeps its
// owner and password; a new one is owned by deviceID and takes password.
func newEntry(existing *models.AttendanceEntry, key models.EntryKey, deviceID, password string) models.AttendanceEntry {
	if existing != nil {
		return *existing
	}
	return models.AttendanceEntry{
		EmployeeID: key.EmployeeID,
		Date:       key.Date,
		OwnerID:    deviceID,
		Password:   password,
	}
}
