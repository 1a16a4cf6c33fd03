package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
	"github.com/micro-ha/smarthome-dashboard/internal/logging"
	"github.com/micro-ha/smarthome-dashboard/internal/services/dashboard"
)

type fakeDevices struct {
	err     error
	created devicedomain.Input
}

func (f *fakeDevices) ListDevices(context.Context) ([]devicedomain.Device, error) {
	return []devicedomain.Device{{ID: "d1", Name: "Main Lights"}}, f.err
}

func (f *fakeDevices) CreateDevice(_ context.Context, in devicedomain.Input) (devicedomain.Device, error) {
	f.created = in
	if f.err != nil {
		return devicedomain.Device{}, f.err
	}
	return devicedomain.Device{ID: "new", Name: *in.Name}, nil
}

func (f *fakeDevices) ToggleDevice(_ context.Context, id string) (devicedomain.Device, error) {
	return devicedomain.Device{ID: id, IsOn: true}, f.err
}

func (f *fakeDevices) UpdateDevice(_ context.Context, id string, _ devicedomain.Input) (devicedomain.Device, error) {
	return devicedomain.Device{ID: id}, f.err
}

func (f *fakeDevices) DeleteDevice(context.Context, string) error {
	return f.err
}

type fakeUsers struct {
	err error
}

func (f *fakeUsers) Login(context.Context, userdomain.LoginInput) (userdomain.AuthResult, error) {
	return userdomain.AuthResult{Token: "tok"}, f.err
}

func (f *fakeUsers) Register(context.Context, userdomain.RegisterInput) (userdomain.AuthResult, error) {
	return userdomain.AuthResult{Token: "tok"}, f.err
}

func (f *fakeUsers) ChangePassword(context.Context, string, userdomain.ChangePasswordInput) error {
	return f.err
}

func (f *fakeUsers) ResetPassword(context.Context, userdomain.ResetPasswordInput) error {
	return f.err
}

func (f *fakeUsers) DeleteAccount(context.Context, string) error {
	return f.err
}

func (f *fakeUsers) VerifyToken(string) (*userdomain.Claims, error) {
	return &userdomain.Claims{UserID: "u1"}, f.err
}

type fakeDashboard struct {
	err error
}

func (f fakeDashboard) Build(context.Context) (dashboard.Dashboard, error) {
	return dashboard.Dashboard{}, f.err
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func newTestAPI(devices *fakeDevices, users *fakeUsers) *API {
	return New(devices, users, fakeDashboard{}, fakePinger{}, logging.Discard())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestCreateDeviceResponses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{name: "created", body: `{"name":"Lamp","type":"light","room":"Office"}`, wantStatus: http.StatusCreated},
		{name: "unknown field", body: `{"name":"Lamp","colour":"red"}`, wantStatus: http.StatusBadRequest, wantError: `"colour" is not allowed`},
		{name: "wrong type", body: `{"name":"Lamp","isOn":"yes"}`, wantStatus: http.StatusBadRequest, wantError: `"isOn" must be a boolean`},
		{name: "broken json", body: `{"name":`, wantStatus: http.StatusBadRequest, wantError: "Invalid JSON payload"},
		{name: "validation", body: `{}`, serviceErr: &devicedomain.ValidationError{Field: "name", Message: `"name" is required`}, wantStatus: http.StatusBadRequest, wantError: `"name" is required`},
		{name: "storage failure", body: `{"name":"Lamp","type":"light","room":"Office"}`, serviceErr: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantError: "Failed to create device"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(&fakeDevices{err: tt.serviceErr}, &fakeUsers{})
			rec := httptest.NewRecorder()
			api.CreateDevice(rec, httptest.NewRequest(http.MethodPost, "/api/devices", strings.NewReader(tt.body)))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantError != "" {
				if got := decodeError(t, rec); got != tt.wantError {
					t.Fatalf("error = %q, want %q", got, tt.wantError)
				}
			}
		})
	}
}

func TestDeviceNotFound(t *testing.T) {
	api := newTestAPI(&fakeDevices{err: devicedomain.ErrDeviceNotFound}, &fakeUsers{})
	rec := httptest.NewRecorder()
	api.ToggleDevice(rec, httptest.NewRequest(http.MethodPost, "/api/devices/x/toggle", nil), "x")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec); got != "Device not found" {
		t.Fatalf("error = %q, want %q", got, "Device not found")
	}
}

func TestDeleteDeviceMessage(t *testing.T) {
	api := newTestAPI(&fakeDevices{}, &fakeUsers{})
	rec := httptest.NewRecorder()
	api.DeleteDevice(rec, httptest.NewRequest(http.MethodDelete, "/api/devices/d1", nil), "d1")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Device deleted successfully") {
		t.Fatalf("response = %d %s", rec.Code, rec.Body.String())
	}
}

func TestLoginErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantError  string
	}{
		{err: userdomain.ErrMissingCredentials, wantStatus: http.StatusBadRequest, wantError: "Email/username and password are required"},
		{err: userdomain.ErrUserNotFound, wantStatus: http.StatusUnauthorized, wantError: "User not found"},
		{err: userdomain.ErrInvalidPassword, wantStatus: http.StatusUnauthorized, wantError: "Invalid password"},
		{err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantError: "Login failed"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.wantError, func(t *testing.T) {
			api := newTestAPI(&fakeDevices{}, &fakeUsers{err: tt.err})
			rec := httptest.NewRecorder()
			api.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a","password":"b"}`)))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeError(t, rec); got != tt.wantError {
				t.Fatalf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestAccountEndpointsNeedClaims(t *testing.T) {
	api := newTestAPI(&fakeDevices{}, &fakeUsers{})
	rec := httptest.NewRecorder()
	api.DeleteAccount(rec, httptest.NewRequest(http.MethodDelete, "/api/auth/delete-account", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	api = newTestAPI(&fakeDevices{}, &fakeUsers{err: userdomain.ErrUserNotFound})
	req := httptest.NewRequest(http.MethodDelete, "/api/auth/delete-account", nil)
	req = req.WithContext(userdomain.WithClaims(req.Context(), &userdomain.Claims{UserID: "gone"}))
	rec = httptest.NewRecorder()
	api.DeleteAccount(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRegisterConflict(t *testing.T) {
	api := newTestAPI(&fakeDevices{}, &fakeUsers{err: userdomain.ErrUserExists})
	rec := httptest.NewRecorder()
	api.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"email":"a@b.com","password":"secret1"}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestHealthAndRoot(t *testing.T) {
	api := New(&fakeDevices{}, &fakeUsers{}, fakeDashboard{}, fakePinger{err: errors.New("closed")}, logging.Discard())
	rec := httptest.NewRecorder()
	api.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("health status = %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	api.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Body.String() != Banner {
		t.Fatalf("root body = %q, want %q", rec.Body.String(), Banner)
	}
}

func TestDashboardFailure(t *testing.T) {
	api := New(&fakeDevices{}, &fakeUsers{}, fakeDashboard{err: errors.New("boom")}, fakePinger{}, logging.Discard())
	rec := httptest.NewRecorder()
	api.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec); got != "Failed to load dashboard data" {
		t.Fatalf("error = %q", got)
	}
}
