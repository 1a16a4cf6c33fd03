package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/localcache"
	"github.com/micro-ha/smarthome-dashboard/internal/logging"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/remote"
	"github.com/micro-ha/smarthome-dashboard/internal/syncstate"
)

type fakeBackend struct {
	createErr error
	resets    []string
}

func (f *fakeBackend) Login(_ context.Context, email, _ string) (remote.AuthResult, error) {
	return remote.AuthResult{Token: "tok", User: remote.RemoteUser{ID: "u1", Username: "demo", Email: email}}, nil
}

func (f *fakeBackend) Register(_ context.Context, email, _ string, name string) (remote.AuthResult, error) {
	return remote.AuthResult{Token: "tok", User: remote.RemoteUser{ID: "u2", Username: name, Email: email}}, nil
}

func (f *fakeBackend) ChangePassword(context.Context, string, string) (remote.Ack, error) {
	return remote.Ack{Message: "Password changed successfully"}, nil
}

func (f *fakeBackend) DeleteAccount(context.Context) (remote.Ack, error) {
	return remote.Ack{Message: "Account deleted successfully"}, nil
}

func (f *fakeBackend) Logout() {}

func (f *fakeBackend) CreateDevice(_ context.Context, in remote.DeviceInput) (remote.DeviceRecord, error) {
	if f.createErr != nil {
		return remote.DeviceRecord{}, f.createErr
	}
	return remote.DeviceRecord{ID: "remote-1", Name: in.Name, Type: in.Type, Room: in.Room}, nil
}

func (f *fakeBackend) ResetPassword(_ context.Context, username, _, _ string) (remote.Ack, error) {
	f.resets = append(f.resets, username)
	return remote.Ack{Message: "Password reset successfully"}, nil
}

func (f *fakeBackend) GetDevices(context.Context) ([]remote.DeviceRecord, error) {
	return []remote.DeviceRecord{{ID: "abc", Name: "Lamp", Type: "light", Room: "Office", IsOn: true, Status: "online"}}, nil
}

func (f *fakeBackend) Dashboard(context.Context) (remote.Dashboard, error) {
	return remote.Dashboard{
		User:       model.DashboardUser{Name: "Amalia", Plan: "Free", ActiveDevices: 3, Rooms: 2},
		Categories: []model.Category{{ID: "lighting", Name: "Lighting", DeviceCount: 4}},
	}, nil
}

type harness struct {
	app     *App
	state   *syncstate.Service
	backend *fakeBackend
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	cache := localcache.New(localcache.NewMemoryStore(), logging.Discard())
	backend := &fakeBackend{}
	state := syncstate.New(cache, backend, logging.Discard(), syncstate.Options{
		Seed:     true,
		Now:      func() time.Time { return now },
		Location: time.UTC,
	})
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &harness{
		app:     New(state, backend, out, errOut, logging.Discard()),
		state:   state,
		backend: backend,
		out:     out,
		errOut:  errOut,
	}
}

func (h *harness) run(t *testing.T, args ...string) string {
	t.Helper()
	h.out.Reset()
	if err := h.app.Run(context.Background(), args); err != nil {
		t.Fatalf("Run(%v) error = %v, stderr = %s", args, err, h.errOut.String())
	}
	return h.out.String()
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	h := newHarness(t)
	err := h.app.Run(context.Background(), []string{"dance"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("Run(dance) error = %v, want ErrUsage", err)
	}
	if !strings.Contains(h.errOut.String(), "usage: dashboard COMMAND") {
		t.Fatalf("stderr = %q, want usage listing", h.errOut.String())
	}
}

func TestShowRequiresSignIn(t *testing.T) {
	h := newHarness(t)
	if out := h.run(t, "show", "history"); !strings.Contains(out, "Sign in") {
		t.Fatalf("signed-out history = %q, want welcome screen", out)
	}

	h.run(t, "login", "-email", "demo@example.com", "-password", "secret1")
	if out := h.run(t, "show"); !strings.Contains(out, "Devices: 8 total, 5 active") {
		t.Fatalf("dashboard = %q", out)
	}
}

func TestDeviceCommands(t *testing.T) {
	h := newHarness(t)
	h.run(t, "login", "-email", "demo@example.com", "-password", "secret1")

	if out := h.run(t, "toggle", "device-5"); out != "Kitchen Speaker is now on\n" {
		t.Fatalf("toggle output = %q", out)
	}
	h.run(t, "set", "device-1", "brightness", "40")
	d, err := h.state.Device("device-1")
	if err != nil {
		t.Fatalf("Device error = %v", err)
	}
	if d.Brightness == nil || *d.Brightness != 40 {
		t.Fatalf("brightness = %v, want 40", d.Brightness)
	}

	h.run(t, "update-device", "device-2", "-name", "Hall Thermostat", "-status", "off")
	d, _ = h.state.Device("device-2")
	if d.Name != "Hall Thermostat" || d.Status != model.StatusOff {
		t.Fatalf("updated device = %+v", d)
	}

	if out := h.run(t, "fav", "device-3"); out != "Added to favourites\n" {
		t.Fatalf("fav output = %q", out)
	}
	if out := h.run(t, "favourites"); !strings.Contains(out, "Access Control") {
		t.Fatalf("favourites = %q", out)
	}

	h.run(t, "remove-device", "device-3")
	if _, err := h.state.Device("device-3"); !errors.Is(err, syncstate.ErrDeviceNotFound) {
		t.Fatalf("Device after remove error = %v", err)
	}

	err = h.app.Run(context.Background(), []string{"set", "device-1", "brightness", "bright"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("set with text value error = %v, want ErrUsage", err)
	}
}

func TestAddDeviceKeepsLocalCopyWhenBackendFails(t *testing.T) {
	h := newHarness(t)
	h.backend.createErr = &remote.NetworkError{Err: errors.New("connection refused")}

	out := h.run(t, "add-device", "-name", "Desk Lamp", "-type", "lighting", "-room", "Office", "-on")
	if !strings.HasPrefix(out, "Added Desk Lamp (") {
		t.Fatalf("add-device output = %q", out)
	}
	if !strings.Contains(h.errOut.String(), "warning: backend did not store the device") {
		t.Fatalf("stderr = %q, want backend warning", h.errOut.String())
	}
	if n := len(h.state.Devices()); n != 9 {
		t.Fatalf("devices = %d, want 9", n)
	}
}

func TestAddDeviceRequiresFields(t *testing.T) {
	h := newHarness(t)
	err := h.app.Run(context.Background(), []string{"add-device", "-name", "Lamp"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("error = %v, want ErrUsage", err)
	}
	if !strings.Contains(err.Error(), "-room, -type") {
		t.Fatalf("error = %q, want missing flags listed", err)
	}
}

func TestRoomCommands(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "add-room", "-name", "Office", "-icon", "desk")
	if !strings.HasPrefix(out, "Added room Office (") {
		t.Fatalf("add-room output = %q", out)
	}
	if err := h.app.Run(context.Background(), []string{"add-room", "-name", "office"}); !errors.Is(err, syncstate.ErrRoomExists) {
		t.Fatalf("duplicate room error = %v", err)
	}
	h.run(t, "rename-room", "room-2", "-name", "Kitchenette")
	room, err := h.state.Room("room-2")
	if err != nil || room.Name != "Kitchenette" {
		t.Fatalf("Room(room-2) = %+v, %v", room, err)
	}
	h.run(t, "remove-room", "room-5")
	if len(h.state.Rooms()) != 5 {
		t.Fatalf("rooms = %d, want 5", len(h.state.Rooms()))
	}
}

func TestSceneAndAutomationCommands(t *testing.T) {
	h := newHarness(t)
	h.run(t, "scene", "add", "-name", "Movie Night", "-step", "device-1:off", "-step", "device-6:on:volume=30")
	scenes := h.state.Scenes()
	if len(scenes) != 1 || len(scenes[0].Devices) != 2 {
		t.Fatalf("scenes = %+v", scenes)
	}
	if out := h.run(t, "scene", "run", scenes[0].ID); out != "Scene activated, 2 devices updated\n" {
		t.Fatalf("scene run output = %q", out)
	}
	tv, _ := h.state.Device("device-6")
	if tv.Status != model.StatusOn || tv.Volume == nil || *tv.Volume != 30 {
		t.Fatalf("tv after scene = %+v", tv)
	}
	if err := h.app.Run(context.Background(), []string{"scene", "add", "-name", "Bad", "-step", "device-1:dim"}); err == nil {
		t.Fatal("expected error for unknown step action")
	}

	h.run(t, "automation", "add", "-name", "Wake up", "-trigger", "time", "-value", "07:00", "-device", "device-1")
	rules := h.state.Automations()
	if len(rules) != 1 || !rules[0].Enabled || rules[0].Action != model.AutomationTurnOn {
		t.Fatalf("automations = %+v", rules)
	}
	if out := h.run(t, "automation", "toggle", rules[0].ID); out != "Automation disabled\n" {
		t.Fatalf("toggle output = %q", out)
	}
	err := h.app.Run(context.Background(), []string{"automation", "add", "-name", "x", "-device", "device-1", "-trigger", "sunset"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("unknown trigger error = %v, want ErrUsage", err)
	}
	h.run(t, "automation", "rm", rules[0].ID)
	if len(h.state.Automations()) != 0 {
		t.Fatal("automation not removed")
	}
}

func TestHistoryExportAndClear(t *testing.T) {
	h := newHarness(t)
	h.run(t, "login", "-email", "demo@example.com", "-password", "secret1")

	out := h.run(t, "history", "export", "-out", "-")
	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(entries) != len(h.state.History()) {
		t.Fatalf("exported %d entries, want %d", len(entries), len(h.state.History()))
	}

	path := filepath.Join(t.TempDir(), "history.yaml")
	h.run(t, "history", "export", "-format", "yaml", "-out", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), "itemType:") {
		t.Fatalf("yaml export = %q", raw)
	}

	if err := h.app.Run(context.Background(), []string{"history", "clear"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("clear without -yes error = %v, want ErrUsage", err)
	}
	h.run(t, "history", "clear", "-yes")
	if n := len(h.state.History()); n != 0 {
		t.Fatalf("history after clear = %d entries", n)
	}
	if out := h.run(t, "history", "-type", "device"); !strings.Contains(out, "No activity.") {
		t.Fatalf("history view = %q", out)
	}
}

func TestProfileSet(t *testing.T) {
	h := newHarness(t)
	if err := h.app.Run(context.Background(), []string{"profile", "set", "-first", "Ada"}); !errors.Is(err, syncstate.ErrNotSignedIn) {
		t.Fatalf("profile set signed out error = %v", err)
	}
	h.run(t, "login", "-email", "demo@example.com", "-password", "secret1")
	out := h.run(t, "profile", "set", "-first", "Ada", "-last", "Lovelace", "-plan", "premium")
	if out != "Profile updated: Ada Lovelace (Premium plan, 25 devices max)\n" {
		t.Fatalf("profile set output = %q", out)
	}
}

func TestBackendCommands(t *testing.T) {
	h := newHarness(t)
	h.run(t, "reset-password", "-username", "demo", "-email", "demo@example.com", "-new", "newpass")
	if len(h.backend.resets) != 1 || h.backend.resets[0] != "demo" {
		t.Fatalf("resets = %v", h.backend.resets)
	}
	if out := h.run(t, "remote-devices"); !strings.Contains(out, "Lamp") || !strings.Contains(out, "online") {
		t.Fatalf("remote-devices = %q", out)
	}
	if out := h.run(t, "remote-dashboard"); !strings.HasPrefix(out, "Amalia (Free plan): 3 active devices in 2 rooms") {
		t.Fatalf("remote-dashboard = %q", out)
	}
}
