package device

import (
	"context"
	"errors"
	"testing"
	"time"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	"github.com/micro-ha/smarthome-dashboard/internal/logging"
)

type memoryRepo struct {
	order []string
	items map[string]devicedomain.Device
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]devicedomain.Device{}}
}

func (r *memoryRepo) ListDevices(ctx context.Context) ([]devicedomain.Device, error) {
	_ = ctx
	out := make([]devicedomain.Device, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *memoryRepo) GetDevice(ctx context.Context, id string) (devicedomain.Device, error) {
	_ = ctx
	d, ok := r.items[id]
	if !ok {
		return devicedomain.Device{}, devicedomain.ErrDeviceNotFound
	}
	return d, nil
}

func (r *memoryRepo) InsertDevice(ctx context.Context, d devicedomain.Device) error {
	_ = ctx
	r.order = append(r.order, d.ID)
	r.items[d.ID] = d
	return nil
}

func (r *memoryRepo) ReplaceDevice(ctx context.Context, d devicedomain.Device) error {
	_ = ctx
	if _, ok := r.items[d.ID]; !ok {
		return devicedomain.ErrDeviceNotFound
	}
	r.items[d.ID] = d
	return nil
}

func (r *memoryRepo) DeleteDevice(ctx context.Context, id string) error {
	_ = ctx
	if _, ok := r.items[id]; !ok {
		return devicedomain.ErrDeviceNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepo) CountDevices(ctx context.Context) (int, error) {
	_ = ctx
	return len(r.items), nil
}

type countsRecorder struct {
	on, off int
	calls   int
}

func (c *countsRecorder) SetDeviceCounts(on, off int) {
	c.on, c.off = on, off
	c.calls++
}

func strp(v string) *string { return &v }
func boolp(v bool) *bool { return &v }
func floatp(v float64) *float64 { return &v }

func newTestService() (*Service, *memoryRepo, *countsRecorder) {
	repo := newMemoryRepo()
	counts := &countsRecorder{}
	svc := New(repo, counts, logging.Discard())
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, counts
}

func TestCreateDeviceDefaults(t *testing.T) {
	svc, _, counts := newTestService()
	d, err := svc.CreateDevice(context.Background(), devicedomain.Input{
		Name: strp("  Desk Lamp "),
		Type: strp("light"),
		Room: strp("Office"),
	})
	if err != nil {
		t.Fatalf("CreateDevice error = %v", err)
	}
	if d.ID == "" {
		t.Fatal("expected generated id")
	}
	if d.Name != "Desk Lamp" {
		t.Fatalf("Name = %q, want %q", d.Name, "Desk Lamp")
	}
	if d.Category != devicedomain.DefaultCategory || d.Status != devicedomain.StatusOffline || d.IsOn || d.IsFavorite {
		t.Fatalf("defaults not applied: %+v", d)
	}
	if counts.calls != 1 || counts.off != 1 || counts.on != 0 {
		t.Fatalf("counts = %+v, want one off device", counts)
	}
}

func TestCreateDeviceValidation(t *testing.T) {
	tests := []struct {
		name string
		in   devicedomain.Input
		want string
	}{
		{name: "missing name", in: devicedomain.Input{Type: strp("light"), Room: strp("Office")}, want: `"name" is required`},
		{name: "empty type", in: devicedomain.Input{Name: strp("Lamp"), Type: strp(""), Room: strp("Office")}, want: `"type" is not allowed to be empty`},
		{name: "missing room", in: devicedomain.Input{Name: strp("Lamp"), Type: strp("light")}, want: `"room" is required`},
		{name: "brightness high", in: devicedomain.Input{Name: strp("Lamp"), Type: strp("light"), Room: strp("Office"), Brightness: floatp(101)}, want: `"brightness" must be less than or equal to 100`},
		{name: "battery negative", in: devicedomain.Input{Name: strp("Lamp"), Type: strp("light"), Room: strp("Office"), Battery: floatp(-1)}, want: `"battery" must be greater than or equal to 0`},
		{name: "energy negative", in: devicedomain.Input{Name: strp("Lamp"), Type: strp("light"), Room: strp("Office"), EnergyUsage: floatp(-0.5)}, want: `"energyUsage" must be greater than or equal to 0`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			_, err := svc.CreateDevice(context.Background(), tt.in)
			var verr *devicedomain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("CreateDevice error = %v, want ValidationError", err)
			}
			if verr.Message != tt.want {
				t.Fatalf("message = %q, want %q", verr.Message, tt.want)
			}
			if len(repo.items) != 0 {
				t.Fatal("invalid device must not be stored")
			}
		})
	}
}

func TestToggleDevice(t *testing.T) {
	svc, _, counts := newTestService()
	ctx := context.Background()
	d, _ := svc.CreateDevice(ctx, devicedomain.Input{Name: strp("Fan"), Type: strp("automation"), Room: strp("Bathroom")})

	toggled, err := svc.ToggleDevice(ctx, d.ID)
	if err != nil {
		t.Fatalf("ToggleDevice error = %v", err)
	}
	if !toggled.IsOn {
		t.Fatal("expected device on after first toggle")
	}
	if counts.on != 1 || counts.off != 0 {
		t.Fatalf("counts = %+v, want one on device", counts)
	}
	toggled, _ = svc.ToggleDevice(ctx, d.ID)
	if toggled.IsOn {
		t.Fatal("expected device off after second toggle")
	}
	if _, err := svc.ToggleDevice(ctx, "missing"); !errors.Is(err, devicedomain.ErrDeviceNotFound) {
		t.Fatalf("ToggleDevice(missing) error = %v, want ErrDeviceNotFound", err)
	}
}

func TestUpdateDeviceMergesFields(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	d, _ := svc.CreateDevice(ctx, devicedomain.Input{
		Name:        strp("Thermostat"),
		Type:        strp("thermostat"),
		Room:        strp("Living Room"),
		Temperature: floatp(22),
		IsFavorite:  boolp(true),
	})

	updated, err := svc.UpdateDevice(ctx, d.ID, devicedomain.Input{
		Name: strp("Thermostat"),
		Type: strp("thermostat"),
		Room: strp("Bedroom"),
		IsOn: boolp(true),
	})
	if err != nil {
		t.Fatalf("UpdateDevice error = %v", err)
	}
	if updated.Room != "Bedroom" || !updated.IsOn {
		t.Fatalf("UpdateDevice = %+v, want room and power replaced", updated)
	}
	if updated.Temperature == nil || *updated.Temperature != 22 || !updated.IsFavorite {
		t.Fatalf("UpdateDevice dropped fields absent from the payload: %+v", updated)
	}

	_, err = svc.UpdateDevice(ctx, d.ID, devicedomain.Input{Name: strp("Thermostat")})
	var verr *devicedomain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("partial update error = %v, want ValidationError", err)
	}
	if _, err := svc.UpdateDevice(ctx, "missing", devicedomain.Input{Name: strp("x"), Type: strp("y"), Room: strp("z")}); !errors.Is(err, devicedomain.ErrDeviceNotFound) {
		t.Fatalf("UpdateDevice(missing) error = %v, want ErrDeviceNotFound", err)
	}
}

func TestDeleteDevice(t *testing.T) {
	svc, repo, counts := newTestService()
	ctx := context.Background()
	d, _ := svc.CreateDevice(ctx, devicedomain.Input{Name: strp("Lamp"), Type: strp("light"), Room: strp("Office")})

	if err := svc.DeleteDevice(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDevice error = %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("device still stored after delete")
	}
	if counts.on != 0 || counts.off != 0 {
		t.Fatalf("counts = %+v, want zero", counts)
	}
	if err := svc.DeleteDevice(ctx, d.ID); !errors.Is(err, devicedomain.ErrDeviceNotFound) {
		t.Fatalf("second delete error = %v, want ErrDeviceNotFound", err)
	}
}
