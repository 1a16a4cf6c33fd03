package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
	"github.com/micro-ha/smarthome-dashboard/internal/logging"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "smarthome.db"), logging.Discard())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDeviceRepositoryDocuments(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository(openTestDB(t))
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	temp := 22.5

	in := devicedomain.Device{
		ID:          "d1",
		Name:        "Smart Thermostat",
		Type:        "thermostat",
		Room:        "Living Room",
		Category:    devicedomain.DefaultCategory,
		IsOn:        true,
		Status:      devicedomain.StatusOnline,
		Temperature: &temp,
		LastUpdated: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.InsertDevice(ctx, in); err != nil {
		t.Fatalf("InsertDevice error = %v", err)
	}

	got, err := repo.GetDevice(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDevice error = %v", err)
	}
	if got.Name != in.Name || got.Temperature == nil || *got.Temperature != temp || !got.CreatedAt.Equal(now) {
		t.Fatalf("GetDevice = %+v, want %+v", got, in)
	}

	got.IsOn = false
	got.UpdatedAt = now.Add(time.Minute)
	if err := repo.ReplaceDevice(ctx, got); err != nil {
		t.Fatalf("ReplaceDevice error = %v", err)
	}
	items, err := repo.ListDevices(ctx)
	if err != nil {
		t.Fatalf("ListDevices error = %v", err)
	}
	if len(items) != 1 || items[0].IsOn {
		t.Fatalf("ListDevices = %+v, want one device switched off", items)
	}

	if err := repo.DeleteDevice(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDevice error = %v", err)
	}
	if _, err := repo.GetDevice(ctx, "d1"); !errors.Is(err, devicedomain.ErrDeviceNotFound) {
		t.Fatalf("GetDevice after delete error = %v, want ErrDeviceNotFound", err)
	}
	if err := repo.ReplaceDevice(ctx, in); !errors.Is(err, devicedomain.ErrDeviceNotFound) {
		t.Fatalf("ReplaceDevice missing error = %v, want ErrDeviceNotFound", err)
	}
}

func TestUserRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	now := time.Now().UTC()

	u := userdomain.User{ID: "u1", Username: "amalia", Email: "amalia@email.com", PasswordHash: "x", Role: userdomain.DefaultRole, CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser error = %v", err)
	}
	u.ID = "u2"
	u.Username = "other"
	if err := repo.CreateUser(ctx, u); !errors.Is(err, userdomain.ErrUserExists) {
		t.Fatalf("duplicate email error = %v, want ErrUserExists", err)
	}
	if _, err := repo.GetUser(ctx, "u2"); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("GetUser missing error = %v, want ErrUserNotFound", err)
	}
	got, err := repo.FindUserByLogin(ctx, "amalia@email.com")
	if err != nil {
		t.Fatalf("FindUserByLogin error = %v", err)
	}
	if got.Username != "amalia" || got.Role != userdomain.DefaultRole {
		t.Fatalf("FindUserByLogin = %+v", got)
	}
	if err := repo.UpdatePassword(ctx, "missing", "h", now); !errors.Is(err, userdomain.ErrUserNotFound) {
		t.Fatalf("UpdatePassword missing error = %v, want ErrUserNotFound", err)
	}
}
