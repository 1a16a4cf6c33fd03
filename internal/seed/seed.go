// Package seed fills an empty backend database with demo devices and accounts.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
)

// DeviceStore is the device side of the seed.
type DeviceStore interface {
	CountDevices(ctx context.Context) (int, error)
}

// DeviceCreator stores validated devices.
type DeviceCreator interface {
	CreateDevice(ctx context.Context, in devicedomain.Input) (devicedomain.Device, error)
}

type UserStore interface {
	CountUsers(ctx context.Context) (int, error)
}

type UserCreator interface {
	CreateUser(ctx context.Context, username, email, password string) (userdomain.User, error)
}

// Account is a demo login.
type Account struct {
	Username string
	Email    string
	Password string
}

func Accounts() []Account {
	return []Account{
		{Username: "demo", Email: "demo@smarthome.com", Password: "Demo123!"},
		{Username: "amalia", Email: "amalia@email.com", Password: "parola123"},
	}
}

func Devices() []devicedomain.Input {
	strp := func(v string) *string { return &v }
	boolp := func(v bool) *bool { return &v }
	floatp := func(v float64) *float64 { return &v }
	return []devicedomain.Input{
		{Name: strp("Access Control"), Type: strp("access"), Room: strp("Living Room"), IsOn: boolp(true), IsFavorite: boolp(true), Status: strp(devicedomain.StatusOnline)},
		{Name: strp("Smart Thermostat"), Type: strp("thermostat"), Room: strp("Living Room"), IsOn: boolp(true), IsFavorite: boolp(true), Temperature: floatp(22), Status: strp(devicedomain.StatusOnline)},
		{Name: strp("Main Lights"), Type: strp("light"), Room: strp("Living Room"), IsOn: boolp(false), IsFavorite: boolp(true), Status: strp(devicedomain.StatusOnline)},
		{Name: strp("Bathroom Fan"), Type: strp("automation"), Room: strp("Bathroom"), IsOn: boolp(false), IsFavorite: boolp(false), Status: strp(devicedomain.StatusOffline)},
	}
}

// Run seeds devices when the device table is empty and accounts when the
// user table is empty. The two checks are independent.
func Run(ctx context.Context, devices DeviceStore, deviceSvc DeviceCreator, users UserStore, userSvc UserCreator, logger *slog.Logger) error {
	n, err := devices.CountDevices(ctx)
	if err != nil {
		return fmt.Errorf("count devices: %w", err)
	}
	if n == 0 {
		for _, in := range Devices() {
			if _, err := deviceSvc.CreateDevice(ctx, in); err != nil {
				return fmt.Errorf("seed device %s: %w", *in.Name, err)
			}
		}
		logger.Info("devices seeded", "count", len(Devices()))
	}

	n, err = users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n == 0 {
		for _, account := range Accounts() {
			if _, err := userSvc.CreateUser(ctx, account.Username, account.Email, account.Password); err != nil {
				return fmt.Errorf("seed user %s: %w", account.Username, err)
			}
		}
		logger.Info("users seeded", "count", len(Accounts()))
	}
	return nil
}
