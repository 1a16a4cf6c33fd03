package device

import "context"

// Service exposes device use-cases used by the HTTP layer.
type Service interface {
	ListDevices(ctx context.Context) ([]Device, error)
	CreateDevice(ctx context.Context, in Input) (Device, error)
	ToggleDevice(ctx context.Context, id string) (Device, error)
	UpdateDevice(ctx context.Context, id string, in Input) (Device, error)
	DeleteDevice(ctx context.Context, id string) error
}
