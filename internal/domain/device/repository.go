package device

import "context"

// Repository defines persistent storage operations for device documents.
type Repository interface {
	ListDevices(ctx context.Context) ([]Device, error)
	GetDevice(ctx context.Context, id string) (Device, error)
	InsertDevice(ctx context.Context, d Device) error
	ReplaceDevice(ctx context.Context, d Device) error
	DeleteDevice(ctx context.Context, id string) error
	CountDevices(ctx context.Context) (int, error)
}
