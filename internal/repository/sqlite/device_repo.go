package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	"github.com/micro-ha/smarthome-dashboard/internal/storage"
)

// DeviceRepository is sqlite implementation of device.Repository. Devices are
// stored as JSON documents keyed by id.
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates sqlite-backed device repository.
func NewDeviceRepository(db *DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// ListDevices returns every device in insertion order.
func (r *DeviceRepository) ListDevices(ctx context.Context) ([]devicedomain.Device, error) {
	rows, err := r.db.storage.ListDeviceDocs(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]devicedomain.Device, 0, len(rows))
	for _, row := range rows {
		item, err := decodeDevice(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *DeviceRepository) GetDevice(ctx context.Context, id string) (devicedomain.Device, error) {
	row, err := r.db.storage.GetDeviceDoc(ctx, id)
	if err != nil {
		return devicedomain.Device{}, mapDeviceErr(err)
	}
	return decodeDevice(row)
}

func (r *DeviceRepository) InsertDevice(ctx context.Context, d devicedomain.Device) error {
	row, err := encodeDevice(d)
	if err != nil {
		return err
	}
	return r.db.storage.InsertDeviceDoc(ctx, row)
}

func (r *DeviceRepository) ReplaceDevice(ctx context.Context, d devicedomain.Device) error {
	row, err := encodeDevice(d)
	if err != nil {
		return err
	}
	return mapDeviceErr(r.db.storage.ReplaceDeviceDoc(ctx, row))
}

func (r *DeviceRepository) DeleteDevice(ctx context.Context, id string) error {
	return mapDeviceErr(r.db.storage.DeleteDeviceDoc(ctx, id))
}

func (r *DeviceRepository) CountDevices(ctx context.Context) (int, error) {
	return r.db.storage.CountDeviceDocs(ctx)
}

func encodeDevice(d devicedomain.Device) (storage.DeviceRow, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return storage.DeviceRow{}, fmt.Errorf("encode device %s: %w", d.ID, err)
	}
	return storage.DeviceRow{ID: d.ID, DocJSON: doc, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}, nil
}

func decodeDevice(row storage.DeviceRow) (devicedomain.Device, error) {
	var d devicedomain.Device
	if err := json.Unmarshal(row.DocJSON, &d); err != nil {
		return devicedomain.Device{}, fmt.Errorf("decode device %s: %w", row.ID, err)
	}
	d.ID = row.ID
	return d, nil
}

func mapDeviceErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return devicedomain.ErrDeviceNotFound
	}
	return err
}
