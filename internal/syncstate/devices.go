package syncstate

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
	"github.com/micro-ha/smarthome-dashboard/internal/remote"
)

func (s *Service) Devices() []model.Device {
	return s.devices.Get()
}

func (s *Service) Device(id string) (model.Device, error) {
	for _, d := range s.devices.Get() {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
}

// ActiveDevices returns the devices that are switched on.
func (s *Service) ActiveDevices() []model.Device {
	out := []model.Device{}
	for _, d := range s.devices.Get() {
		if d.IsOn() {
			out = append(out, d)
		}
	}
	return out
}

func indexOfDevice(devices []model.Device, id string) int {
	for i, d := range devices {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// ToggleDevice flips the device between on and off.
func (s *Service) ToggleDevice(id string) (model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := s.devices.Get()
	i := indexOfDevice(devices, id)
	if i < 0 {
		return model.Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	now := s.now()
	devices[i].Status = devices[i].Status.Flip()
	devices[i].LastUpdated = &now
	s.devices.Set(devices)

	d := devices[i]
	s.record(model.ItemDevice, d.ID, d.Name, model.ActionDeviceToggled, "Device turned "+string(d.Status))
	return d, nil
}

// UpdateDevice merges patch into the device.
func (s *Service) UpdateDevice(id string, patch model.DevicePatch) (model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, err := s.Device(id)
	if err != nil {
		return model.Device{}, err
	}
	d, _ := s.applyDeviceUpdate(id, patch)
	s.record(model.ItemDevice, d.ID, before.Name, model.ActionDeviceUpdated, "Device settings updated")
	return d, nil
}

// applyDeviceUpdate commits a patch without recording history. s.mu must be held.
func (s *Service) applyDeviceUpdate(id string, patch model.DevicePatch) (model.Device, bool) {
	devices := s.devices.Get()
	i := indexOfDevice(devices, id)
	if i < 0 {
		return model.Device{}, false
	}
	now := s.now()
	updated := patch.Apply(devices[i])
	updated.ID = devices[i].ID
	updated.LastUpdated = &now
	devices[i] = updated
	s.devices.Set(devices)
	return updated, true
}

// SetDeviceProperty sets one numeric attribute declared by the device variant.
func (s *Service) SetDeviceProperty(id string, property model.Attribute, value float64) (model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Device(id)
	if err != nil {
		return model.Device{}, err
	}
	if !model.AttributesFor(current.Type).Has(property) {
		return model.Device{}, fmt.Errorf("%w: %s devices have no %s", ErrInvalidInput, current.Type, property)
	}
	rounded := int(math.Round(value))
	var patch model.DevicePatch
	switch property {
	case model.AttrBrightness:
		patch.Brightness = &rounded
	case model.AttrVolume:
		patch.Volume = &rounded
	case model.AttrBattery:
		patch.Battery = &rounded
	case model.AttrTemperature:
		patch.Temperature = &value
	case model.AttrEnergyUsage:
		patch.EnergyUsage = &value
	default:
		return model.Device{}, fmt.Errorf("%w: %s is not numeric", ErrInvalidInput, property)
	}

	d, _ := s.applyDeviceUpdate(id, patch)
	s.record(model.ItemDevice, d.ID, d.Name, model.ActionDeviceUpdated, propertyDetails(d, property))
	return d, nil
}

func propertyDetails(d model.Device, property model.Attribute) string {
	switch property {
	case model.AttrBrightness:
		return fmt.Sprintf("Brightness adjusted to %d%%", *d.Brightness)
	case model.AttrVolume:
		return fmt.Sprintf("Volume adjusted to %d%%", *d.Volume)
	case model.AttrBattery:
		return fmt.Sprintf("Battery set to %d%%", *d.Battery)
	case model.AttrTemperature:
		return fmt.Sprintf("Temperature set to %g°C", *d.Temperature)
	default:
		return fmt.Sprintf("Energy usage set to %g kWh", *d.EnergyUsage)
	}
}

// RemoveDevice deletes the device and drops it from the favourites.
func (s *Service) RemoveDevice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := s.devices.Get()
	i := indexOfDevice(devices, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	removed := devices[i]
	s.devices.Set(append(devices[:i], devices[i+1:]...))
	s.favourites.Update(func(ids []string) []string {
		return without(ids, id)
	})
	s.record(model.ItemDevice, removed.ID, removed.Name, model.ActionDeviceRemoved, "Device removed from "+removed.Room)
	return nil
}

// AddDevice creates the device on the backend, then locally. The local device
// and its history entry are committed even when the backend call fails,
// including when the backend rejects the input; that error is still returned.
func (s *Service) AddDevice(ctx context.Context, d model.Device) (model.Device, error) {
	d.Name = strings.TrimSpace(d.Name)
	d = d.Normalize()

	record, remoteErr := s.remote.CreateDevice(ctx, remote.DeviceInputFrom(d))
	if remoteErr != nil {
		s.logger.Warn("remote device create failed, keeping local copy", "name", d.Name, "err", remoteErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = ""
	if remoteErr == nil {
		d.ID = record.ID
	}
	if d.ID == "" {
		d.ID = utils.NewTimeOrderedID("device")
	}
	now := s.now()
	d.LastUpdated = &now
	s.devices.Update(func(devices []model.Device) []model.Device {
		return append(devices, d)
	})
	s.record(model.ItemDevice, d.ID, d.Name, model.ActionDeviceAdded, fmt.Sprintf("Device %q added to %s", d.Name, d.Room))
	return d, remoteErr
}

func (s *Service) Favourites() []string {
	return s.favourites.Get()
}

// FavouriteDevices resolves favourite ids in favourite order, skipping stale ids.
func (s *Service) FavouriteDevices() []model.Device {
	devices := s.devices.Get()
	out := []model.Device{}
	for _, id := range s.favourites.Get() {
		if i := indexOfDevice(devices, id); i >= 0 {
			out = append(out, devices[i])
		}
	}
	return out
}

// ToggleFavorite adds or removes the device from the favourites and reports
// whether it is now a favourite.
func (s *Service) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.Device(id)
	if err != nil {
		return false, err
	}
	added := false
	s.favourites.Update(func(ids []string) []string {
		if slices.Contains(ids, id) {
			return without(ids, id)
		}
		added = true
		return append(ids, id)
	})
	details := "Removed from favourites"
	if added {
		details = "Added to favourites"
	}
	s.record(model.ItemDevice, d.ID, d.Name, model.ActionDeviceUpdated, details)
	return added, nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
