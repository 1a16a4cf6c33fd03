package device

import (
	"context"
	"log/slog"
	"strings"
	"time"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
)

// CountsObserver receives on/off totals after every write.
type CountsObserver interface {
	SetDeviceCounts(on, off int)
}

// Service implements device.Service use-cases.
type Service struct {
	repo     devicedomain.Repository
	observer CountsObserver
	logger   *slog.Logger
	now      func() time.Time
}

// New creates the device service. observer may be nil.
func New(repo devicedomain.Repository, observer CountsObserver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		observer: observer,
		logger:   logger.With("component", "devices"),
		now:      utils.NowUTC,
	}
}

// ListDevices returns every stored device.
func (s *Service) ListDevices(ctx context.Context) ([]devicedomain.Device, error) {
	return s.repo.ListDevices(ctx)
}

// CreateDevice validates the payload and stores a new device with defaults
// for the omitted fields.
func (s *Service) CreateDevice(ctx context.Context, in devicedomain.Input) (devicedomain.Device, error) {
	if err := validateInput(in); err != nil {
		return devicedomain.Device{}, err
	}
	now := s.now()
	d := devicedomain.Device{
		ID:          utils.NewID(),
		Category:    devicedomain.DefaultCategory,
		Status:      devicedomain.StatusOffline,
		LastUpdated: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	d = applyInput(d, in)
	if err := s.repo.InsertDevice(ctx, d); err != nil {
		return devicedomain.Device{}, err
	}
	s.logger.Info("device created", "id", d.ID, "name", d.Name, "room", d.Room)
	s.RefreshCounts(ctx)
	return d, nil
}

// ToggleDevice flips the power state of a device.
func (s *Service) ToggleDevice(ctx context.Context, id string) (devicedomain.Device, error) {
	d, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return devicedomain.Device{}, err
	}
	d.IsOn = !d.IsOn
	d.UpdatedAt = s.now()
	if err := s.repo.ReplaceDevice(ctx, d); err != nil {
		return devicedomain.Device{}, err
	}
	s.RefreshCounts(ctx)
	return d, nil
}

// UpdateDevice validates the payload and merges its fields into the device.
// Fields absent from the payload keep their stored values.
func (s *Service) UpdateDevice(ctx context.Context, id string, in devicedomain.Input) (devicedomain.Device, error) {
	if err := validateInput(in); err != nil {
		return devicedomain.Device{}, err
	}
	d, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return devicedomain.Device{}, err
	}
	d = applyInput(d, in)
	d.UpdatedAt = s.now()
	if err := s.repo.ReplaceDevice(ctx, d); err != nil {
		return devicedomain.Device{}, err
	}
	s.RefreshCounts(ctx)
	return d, nil
}

func (s *Service) DeleteDevice(ctx context.Context, id string) error {
	if err := s.repo.DeleteDevice(ctx, id); err != nil {
		return err
	}
	s.logger.Info("device deleted", "id", id)
	s.RefreshCounts(ctx)
	return nil
}

// RefreshCounts publishes the on/off totals to the observer.
func (s *Service) RefreshCounts(ctx context.Context) {
	if s.observer == nil {
		return
	}
	items, err := s.repo.ListDevices(ctx)
	if err != nil {
		s.logger.Warn("device count refresh failed", "err", err)
		return
	}
	counts := countDevices(items)
	s.observer.SetDeviceCounts(counts.On, counts.Off)
}

func countDevices(items []devicedomain.Device) devicedomain.Counts {
	var counts devicedomain.Counts
	for _, d := range items {
		if d.IsOn {
			counts.On++
		} else {
			counts.Off++
		}
	}
	return counts
}

func applyInput(d devicedomain.Device, in devicedomain.Input) devicedomain.Device {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		d.Type = *in.Type
	}
	if in.Room != nil {
		d.Room = *in.Room
	}
	if in.Category != nil {
		d.Category = *in.Category
	}
	if in.IsOn != nil {
		d.IsOn = *in.IsOn
	}
	if in.IsFavorite != nil {
		d.IsFavorite = *in.IsFavorite
	}
	if in.Status != nil {
		d.Status = *in.Status
	}
	if in.Brightness != nil {
		d.Brightness = copyFloat(in.Brightness)
	}
	if in.Volume != nil {
		d.Volume = copyFloat(in.Volume)
	}
	if in.Temperature != nil {
		d.Temperature = copyFloat(in.Temperature)
	}
	if in.Battery != nil {
		d.Battery = copyFloat(in.Battery)
	}
	if in.EnergyUsage != nil {
		d.EnergyUsage = copyFloat(in.EnergyUsage)
	}
	return d
}

func copyFloat(v *float64) *float64 {
	value := *v
	return &value
}
