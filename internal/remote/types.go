package remote

import (
	"math"
	"strings"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

const (
	ConnectivityOnline  = "online"
	ConnectivityOffline = "offline"
)

// DeviceRecord is a device as stored by the backend. Status carries
// connectivity; the power state is IsOn.
type DeviceRecord struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Room        string     `json:"room"`
	Category    string     `json:"category,omitempty"`
	IsOn        bool       `json:"isOn"`
	IsFavorite  bool       `json:"isFavorite"`
	Status      string     `json:"status,omitempty"`
	Brightness  *float64   `json:"brightness,omitempty"`
	Volume      *float64   `json:"volume,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Battery     *float64   `json:"battery,omitempty"`
	EnergyUsage *float64   `json:"energyUsage,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Local converts the record to the client device model.
func (r DeviceRecord) Local() model.Device {
	status := model.StatusOff
	if r.IsOn {
		status = model.StatusOn
	}
	d := model.Device{
		ID:          r.ID,
		Name:        r.Name,
		Type:        model.DeviceType(r.Type),
		Status:      status,
		Room:        r.Room,
		Category:    r.Category,
		Brightness:  roundPtr(r.Brightness),
		Volume:      roundPtr(r.Volume),
		Temperature: r.Temperature,
		Battery:     roundPtr(r.Battery),
		EnergyUsage: r.EnergyUsage,
		LastUpdated: r.LastUpdated,
	}
	return d.Normalize()
}

// DeviceInput is the create/update body.
type DeviceInput struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Room        string   `json:"room"`
	Category    string   `json:"category,omitempty"`
	IsOn        bool     `json:"isOn"`
	IsFavorite  bool     `json:"isFavorite"`
	Status      string   `json:"status,omitempty"`
	Brightness  *float64 `json:"brightness,omitempty"`
	Volume      *float64 `json:"volume,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Battery     *float64 `json:"battery,omitempty"`
	EnergyUsage *float64 `json:"energyUsage,omitempty"`
}

// DeviceInputFrom builds the body used when a local device is created remotely:
// powered state from Status, reported online, never a favourite.
func DeviceInputFrom(d model.Device) DeviceInput {
	return DeviceInput{
		Name:        d.Name,
		Type:        string(d.Type),
		Room:        d.Room,
		Category:    d.Category,
		IsOn:        d.Status == model.StatusOn,
		IsFavorite:  false,
		Status:      ConnectivityOnline,
		Brightness:  floatFromInt(d.Brightness),
		Volume:      floatFromInt(d.Volume),
		Temperature: d.Temperature,
		Battery:     floatFromInt(d.Battery),
		EnergyUsage: d.EnergyUsage,
	}
}

func (in DeviceInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return &ValidationError{Field: "name", Message: `"name" is required`}
	case strings.TrimSpace(in.Type) == "":
		return &ValidationError{Field: "type", Message: `"type" is required`}
	case strings.TrimSpace(in.Room) == "":
		return &ValidationError{Field: "room", Message: `"room" is required`}
	}
	return nil
}

// RemoteUser is the account summary returned by login and register.
type RemoteUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Local maps the account onto a fresh Free-plan user profile.
func (u RemoteUser) Local() model.User {
	username := u.Username
	if username == "" {
		username = u.Name
	}
	return model.User{
		ID:           u.ID,
		Username:     username,
		Email:        u.Email,
		Subscription: model.SubscriptionFree,
		MaxDevices:   model.SubscriptionFree.MaxDevices(),
	}
}

type AuthResult struct {
	Message string     `json:"message,omitempty"`
	Token   string     `json:"token"`
	User    RemoteUser `json:"user"`
}

type Ack struct {
	Message string `json:"message"`
}

type Dashboard struct {
	User         model.DashboardUser        `json:"user"`
	Categories   []model.Category           `json:"categories"`
	Devices      []DeviceRecord             `json:"devices"`
	Subscription model.SubscriptionOverview `json:"subscription"`
	Scenes       []model.SceneSummary       `json:"scenes"`
}

func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

func floatFromInt(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
