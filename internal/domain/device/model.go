package device

import "time"

const (
	// DefaultCategory is stored when a device is created without one.
	DefaultCategory = "other"
	// StatusOnline and StatusOffline describe connectivity, not power state.
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Device is the stored device document returned by the API.
type Device struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Room        string    `json:"room"`
	Category    string    `json:"category"`
	IsOn        bool      `json:"isOn"`
	IsFavorite  bool      `json:"isFavorite"`
	Status      string    `json:"status"`
	Brightness  *float64  `json:"brightness,omitempty"`
	Volume      *float64  `json:"volume,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Battery     *float64  `json:"battery,omitempty"`
	EnergyUsage *float64  `json:"energyUsage,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the create/update payload. Pointer fields distinguish a missing
// value from a zero one.
type Input struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Room        *string  `json:"room"`
	Category    *string  `json:"category"`
	IsOn        *bool    `json:"isOn"`
	IsFavorite  *bool    `json:"isFavorite"`
	Status      *string  `json:"status"`
	Brightness  *float64 `json:"brightness"`
	Volume      *float64 `json:"volume"`
	Temperature *float64 `json:"temperature"`
	Battery     *float64 `json:"battery"`
	EnergyUsage *float64 `json:"energyUsage"`
}

// Counts splits stored devices by power state.
type Counts struct {
	On  int
	Off int
}
