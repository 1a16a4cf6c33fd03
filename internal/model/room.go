package model

import "strings"

// Room groups devices. Devices reference rooms by Name, not ID; DeviceCount is
// advisory and may drift from the number of devices carrying the room name.
type Room struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DeviceCount int      `json:"deviceCount"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Color       string   `json:"color,omitempty"`
}

type RoomPatch struct {
	Name        *string  `json:"name,omitempty"`
	DeviceCount *int     `json:"deviceCount,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Color       *string  `json:"color,omitempty"`
}

func (p RoomPatch) Apply(r Room) Room {
	if p.Name != nil {
		r.Name = strings.TrimSpace(*p.Name)
	}
	if p.DeviceCount != nil {
		r.DeviceCount = *p.DeviceCount
	}
	if p.Temperature != nil {
		r.Temperature = floatPtr(*p.Temperature)
	}
	if p.Humidity != nil {
		r.Humidity = floatPtr(*p.Humidity)
	}
	if p.Icon != nil {
		r.Icon = *p.Icon
	}
	if p.Color != nil {
		r.Color = *p.Color
	}
	return r
}

// SameRoomName compares room names the way room uniqueness is enforced.
func SameRoomName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Category is a dashboard device grouping. Icon is a symbolic key.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color,omitempty"`
	DeviceCount int    `json:"deviceCount"`
}
