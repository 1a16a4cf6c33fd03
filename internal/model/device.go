package model

import (
	"strings"
	"time"
)

type DeviceType string

const (
	DeviceTypeAccess     DeviceType = "access"
	DeviceTypeSecurity   DeviceType = "security"
	DeviceTypeAutomation DeviceType = "automation"
	DeviceTypeClimate    DeviceType = "climate"
	DeviceTypeLighting   DeviceType = "lighting"
	DeviceTypeHumidity   DeviceType = "humidity"
	DeviceTypeSystem     DeviceType = "system"
	DeviceTypeCamera     DeviceType = "camera"
	DeviceTypeSpeaker    DeviceType = "speaker"
	DeviceTypeTV         DeviceType = "tv"
)

// DeviceTypes lists every known device variant in display order.
func DeviceTypes() []DeviceType {
	return []DeviceType{
		DeviceTypeAccess,
		DeviceTypeSecurity,
		DeviceTypeAutomation,
		DeviceTypeClimate,
		DeviceTypeLighting,
		DeviceTypeHumidity,
		DeviceTypeSystem,
		DeviceTypeCamera,
		DeviceTypeSpeaker,
		DeviceTypeTV,
	}
}

func (t DeviceType) Known() bool {
	_, ok := variantAttributes[t]
	return ok
}

type DeviceStatus string

const (
	StatusOn  DeviceStatus = "on"
	StatusOff DeviceStatus = "off"
)

// Flip returns the opposite on/off state. Anything that is not "on" flips to "on".
func (s DeviceStatus) Flip() DeviceStatus {
	if s == StatusOn {
		return StatusOff
	}
	return StatusOn
}

// Attribute names an optional, variant-specific device field.
type Attribute string

const (
	AttrBrightness  Attribute = "brightness"
	AttrVolume      Attribute = "volume"
	AttrTemperature Attribute = "temperature"
	AttrBattery     Attribute = "battery"
	AttrEnergyUsage Attribute = "energyUsage"
	AttrIsPlaying   Attribute = "isPlaying"
	AttrCurrentSong Attribute = "currentSong"
)

// AttributeSet is the optional-attribute declaration of one device variant.
type AttributeSet map[Attribute]struct{}

func attrs(names ...Attribute) AttributeSet {
	set := make(AttributeSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s AttributeSet) Has(name Attribute) bool {
	if s == nil {
		return true
	}
	_, ok := s[name]
	return ok
}

var variantAttributes = map[DeviceType]AttributeSet{
	DeviceTypeLighting:   attrs(AttrBrightness, AttrEnergyUsage),
	DeviceTypeClimate:    attrs(AttrTemperature, AttrEnergyUsage),
	DeviceTypeHumidity:   attrs(AttrTemperature, AttrBattery, AttrEnergyUsage),
	DeviceTypeSpeaker:    attrs(AttrVolume, AttrIsPlaying, AttrCurrentSong, AttrEnergyUsage),
	DeviceTypeTV:         attrs(AttrVolume, AttrIsPlaying, AttrCurrentSong, AttrEnergyUsage),
	DeviceTypeCamera:     attrs(AttrBattery, AttrEnergyUsage),
	DeviceTypeSecurity:   attrs(AttrBattery, AttrEnergyUsage),
	DeviceTypeAccess:     attrs(AttrBattery, AttrEnergyUsage),
	DeviceTypeAutomation: attrs(AttrBattery, AttrEnergyUsage),
	DeviceTypeSystem:     attrs(AttrBattery, AttrEnergyUsage),
}

// AttributesFor returns the attribute set declared by a device variant.
// Unknown types (free-form values stored by the backend) allow every attribute.
func AttributesFor(t DeviceType) AttributeSet {
	return variantAttributes[t]
}

// Device is the client-side device record. Optional attributes are only kept
// when the variant named by Type declares them, see Normalize.
type Device struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        DeviceType   `json:"type"`
	Status      DeviceStatus `json:"status"`
	Room        string       `json:"room"`
	Category    string       `json:"category"`
	Brightness  *int         `json:"brightness,omitempty"`
	Volume      *int         `json:"volume,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
	Battery     *int         `json:"battery,omitempty"`
	EnergyUsage *float64     `json:"energyUsage,omitempty"`
	IsPlaying   *bool        `json:"isPlaying,omitempty"`
	CurrentSong *string      `json:"currentSong,omitempty"`
	LastUpdated *time.Time   `json:"lastUpdated,omitempty"`
}

func (d Device) IsOn() bool {
	return d.Status == StatusOn
}

// Normalize drops attributes the variant does not declare and clamps
// percentages to [0,100] and energy usage to >= 0.
func (d Device) Normalize() Device {
	set := AttributesFor(d.Type)
	if d.Status != StatusOn {
		d.Status = StatusOff
	}
	if !set.Has(AttrBrightness) {
		d.Brightness = nil
	}
	if !set.Has(AttrVolume) {
		d.Volume = nil
	}
	if !set.Has(AttrTemperature) {
		d.Temperature = nil
	}
	if !set.Has(AttrBattery) {
		d.Battery = nil
	}
	if !set.Has(AttrEnergyUsage) {
		d.EnergyUsage = nil
	}
	if !set.Has(AttrIsPlaying) {
		d.IsPlaying = nil
	}
	if !set.Has(AttrCurrentSong) {
		d.CurrentSong = nil
	}
	d.Brightness = clampPercent(d.Brightness)
	d.Volume = clampPercent(d.Volume)
	d.Battery = clampPercent(d.Battery)
	if d.EnergyUsage != nil && *d.EnergyUsage < 0 {
		zero := 0.0
		d.EnergyUsage = &zero
	}
	return d
}

func clampPercent(v *int) *int {
	if v == nil {
		return nil
	}
	value := *v
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return &value
}

// DevicePatch is a partial device update; nil fields are left untouched.
type DevicePatch struct {
	Name        *string       `json:"name,omitempty"`
	Status      *DeviceStatus `json:"status,omitempty"`
	Room        *string       `json:"room,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Brightness  *int          `json:"brightness,omitempty"`
	Volume      *int          `json:"volume,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Battery     *int          `json:"battery,omitempty"`
	EnergyUsage *float64      `json:"energyUsage,omitempty"`
	IsPlaying   *bool         `json:"isPlaying,omitempty"`
	CurrentSong *string       `json:"currentSong,omitempty"`
}

func (p DevicePatch) Empty() bool {
	return p == DevicePatch{}
}

// Apply merges the patch into d and normalizes the result.
func (p DevicePatch) Apply(d Device) Device {
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Room != nil {
		d.Room = *p.Room
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Brightness != nil {
		d.Brightness = intPtr(*p.Brightness)
	}
	if p.Volume != nil {
		d.Volume = intPtr(*p.Volume)
	}
	if p.Temperature != nil {
		d.Temperature = floatPtr(*p.Temperature)
	}
	if p.Battery != nil {
		d.Battery = intPtr(*p.Battery)
	}
	if p.EnergyUsage != nil {
		d.EnergyUsage = floatPtr(*p.EnergyUsage)
	}
	if p.IsPlaying != nil {
		playing := *p.IsPlaying
		d.IsPlaying = &playing
	}
	if p.CurrentSong != nil {
		song := *p.CurrentSong
		d.CurrentSong = &song
	}
	return d.Normalize()
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
