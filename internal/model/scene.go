package model

import "time"

type SceneAction string

const (
	SceneTurnOn  SceneAction = "turn_on"
	SceneTurnOff SceneAction = "turn_off"
)

// Status maps a scene action onto a device state: turn_on is on, anything else off.
func (a SceneAction) Status() DeviceStatus {
	if a == SceneTurnOn {
		return StatusOn
	}
	return StatusOff
}

type SceneStep struct {
	DeviceID    string      `json:"deviceId"`
	Action      SceneAction `json:"action"`
	Brightness  *int        `json:"brightness,omitempty"`
	Temperature *float64    `json:"temperature,omitempty"`
	Volume      *int        `json:"volume,omitempty"`
}

// Patch is the device update a step applies.
func (s SceneStep) Patch() DevicePatch {
	status := s.Action.Status()
	return DevicePatch{
		Status:      &status,
		Brightness:  s.Brightness,
		Temperature: s.Temperature,
		Volume:      s.Volume,
	}
}

type Scene struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Icon      string      `json:"icon"`
	Devices   []SceneStep `json:"devices"`
	CreatedAt time.Time   `json:"createdAt"`
}

type AutomationTrigger string

const (
	TriggerTime        AutomationTrigger = "time"
	TriggerTemperature AutomationTrigger = "temperature"
	TriggerMotion      AutomationTrigger = "motion"
	TriggerDeviceState AutomationTrigger = "device_state"
)

type AutomationAction string

const (
	AutomationTurnOn         AutomationAction = "turn_on"
	AutomationTurnOff        AutomationAction = "turn_off"
	AutomationSetBrightness  AutomationAction = "set_brightness"
	AutomationSetTemperature AutomationAction = "set_temperature"
)

// Automation is a stored rule. Enabled is a plain flag: nothing evaluates
// triggers, so an enabled automation never fires on its own.
type Automation struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Trigger      AutomationTrigger `json:"trigger"`
	TriggerValue string            `json:"triggerValue"`
	DeviceID     string            `json:"deviceId"`
	Action       AutomationAction  `json:"action"`
	Enabled      bool              `json:"enabled"`
	CreatedAt    time.Time         `json:"createdAt"`
}
