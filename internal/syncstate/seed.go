package syncstate

import (
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

func demoDevices(now time.Time) []model.Device {
	at := now.UTC()
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }
	boolp := func(v bool) *bool { return &v }
	devices := []model.Device{
		{ID: "device-1", Name: "Main Lights", Type: model.DeviceTypeLighting, Status: model.StatusOn, Room: "Living Room", Category: "lighting", Brightness: intp(75), EnergyUsage: floatp(0.06)},
		{ID: "device-2", Name: "Smart Thermostat", Type: model.DeviceTypeClimate, Status: model.StatusOn, Room: "Living Room", Category: "heating", Temperature: floatp(22), EnergyUsage: floatp(1.2)},
		{ID: "device-3", Name: "Access Control", Type: model.DeviceTypeAccess, Status: model.StatusOn, Room: "Hallway", Category: "security", Battery: intp(85)},
		{ID: "device-4", Name: "Front Camera", Type: model.DeviceTypeCamera, Status: model.StatusOn, Room: "Hallway", Category: "security", Battery: intp(90), EnergyUsage: floatp(0.3)},
		{ID: "device-5", Name: "Kitchen Speaker", Type: model.DeviceTypeSpeaker, Status: model.StatusOff, Room: "Kitchen", Category: "music", Volume: intp(40), IsPlaying: boolp(false)},
		{ID: "device-6", Name: "Bedroom TV", Type: model.DeviceTypeTV, Status: model.StatusOff, Room: "Bedroom", Category: "multimedia", Volume: intp(25), IsPlaying: boolp(false)},
		{ID: "device-7", Name: "Bathroom Fan", Type: model.DeviceTypeAutomation, Status: model.StatusOff, Room: "Bathroom", Category: "heating", EnergyUsage: floatp(0.04)},
		{ID: "device-8", Name: "Humidity Sensor", Type: model.DeviceTypeHumidity, Status: model.StatusOn, Room: "Bathroom", Category: "heating", Temperature: floatp(24), Battery: intp(60)},
	}
	for i := range devices {
		devices[i].LastUpdated = &at
		devices[i] = devices[i].Normalize()
	}
	return devices
}

func demoRooms() []model.Room {
	floatp := func(v float64) *float64 { return &v }
	return []model.Room{
		{ID: "room-1", Name: "Living Room", DeviceCount: 2, Temperature: floatp(22), Humidity: floatp(45), Icon: "sofa", Color: "blue"},
		{ID: "room-2", Name: "Kitchen", DeviceCount: 1, Temperature: floatp(23), Humidity: floatp(50), Icon: "utensils", Color: "orange"},
		{ID: "room-3", Name: "Bedroom", DeviceCount: 1, Temperature: floatp(20), Humidity: floatp(40), Icon: "bed", Color: "purple"},
		{ID: "room-4", Name: "Bathroom", DeviceCount: 2, Temperature: floatp(24), Humidity: floatp(65), Icon: "bath", Color: "teal"},
		{ID: "room-5", Name: "Hallway", DeviceCount: 2, Icon: "door", Color: "gray"},
	}
}
