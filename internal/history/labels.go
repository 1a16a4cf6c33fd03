package history

import (
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

var actionLabels = map[model.HistoryAction]string{
	model.ActionDeviceAdded:         "Device Added",
	model.ActionDeviceRemoved:       "Device Removed",
	model.ActionDeviceToggled:       "Device Toggled",
	model.ActionDeviceUpdated:       "Device Updated",
	model.ActionRoomAdded:           "Room Added",
	model.ActionRoomRemoved:         "Room Removed",
	model.ActionRoomUpdated:         "Room Updated",
	model.ActionSceneActivated:      "Scene Activated",
	model.ActionAutomationTriggered: "Automation Triggered",
	model.ActionUserLogin:           "User Login",
	model.ActionUserLogout:          "User Logout",
	model.ActionSettingsChanged:     "Settings Changed",
}

// ActionLabel returns the display label of an action. Unknown actions are
// title-cased with underscores replaced by spaces.
func ActionLabel(action model.HistoryAction) string {
	if label, ok := actionLabels[action]; ok {
		return label
	}
	words := strings.Fields(strings.ReplaceAll(string(action), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// ItemTypes lists the item types accepted by the type filter.
func ItemTypes() []model.ItemType {
	return []model.ItemType{
		model.ItemDevice,
		model.ItemRoom,
		model.ItemScene,
		model.ItemAutomation,
		model.ItemUser,
		model.ItemSystem,
	}
}
