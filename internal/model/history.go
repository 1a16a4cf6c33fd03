package model

import "time"

type ItemType string

const (
	ItemDevice     ItemType = "device"
	ItemRoom       ItemType = "room"
	ItemScene      ItemType = "scene"
	ItemAutomation ItemType = "automation"
	ItemUser       ItemType = "user"
	ItemSystem     ItemType = "system"
)

type HistoryAction string

const (
	ActionDeviceAdded         HistoryAction = "device_added"
	ActionDeviceRemoved       HistoryAction = "device_removed"
	ActionDeviceToggled       HistoryAction = "device_toggled"
	ActionDeviceUpdated       HistoryAction = "device_updated"
	ActionRoomAdded           HistoryAction = "room_added"
	ActionRoomRemoved         HistoryAction = "room_removed"
	ActionRoomUpdated         HistoryAction = "room_updated"
	ActionSceneActivated      HistoryAction = "scene_activated"
	ActionAutomationTriggered HistoryAction = "automation_triggered"
	ActionUserLogin           HistoryAction = "user_login"
	ActionUserLogout          HistoryAction = "user_logout"
	ActionSettingsChanged     HistoryAction = "settings_changed"
)

// HistoryEntry is one immutable audit record.
type HistoryEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	UserName  string        `json:"userName"`
	UserID    string        `json:"userId"`
	ItemType  ItemType      `json:"itemType"`
	ItemID    string        `json:"itemId,omitempty"`
	ItemName  string        `json:"itemName"`
	Action    HistoryAction `json:"action"`
	Details   string        `json:"details"`
}
