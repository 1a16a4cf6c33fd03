package history

import (
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

// DemoEntries is the sample history shown on a fresh demo install.
func DemoEntries(now time.Time) []model.HistoryEntry {
	return []model.HistoryEntry{
		{
			ID:        "1",
			Timestamp: now.Add(-2 * time.Hour).UTC(),
			UserName:  "Demo User",
			UserID:    fallbackUserID,
			ItemType:  model.ItemDevice,
			ItemName:  "Smart Thermostat",
			Action:    model.ActionDeviceToggled,
			Details:   "Device turned on",
		},
		{
			ID:        "2",
			Timestamp: now.Add(-4 * time.Hour).UTC(),
			UserName:  "Demo User",
			UserID:    fallbackUserID,
			ItemType:  model.ItemDevice,
			ItemName:  "Main Lights",
			Action:    model.ActionDeviceUpdated,
			Details:   "Brightness adjusted to 75%",
		},
		{
			ID:        "3",
			Timestamp: now.Add(-24 * time.Hour).UTC(),
			UserName:  "Demo User",
			UserID:    fallbackUserID,
			ItemType:  model.ItemUser,
			ItemName:  "Demo User",
			Action:    model.ActionUserLogin,
			Details:   "Logged in successfully",
		},
	}
}
