package appstate

import (
	"fmt"
	"strings"
)

// View names one screen of the application.
type View string

const (
	ViewWelcome           View = "welcome"
	ViewLogin             View = "login"
	ViewRegister          View = "register"
	ViewDashboard         View = "dashboard"
	ViewDevices           View = "devices"
	ViewAllDevices        View = "all-devices"
	ViewActiveDevices     View = "active-devices"
	ViewAddDevice         View = "add-device"
	ViewDeviceDetail      View = "device-detail"
	ViewRooms             View = "rooms"
	ViewRoomDetail        View = "room-detail"
	ViewCategoryDetail    View = "category-detail"
	ViewFavourites        View = "favourites"
	ViewScenes            View = "scenes"
	ViewAutomation        View = "automation"
	ViewHistory           View = "history"
	ViewProfile           View = "profile"
	ViewSettings          View = "settings"
	ViewSubscription      View = "subscription"
	ViewPayment           View = "payment"
	ViewControl           View = "control"
	ViewEnergyMonitoring  View = "energy-monitoring"
	ViewSecurityDashboard View = "security-dashboard"
	ViewHeatingCooling    View = "heating-cooling"
	ViewVoiceControl      View = "voice-control"
)

var allViews = []View{
	ViewWelcome, ViewLogin, ViewRegister, ViewDashboard, ViewDevices, ViewAllDevices,
	ViewActiveDevices, ViewAddDevice, ViewDeviceDetail, ViewRooms, ViewRoomDetail,
	ViewCategoryDetail, ViewFavourites, ViewScenes, ViewAutomation, ViewHistory,
	ViewProfile, ViewSettings, ViewSubscription, ViewPayment, ViewControl,
	ViewEnergyMonitoring, ViewSecurityDashboard, ViewHeatingCooling, ViewVoiceControl,
}

func Views() []View {
	return append([]View(nil), allViews...)
}

func ParseView(raw string) (View, error) {
	candidate := View(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range allViews {
		if v == candidate {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", raw)
}

// Public reports whether the view is reachable without a signed-in user.
func (v View) Public() bool {
	switch v {
	case ViewWelcome, ViewLogin, ViewRegister:
		return true
	default:
		return false
	}
}
