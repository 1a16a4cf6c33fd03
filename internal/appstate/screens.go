package appstate

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

const (
	energyTopDevices = 5
	// fallbackRoomTemperature is reported when no room has a reading.
	fallbackRoomTemperature = 20
)

func energy(d model.Device) float64 {
	if d.EnergyUsage == nil {
		return 0
	}
	return *d.EnergyUsage
}

// energyMonitoring lists the active devices by energy use, highest first.
func (r *Router) energyMonitoring(w io.Writer, _ *State) error {
	active := r.src.ActiveDevices()
	sort.SliceStable(active, func(i, j int) bool {
		return energy(active[i]) > energy(active[j])
	})
	total := 0.0
	for _, d := range active {
		total += energy(d)
	}
	fmt.Fprintf(w, "Energy monitoring\nActive devices: %d\nTotal usage: %.2f kWh\n\n", len(active), total)
	if len(active) == 0 {
		_, err := fmt.Fprintln(w, "No active devices.")
		return err
	}
	if len(active) > energyTopDevices {
		active = active[:energyTopDevices]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tROOM\tUSAGE")
	for _, d := range active {
		fmt.Fprintf(tw, "%s\t%s\t%.2f kWh\n", d.Name, d.Room, energy(d))
	}
	return tw.Flush()
}

func isSecurityDevice(d model.Device) bool {
	switch d.Type {
	case model.DeviceTypeSecurity, model.DeviceTypeCamera, model.DeviceTypeAccess:
		return true
	default:
		return false
	}
}

func (r *Router) securityDashboard(w io.Writer, _ *State) error {
	devices := []model.Device{}
	active := 0
	for _, d := range r.src.Devices() {
		if !isSecurityDevice(d) {
			continue
		}
		devices = append(devices, d)
		if d.IsOn() {
			active++
		}
	}
	fmt.Fprintf(w, "Security\nDevices: %d, active: %d\n\n", len(devices), active)
	return writeDeviceTable(w, devices)
}

// averageRoomTemperature is the rounded mean over rooms reporting a temperature.
func averageRoomTemperature(rooms []model.Room) int {
	sum, n := 0.0, 0
	for _, room := range rooms {
		if room.Temperature == nil {
			continue
		}
		sum += *room.Temperature
		n++
	}
	if n == 0 {
		return fallbackRoomTemperature
	}
	return int(math.Round(sum / float64(n)))
}

func (r *Router) heatingCooling(w io.Writer, _ *State) error {
	rooms := r.src.Rooms()
	fmt.Fprintf(w, "Heating & cooling\nAverage temperature: %d°C\n\n", averageRoomTemperature(rooms))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROOM\tTEMPERATURE\tCLIMATE DEVICES")
	for _, room := range rooms {
		devices, err := r.src.DevicesInRoom(room.ID)
		if err != nil {
			return err
		}
		names := ""
		for _, d := range devices {
			if d.Type != model.DeviceTypeClimate {
				continue
			}
			if names != "" {
				names += ", "
			}
			names += fmt.Sprintf("%s (%s)", d.Name, d.Status)
		}
		if names == "" {
			names = "-"
		}
		temp := "-"
		if room.Temperature != nil {
			temp = fmt.Sprintf("%g°C", *room.Temperature)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", room.Name, temp, names)
	}
	return tw.Flush()
}

func (r *Router) subscription(w io.Writer, _ *State) error {
	user, ok := r.src.CurrentUser()
	if !ok {
		_, err := fmt.Fprintln(w, "Not signed in.")
		return err
	}
	plan := user.Subscription
	if plan == "" {
		plan = model.SubscriptionFree
	}
	fmt.Fprintf(w, "Current plan: %s (%d/%d devices)\n", plan, len(r.src.Devices()), plan.MaxDevices())
	if user.SubscriptionExpiry != "" {
		fmt.Fprintf(w, "Renews: %s\n", user.SubscriptionExpiry)
	}
	fmt.Fprintln(w)
	return writePlanTable(w, plan)
}

func writePlanTable(w io.Writer, current model.Subscription) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAN\tPRICE\tDEVICES\t")
	for _, plan := range model.Subscriptions() {
		marker := ""
		if plan == current {
			marker = "current"
		}
		fmt.Fprintf(tw, "%s\t%s/month\t%d\t%s\n", plan, plan.Price(), plan.MaxDevices(), marker)
	}
	return tw.Flush()
}

func (r *Router) payment(w io.Writer, _ *State) error {
	user, ok := r.src.CurrentUser()
	if !ok {
		_, err := fmt.Fprintln(w, "Not signed in.")
		return err
	}
	fmt.Fprintln(w, "Change plan")
	if err := writePlanTable(w, user.Subscription); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "\nRun `profile set -plan PLAN` to switch. A new plan runs for one year.")
	return err
}

func (r *Router) settings(w io.Writer, st *State) error {
	if err := r.profile(w, st); err != nil {
		return err
	}
	user, ok := r.src.CurrentUser()
	if !ok || user.Preferences == nil {
		return nil
	}
	p := user.Preferences
	_, err := fmt.Fprintf(w, "Theme: %s\nNotifications: %t\nVoice control: %t\nEnergy alerts: %t\n",
		p.Theme, p.Notifications, p.VoiceControl, p.EnergyAlerts)
	return err
}

func (r *Router) addDevice(w io.Writer, _ *State) error {
	fmt.Fprintln(w, "Add a device with `add-device -name NAME -type TYPE -room ROOM`.")
	fmt.Fprint(w, "Types:")
	for _, t := range model.DeviceTypes() {
		fmt.Fprintf(w, " %s", t)
	}
	_, err := fmt.Fprintln(w)
	return err
}
