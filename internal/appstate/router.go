package appstate

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/micro-ha/smarthome-dashboard/internal/history"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

// Source is the read side of the state layer used by the screens.
type Source interface {
	CurrentUser() (model.User, bool)
	Devices() []model.Device
	Device(id string) (model.Device, error)
	ActiveDevices() []model.Device
	Rooms() []model.Room
	Room(id string) (model.Room, error)
	DevicesInRoom(roomID string) ([]model.Device, error)
	Categories() []model.Category
	FavouriteDevices() []model.Device
	Scenes() []model.Scene
	Automations() []model.Automation
	FilterHistory(q history.Query) []model.HistoryEntry
	Now() time.Time
}

type renderFunc func(w io.Writer, st *State) error

// Router maps views to text screens.
type Router struct {
	src     Source
	screens map[View]renderFunc
	// HistoryQuery narrows the history screen.
	HistoryQuery history.Query
}

func NewRouter(src Source) *Router {
	r := &Router{src: src}
	r.screens = map[View]renderFunc{
		ViewWelcome:           r.welcome,
		ViewLogin:             r.welcome,
		ViewRegister:          r.welcome,
		ViewDashboard:         r.dashboard,
		ViewDevices:           r.devices,
		ViewAllDevices:        r.devices,
		ViewActiveDevices:     r.activeDevices,
		ViewDeviceDetail:      r.deviceDetail,
		ViewRooms:             r.rooms,
		ViewRoomDetail:        r.roomDetail,
		ViewCategoryDetail:    r.categoryDetail,
		ViewFavourites:        r.favourites,
		ViewScenes:            r.scenes,
		ViewAutomation:        r.automations,
		ViewHistory:           r.history,
		ViewProfile:           r.profile,
		ViewSubscription:      r.subscription,
		ViewPayment:           r.payment,
		ViewSettings:          r.settings,
		ViewControl:           r.devices,
		ViewAddDevice:         r.addDevice,
		ViewEnergyMonitoring:  r.energyMonitoring,
		ViewSecurityDashboard: r.securityDashboard,
		ViewHeatingCooling:    r.heatingCooling,
	}
	return r
}

// Render writes the screen of st.View. Views without a text screen (voice
// control) show the dashboard.
func (r *Router) Render(w io.Writer, st *State) error {
	screen, ok := r.screens[st.View]
	if !ok {
		screen = r.dashboard
	}
	return screen(w, st)
}

func (r *Router) welcome(w io.Writer, _ *State) error {
	_, err := fmt.Fprintln(w, "Smart Home\n\nSign in with `login` or create an account with `register`.")
	return err
}

func (r *Router) dashboard(w io.Writer, _ *State) error {
	user, _ := r.src.CurrentUser()
	devices := r.src.Devices()
	active := r.src.ActiveDevices()
	rooms := r.src.Rooms()

	fmt.Fprintf(w, "Welcome, %s\n", user.DisplayName())
	if user.Subscription != "" {
		fmt.Fprintf(w, "Plan: %s (%d/%d devices)\n", user.Subscription, len(devices), user.Subscription.MaxDevices())
	}
	fmt.Fprintf(w, "Devices: %d total, %d active\n", len(devices), len(active))
	fmt.Fprintf(w, "Rooms: %d\n\n", len(rooms))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tDEVICES")
	for _, c := range r.src.Categories() {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, countCategory(devices, c.ID))
	}
	return tw.Flush()
}

func countCategory(devices []model.Device, category string) int {
	n := 0
	for _, d := range devices {
		if d.Category == category {
			n++
		}
	}
	return n
}

func (r *Router) devices(w io.Writer, _ *State) error {
	return writeDeviceTable(w, r.src.Devices())
}

func (r *Router) activeDevices(w io.Writer, _ *State) error {
	return writeDeviceTable(w, r.src.ActiveDevices())
}

func writeDeviceTable(w io.Writer, devices []model.Device) error {
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w, "No devices.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tROOM\tSTATUS\tDETAILS")
	for _, d := range devices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Type, d.Room, d.Status, attributeSummary(d))
	}
	return tw.Flush()
}

func attributeSummary(d model.Device) string {
	parts := []string{}
	if d.Brightness != nil {
		parts = append(parts, fmt.Sprintf("brightness %d%%", *d.Brightness))
	}
	if d.Temperature != nil {
		parts = append(parts, fmt.Sprintf("%g°C", *d.Temperature))
	}
	if d.Volume != nil {
		parts = append(parts, fmt.Sprintf("volume %d%%", *d.Volume))
	}
	if d.Battery != nil {
		parts = append(parts, fmt.Sprintf("battery %d%%", *d.Battery))
	}
	if d.EnergyUsage != nil {
		parts = append(parts, fmt.Sprintf("%g kWh", *d.EnergyUsage))
	}
	if d.IsPlaying != nil && *d.IsPlaying {
		song := "playing"
		if d.CurrentSong != nil && *d.CurrentSong != "" {
			song = "playing " + *d.CurrentSong
		}
		parts = append(parts, song)
	}
	return strings.Join(parts, ", ")
}

func (r *Router) deviceDetail(w io.Writer, st *State) error {
	d, err := r.src.Device(st.SelectedDeviceID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%s)\n", d.Name, d.ID)
	fmt.Fprintf(w, "Type: %s\nRoom: %s\nStatus: %s\n", d.Type, d.Room, d.Status)
	if summary := attributeSummary(d); summary != "" {
		fmt.Fprintf(w, "Attributes: %s\n", summary)
	}
	if d.LastUpdated != nil {
		fmt.Fprintf(w, "Last updated: %s\n", history.RelativeTime(*d.LastUpdated, r.src.Now()))
	}
	return nil
}

func (r *Router) rooms(w io.Writer, _ *State) error {
	rooms := r.src.Rooms()
	if len(rooms) == 0 {
		_, err := fmt.Fprintln(w, "No rooms.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEVICES\tCLIMATE")
	for _, room := range rooms {
		devices, _ := r.src.DevicesInRoom(room.ID)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", room.ID, room.Name, len(devices), climate(room))
	}
	return tw.Flush()
}

func climate(room model.Room) string {
	parts := []string{}
	if room.Temperature != nil {
		parts = append(parts, fmt.Sprintf("%g°C", *room.Temperature))
	}
	if room.Humidity != nil {
		parts = append(parts, fmt.Sprintf("%g%%", *room.Humidity))
	}
	return strings.Join(parts, " / ")
}

func (r *Router) roomDetail(w io.Writer, st *State) error {
	room, err := r.src.Room(st.SelectedRoomID)
	if err != nil {
		return err
	}
	devices, err := r.src.DevicesInRoom(room.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n\n", room.Name)
	return writeDeviceTable(w, devices)
}

func (r *Router) categoryDetail(w io.Writer, st *State) error {
	matching := []model.Device{}
	for _, d := range r.src.Devices() {
		if d.Category == st.SelectedCategoryID {
			matching = append(matching, d)
		}
	}
	fmt.Fprintf(w, "Category: %s\n\n", st.SelectedCategoryID)
	return writeDeviceTable(w, matching)
}

func (r *Router) favourites(w io.Writer, _ *State) error {
	return writeDeviceTable(w, r.src.FavouriteDevices())
}

func (r *Router) scenes(w io.Writer, _ *State) error {
	scenes := r.src.Scenes()
	if len(scenes) == 0 {
		_, err := fmt.Fprintln(w, "No scenes.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEVICES")
	for _, s := range scenes {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.ID, s.Name, len(s.Devices))
	}
	return tw.Flush()
}

func (r *Router) automations(w io.Writer, _ *State) error {
	items := r.src.Automations()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No automations.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTRIGGER\tACTION\tENABLED")
	for _, a := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s %s\t%t\n", a.ID, a.Name, a.Trigger, a.TriggerValue, a.Action, a.DeviceID, a.Enabled)
	}
	return tw.Flush()
}

func (r *Router) history(w io.Writer, _ *State) error {
	entries := r.src.FilterHistory(r.HistoryQuery)
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No activity.")
		return err
	}
	now := r.src.Now()
	for i, group := range history.GroupByDay(entries, now.Location()) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, group.Day)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, e := range group.Entries {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", history.RelativeTime(e.Timestamp, now), history.ActionLabel(e.Action), e.ItemName, e.Details, e.UserName)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) profile(w io.Writer, _ *State) error {
	user, ok := r.src.CurrentUser()
	if !ok {
		_, err := fmt.Fprintln(w, "Not signed in.")
		return err
	}
	fmt.Fprintf(w, "%s\nUsername: %s\nEmail: %s\n", user.DisplayName(), user.Username, user.Email)
	if user.Subscription != "" {
		fmt.Fprintf(w, "Plan: %s (up to %d devices)\n", user.Subscription, user.Subscription.MaxDevices())
	}
	if user.LastLogin != nil {
		fmt.Fprintf(w, "Last login: %s\n", history.RelativeTime(*user.LastLogin, r.src.Now()))
	}
	return nil
}
