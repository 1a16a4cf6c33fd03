package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/micro-ha/smarthome-dashboard/internal/appstate"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

func (a *App) devices(ctx context.Context, args []string) error {
	fs := a.flags("devices")
	active := fs.Bool("active", false, "only devices that are on")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	view := appstate.ViewAllDevices
	if *active {
		view = appstate.ViewActiveDevices
	}
	return a.show(ctx, []string{string(view)})
}

func (a *App) toggle(_ context.Context, args []string) error {
	if err := exactArgs(args, 1, "DEVICE_ID"); err != nil {
		return err
	}
	d, err := a.state.ToggleDevice(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", d.Name, d.Status)
	return nil
}

func (a *App) set(_ context.Context, args []string) error {
	if err := exactArgs(args, 3, "DEVICE_ID PROPERTY VALUE"); err != nil {
		return err
	}
	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("%w: value %q is not a number", ErrUsage, args[2])
	}
	d, err := a.state.SetDeviceProperty(args[0], model.Attribute(args[1]), value)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s updated\n", d.Name)
	return nil
}

func (a *App) updateDevice(_ context.Context, args []string) error {
	fs := a.flags("update-device")
	var patch model.DevicePatch
	optionalString(fs, &patch.Name, "name", "device name")
	optionalString(fs, &patch.Room, "room", "room name")
	optionalString(fs, &patch.Category, "category", "category id")
	status := fs.String("status", "", "on or off")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := exactArgs(positional, 1, "DEVICE_ID"); err != nil {
		return err
	}
	if *status != "" {
		s, err := parseStatus(*status)
		if err != nil {
			return err
		}
		patch.Status = &s
	}
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrUsage)
	}
	d, err := a.state.UpdateDevice(positional[0], patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s updated\n", d.Name)
	return nil
}

func parseStatus(raw string) (model.DeviceStatus, error) {
	switch model.DeviceStatus(raw) {
	case model.StatusOn, model.StatusOff:
		return model.DeviceStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: status must be on or off", ErrUsage)
	}
}

func (a *App) addDevice(ctx context.Context, args []string) error {
	fs := a.flags("add-device")
	name := fs.String("name", "", "device name")
	deviceType := fs.String("type", "", "device type")
	room := fs.String("room", "", "room name")
	category := fs.String("category", "", "category id")
	on := fs.Bool("on", false, "start switched on")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := required(map[string]string{"name": *name, "type": *deviceType, "room": *room}); err != nil {
		return err
	}
	if !model.DeviceType(*deviceType).Known() {
		fmt.Fprintf(a.errOut, "warning: %q is not a known device type\n", *deviceType)
	}
	status := model.StatusOff
	if *on {
		status = model.StatusOn
	}
	d, err := a.state.AddDevice(ctx, model.Device{
		Name:     *name,
		Type:     model.DeviceType(*deviceType),
		Room:     *room,
		Category: *category,
		Status:   status,
	})
	if err != nil && d.ID == "" {
		return err
	}
	if err != nil {
		fmt.Fprintf(a.errOut, "warning: backend did not store the device: %v\n", err)
	}
	fmt.Fprintf(a.out, "Added %s (%s)\n", d.Name, d.ID)
	return nil
}

func (a *App) removeDevice(_ context.Context, args []string) error {
	if err := exactArgs(args, 1, "DEVICE_ID"); err != nil {
		return err
	}
	if err := a.state.RemoveDevice(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Device removed")
	return nil
}

func (a *App) favourite(_ context.Context, args []string) error {
	if err := exactArgs(args, 1, "DEVICE_ID"); err != nil {
		return err
	}
	added, err := a.state.ToggleFavorite(args[0])
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(a.out, "Added to favourites")
	} else {
		fmt.Fprintln(a.out, "Removed from favourites")
	}
	return nil
}

func (a *App) favourites(ctx context.Context, args []string) error {
	if err := exactArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	return a.show(ctx, []string{string(appstate.ViewFavourites)})
}

func (a *App) rooms(ctx context.Context, args []string) error {
	if err := exactArgs(args, 0, "no arguments"); err != nil {
		return err
	}
	return a.show(ctx, []string{string(appstate.ViewRooms)})
}

func (a *App) addRoom(_ context.Context, args []string) error {
	fs := a.flags("add-room")
	name := fs.String("name", "", "room name")
	icon := fs.String("icon", "", "icon key")
	color := fs.String("color", "", "accent color")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := required(map[string]string{"name": *name}); err != nil {
		return err
	}
	room, err := a.state.AddRoom(model.Room{Name: *name, Icon: *icon, Color: *color})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added room %s (%s)\n", room.Name, room.ID)
	return nil
}

func (a *App) renameRoom(_ context.Context, args []string) error {
	fs := a.flags("rename-room")
	name := fs.String("name", "", "new room name")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := exactArgs(positional, 1, "ROOM_ID"); err != nil {
		return err
	}
	if err := required(map[string]string{"name": *name}); err != nil {
		return err
	}
	room, err := a.state.UpdateRoom(positional[0], model.RoomPatch{Name: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Room renamed to %s\n", room.Name)
	return nil
}

func (a *App) removeRoom(_ context.Context, args []string) error {
	if err := exactArgs(args, 1, "ROOM_ID"); err != nil {
		return err
	}
	if err := a.state.RemoveRoom(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Room removed")
	return nil
}
