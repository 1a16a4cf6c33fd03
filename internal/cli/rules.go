package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/appstate"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

func (a *App) scene(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		return a.show(ctx, []string{string(appstate.ViewScenes)})
	}
	switch args[0] {
	case "add":
		fs := a.flags("scene add")
		name := fs.String("name", "", "scene name")
		icon := fs.String("icon", "", "icon key")
		var steps stepList
		fs.Var(&steps, "step", "DEVICE_ID:on|off[:brightness=N], repeatable")
		if _, err := parse(fs, args[1:]); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name}); err != nil {
			return err
		}
		scene, err := a.state.AddScene(model.Scene{Name: *name, Icon: *icon, Devices: steps})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added scene %s (%s)\n", scene.Name, scene.ID)
	case "run":
		if err := exactArgs(args[1:], 1, "scene run SCENE_ID"); err != nil {
			return err
		}
		n, err := a.state.ExecuteScene(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Scene activated, %d devices updated\n", n)
	case "rm":
		if err := exactArgs(args[1:], 1, "scene rm SCENE_ID"); err != nil {
			return err
		}
		if err := a.state.DeleteScene(args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Scene removed")
	default:
		return fmt.Errorf("%w: unknown scene command %q", ErrUsage, args[0])
	}
	return nil
}

var (
	triggers = []model.AutomationTrigger{model.TriggerTime, model.TriggerTemperature, model.TriggerMotion, model.TriggerDeviceState}
	actions  = []model.AutomationAction{model.AutomationTurnOn, model.AutomationTurnOff, model.AutomationSetBrightness, model.AutomationSetTemperature}
)

func oneOf[T ~string](raw string, allowed []T) (T, error) {
	for _, v := range allowed {
		if strings.EqualFold(raw, string(v)) {
			return v, nil
		}
	}
	names := make([]string, 0, len(allowed))
	for _, v := range allowed {
		names = append(names, string(v))
	}
	var zero T
	return zero, fmt.Errorf("%w: %q is not one of %s", ErrUsage, raw, strings.Join(names, ", "))
}

func (a *App) automation(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		return a.show(ctx, []string{string(appstate.ViewAutomation)})
	}
	switch args[0] {
	case "add":
		fs := a.flags("automation add")
		name := fs.String("name", "", "automation name")
		trigger := fs.String("trigger", string(model.TriggerTime), "time, temperature, motion or device_state")
		value := fs.String("value", "", "trigger value")
		deviceID := fs.String("device", "", "target device id")
		action := fs.String("action", string(model.AutomationTurnOn), "turn_on, turn_off, set_brightness or set_temperature")
		disabled := fs.Bool("disabled", false, "store the rule disabled")
		if _, err := parse(fs, args[1:]); err != nil {
			return err
		}
		if err := required(map[string]string{"name": *name, "device": *deviceID}); err != nil {
			return err
		}
		t, err := oneOf(*trigger, triggers)
		if err != nil {
			return err
		}
		act, err := oneOf(*action, actions)
		if err != nil {
			return err
		}
		rule, err := a.state.AddAutomation(model.Automation{
			Name:         *name,
			Trigger:      t,
			TriggerValue: *value,
			DeviceID:     *deviceID,
			Action:       act,
			Enabled:      !*disabled,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added automation %s (%s)\n", rule.Name, rule.ID)
	case "toggle":
		if err := exactArgs(args[1:], 1, "automation toggle AUTOMATION_ID"); err != nil {
			return err
		}
		enabled, err := a.state.ToggleAutomation(args[1])
		if err != nil {
			return err
		}
		if enabled {
			fmt.Fprintln(a.out, "Automation enabled")
		} else {
			fmt.Fprintln(a.out, "Automation disabled")
		}
	case "rm":
		if err := exactArgs(args[1:], 1, "automation rm AUTOMATION_ID"); err != nil {
			return err
		}
		if err := a.state.DeleteAutomation(args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Automation removed")
	default:
		return fmt.Errorf("%w: unknown automation command %q", ErrUsage, args[0])
	}
	return nil
}
