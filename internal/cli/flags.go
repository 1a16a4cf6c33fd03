package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

// stringPtr is a flag that stays nil unless it is given.
type stringPtr struct {
	target **string
}

func (f stringPtr) String() string {
	if f.target == nil || *f.target == nil {
		return ""
	}
	return **f.target
}

func (f stringPtr) Set(v string) error {
	*f.target = &v
	return nil
}

func optionalString(fs *flag.FlagSet, target **string, name, usage string) {
	fs.Var(stringPtr{target: target}, name, usage)
}

// stepList collects repeated -step DEVICE_ID:on|off[:brightness=N] flags.
type stepList []model.SceneStep

func (l *stepList) String() string {
	parts := make([]string, 0, len(*l))
	for _, step := range *l {
		parts = append(parts, step.DeviceID+":"+string(step.Action))
	}
	return strings.Join(parts, ",")
}

func (l *stepList) Set(v string) error {
	step, err := parseStep(v)
	if err != nil {
		return err
	}
	*l = append(*l, step)
	return nil
}

func parseStep(raw string) (model.SceneStep, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return model.SceneStep{}, fmt.Errorf("step %q: want DEVICE_ID:on|off", raw)
	}
	step := model.SceneStep{DeviceID: strings.TrimSpace(parts[0])}
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "on", string(model.SceneTurnOn):
		step.Action = model.SceneTurnOn
	case "off", string(model.SceneTurnOff):
		step.Action = model.SceneTurnOff
	default:
		return model.SceneStep{}, fmt.Errorf("step %q: unknown action %q", raw, parts[1])
	}
	for _, setting := range parts[2:] {
		name, value, ok := strings.Cut(setting, "=")
		if !ok {
			return model.SceneStep{}, fmt.Errorf("step %q: want name=value, got %q", raw, setting)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return model.SceneStep{}, fmt.Errorf("step %q: %s is not a number", raw, name)
		}
		switch model.Attribute(strings.TrimSpace(name)) {
		case model.AttrBrightness:
			v := int(n)
			step.Brightness = &v
		case model.AttrVolume:
			v := int(n)
			step.Volume = &v
		case model.AttrTemperature:
			step.Temperature = &n
		default:
			return model.SceneStep{}, fmt.Errorf("step %q: unsupported setting %q", raw, name)
		}
	}
	return step, nil
}
