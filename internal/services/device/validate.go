package device

import (
	"fmt"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
)

type numberRule struct {
	field string
	value *float64
	min   float64
	max   *float64
}

func validateInput(in devicedomain.Input) error {
	required := []struct {
		field string
		value *string
	}{
		{"name", in.Name},
		{"type", in.Type},
		{"room", in.Room},
	}
	for _, item := range required {
		if item.value == nil {
			return invalid(item.field, "%q is required", item.field)
		}
		if *item.value == "" {
			return invalid(item.field, "%q is not allowed to be empty", item.field)
		}
	}
	if in.Category != nil && *in.Category == "" {
		return invalid("category", "%q is not allowed to be empty", "category")
	}
	if in.Status != nil && *in.Status == "" {
		return invalid("status", "%q is not allowed to be empty", "status")
	}

	hundred := 100.0
	rules := []numberRule{
		{field: "brightness", value: in.Brightness, min: 0, max: &hundred},
		{field: "volume", value: in.Volume, min: 0, max: &hundred},
		{field: "battery", value: in.Battery, min: 0, max: &hundred},
		{field: "energyUsage", value: in.EnergyUsage, min: 0},
	}
	for _, rule := range rules {
		if rule.value == nil {
			continue
		}
		if *rule.value < rule.min {
			return invalid(rule.field, "%q must be greater than or equal to %g", rule.field, rule.min)
		}
		if rule.max != nil && *rule.value > *rule.max {
			return invalid(rule.field, "%q must be less than or equal to %g", rule.field, *rule.max)
		}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return &devicedomain.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
