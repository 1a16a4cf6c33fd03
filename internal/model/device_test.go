package model

import "testing"

func TestNormalizeDropsUndeclaredAttributes(t *testing.T) {
	volume := 30
	brightness := 150
	battery := -5
	energy := -1.0
	d := Device{
		Type:        DeviceTypeLighting,
		Status:      "standby",
		Volume:      &volume,
		Brightness:  &brightness,
		Battery:     &battery,
		EnergyUsage: &energy,
	}.Normalize()

	if d.Status != StatusOff {
		t.Fatalf("Status = %q, want off", d.Status)
	}
	if d.Volume != nil || d.Battery != nil {
		t.Fatalf("lighting kept undeclared attributes: %+v", d)
	}
	if d.Brightness == nil || *d.Brightness != 100 {
		t.Fatalf("Brightness = %v, want 100", d.Brightness)
	}
	if d.EnergyUsage == nil || *d.EnergyUsage != 0 {
		t.Fatalf("EnergyUsage = %v, want 0", d.EnergyUsage)
	}
	if volume != 30 || brightness != 150 {
		t.Fatal("Normalize modified caller values")
	}
}

func TestUnknownTypeKeepsEveryAttribute(t *testing.T) {
	temp := 22.0
	volume := 10
	d := Device{Type: "thermostat", Status: StatusOn, Temperature: &temp, Volume: &volume}.Normalize()
	if d.Temperature == nil || d.Volume == nil {
		t.Fatalf("unknown type lost attributes: %+v", d)
	}
	if DeviceType("thermostat").Known() {
		t.Fatal("thermostat reported as known variant")
	}
}

func TestDevicePatchApply(t *testing.T) {
	on := StatusOn
	name := "  Desk Lamp "
	brightness := 60
	d := DevicePatch{Name: &name, Status: &on, Brightness: &brightness}.Apply(Device{ID: "1", Type: DeviceTypeLighting, Status: StatusOff})
	if d.Name != "Desk Lamp" || d.Status != StatusOn || *d.Brightness != 60 || d.ID != "1" {
		t.Fatalf("Apply() = %+v", d)
	}
	if !(DevicePatch{}).Empty() {
		t.Fatal("zero patch not empty")
	}
}

func TestSceneStepPatch(t *testing.T) {
	p := SceneStep{DeviceID: "x", Action: "dim"}.Patch()
	if p.Status == nil || *p.Status != StatusOff {
		t.Fatalf("non turn_on action status = %v, want off", p.Status)
	}
	if *(SceneStep{Action: SceneTurnOn}.Patch().Status) != StatusOn {
		t.Fatal("turn_on did not map to on")
	}
}

func TestUserDisplayNameAndPlan(t *testing.T) {
	if got := (User{FirstName: "Demo", LastName: "User"}).DisplayName(); got != "Demo User" {
		t.Fatalf("DisplayName() = %q", got)
	}
	if got := (User{}).DisplayName(); got != "User" {
		t.Fatalf("DisplayName() = %q, want User", got)
	}
	pro := SubscriptionPro
	u := UserPatch{Subscription: &pro}.Apply(User{Subscription: SubscriptionFree, MaxDevices: 5})
	if u.MaxDevices != 100 {
		t.Fatalf("MaxDevices = %d, want 100", u.MaxDevices)
	}
}
