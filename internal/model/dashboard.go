package model

// DashboardUser is the account banner of the dashboard aggregate.
type DashboardUser struct {
	Name          string `json:"name"`
	Plan          string `json:"plan"`
	ActiveDevices int    `json:"activeDevices"`
	Rooms         int    `json:"rooms"`
}

type PlanUsage struct {
	Plan  string `json:"plan"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
	Price string `json:"price"`
}

type Plan struct {
	Name      string   `json:"name"`
	Limit     int      `json:"limit"`
	Features  []string `json:"features"`
	Price     string   `json:"price"`
	IsCurrent bool     `json:"isCurrent"`
}

type SubscriptionOverview struct {
	Current PlanUsage `json:"current"`
	Plans   []Plan    `json:"plans"`
}

// SceneSummary is a suggested scene listed on the dashboard.
type SceneSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultCategories is the fixed category list shown on the dashboard.
func DefaultCategories() []Category {
	return []Category{
		{ID: "heating", Name: "Heating & Cooling", Icon: "thermometer", DeviceCount: 3},
		{ID: "lighting", Name: "Lighting", Icon: "lightbulb", DeviceCount: 8},
		{ID: "shading", Name: "Shading", Icon: "shading", DeviceCount: 4},
		{ID: "security", Name: "Security", Icon: "security", DeviceCount: 2},
		{ID: "multimedia", Name: "Multimedia", Icon: "multimedia", DeviceCount: 5},
		{ID: "music", Name: "Music", Icon: "music", DeviceCount: 3},
	}
}
