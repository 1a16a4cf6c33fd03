package dashboard

import (
	"context"

	devicedomain "github.com/micro-ha/smarthome-dashboard/internal/domain/device"
	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

// DeviceLister supplies the live device list of the aggregate.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]devicedomain.Device, error)
}

// Dashboard is the GET /api/dashboard payload. Every block except Devices is static.
type Dashboard struct {
	User         model.DashboardUser        `json:"user"`
	Categories   []model.Category           `json:"categories"`
	Devices      []devicedomain.Device      `json:"devices"`
	Subscription model.SubscriptionOverview `json:"subscription"`
	Scenes       []model.SceneSummary       `json:"scenes"`
}

type Service struct {
	devices DeviceLister
}

func New(devices DeviceLister) *Service {
	return &Service{devices: devices}
}

func (s *Service) Build(ctx context.Context) (Dashboard, error) {
	devices, err := s.devices.ListDevices(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		User:         bannerUser,
		Categories:   model.DefaultCategories(),
		Devices:      devices,
		Subscription: subscriptionOverview(),
		Scenes:       suggestedScenes(),
	}, nil
}

var bannerUser = model.DashboardUser{Name: "Amalia", Plan: "Premium", ActiveDevices: 12, Rooms: 5}

func subscriptionOverview() model.SubscriptionOverview {
	return model.SubscriptionOverview{
		Current: model.PlanUsage{Plan: "Premium", Used: 13, Limit: 25, Price: "$9.99/month"},
		Plans: []model.Plan{
			{
				Name:     "Free",
				Limit:    5,
				Features: []string{"Basic automation", "Mobile app access", "Email support"},
				Price:    "$0/month",
			},
			{
				Name:      "Premium",
				Limit:     25,
				Features:  []string{"Advanced automation", "Voice control", "Priority support", "Cloud storage", "Energy monitoring"},
				Price:     "$9.99/month",
				IsCurrent: true,
			},
			{
				Name:  "Pro",
				Limit: 100,
				Features: []string{
					"Unlimited devices", "Professional automation", "Multi-home support", "24/7 phone support",
					"Advanced analytics", "Custom integrations", "White-label options",
				},
				Price: "$19.99/month",
			},
		},
	}
}

func suggestedScenes() []model.SceneSummary {
	return []model.SceneSummary{
		{ID: "morning", Name: "Good Morning", Description: "Turn on lights, start coffee maker, set comfortable temperature"},
		{ID: "movie", Name: "Movie Night", Description: "Dim lights, turn on TV and sound system"},
		{ID: "bedtime", Name: "Bedtime", Description: "Turn off all lights, lock doors, set night temperature"},
		{ID: "away", Name: "Away Mode", Description: "Turn off non-essential devices, activate security"},
	}
}
