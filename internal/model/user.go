package model

import (
	"strings"
	"time"
)

type Subscription string

const (
	SubscriptionFree    Subscription = "Free"
	SubscriptionPremium Subscription = "Premium"
	SubscriptionPro     Subscription = "Pro"
)

// MaxDevices returns the device limit of the plan.
func (s Subscription) MaxDevices() int {
	switch s {
	case SubscriptionPremium:
		return 25
	case SubscriptionPro:
		return 100
	default:
		return 5
	}
}

// Subscriptions lists the plans in upgrade order.
func Subscriptions() []Subscription {
	return []Subscription{SubscriptionFree, SubscriptionPremium, SubscriptionPro}
}

// Price is the monthly price label of the plan.
func (s Subscription) Price() string {
	switch s {
	case SubscriptionPremium:
		return "$9.99"
	case SubscriptionPro:
		return "$19.99"
	default:
		return "$0"
	}
}

type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	VoiceControl  bool   `json:"voiceControl"`
	EnergyAlerts  bool   `json:"energyAlerts"`
}

// User is the signed-in account as mirrored in the local cache.
type User struct {
	ID                 string       `json:"id"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	Username           string       `json:"username"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	Address            string       `json:"address"`
	Subscription       Subscription `json:"subscription"`
	SubscriptionExpiry string       `json:"subscriptionExpiry"`
	DevicesUsed        int          `json:"devicesUsed"`
	MaxDevices         int          `json:"maxDevices"`
	ProfileImage       string       `json:"profileImage,omitempty"`
	Preferences        *Preferences `json:"preferences,omitempty"`
	LastLogin          *time.Time   `json:"lastLogin,omitempty"`
}

// DisplayName is "First Last", falling back to username, email and finally "User".
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}

type UserPatch struct {
	FirstName    *string       `json:"firstName,omitempty"`
	LastName     *string       `json:"lastName,omitempty"`
	Email        *string       `json:"email,omitempty"`
	Phone        *string       `json:"phone,omitempty"`
	Address      *string       `json:"address,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
	// SubscriptionExpiry is a YYYY-MM-DD date.
	SubscriptionExpiry *string      `json:"subscriptionExpiry,omitempty"`
	Preferences        *Preferences `json:"preferences,omitempty"`
}

func (p UserPatch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Subscription != nil {
		u.Subscription = *p.Subscription
		u.MaxDevices = p.Subscription.MaxDevices()
	}
	if p.SubscriptionExpiry != nil {
		u.SubscriptionExpiry = *p.SubscriptionExpiry
	}
	if p.Preferences != nil {
		prefs := *p.Preferences
		u.Preferences = &prefs
	}
	return u
}
