package syncstate

import (
	"fmt"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
)

func (s *Service) Automations() []model.Automation {
	return s.automations.Get()
}

// AddAutomation stores a rule. Rules are never evaluated.
func (s *Service) AddAutomation(a model.Automation) (model.Automation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return model.Automation{}, fmt.Errorf("%w: automation name is required", ErrInvalidInput)
	}
	if a.ID == "" {
		a.ID = utils.NewTimeOrderedID("automation")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	s.automations.Update(func(items []model.Automation) []model.Automation {
		return append(items, a)
	})
	s.record(model.ItemAutomation, a.ID, a.Name, model.ActionAutomationTriggered, fmt.Sprintf("Automation %q created", a.Name))
	return a, nil
}

func (s *Service) DeleteAutomation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.automations.Get()
	for i, a := range items {
		if a.ID != id {
			continue
		}
		s.automations.Set(append(items[:i], items[i+1:]...))
		s.record(model.ItemAutomation, a.ID, a.Name, model.ActionAutomationTriggered, fmt.Sprintf("Automation %q deleted", a.Name))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAutomationNotFound, id)
}

// ToggleAutomation flips the enabled flag and returns the new value.
func (s *Service) ToggleAutomation(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.automations.Get()
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Enabled = !items[i].Enabled
		s.automations.Set(items)
		state := "disabled"
		if items[i].Enabled {
			state = "enabled"
		}
		s.record(model.ItemAutomation, items[i].ID, items[i].Name, model.ActionAutomationTriggered,
			fmt.Sprintf("Automation %q %s", items[i].Name, state))
		return items[i].Enabled, nil
	}
	return false, fmt.Errorf("%w: %s", ErrAutomationNotFound, id)
}
