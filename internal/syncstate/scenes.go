package syncstate

import (
	"fmt"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
)

func (s *Service) Scenes() []model.Scene {
	return s.scenes.Get()
}

func (s *Service) AddScene(scene model.Scene) (model.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scene.Name = strings.TrimSpace(scene.Name)
	if scene.Name == "" {
		return model.Scene{}, fmt.Errorf("%w: scene name is required", ErrInvalidInput)
	}
	if scene.ID == "" {
		scene.ID = utils.NewTimeOrderedID("scene")
	}
	if scene.CreatedAt.IsZero() {
		scene.CreatedAt = s.now()
	}
	if scene.Devices == nil {
		scene.Devices = []model.SceneStep{}
	}
	s.scenes.Update(func(scenes []model.Scene) []model.Scene {
		return append(scenes, scene)
	})
	s.record(model.ItemScene, scene.ID, scene.Name, model.ActionSceneActivated,
		fmt.Sprintf("Scene %q created with %d devices", scene.Name, len(scene.Devices)))
	return scene, nil
}

func (s *Service) DeleteScene(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenes := s.scenes.Get()
	for i, scene := range scenes {
		if scene.ID != id {
			continue
		}
		s.scenes.Set(append(scenes[:i], scenes[i+1:]...))
		s.record(model.ItemScene, scene.ID, scene.Name, model.ActionSceneActivated, fmt.Sprintf("Scene %q deleted", scene.Name))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSceneNotFound, id)
}

// ExecuteScene applies every step whose device exists and records a single
// history entry for the whole activation. It returns the number of devices updated.
func (s *Service) ExecuteScene(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var scene *model.Scene
	scenes := s.scenes.Get()
	for i := range scenes {
		if scenes[i].ID == id {
			scene = &scenes[i]
			break
		}
	}
	if scene == nil {
		return 0, fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}

	affected := 0
	for _, step := range scene.Devices {
		if _, ok := s.applyDeviceUpdate(step.DeviceID, step.Patch()); ok {
			affected++
		}
	}
	s.record(model.ItemScene, scene.ID, scene.Name, model.ActionSceneActivated,
		fmt.Sprintf("Scene %q activated affecting %d devices", scene.Name, affected))
	return affected, nil
}
