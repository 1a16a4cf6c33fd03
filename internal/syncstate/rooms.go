package syncstate

import (
	"fmt"
	"strings"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
	"github.com/micro-ha/smarthome-dashboard/internal/pkg/utils"
)

func (s *Service) Rooms() []model.Room {
	return s.rooms.Get()
}

func (s *Service) Room(id string) (model.Room, error) {
	for _, r := range s.rooms.Get() {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
}

// DevicesInRoom returns the devices whose room name equals the room's name.
// Devices reference rooms by name, so renaming a room detaches its devices.
func (s *Service) DevicesInRoom(roomID string) ([]model.Device, error) {
	room, err := s.Room(roomID)
	if err != nil {
		return nil, err
	}
	out := []model.Device{}
	for _, d := range s.devices.Get() {
		if d.Room == room.Name {
			out = append(out, d)
		}
	}
	return out, nil
}

func nameTaken(rooms []model.Room, name, exceptID string) bool {
	for _, r := range rooms {
		if r.ID != exceptID && model.SameRoomName(r.Name, name) {
			return true
		}
	}
	return false
}

// AddRoom stores a new room. Room names are unique, ignoring case.
func (s *Service) AddRoom(room model.Room) (model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		return model.Room{}, fmt.Errorf("%w: room name is required", ErrInvalidInput)
	}
	rooms := s.rooms.Get()
	if nameTaken(rooms, room.Name, "") {
		return model.Room{}, fmt.Errorf("%w: %s", ErrRoomExists, room.Name)
	}
	room.ID = utils.NewTimeOrderedID("room")
	s.rooms.Set(append(rooms, room))
	s.record(model.ItemRoom, room.ID, room.Name, model.ActionRoomAdded, fmt.Sprintf("Room %q added", room.Name))
	return room, nil
}

func (s *Service) RemoveRoom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.rooms.Get()
	for i, r := range rooms {
		if r.ID != id {
			continue
		}
		s.rooms.Set(append(rooms[:i], rooms[i+1:]...))
		s.record(model.ItemRoom, r.ID, r.Name, model.ActionRoomRemoved, fmt.Sprintf("Room %q removed", r.Name))
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
}

// UpdateRoom merges patch into the room. Devices keep their old room name.
func (s *Service) UpdateRoom(id string, patch model.RoomPatch) (model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.rooms.Get()
	for i, r := range rooms {
		if r.ID != id {
			continue
		}
		updated := patch.Apply(r)
		updated.ID = r.ID
		if updated.Name == "" {
			return model.Room{}, fmt.Errorf("%w: room name is required", ErrInvalidInput)
		}
		if nameTaken(rooms, updated.Name, id) {
			return model.Room{}, fmt.Errorf("%w: %s", ErrRoomExists, updated.Name)
		}
		rooms[i] = updated
		s.rooms.Set(rooms)
		s.record(model.ItemRoom, updated.ID, updated.Name, model.ActionRoomUpdated, fmt.Sprintf("Room %q updated", updated.Name))
		return updated, nil
	}
	return model.Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
}
