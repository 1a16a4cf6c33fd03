package syncstate

import "errors"

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomExists         = errors.New("room already exists")
	ErrSceneNotFound      = errors.New("scene not found")
	ErrAutomationNotFound = errors.New("automation not found")
	// ErrNotSignedIn is returned by profile operations when no user is signed in.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrInvalidInput marks a mutation rejected before touching any state.
	ErrInvalidInput = errors.New("invalid input")
)
