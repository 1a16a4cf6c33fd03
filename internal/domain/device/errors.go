package device

import "errors"

// ErrDeviceNotFound indicates an unknown device id.
var ErrDeviceNotFound = errors.New("device not found")

// ValidationError reports the first payload field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
