package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user or email already exists")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrIncorrectOldPassword = errors.New("incorrect old password")
	ErrMissingCredentials   = errors.New("email/username and password are required")
	ErrMissingFields        = errors.New("missing fields")
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports the first registration field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
