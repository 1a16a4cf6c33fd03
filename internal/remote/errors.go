package remote

import (
	"fmt"
	"net/http"
)

// AuthError reports bad credentials or a missing, expired or rejected token.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return "auth: " + e.Message
}

// ValidationError reports a request body the server (or the client) rejected.
type ValidationError struct {
	Status  int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return "validation: " + e.Message
}

// NotFoundError reports an unknown resource id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Message
}

// ServerError covers every other non-2xx response.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// NetworkError reports a request that could not be completed.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func errNotAuthenticated() error {
	return &AuthError{Status: http.StatusUnauthorized, Message: "Access denied"}
}

// statusError maps a failed response onto the error taxonomy. Auth endpoints
// report every failure as an AuthError.
func statusError(status int, message string, authCall bool) error {
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	if authCall {
		return &AuthError{Status: status, Message: message}
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Status: status, Message: message}
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return &ValidationError{Status: status, Message: message}
	case http.StatusNotFound:
		return &NotFoundError{Message: message}
	default:
		return &ServerError{Status: status, Message: message}
	}
}
