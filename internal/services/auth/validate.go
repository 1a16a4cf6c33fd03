package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	userdomain "github.com/micro-ha/smarthome-dashboard/internal/domain/user"
)

const (
	minNameLength     = 3
	maxNameLength     = 30
	minPasswordLength = 6
)

func validateRegister(in userdomain.RegisterInput) error {
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"username", in.Username},
		{"name", in.Name},
	} {
		if field.value == nil {
			continue
		}
		if err := checkLength(field.name, *field.value, minNameLength, maxNameLength); err != nil {
			return err
		}
	}

	if in.Email == nil {
		return invalid("email", "%q is required", "email")
	}
	if *in.Email == "" {
		return invalid("email", "%q is not allowed to be empty", "email")
	}
	if !validEmail(*in.Email) {
		return invalid("email", "%q must be a valid email", "email")
	}

	if in.Password == nil {
		return invalid("password", "%q is required", "password")
	}
	return checkLength("password", *in.Password, minPasswordLength, 0)
}

func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return invalid(field, "%q is not allowed to be empty", field)
	case n < min:
		return invalid(field, "%q length must be at least %d characters long", field, min)
	case max > 0 && n > max:
		return invalid(field, "%q length must be less than or equal to %d characters long", field, max)
	}
	return nil
}

// validEmail accepts a bare address whose domain has a dot.
func validEmail(raw string) bool {
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(raw, "@")
	domain := raw[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".") && !strings.HasPrefix(domain, ".")
}

func invalid(field, format string, args ...any) error {
	return &userdomain.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
