// Package validation provides request input validation helpers.
package validation

import "regexp"

var (
	usernameRX = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Validator accumulates field validation errors.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Check records a message for the field when ok is false. The first message
// for a field wins.
func (v *Validator) Check(ok bool, field, message string) {
	if ok {
		return
	}
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Registration validates a registration request.
func (v *Validator) Registration(username, email, password string) {
	v.Check(usernameRX.MatchString(username), "username", "username must be 3-30 letters, digits or underscores")
	v.Check(emailRX.MatchString(email), "email", "invalid email address")
	v.Check(len(password) >= 8 && len(password) <= 72, "password", "password must be 8-72 characters")
}
