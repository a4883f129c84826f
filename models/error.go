package models

import "errors"

type Error struct {
	Message string `json:"error"`
}

// FieldError is a validation failure scoped to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	// ErrInvalidWindow rejects an event configuration whose registration
	// window is inconsistent with its event date.
	ErrInvalidWindow = errors.New("invalid registration window")

	// ErrDuplicateRegistration is returned when an insert hits the unique
	// (email, event_date) index.
	ErrDuplicateRegistration = errors.New("duplicate registration")
)
