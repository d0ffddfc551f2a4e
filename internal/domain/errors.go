package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by services, repositories and handlers.
var (
	// ErrConfiguration is returned when a required environment value is missing.
	ErrConfiguration = errors.New("missing configuration")
	// ErrConnection wraps a failed attempt to reach the database.
	ErrConnection = errors.New("database connection failed")
	// ErrInvalidInput is returned for malformed or missing fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate is returned when a date cannot be parsed. It wraps ErrInvalidInput.
	ErrInvalidDate = fmt.Errorf("invalid date format: %w", ErrInvalidInput)
	ErrNotFound    = errors.New("not found")
	// ErrDuplicateSlug is returned when another event already owns the derived slug.
	ErrDuplicateSlug = errors.New("an event with this title already exists")
	// ErrAlreadyBooked is returned when the (event, email) pair is already booked.
	ErrAlreadyBooked = errors.New("You have already booked this event")
	// ErrEventReference is returned when a booking points to an event that does not exist.
	ErrEventReference = errors.New("referenced event does not exist")
	ErrUnauthorized   = errors.New("invalid credentials")
)

// FieldError describes one offending field of a ValidationError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation. errors.Is(err, ErrInvalidInput) holds.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError returns a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// FieldNames returns the offending field names in order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}
