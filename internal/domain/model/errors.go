package model

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidInput marks an applicant attribute outside its declared domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrParameterLoad marks a parameter artifact that is missing, malformed or
	// inconsistent with the feature encoder.
	ErrParameterLoad = errors.New("parameter load error")
)

// FieldError reports the first applicant field that failed validation.
// It matches ErrInvalidInput and, when set, its Cause.
type FieldError struct {
	Cause  error
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidInput, e.Cause}
	}
	return []error{ErrInvalidInput}
}

func fieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

func parameterError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParameterLoad, fmt.Sprintf(format, args...))
}
