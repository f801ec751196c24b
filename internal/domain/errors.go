package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrInvalidHorizon   = errors.New("invalid horizon")
	ErrInvalidRegime    = errors.New("invalid tax regime")
)

// ParameterError identifies the input field that failed to parse or validate.
type ParameterError struct {
	Field  string
	Value  string
	Err    error
	Reason string
}

func (e *ParameterError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Err, e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ParameterError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &ParameterError{Field: field, Err: ErrMissingParameter}
}

func invalid(field, value, reason string) error {
	return &ParameterError{Field: field, Value: value, Err: ErrInvalidParameter, Reason: reason}
}
