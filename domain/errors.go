package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequired          = errors.New("required")
	ErrInvalidMaterial   = errors.New("invalid material")
	ErrInvalidPercentage = errors.New("advance percentage must be between 0 and 100")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrUnknownValue      = errors.New("unknown value")
)

// FieldError is a single rejected field of a form or request.
type FieldError struct {
	Field string
	Msg   string
	Err   error
}

func (e FieldError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e FieldError) Unwrap() error { return e.Err }

// ValidationError collects every invalid field of a rejected mutation so the
// caller can surface all of them at once.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError holding one field.
func NewValidationError(field, msg string, err error) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg, err)
	return v
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the field causes so errors.Is(err, ErrInvalidMaterial) works.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f)
	}
	return out
}

func (e *ValidationError) Add(field, msg string, err error) {
	e.Fields = append(e.Fields, FieldError{Field: field, Msg: msg, Err: err})
}

// Merge appends the fields of another validation error, if err is one.
// Any other non-nil error is recorded under field.
func (e *ValidationError) Merge(field string, err error) {
	if err == nil {
		return
	}
	var other *ValidationError
	if errors.As(err, &other) {
		e.Fields = append(e.Fields, other.Fields...)
		return
	}
	e.Add(field, err.Error(), err)
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// FieldMap flattens the error into field -> message, first message wins.
func (e *ValidationError) FieldMap() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; ok {
			continue
		}
		msg := f.Msg
		if msg == "" && f.Err != nil {
			msg = f.Err.Error()
		}
		out[f.Field] = msg
	}
	return out
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// InvalidTransitionError is returned when an event is not legal from the
// current state of a trip, payment track or supplier assignment.
type InvalidTransitionError struct {
	Track  string
	From   string
	Event  string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: cannot apply %q from %q", e.Track, e.Event, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
