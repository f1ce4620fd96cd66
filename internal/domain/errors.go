package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// MissingFieldError reports a required field absent from a stored record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidEnumError reports a stored value that matches no known variant.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
}

// InvalidDateError reports a date field that is not valid ISO-8601.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date in field %q: %q", e.Field, e.Value)
}
