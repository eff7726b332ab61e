package fan

import (
	"errors"
	"fmt"
)

var ErrNotFinite = errors.New("not a finite number")

// ParseError is returned when a tabular cell is not a number.
type ParseError struct {
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %q: invalid number %q", e.Column, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FieldError is returned when a JSON fan record lacks a required field.
type FieldError struct {
	Field  string
	Record string
}

func (e *FieldError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("fan record: missing field %q", e.Field)
	}
	return fmt.Sprintf("fan record %q: missing field %q", e.Record, e.Field)
}
