package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDataError marks catalog or policy data that cannot be used.
	ErrDataError = errors.New("data error")

	// ErrInvalidProfile marks a student profile outside its valid domain.
	ErrInvalidProfile = errors.New("invalid profile")
)

// DataError reports a malformed catalog or policy field.
type DataError struct {
	// Row is the 1-based data row (excluding the header), 0 if not row-specific.
	Row   int
	Field string
	Value any
	Err   error
}

func (e DataError) Error() string {
	msg := fmt.Sprintf("%s: field '%s'", ErrDataError, e.Field)
	if e.Row > 0 {
		msg = fmt.Sprintf("%s: row %d, field '%s'", ErrDataError, e.Row, e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value '%v')", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e DataError) Unwrap() error {
	return e.Err
}

func (e DataError) Is(target error) bool {
	return target == ErrDataError
}

// InvalidProfileError reports a student profile that failed validation.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e InvalidProfileError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidProfile, e.Field, e.Reason)
}

func (e InvalidProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}
