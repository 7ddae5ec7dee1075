package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField indicates at least one input was left blank.
var ErrMissingField = errors.New("missing field")

// ErrInvalidNumber indicates an input could not be read as a decimal number.
var ErrInvalidNumber = errors.New("invalid number")

// ErrOutOfRange indicates the inputs are numbers but a metric overflowed.
var ErrOutOfRange = errors.New("result out of range")

// ValidationError lists every blank input, in form order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrMissingField }

// ParseError reports the first input that is not a number.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: field %s value %q", ErrInvalidNumber, e.Field, e.Value)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidNumber}
	}
	return []error{ErrInvalidNumber, e.Err}
}

// RangeError names the first metric that is not finite. It also matches
// ErrInvalidNumber, since such inputs cannot be used either.
type RangeError struct {
	Metric string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: metric %s", ErrOutOfRange, e.Metric)
}

func (e *RangeError) Unwrap() []error { return []error{ErrOutOfRange, ErrInvalidNumber} }
