package cubesim

import (
	"fmt"
	"time"
)

// InvalidParameterError is returned when an input is out of range or non physical.
// Param names the offending input so that callers can point the user at it.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s=%g: %s", e.Param, e.Value, e.Reason)
}

func invalidParam(param string, value float64, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}

// EphemerisUnavailableError is returned when the Sun direction cannot be resolved at a given time.
type EphemerisUnavailableError struct {
	DT     time.Time
	Source string
	Err    error
}

func (e *EphemerisUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s ephemeris unavailable @ %s", e.Source, e.DT.UTC())
	}
	return fmt.Sprintf("%s ephemeris unavailable @ %s: %s", e.Source, e.DT.UTC(), e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *EphemerisUnavailableError) Unwrap() error {
	return e.Err
}
