package solarpos

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when year/month/day do not name a real
	// calendar date. Nothing is computed in that case.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrDomain is matched by every *DomainError.
	ErrDomain = errors.New("inverse trig argument outside [-1, 1]")

	// ErrNoRiseNoSet is returned when the Sun does not rise or set on that
	// date at that location (polar day or polar night).
	ErrNoRiseNoSet = errors.New("sun does not rise or set on this date")

	// ErrNoCrossing is returned when the elevation threshold is not crossed
	// in the searched window.
	ErrNoCrossing = errors.New("elevation threshold not crossed in window")
)

// DomainError reports an arcsine/arccosine step whose argument fell outside
// [-1, 1] (or was NaN after a division by zero). The argument is never
// clamped; the values depending on it are NaN.
type DomainError struct {
	Op  string  // the step that failed, e.g. "solar zenith"
	Arg float64 // the offending argument

	cause error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("solarpos: %s: argument %v outside [-1, 1]", e.Op, e.Arg)
}

// Is makes errors.Is(err, ErrDomain) hold for every DomainError.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// Unwrap exposes the more specific cause, if any (e.g. ErrNoRiseNoSet).
func (e *DomainError) Unwrap() error {
	return e.cause
}
