package domain

import "errors"

// ErrNotFound is returned by timeline and service functions when the
// requested event does not exist. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the parent sentinel for every recoverable input failure.
// The specific sentinels below all wrap it, so callers can match either the
// broad class (errors.Is(err, ErrValidation)) or the exact cause.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingFields is returned when a candidate duty is missing a required
// field (start date, start time, end date, or end time).
var ErrMissingFields = newValidationError("missing required fields")

// ErrInvalidInterval is returned when a candidate duty's instants cannot be
// parsed or its end does not strictly follow its start.
var ErrInvalidInterval = newValidationError("invalid interval")

// ErrInvalidZone is returned when an acclimatization zone name is not a
// recognized IANA time zone. It is fatal to the single calculation and must
// never leave a partial write in the timeline.
var ErrInvalidZone = newValidationError("invalid time zone")

// ErrFDPExceeded is returned when a duty's duration exceeds the maximum
// flight duty period the active regulator's table permits for its inputs.
var ErrFDPExceeded = newValidationError("flight duty period exceeded")

// ErrWeeklyCapExceeded is returned when a duty would push the trailing
// 7-day duty total past the weekly cap.
var ErrWeeklyCapExceeded = newValidationError("weekly duty cap exceeded")

// validationError is a named sentinel that also matches ErrValidation.
type validationError struct{ msg string }

func newValidationError(msg string) error { return &validationError{msg: msg} }

func (e *validationError) Error() string { return e.msg }

// Is reports that every validationError is an ErrValidation, so the generic
// handler mapping works without enumerating each sentinel.
func (e *validationError) Is(target error) bool { return target == ErrValidation }
