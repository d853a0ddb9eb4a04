// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let higher layers such as handlers
// distinguish failure scenarios: a lifecycle operation hitting a terminal
// reservation is a conflict for the caller to handle, not a crash.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists for the
// requested identifier. Handlers should translate this into an HTTP 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvalidTransition is returned when a lifecycle operation is attempted
// from a terminal or otherwise wrong state. The row is left untouched.
// Handlers should translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDateUnavailable is returned when a confirmation would exceed the daily
// agenda limit or land on a manually blocked date. Handlers should translate
// this into an HTTP 409 response.
var ErrDateUnavailable = errors.New("event date unavailable")

// ErrQuoteNotFound is returned when a quote draft token does not exist or
// has expired. Handlers should translate this into an HTTP 404 response.
var ErrQuoteNotFound = errors.New("quote not found")
