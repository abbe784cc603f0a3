// Package errs defines the domain error taxonomy. Every storage-level
// fault is translated into one of these at the service boundary; handlers
// map them to HTTP statuses and never leak raw driver errors.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError: a referenced entity id does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError: a field violates a domain constraint. Field names the
// violated field so clients get a deterministic message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConsistencyError: a cross-entity invariant is violated, e.g. binding a
// seat to a flight operated by a different airplane.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	return e.Reason
}

func Consistency(reason string) *ConsistencyError {
	return &ConsistencyError{Reason: reason}
}

// AlreadyBookedError: the uniqueness race on a flight seat was lost at
// issuance time. Distinct from validation so clients retry with a
// different seat instead of retrying as-is.
type AlreadyBookedError struct {
	FlightSeatID int64
}

func (e *AlreadyBookedError) Error() string {
	return fmt.Sprintf("flight seat %d is already booked", e.FlightSeatID)
}

func AlreadyBooked(flightSeatID int64) *AlreadyBookedError {
	return &AlreadyBookedError{FlightSeatID: flightSeatID}
}

// HTTPStatus maps a domain error to its client-facing status code.
// Anything outside the taxonomy is a server fault.
func HTTPStatus(err error) int {
	var nf *NotFoundError
	var ve *ValidationError
	var ce *ConsistencyError
	var ab *AlreadyBookedError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ve), errors.As(err, &ce):
		return http.StatusBadRequest
	case errors.As(err, &ab):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
