package models

import (
	"errors"
	"fmt"
)

// Storage-level sentinels returned by repositories
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// ErrorKind classifies a failure so the HTTP layer can pick a status code
type ErrorKind string

const (
	KindBadRequest ErrorKind = "bad_request"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindForbidden  ErrorKind = "forbidden"
	KindInternal   ErrorKind = "internal"

	// KindUnauthorized is raised by the auth endpoints only
	KindUnauthorized ErrorKind = "unauthorized"
)

// AppError is the typed error returned by every service operation
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewBadRequest creates a validation error
func NewBadRequest(code, message string) *AppError {
	return &AppError{Kind: KindBadRequest, Code: code, Message: message}
}

// NewNotFound creates a not-found error for the named resource
func NewNotFound(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Err:     ErrNotFound,
	}
}

// NewConflict creates a conflict error
func NewConflict(code, message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message, Err: err}
}

// NewForbidden creates an authorization error
func NewForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: "FORBIDDEN", Message: message}
}

// NewUnauthorized creates a credential error
func NewUnauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// NewInternal wraps an unexpected failure. Message is what clients see.
func NewInternal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// SeatConflictError reports a seat that is already held by a confirmed booking
type SeatConflictError struct {
	Seat int
}

func (e *SeatConflictError) Error() string {
	if e.Seat <= 0 {
		return "One or more requested seats are already booked"
	}
	return fmt.Sprintf("Seat %d is already booked", e.Seat)
}

// NewSeatConflict wraps a SeatConflictError as a conflict AppError
func NewSeatConflict(seat int) *AppError {
	seatErr := &SeatConflictError{Seat: seat}
	return NewConflict("SEAT_CONFLICT", seatErr.Error(), seatErr)
}

// KindOf returns the kind of err, or KindInternal for anything untyped
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsSeatConflict reports whether err carries a SeatConflictError
func IsSeatConflict(err error) bool {
	var seatErr *SeatConflictError
	return errors.As(err, &seatErr)
}
