package domain

import (
	"errors"
	"fmt"
)

// ErrKind classifies a domain error so the API layer can map it to an HTTP
// status without string matching.
type ErrKind int

// Error kinds
const (
	KindValidation     ErrKind = iota // Missing or malformed input, caller-correctable
	KindInsufficient                  // Requested days exceed the remaining balance
	KindIntegrityFault                // Stored balance exceeds the cap, administrator must intervene
	KindNotFound                      // Referenced record does not exist
	KindAlreadyProcessed              // Request already has a terminal status
	KindForbidden                     // Principal lacks the required role
	KindStore                         // Persistence failure, opaque to the caller
)

// Error is a typed domain error with a human-readable message.
type Error struct {
	Kind    ErrKind // Classification
	Message string  // Human-readable message returned to the caller
	Err     error   // Wrapped cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Is matches two domain errors by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for errors.Is comparisons.
var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrInsufficient     = &Error{Kind: KindInsufficient, Message: "insufficient leave balance"}
	ErrIntegrityFault   = &Error{Kind: KindIntegrityFault, Message: "balance integrity fault"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrAlreadyProcessed = &Error{Kind: KindAlreadyProcessed, Message: "leave request has already been processed"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrStore            = &Error{Kind: KindStore, Message: "storage failure"}
)

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Insufficientf builds an insufficient-balance error with a formatted message.
func Insufficientf(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficient, Message: fmt.Sprintf(format, args...)}
}

// IntegrityFaultf builds an integrity-fault error with a formatted message.
func IntegrityFaultf(format string, args ...any) *Error {
	return &Error{Kind: KindIntegrityFault, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbiddenf builds a forbidden error with a formatted message.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// StoreErr wraps an unexpected persistence failure.
func StoreErr(err error) *Error {
	return &Error{Kind: KindStore, Message: "storage failure", Err: err}
}
