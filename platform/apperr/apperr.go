// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors, and the HTTP layer middleware
// automatically maps them to appropriate HTTP status codes.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindInvalidStatus indicates the request is not in the status required
	// for the attempted transition (including lost conditional-update races).
	KindInvalidStatus
	// KindInvalidInput indicates a malformed payload (bad date, missing
	// required message, missing unit reference, non-agent assignment target).
	KindInvalidInput
	// KindUnitUnavailable indicates a reservation approval could not lock the unit.
	KindUnitUnavailable
	// KindAgentNotFound indicates an assignment target does not exist.
	KindAgentNotFound
	// KindEmail indicates a notification send failed at a fail-fast call site.
	KindEmail
	// KindBadRequest indicates a malformed or invalid request at the transport edge.
	KindBadRequest
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // Operation that failed (optional)
	Err     error       // Underlying error (optional)
	Details interface{} // Additional details for response (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the stable machine-readable discriminator for this error kind.
// Callers branch on this rather than on message strings.
func (e *Error) Code() string {
	switch e.Kind {
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidStatus:
		return "INVALID_STATUS"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindUnitUnavailable:
		return "UNIT_UNAVAILABLE"
	case KindAgentNotFound:
		return "AGENT_NOT_FOUND"
	case KindEmail:
		return "EMAIL_ERROR"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound, KindAgentNotFound:
		return http.StatusNotFound
	case KindInvalidStatus, KindUnitUnavailable:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindEmail:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails returns the error with additional details.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// Convenience constructors for common error types.

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// InvalidStatus creates an illegal-transition error.
func InvalidStatus(message string) *Error {
	return New(KindInvalidStatus, message)
}

// InvalidInput creates a malformed-payload error.
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// UnitUnavailable creates a unit-lock-failure error.
func UnitUnavailable(message string) *Error {
	return New(KindUnitUnavailable, message)
}

// AgentNotFound creates a missing-assignment-target error.
func AgentNotFound(message string) *Error {
	return New(KindAgentNotFound, message)
}

// Email creates a notification-failure error.
func Email(message string, err error) *Error {
	return Wrap(KindEmail, message, err)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal creates an internal server error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
