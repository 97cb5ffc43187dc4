// Package apperror provides a structured way to handle the traffic
// assignment core's failures, with error codes, severity levels, and
// conversion to gRPC status errors — without the core itself
// depending on any transport.
package apperror

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorCode identifies a specific failure class of the assignment core.
type ErrorCode string

const (
	// CodeInvalidOrigin indicates an out-of-range origin id.
	CodeInvalidOrigin ErrorCode = "INVALID_ORIGIN"
	// CodeUnknownDestination indicates a destination never passed to InsertOD.
	CodeUnknownDestination ErrorCode = "UNKNOWN_DESTINATION"
	// CodePathPoolFull indicates an origin's path arena is exhausted.
	CodePathPoolFull ErrorCode = "PATH_POOL_FULL"
	// CodeInvalidLinkParameter indicates a non-finite or out-of-domain link parameter.
	CodeInvalidLinkParameter ErrorCode = "INVALID_LINK_PARAMETER"
	// CodeAllocationFailure indicates the constructor could not size its arenas.
	CodeAllocationFailure ErrorCode = "ALLOCATION_FAILURE"
	// CodeInvalidArgument is a catch-all for malformed caller input.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// CodeInternal is the default for anything not classified above.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Severity indicates how critical an error is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "error"
	}
}

// Error is the structured error type returned by the assignment core.
type Error struct {
	Code     ErrorCode
	Message  string
	Field    string
	Details  map[string]any
	Cause    error
	Severity Severity
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GRPCStatus lets status.FromError recognize the error without this
// package (or the core) importing a gRPC server.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.grpcCode(), e.Message)
}

func (e *Error) grpcCode() codes.Code {
	switch e.Code {
	case CodeInvalidOrigin, CodeUnknownDestination, CodeInvalidLinkParameter, CodeInvalidArgument:
		return codes.InvalidArgument
	case CodePathPoolFull:
		return codes.ResourceExhausted
	case CodeAllocationFailure:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// New creates an *Error with SeverityError.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityError}
}

// NewWithField creates an *Error attributed to a specific input field.
func NewWithField(code ErrorCode, message, field string) *Error {
	return &Error{Code: code, Message: message, Field: field, Details: make(map[string]any), Severity: SeverityError}
}

// Wrap creates an *Error carrying an underlying cause.
func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Details: make(map[string]any), Severity: SeverityError}
}

// WithDetails attaches a structured detail and returns the same error.
func (e *Error) WithDetails(key string, value any) *Error {
	e.Details[key] = value
	return e
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code extracts the ErrorCode from err, or CodeInternal if err is not an *Error.
func Code(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// ToGRPC converts err to a gRPC status error, wrapping as Internal if err
// is neither an *Error nor already a status error.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.GRPCStatus().Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}
