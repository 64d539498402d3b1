// Package errors defines the error taxonomy for the Blink server.
//
// All service errors are represented as BlinkError, which provides:
//   - Code: Machine-readable error identifier
//   - Message: Human-readable error description
//   - Cause: Underlying error, if any
//   - Context: Additional error details (failing field, result codes, etc.)
//
// Use New to create errors; the HTTP layer maps codes to status lines and
// the {error, message} response body.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code is a machine-readable error identifier.
type Code string

const (
	// INVALID_INPUT marks a missing or malformed request field.
	INVALID_INPUT Code = "INVALID_INPUT"

	// INVALID_ADDRESS marks an account ID that failed structural or
	// checksum validation. Context["field"] names the offending field.
	INVALID_ADDRESS Code = "INVALID_ADDRESS"

	// INVALID_AMOUNT marks an amount that is not a positive decimal or is
	// below one stroop.
	INVALID_AMOUNT Code = "INVALID_AMOUNT"

	// ACCOUNT_NOT_FOUND means Horizon reported the source account does not
	// exist on the network.
	ACCOUNT_NOT_FOUND Code = "ACCOUNT_NOT_FOUND"

	// GATEWAY_UNAVAILABLE means the ledger gateway was unreachable or
	// errored at the transport level.
	GATEWAY_UNAVAILABLE Code = "GATEWAY_UNAVAILABLE"

	// SUBMISSION_REJECTED means the network rejected a signed transaction.
	// Context carries the verbatim transaction/operation result codes.
	SUBMISSION_REJECTED Code = "SUBMISSION_REJECTED"

	// TRANSACTION_BUILD_FAILED means transaction assembly or serialization
	// failed after all inputs validated.
	TRANSACTION_BUILD_FAILED Code = "TRANSACTION_BUILD_FAILED"
)

// BlinkError is the base error type for all service errors.
type BlinkError struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]any
}

// Error returns a formatted error string.
func (e *BlinkError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error, enabling error chain inspection.
func (e *BlinkError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error is a BlinkError with the same code.
func (e *BlinkError) Is(target error) bool {
	other, ok := target.(*BlinkError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// New creates a BlinkError with the given code, message and optional cause.
func New(code Code, message string, cause error) *BlinkError {
	return &BlinkError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext attaches a key/value pair and returns the error for chaining.
func (e *BlinkError) WithContext(key string, value any) *BlinkError {
	e.Context[key] = value
	return e
}

// CodeOf extracts the taxonomy code from an error chain. The second return
// is false when no BlinkError is present.
func CodeOf(err error) (Code, bool) {
	var berr *BlinkError
	if stderrors.As(err, &berr) {
		return berr.Code, true
	}
	return "", false
}

// As checks if err is a BlinkError and assigns it.
func As(err error, target **BlinkError) bool {
	return stderrors.As(err, target)
}
