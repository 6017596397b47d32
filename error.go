package pagelens

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID     = "invalid"        // validation failed or bad input
	ENOTFOUND    = "not_found"      // entity does not exist
	EEMPTYDOC    = "empty_document" // document has no content at all
	ETIMEOUT     = "timeout"        // external call exceeded its deadline
	EUNAVAILABLE = "unavailable"    // external service cannot be reached
	EINTERNAL    = "internal"       // unexpected internal error
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the application error code constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pagelens error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsTransient reports whether an error is worth a single retry: timeouts
// and unavailability are transient, validation and not-found errors are not.
func IsTransient(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, EUNAVAILABLE, EINTERNAL:
		return true
	}
	return false
}
