package gleaner

import (
	"errors"
	"fmt"
)

// Application error codes. These map domain failures to the classes an
// operator or the adaptive orchestrator needs to tell apart: a missing
// required field (ENOTFOUND) is recoverable by the fallback path, while
// an unreachable fallback service (EUNAVAILABLE) is not.
const (
	ECONFLICT    = "conflict"    // conflicting state
	EINTERNAL    = "internal"    // internal error
	EINVALID     = "invalid"     // validation failed / invalid document
	ENOTFOUND    = "not_found"   // required field or record not found
	EUNAVAILABLE = "unavailable" // network fetch or fallback service failed
	EUNSUPPORTED = "unsupported" // operation not supported for this entity type
)

// Error represents an application-specific error. Application errors can
// be unwrapped by the caller to extract the error code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("gleaner error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
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
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
