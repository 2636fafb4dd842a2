package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code labels an error with its place in the failure taxonomy.
type Code string

const (
	// Unauthenticated means no valid session accompanied the request
	Unauthenticated Code = "UNAUTHENTICATED"
	// ForbiddenCSRF means the CSRF token was missing, invalid,
	// already consumed, or bound to a different session. The reasons
	// are deliberately not distinguished.
	ForbiddenCSRF Code = "FORBIDDEN_CSRF"
	// Conflict means a business rule was violated (quota reached,
	// duplicate resource, favoring one's own resource)
	Conflict Code = "CONFLICT"
	// NotFound means the referenced resource does not exist
	NotFound Code = "NOT_FOUND"
	// Internal means an unexpected storage or server failure
	Internal Code = "INTERNAL"
)

// Error is a coded error carrying a user-presentable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates a coded error
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the taxonomy code from an error. Uncoded errors are
// classified as Internal.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return Internal
}

// HTTPStatus maps a taxonomy code to an HTTP status
func HTTPStatus(code Code) int {
	switch code {
	case Unauthenticated:
		return http.StatusUnauthorized
	case ForbiddenCSRF:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
