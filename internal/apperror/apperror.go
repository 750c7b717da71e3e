package apperror

import (
	"errors"
	"net/http"
)

// Error is a typed application error carrying the HTTP status it maps to.
// Handlers raise these and a single translation point converts them into
// the JSON error envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports a failed entity lookup (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Validation reports a payload that failed schema checks (400).
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized reports a failed credential check (401).
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Status returns the HTTP status associated with err. Unrecognized
// errors map to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err. Unrecognized errors
// get a generic message so internal details never leak into responses.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}
