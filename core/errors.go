package core

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest covers a malformed or absent request payload.
	ErrInvalidRequest = errors.New("no data provided")
	// ErrInvalidUsername covers length, charset, and denylist violations.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrMissingField covers an absent required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidScore covers non-integer or out-of-range scores.
	ErrInvalidScore = errors.New("invalid score")
	// ErrInvalidDifficulty covers unknown difficulty values.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrStorage covers persistence faults. Handlers log the cause and
	// return a generic message to the caller.
	ErrStorage = errors.New("storage failure")
)

// IsClientFault reports whether err is a validation failure the caller can
// correct, as opposed to a server-side fault.
func IsClientFault(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidScore) ||
		errors.Is(err, ErrInvalidDifficulty)
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsClientFault(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
