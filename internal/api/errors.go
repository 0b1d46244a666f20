package api

import (
	"errors"
	"fmt"
)

// Error is a normalized non-2xx response from the remote service. When the
// body carried a {"detail": "..."} shape the detail is surfaced verbatim;
// otherwise a generic message carrying the status code is substituted.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ValidationError is a local pre-flight rejection; no network call was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusCode returns the HTTP status of a normalized API error, or 0 for
// transport and validation failures.
func StatusCode(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}
