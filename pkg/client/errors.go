package client

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record is absent from both the API and
// the fallback dataset.
var ErrNotFound = errors.New("not found")

// ErrorClass represents a classification of request errors.
type ErrorClass string

const (
	// ErrorClassNetwork represents transport failures: connection refused,
	// DNS errors, and timeouts.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassHTTP represents non-success HTTP status codes.
	ErrorClassHTTP ErrorClass = "http"

	// ErrorClassNotFound represents a record missing from both the API
	// and the fallback dataset.
	ErrorClassNotFound ErrorClass = "not_found"
)

// RequestError represents a Gigboard API request error with context.
type RequestError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gigboard %s error (status %d): %s", e.Class, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("gigboard %s error: %s: %v", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("gigboard %s error: %s", e.Class, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err indicates a record missing from both the
// API and the fallback dataset.
func IsNotFound(err error) bool {
	var re *RequestError
	if errors.As(err, &re) && re.Class == ErrorClassNotFound {
		return true
	}
	return errors.Is(err, ErrNotFound)
}
