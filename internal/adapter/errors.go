package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrNoToken = errors.New("no admin token set")
)

// APIError is a non-2xx response from the server. Kind, Path and Index are
// filled for rejected IDENTIFY payloads.
type APIError struct {
	StatusCode int
	Message    string
	Kind       string
	Path       string
	Index      *int
	// Persisted is false when a config write reached memory only.
	Persisted *bool

	sentinel error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s (http %d)", e.sentinel, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}
