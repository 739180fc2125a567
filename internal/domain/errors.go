package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports settings required by a data source that are absent.
// It is returned before any network I/O.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: missing %s", strings.Join(e.Missing, " or "))
}

// RemoteError reports a non-success status or an unusable body from a backend
type RemoteError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("remote error (status %d)", e.StatusCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NotFoundError reports that the backend does not know the requested city
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city %q not found", e.City)
}

// FailureKind is the user-facing classification of a failed lookup
type FailureKind int

const (
	FailureServer FailureKind = iota
	FailureNotFound
)

// Message returns the text shown to the user
func (k FailureKind) Message() string {
	if k == FailureNotFound {
		return "City not found"
	}
	return "Server Error"
}

func (k FailureKind) String() string {
	if k == FailureNotFound {
		return "not_found"
	}
	return "server_error"
}

// Classify collapses any fetch error into one of the two user-facing kinds
func Classify(err error) FailureKind {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return FailureNotFound
	}
	return FailureServer
}
