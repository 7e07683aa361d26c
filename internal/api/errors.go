package api

import (
	"errors"
	"fmt"
)

// Cause classifies what went wrong inside a call to the backend.
type Cause string

const (
	CauseAuth                Cause = "auth"
	CauseTransport           Cause = "transport"
	CauseStatus              Cause = "status"
	CauseDecode              Cause = "decode"
	CauseDiscoveryIncomplete Cause = "discovery_incomplete"
)

// Error is the single error kind every backend operation returns. The cause
// and status code are structured so callers never have to inspect message
// strings.
type Error struct {
	Op         string
	Cause      Cause
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsDiscoveryIncomplete reports whether err is the "profile not complete"
// precondition failure, whether raised locally or by the backend.
func IsDiscoveryIncomplete(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Cause == CauseDiscoveryIncomplete
}

// DiscoveryIncompleteError is the precondition failure for plan analysis
// requested before the business profile is complete. statusCode is zero
// when the check failed locally, before any request was made.
func DiscoveryIncompleteError(op string, statusCode int) *Error {
	return &Error{
		Op:         op,
		Cause:      CauseDiscoveryIncomplete,
		StatusCode: statusCode,
		Message:    "Plan discovery is not complete. Please complete your business profile first.",
	}
}

func authError(op string, err error) *Error {
	return &Error{Op: op, Cause: CauseAuth, Message: fmt.Sprintf("authentication failed: %v", err), Err: err}
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Cause: CauseTransport, Message: fmt.Sprintf("request failed: %v", err), Err: err}
}

func statusError(op string, code int, body string) *Error {
	msg := fmt.Sprintf("backend returned an error: %s", body)
	if body == "" {
		msg = "backend returned an error"
	}
	return &Error{Op: op, Cause: CauseStatus, StatusCode: code, Message: msg}
}

func decodeError(op string, err error) *Error {
	return &Error{Op: op, Cause: CauseDecode, Message: fmt.Sprintf("invalid response from backend: %v", err), Err: err}
}

func missingFieldError(op, field string) *Error {
	return &Error{Op: op, Cause: CauseDecode, Message: fmt.Sprintf("invalid response from backend: missing %s", field)}
}
