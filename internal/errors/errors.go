// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so callers can decide how each failure is surfaced
// (notified, swallowed or degraded) without inspecting error strings.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation indicates a local, pre-network input problem (e.g. an empty field).
	Validation Kind = "validation"
	// RejectedCredentials indicates the server refused the submitted credentials.
	RejectedCredentials Kind = "rejected_credentials"
	// NotAuthenticated indicates the server confirmed there is no valid session.
	// It is a valid outcome of a session check, not a failure.
	NotAuthenticated Kind = "not_authenticated"
	// TransportFailure indicates a connectivity, timeout or malformed-response problem.
	TransportFailure Kind = "transport_failure"
	// ServerUnavailable indicates the backend identity resource could not be fetched.
	ServerUnavailable Kind = "server_unavailable"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *E) Unwrap() error { return e.Err }

// Is reports kind equality, so a bare New(kind, "") can serve as a sentinel.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the user-facing message of the first *E in err's chain.
// Errors outside the taxonomy yield their plain Error() text.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
