package client

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a failed operation so callers can choose what to show and
// whether a retry makes sense.
type Kind int

const (
	KindUnknown Kind = iota
	// KindEmptyRange: the selection covers no nights.
	KindEmptyRange
	// KindUnavailable: one or more selected nights are not open.
	KindUnavailable
	// KindConflict: the selection overlaps an existing booking.
	KindConflict
	// KindCancelled: the caller abandoned the request; nothing to report.
	KindCancelled
	// KindAuthExpired: the server no longer accepts the caller's identity.
	KindAuthExpired
	// KindServerRejected: the server refused the request (validation, race
	// lost, forbidden).
	KindServerRejected
	// KindServerUnavailable: transport failure or 5xx; retrying later may
	// succeed.
	KindServerUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindEmptyRange:
		return "empty_range"
	case KindUnavailable:
		return "unavailable"
	case KindConflict:
		return "conflict"
	case KindCancelled:
		return "cancelled"
	case KindAuthExpired:
		return "auth_expired"
	case KindServerRejected:
		return "server_rejected"
	case KindServerUnavailable:
		return "server_unavailable"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("client: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the classification from an error chain.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func newError(kind Kind, message string, status int, cause error) *Error {
	return &Error{Kind: kind, Message: message, Status: status, cause: cause}
}

// classifyTransport maps a failed round trip. A context cancellation means
// the caller walked away, not that the server is down.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.Canceled) {
		return newError(KindCancelled, "request cancelled", 0, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindServerUnavailable, "request timed out", 0, err)
	}
	return newError(KindServerUnavailable, err.Error(), 0, err)
}

func classifyStatus(status int, message string) *Error {
	switch {
	case status == 401:
		return newError(KindAuthExpired, message, status, nil)
	case status >= 500:
		return newError(KindServerUnavailable, message, status, nil)
	default:
		return newError(KindServerRejected, message, status, nil)
	}
}
