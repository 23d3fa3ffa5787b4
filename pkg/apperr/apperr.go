package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application failure independently of the transport.
// Handlers map kinds to protocol status codes; the core never sees HTTP.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindConflict
	KindUnauthorized
	KindInsufficientFunds
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error carries a stable kind and a human-readable message. The wrapped cause
// stays server-side; only Kind and Message are user visible.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause for logging while keeping the user-facing message clean.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func InvalidInput(message string) *Error      { return New(KindInvalidInput, message) }
func Conflict(message string) *Error          { return New(KindConflict, message) }
func Unauthorized(message string) *Error      { return New(KindUnauthorized, message) }
func InsufficientFunds(message string) *Error { return New(KindInsufficientFunds, message) }
func NotFound(message string) *Error          { return New(KindNotFound, message) }

func Internal(cause error) *Error {
	return Wrap(KindInternal, "internal error", cause)
}

// KindOf extracts the kind from any error chain; non-app errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message for an error chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
