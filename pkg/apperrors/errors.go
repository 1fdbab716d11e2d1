package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and logging. Every
// error crossing a package boundary carries exactly one kind.
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidDomain  Kind = "invalid_domain"
	KindUnavailable    Kind = "unavailable"
	KindRateLimited    Kind = "rate_limited"
	KindAuthFailure    Kind = "auth_failure"
	KindTimeout        Kind = "timeout"
	KindNotInitialized Kind = "not_initialized"
	KindInternal       Kind = "internal"
)

// Error is a typed error with a human-readable detail and an optional
// wrapped cause.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a typed error without a cause.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap attaches a kind and detail to an underlying cause.
func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// KindOf extracts the kind from an error chain. Untyped errors are
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// DetailOf extracts the human-readable detail from an error chain.
// Untyped errors fall back to a generic message so internals never
// leak onto the wire.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return "an unexpected error occurred"
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
