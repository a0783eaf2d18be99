// Package apperr classifies failures so transports can map them to
// responses and log levels without knowing each domain's sentinels.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure.
type Kind int

const (
	// KindUnknown is any error that was never classified.
	KindUnknown Kind = iota
	// KindValidation is bad caller input. Messages are safe to show verbatim.
	KindValidation
	// KindNotFound is an unknown id.
	KindNotFound
	// KindStorage is a filesystem or backing-store failure.
	KindStorage
	// KindPartialFailure is an operation that succeeded with a logged side failure.
	KindPartialFailure
	// KindDegradedFallback is a failure replaced by a fallback. Never shown to users.
	KindDegradedFallback
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindPartialFailure:
		return "partial_failure"
	case KindDegradedFallback:
		return "degraded_fallback"
	default:
		return "unknown"
	}
}

// Error carries a kind, a stable code and a human-readable message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an unwrapped classified error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(err error, kind Kind, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation returns a validation error.
func Validation(code, message string) *Error { return New(KindValidation, code, message) }

// NotFound returns a not-found error.
func NotFound(code, message string) *Error { return New(KindNotFound, code, message) }

// Storage wraps a backing-store failure.
func Storage(code, message string, err error) error { return Wrap(err, KindStorage, code, message) }

// KindOf reports the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As returns the outermost classified error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is lets sentinels declared as *Error match by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Kind == e.Kind
}
