// Package apperror defines the error kinds shared by all services.
// Every user-facing failure carries a kind (for the transport layer to map
// onto a status code) and a human-readable message.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means a referenced account, category, or transaction does not exist.
	KindNotFound
	// KindInvalidInput covers malformed amounts, polarity mismatches, unsupported
	// file types, and unresolved category names.
	KindInvalidInput
	// KindClassifier means the external classification call failed or returned no usable data.
	KindClassifier
	// KindConflict means a delete was attempted on a record that is still referenced.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindClassifier:
		return "classifier_error"
	case KindConflict:
		return "conflict"
	}

	return "unknown"
}

// Error is an error with a kind attached. Match with errors.As or KindOf.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}

	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func Classifier(format string, args ...any) error {
	return &Error{Kind: KindClassifier, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// WrapClassifier keeps the underlying cause available for logging while
// surfacing the failure as a classifier error.
func WrapClassifier(err error, format string, args ...any) error {
	return &Error{Kind: KindClassifier, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
