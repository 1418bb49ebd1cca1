// Package walkerr defines a structured error representation shared across
// the keyboard model, the counting and enumeration engines, the config
// file loader, and the CLI driver.
package walkerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of five categories; the HTTP service
// layer maps each category to a response status code.
type Kind int

// Error kinds.
const (
	// KindConfiguration covers a malformed or internally inconsistent
	// keyboard definition: bad key data, unresolved neighbor references,
	// non-disjoint keys; also an unknown or inactive start key and a
	// restart string that is not a walk on the keyboard.
	KindConfiguration Kind = iota
	// KindArgument covers a malformed caller request: out-of-range min/max,
	// a repeated start key, a restart string whose length falls outside
	// the requested window.
	KindArgument
	// KindResource covers I/O failures: an unreadable config file, a log
	// file that cannot be opened or written.
	KindResource
	// KindCapacity covers a request whose traversal stack bound exceeds
	// the configured ceiling.
	KindCapacity
	// KindInternal covers an invariant violated by the engine itself —
	// never attributable to caller input.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "CONFIGURATION"
	case KindArgument:
		return "ARGUMENT"
	case KindResource:
		return "RESOURCE"
	case KindCapacity:
		return "CAPACITY"
	case KindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Error is a typed error: a stable Kind for programmatic dispatch plus a
// human-readable Message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Configurationf builds a KindConfiguration error.
func Configurationf(format string, args ...any) *Error {
	return New(KindConfiguration, fmt.Sprintf(format, args...))
}

// Argumentf builds a KindArgument error.
func Argumentf(format string, args ...any) *Error {
	return New(KindArgument, fmt.Sprintf(format, args...))
}

// Resourcef builds a KindResource error.
func Resourcef(format string, args ...any) *Error {
	return New(KindResource, fmt.Sprintf(format, args...))
}

// Capacityf builds a KindCapacity error.
func Capacityf(format string, args ...any) *Error {
	return New(KindCapacity, fmt.Sprintf(format, args...))
}

// Internalf builds a KindInternal error.
func Internalf(format string, args ...any) *Error {
	return New(KindInternal, fmt.Sprintf(format, args...))
}

// KindOf extracts the Kind of err if it is (or wraps) a *walkerr.Error,
// reporting ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
