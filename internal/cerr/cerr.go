// Package cerr defines the compiler's classified error kinds and the
// fail-fast panic used for internal invariant violations.
package cerr

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a compiler-facing failure.
type Kind string

const (
	InputNotFound        Kind = "InputNotFound"
	ParseError           Kind = "ParseError"
	UnknownPass          Kind = "UnknownPass"
	IRInvariantViolation Kind = "IRInvariantViolation"
)

// Error is a classified compiler error, optionally wrapping a cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with no underlying cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a classified error around a causing error, attaching a
// stack trace so CLI diagnostics can report where a failure originated.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: pkgerrors.WithStack(cause)}
}

// Invariant panics with an IRInvariantViolation-classified error. Reserved
// for conditions the design treats as programmer bugs rather than
// user-facing failures: a dangling LVN identifier, a builder asked to
// construct a label, and the like. Recovered only at the CLI entry point.
func Invariant(format string, args ...any) {
	panic(New(IRInvariantViolation, format, args...))
}
