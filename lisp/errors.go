package lisp

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrSyntax         = errors.New("SyntaxError")
	ErrName           = errors.New("NameError")
	ErrType           = errors.New("TypeError")
	ErrValue          = errors.New("ValueError")
	ErrZeroDivision   = errors.New("ZeroDivisionError")
	ErrAttribute      = errors.New("AttributeError")
	ErrModuleNotFound = errors.New("ModuleNotFoundError")
)

// ErrIncomplete is the cause of a SyntaxError raised because the input
// ended early, e.g. inside an open list or string. A shell may read more.
var ErrIncomplete = errors.New("incomplete input")

// Error is an interpreter error of a given kind, optionally wrapping a cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(format string, args ...any) error {
	return newError(ErrSyntax, format, args...)
}

func incomplete(msg string) error {
	return &Error{Kind: ErrSyntax, Msg: msg, Err: ErrIncomplete}
}

func nameErrorf(format string, args ...any) error {
	return newError(ErrName, format, args...)
}

// TypeErrorf reports an argument count or type mismatch from a procedure.
// The evaluator turns it into a NameError at the call site.
func TypeErrorf(format string, args ...any) error {
	return newError(ErrType, format, args...)
}

func ValueErrorf(format string, args ...any) error {
	return newError(ErrValue, format, args...)
}

func AttributeErrorf(format string, args ...any) error {
	return newError(ErrAttribute, format, args...)
}

// ModuleNotFound is returned by a ModuleResolver that does not know name,
// letting the next resolver try.
func ModuleNotFound(name string) error {
	return newError(ErrModuleNotFound, "no module named '%s'", name)
}

// CheckArity fails with a TypeError unless min <= len(args) <= max.
// A negative max means no upper bound.
func CheckArity(name string, args []Value, min, max int) error {
	n := len(args)
	switch {
	case min == max && n != min:
		return TypeErrorf("%s() takes exactly %d arguments (%d given)", name, min, n)
	case n < min:
		return TypeErrorf("%s() takes at least %d arguments (%d given)", name, min, n)
	case max >= 0 && n > max:
		return TypeErrorf("%s() takes at most %d arguments (%d given)", name, max, n)
	}
	return nil
}

// callError converts a procedure's TypeError into a NameError carrying the
// original message. Other errors pass through unchanged.
func callError(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind == ErrType {
		return &Error{Kind: ErrName, Msg: e.Msg, Err: err}
	}
	return err
}
