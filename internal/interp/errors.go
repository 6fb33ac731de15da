package interp

import (
	"fmt"

	"github.com/flscript/fl/internal/natives"
	"github.com/flscript/fl/internal/token"
	"github.com/flscript/fl/internal/value"
)

// Error is a runtime error produced while evaluating a program: one of
// the kinds spec.md's error taxonomy names (NameError, TypeError,
// ArityError, DomainError, BoundsError, FieldError, ImportError), carrying the
// source location it occurred at.
type Error struct {
	Pos     token.Position
	Kind    string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

func nameErr(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: "NameError", Message: fmt.Sprintf(format, args...)}
}

func typeErr(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: "TypeError", Message: fmt.Sprintf(format, args...)}
}

func domainErr(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: "DomainError", Message: fmt.Sprintf(format, args...)}
}

func boundsErr(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: "BoundsError", Message: fmt.Sprintf(format, args...)}
}

func arityErr(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: "ArityError", Message: fmt.Sprintf(format, args...)}
}

func fieldErr(pos token.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Kind: "FieldError", Message: fmt.Sprintf(format, args...)}
}

// wrapOpError attaches pos to an operator error produced by
// internal/value, carrying its Kind (TypeError or DomainError) through
// unchanged.
func wrapOpError(pos token.Position, err error) *Error {
	if opErr, ok := err.(*value.OpError); ok {
		return &Error{Pos: pos, Kind: opErr.Kind, Message: opErr.Message}
	}
	return &Error{Pos: pos, Kind: "TypeError", Message: err.Error()}
}

// wrapCallError attaches pos to a native call error, carrying its Kind
// (ArityError, TypeError, DomainError, BoundsError) through unchanged.
func wrapCallError(pos token.Position, err error) *Error {
	if callErr, ok := err.(*natives.CallError); ok {
		return &Error{Pos: pos, Kind: callErr.Kind, Message: callErr.Message}
	}
	return &Error{Pos: pos, Kind: "DomainError", Message: err.Error()}
}
