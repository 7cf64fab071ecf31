package main

import (
	"fmt"

	"github.com/joomcode/errorx"
)

var (
	errNamespace = errorx.NewNamespace("stack")

	// ErrUnimplemented is raised by a call to a word with no definition.
	ErrUnimplemented = errNamespace.NewType("unimplemented")

	// ErrInvalidType is raised when an operation receives the wrong kind of value.
	ErrInvalidType = errNamespace.NewType("invalid_type")

	// ErrStackUnderflow is raised when an operation needs more values than the
	// stack holds.
	ErrStackUnderflow = errNamespace.NewType("stack_underflow")

	// ErrStackOverflow is raised when a configured stack or call depth limit
	// is exceeded.
	ErrStackOverflow = errNamespace.NewType("stack_overflow")

	// ErrCallStackUnderflow is raised by a return with no pending call.
	ErrCallStackUnderflow = errNamespace.NewType("call_stack_underflow")

	// ErrDivideByZero is raised by integer division by 0.
	ErrDivideByZero = errNamespace.NewType("divide_by_zero")

	// ErrParsing is raised when source fails to compile.
	ErrParsing = errNamespace.NewType("parsing")

	// PropertyWord holds the word name of an ErrUnimplemented.
	PropertyWord = errorx.RegisterProperty("word")

	// PropertyPosition holds the source Position of an ErrParsing.
	PropertyPosition = errorx.RegisterProperty("position")

	// PropertyIncomplete marks parsing errors caused by input that ended
	// early, like an unclosed block; more input could still make it valid.
	PropertyIncomplete = errorx.RegisterProperty("incomplete")
)

func unimplementedError(word string) error {
	return ErrUnimplemented.New("%q is not implemented", word).
		WithProperty(PropertyWord, word)
}

func invalidTypeError(mess string, args ...interface{}) error {
	return ErrInvalidType.New(mess, args...)
}

func underflowError(op string, need, have int) error {
	return ErrStackUnderflow.New("%v needs %v values, stack has %v", op, need, have)
}

func parsingError(pos Position, mess string, args ...interface{}) *errorx.Error {
	return ErrParsing.New("%v: %v", pos, fmt.Sprintf(mess, args...)).
		WithProperty(PropertyPosition, pos)
}

func incompleteError(pos Position, mess string, args ...interface{}) error {
	return parsingError(pos, mess, args...).WithProperty(PropertyIncomplete, true)
}

// IsIncomplete returns true if err is a parsing error that more input could
// resolve.
func IsIncomplete(err error) bool {
	if !errorx.IsOfType(err, ErrParsing) {
		return false
	}
	v, ok := errorx.ExtractProperty(err, PropertyIncomplete)
	return ok && v == true
}
