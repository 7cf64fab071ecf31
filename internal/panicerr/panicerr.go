// Package panicerr turns the abnormal ends of a function, a panic or a
// runtime.Goexit, into ordinary error returns, and provides Halt for code that
// wants to unwind deep call chains with an error.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Halt aborts the function being run under Recover, making it return err.
// Outside of Recover, Halt is an ordinary panic.
func Halt(err error) { panic(halt{err}) }

type halt struct{ err error }

// Recover runs f in a new goroutine, returning its error, any error passed to
// Halt, or an error describing how it exited abnormally.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

func recoverPanic(name string, errch chan<- error) {
	e := recover()
	if e == nil {
		return
	}
	var err error
	if h, ok := e.(halt); ok {
		err = h.err
	} else {
		err = panicError{name, e, debug.Stack()}
	}
	select {
	case errch <- err:
	default:
	}
}

func recoverExit(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// the normal return path, or a recovered panic, already sent
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// IsPanic returns true if err indicates a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack trace captured with a recovered panic, or "".
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
