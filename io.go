package main

import (
	"fmt"
	"strings"

	"github.com/jcorbin/gostack/internal/flushio"
	"github.com/jcorbin/gostack/internal/panicerr"
	"github.com/jcorbin/gostack/internal/runeio"
)

type ioCore struct {
	out flushio.WriteFlusher

	logfn     func(mess string, args ...interface{})
	markWidth int
}

func (ioc *ioCore) withLogPrefix(prefix string) func() {
	logfn := ioc.logfn
	ioc.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		ioc.logfn = logfn
	}
}

func (ioc ioCore) logf(mess string, args ...interface{}) {
	if ioc.logfn != nil {
		ioc.logfn(mess, args...)
	}
}

// mark pads a log mark to the widest one seen so far, keeping trace columns
// aligned.
func (ioc *ioCore) mark(mark string) string {
	if n := ioc.markWidth - len(mark); n > 0 {
		return mark + strings.Repeat(" ", n)
	}
	ioc.markWidth = len(mark)
	return mark
}

// write sends text to the output right away; output is never held across
// instructions.
func (ioc *ioCore) write(s string) {
	if _, err := runeio.WriteANSIString(ioc.out, s); err != nil {
		ioc.halt(err)
	}
	if err := ioc.out.Flush(); err != nil {
		ioc.halt(err)
	}
}

func (ioc *ioCore) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ioc.out != nil {
			if ferr := ioc.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		ioc.logf("halt error: %v", err)
	}()

	panicerr.Halt(err)
}

func (ioc *ioCore) haltif(err error) {
	if err != nil {
		ioc.halt(err)
	}
}

func (ioc *ioCore) writef(format string, args ...interface{}) {
	ioc.write(fmt.Sprintf(format, args...))
}
