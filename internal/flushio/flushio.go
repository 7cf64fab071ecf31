// Package flushio provides the output sink abstraction used by the VM: a
// writer that may buffer, paired with an explicit Flush.
package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard is a WriteFlusher that drops everything.
var Discard WriteFlusher = nopFlusher{ioutil.Discard}

// New returns w as a WriteFlusher. Writers that already flush are returned
// as-is; in-memory buffers, and the discard writer, get a no-op Flush; anything
// else is wrapped in a bufio.Writer.
func New(w io.Writer) WriteFlusher {
	if w == nil || w == ioutil.Discard {
		return Discard
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// types like bytes.Buffer and strings.Builder need no flushing
	type buffer interface {
		io.Writer
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Tee combines any number of WriteFlusher-s into one that writes to and
// flushes all of them, in order.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	switch all := appendTee(nil, wfs...); len(all) {
	case 0:
		return Discard
	case 1:
		return all[0]
	default:
		return all
	}
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (n int, err error) {
	for _, wf := range t {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

func appendTee(all tee, some ...WriteFlusher) tee {
	for _, one := range some {
		if many, ok := one.(tee); ok {
			all = append(all, many...)
		} else if one != nil && one != Discard {
			all = append(all, one)
		}
	}
	return all
}
