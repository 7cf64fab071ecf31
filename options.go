package main

import (
	"io"

	"github.com/jcorbin/gostack/internal/flushio"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

var defaults = []VMOption{
	withOutput(nil),
}

func (vm *VM) apply(opts ...VMOption) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(vm)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type symbolsOption struct{ *symbols }
type stackLimitOption int
type callLimitOption int

func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withTee(w io.Writer) teeOption { return teeOption{w} }
func withSymbols(syms *symbols) symbolsOption { return symbolsOption{syms} }
func withStackLimit(limit int) stackLimitOption { return stackLimitOption(limit) }
func withCallLimit(limit int) callLimitOption { return callLimitOption(limit) }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.New(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.New(o.Writer))
}

func (o symbolsOption) apply(vm *VM) {
	if o.symbols != nil {
		vm.syms = o.symbols
	}
}

func (lim stackLimitOption) apply(vm *VM) {
	vm.stackLimit = int(lim)
}

func (lim callLimitOption) apply(vm *VM) {
	vm.callLimit = int(lim)
}
