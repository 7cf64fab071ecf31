package main

import (
	"context"
	"io"

	"github.com/jcorbin/gostack/internal/panicerr"
)

// New creates a VM with the builtin routines defined.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.apply(opts...)
	vm.init()
	return &vm
}

// Eval compiles src onto the end of the VM's program and runs it from its
// entry until control runs off the end of the program. It returns a copy of
// the resulting value stack.
//
// Any error discards the value stack, return stack and loop state; the
// definition table, and any code compiled by earlier calls, is kept.
func (vm *VM) Eval(ctx context.Context, src string) ([]Value, error) {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx, src)
		return nil
	})
	if err != nil {
		vm.reset()
		return nil, err
	}
	return vm.Stack(), nil
}

// Stack returns a copy of the value stack.
func (vm *VM) Stack() []Value {
	return append([]Value(nil), vm.stack...)
}

// Format renders a value in its textual form.
func (vm *VM) Format(v Value) string { return formatValue(vm.syms, v, false) }

// FormatStack renders values like "[1 "two" :three]".
func (vm *VM) FormatStack(vs []Value) string { return formatValues(vm.syms, vs) }

// Program returns the VM's instruction buffer and the entry of the last
// successful compilation.
func (vm *VM) Program() Program { return Program{Ops: vm.ops, Entry: vm.entry} }

// WithOutput sets the sink for the print and nl builtins; output is discarded
// by default.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies builtin output to w as well.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithStackLimit bounds the value stack depth; 0 means no limit.
func WithStackLimit(limit int) VMOption { return withStackLimit(limit) }

// WithCallDepthLimit bounds the return stack depth; 0 means no limit.
func WithCallDepthLimit(limit int) VMOption { return withCallLimit(limit) }

// WithSymbols shares an interning registry, as returned by NewSymbols, between
// VMs; each VM has its own by default.
func WithSymbols(syms *symbols) VMOption { return withSymbols(syms) }

// NewSymbols creates an empty interning registry.
func NewSymbols() *symbols { return newSymbols() }

// WithLogf installs a trace logging function.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
