package main

import (
	"strconv"
)

func (vm *VM) push(val Value) {
	if lim := vm.stackLimit; lim != 0 && len(vm.stack) >= lim {
		vm.halt(ErrStackOverflow.New("value stack limit %v exceeded", lim))
	}
	vm.stack = append(vm.stack, val)
}

// need halts unless the stack holds at least n values; operations check
// before touching the stack so that underflow leaves it unchanged.
func (vm *VM) need(op string, n int) {
	if have := len(vm.stack); have < n {
		vm.halt(underflowError(op, n, have))
	}
}

// peek returns the value i cells below the top of the stack.
func (vm *VM) peek(i int) Value {
	return vm.stack[len(vm.stack)-1-i]
}

func (vm *VM) drop(n int) {
	vm.stack = vm.stack[:len(vm.stack)-n]
}

// popInts pops the operands of a binary integer operation; b was on top.
func (vm *VM) popInts(op string) (a, b int64) {
	vm.need(op, 2)
	av, bv := vm.peek(1), vm.peek(0)
	if av.kind != KindInt || bv.kind != KindInt {
		vm.halt(invalidTypeError("%v is only defined for int, got %v %v", op, av.kind, bv.kind))
	}
	vm.drop(2)
	return av.i, bv.i
}

func (vm *VM) pushr(addr int) {
	if lim := vm.callLimit; lim != 0 && len(vm.rstack) >= lim {
		vm.halt(ErrStackOverflow.New("call depth limit %v exceeded", lim))
	}
	vm.rstack = append(vm.rstack, addr)
}

func (vm *VM) popr() int {
	i := len(vm.rstack) - 1
	if i < 0 {
		vm.halt(ErrCallStackUnderflow.New("return @%v with no pending call", vm.prog))
	}
	addr := vm.rstack[i]
	vm.rstack = vm.rstack[:i]
	return addr
}

func (vm *VM) formatOp(op Op) string {
	return formatOp(vm.syms, op)
}

func formatOp(syms *symbols, op Op) string {
	switch op.Code {
	case OpPush:
		return "push " + formatValue(syms, op.Value, true)
	case OpCall:
		return "call " + syms.string(op.Sym)
	case OpWhile, OpJump:
		return op.Code.String() + " @" + strconv.Itoa(op.Addr)
	}
	return op.Code.String()
}
