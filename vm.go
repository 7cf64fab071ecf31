package main

import (
	"context"
)

// VM executes a flat instruction buffer. It has three stacks: the value stack
// that instructions operate on, the return stack holding the addresses of
// pending calls, and the loop stack holding the condition and body of every
// running while loop.
type VM struct {
	ioCore

	syms *symbols

	ops   []Op
	entry int // entry of the last compiled program
	prog  int // program counter

	stack  []Value
	rstack []int
	loops  []loopFrame

	// defs maps words to their code. Builtins are defined by init, and any
	// definition may be replaced by def.
	defs map[Symbol]Code

	stackLimit int
	callLimit  int
}

type loopFrame struct{ cond, body Code }

func (vm *VM) init() {
	if vm.syms == nil {
		vm.syms = newSymbols()
	}
	vm.defs = make(map[Symbol]Code, len(builtins))
	for i, bi := range builtins {
		vm.defs[vm.syms.intern(globalNamespace, bi.name)] = Builtin(i)
	}
}

func (vm *VM) run(ctx context.Context, src string) {
	c := compiler{syms: vm.syms, ops: vm.ops}
	if vm.logfn != nil {
		c.logf = vm.logfn
	}
	prog, err := c.compile(src)
	vm.haltif(err)

	vm.ops = prog.Ops
	vm.entry = prog.Entry
	vm.prog = prog.Entry
	vm.exec(ctx)
	vm.haltif(vm.out.Flush())
}

func (vm *VM) exec(ctx context.Context) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}
	for vm.prog < len(vm.ops) {
		vm.step()
		vm.haltif(ctx.Err())
	}
}

func (vm *VM) step() {
	op := vm.ops[vm.prog]
	if vm.logfn != nil {
		vm.logf("exec @%v %v -- r:%v s:%v",
			vm.prog, vm.mark(vm.formatOp(op)), vm.rstack, formatValues(vm.syms, vm.stack))
	}
	opTable[op.Code](vm, op)
}

func (vm *VM) reset() {
	vm.stack = vm.stack[:0]
	vm.rstack = vm.rstack[:0]
	vm.loops = vm.loops[:0]
	vm.prog = len(vm.ops)
}

// dispatch runs code: a custom block is called through the return stack and
// resumes after the current instruction on return; a builtin runs right away.
func (vm *VM) dispatch(code Code) {
	switch code.kind {
	case CodeCustom:
		vm.pushr(vm.prog)
		vm.prog = code.addr
	case CodeBuiltin:
		if code.addr < 0 || code.addr >= len(builtins) {
			vm.halt(invalidTypeError("no builtin #%v", code.addr))
		}
		builtins[code.addr].run(vm)
		vm.prog++
	default:
		vm.halt(invalidTypeError("invalid code %v", formatCode(code)))
	}
}

var opTable [opCodeMax]func(vm *VM, op Op)

func init() {
	opTable = [opCodeMax]func(vm *VM, op Op){
		OpPush:   (*VM).opPush,
		OpCall:   (*VM).opCall,
		OpReturn: (*VM).opReturn,
		OpDef:    (*VM).opDef,

		OpAdd: (*VM).opAdd,
		OpSub: intOp("-", func(a, b int64) int64 { return a - b }),
		OpMul: intOp("*", func(a, b int64) int64 { return a * b }),
		OpDiv: (*VM).opDiv,

		OpLt:  cmpOp("<", func(a, b int64) bool { return a < b }),
		OpLte: cmpOp("<=", func(a, b int64) bool { return a <= b }),
		OpGt:  cmpOp(">", func(a, b int64) bool { return a > b }),
		OpGte: cmpOp(">=", func(a, b int64) bool { return a >= b }),
		OpEq:  (*VM).opEq,

		OpDrop:  (*VM).opDrop,
		OpDup:   (*VM).opDup,
		OpSwap:  (*VM).opSwap,
		OpRot:   (*VM).opRot,
		OpUnRot: (*VM).opUnRot,

		OpNot: (*VM).opNot,
		OpAnd: boolOp("and", func(a, b bool) bool { return a && b }),
		OpOr:  boolOp("or", func(a, b bool) bool { return a || b }),

		OpExec:    (*VM).opExec,
		OpCondPop: (*VM).opCondPop,

		OpLoopEnter: (*VM).opLoopEnter,
		OpLoopCond:  (*VM).opLoopCond,
		OpWhile:     (*VM).opWhile,
		OpLoopBody:  (*VM).opLoopBody,
		OpJump:      (*VM).opJump,
	}
}

func (vm *VM) opPush(op Op) {
	vm.push(op.Value)
	vm.prog++
}

func (vm *VM) opCall(op Op) {
	code, defined := vm.defs[op.Sym]
	if !defined {
		vm.halt(unimplementedError(vm.syms.string(op.Sym)))
	}
	vm.dispatch(code)
}

func (vm *VM) opReturn(Op) {
	vm.prog = vm.popr() + 1
}

// def ( code sym -- )
func (vm *VM) opDef(Op) {
	vm.need("def", 2)
	sym, code := vm.peek(0), vm.peek(1)
	if sym.kind != KindSym || code.kind != KindCode {
		vm.halt(invalidTypeError("def takes code and a symbol, got %v %v", code.kind, sym.kind))
	}
	vm.drop(2)
	vm.defs[sym.sym] = code.code
	vm.prog++
}

func (vm *VM) opAdd(Op) {
	vm.need("+", 2)
	a, b := vm.peek(1), vm.peek(0)
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		vm.drop(2)
		vm.push(Int(a.i + b.i))
	case a.kind == KindStr && b.kind == KindStr:
		vm.drop(2)
		s := vm.syms.string(a.sym) + vm.syms.string(b.sym)
		vm.push(Str(vm.syms.intern(stringNamespace, s)))
	default:
		vm.halt(invalidTypeError("+ is only defined for int and str, got %v %v", a.kind, b.kind))
	}
	vm.prog++
}

func (vm *VM) opDiv(Op) {
	a, b := vm.popInts("/")
	if b == 0 {
		vm.halt(ErrDivideByZero.New("%v / 0", a))
	}
	vm.push(Int(a / b))
	vm.prog++
}

func intOp(name string, f func(a, b int64) int64) func(vm *VM, op Op) {
	return func(vm *VM, _ Op) {
		a, b := vm.popInts(name)
		vm.push(Int(f(a, b)))
		vm.prog++
	}
}

func cmpOp(name string, f func(a, b int64) bool) func(vm *VM, op Op) {
	return func(vm *VM, _ Op) {
		a, b := vm.popInts(name)
		vm.push(Bool(f(a, b)))
		vm.prog++
	}
}

// boolOp applies f to the truth of its operands: any value but false is true.
func boolOp(name string, f func(a, b bool) bool) func(vm *VM, op Op) {
	return func(vm *VM, _ Op) {
		vm.need(name, 2)
		a, b := vm.peek(1), vm.peek(0)
		vm.drop(2)
		vm.push(Bool(f(a != False, b != False)))
		vm.prog++
	}
}

func (vm *VM) opEq(Op) {
	vm.need("=", 2)
	a, b := vm.peek(1), vm.peek(0)
	vm.drop(2)
	vm.push(Bool(a == b))
	vm.prog++
}

func (vm *VM) opDrop(Op) {
	vm.need(".", 1)
	vm.drop(1)
	vm.prog++
}

func (vm *VM) opDup(Op) {
	vm.need("dup", 1)
	vm.push(vm.peek(0))
	vm.prog++
}

func (vm *VM) opSwap(Op) {
	vm.need("swap", 2)
	i := len(vm.stack) - 1
	vm.stack[i-1], vm.stack[i] = vm.stack[i], vm.stack[i-1]
	vm.prog++
}

// rot ( a b c -- b c a )
func (vm *VM) opRot(Op) {
	vm.need("rot", 3)
	i := len(vm.stack) - 3
	s := vm.stack[i:]
	s[0], s[1], s[2] = s[1], s[2], s[0]
	vm.prog++
}

// -rot ( a b c -- c a b )
func (vm *VM) opUnRot(Op) {
	vm.need("-rot", 3)
	i := len(vm.stack) - 3
	s := vm.stack[i:]
	s[0], s[1], s[2] = s[2], s[0], s[1]
	vm.prog++
}

func (vm *VM) opNot(Op) {
	vm.need("not", 1)
	i := len(vm.stack) - 1
	vm.stack[i] = Bool(vm.stack[i] == False)
	vm.prog++
}

func (vm *VM) opExec(Op) {
	vm.need("exec", 1)
	code, ok := vm.peek(0).Code()
	if !ok {
		vm.halt(invalidTypeError("exec takes code, got %v", vm.peek(0).kind))
	}
	vm.drop(1)
	vm.dispatch(code)
}

// condpop ( cond t f -- t|f ) moves the winner into the lowest of the three
// cells, and drops the other two; only cond is inspected.
func (vm *VM) opCondPop(Op) {
	vm.need("if", 3)
	i := len(vm.stack) - 3
	s := vm.stack[i:]
	if s[0] == False {
		s[0] = s[2]
	} else {
		s[0] = s[1]
	}
	vm.stack = vm.stack[:i+1]
	vm.prog++
}

// loopenter ( cond body -- )
func (vm *VM) opLoopEnter(Op) {
	vm.need("while", 2)
	cond, condOK := vm.peek(1).Code()
	body, bodyOK := vm.peek(0).Code()
	if !condOK || !bodyOK {
		vm.halt(invalidTypeError("while takes two code values, got %v %v",
			vm.peek(1).kind, vm.peek(0).kind))
	}
	vm.drop(2)
	vm.loops = append(vm.loops, loopFrame{cond, body})
	vm.prog++
}

func (vm *VM) opLoopCond(Op) {
	vm.dispatch(vm.loop().cond)
}

// while ( flag -- )
func (vm *VM) opWhile(op Op) {
	vm.loop()
	vm.need("while", 1)
	flag := vm.peek(0)
	vm.drop(1)
	if flag == False {
		vm.loops = vm.loops[:len(vm.loops)-1]
		vm.prog = op.Addr
		return
	}
	vm.prog++
}

func (vm *VM) opLoopBody(Op) {
	vm.dispatch(vm.loop().body)
}

func (vm *VM) opJump(op Op) {
	vm.prog = op.Addr
}

func (vm *VM) loop() loopFrame {
	i := len(vm.loops) - 1
	if i < 0 {
		vm.halt(ErrCallStackUnderflow.New("no running loop @%v", vm.prog))
	}
	return vm.loops[i]
}
