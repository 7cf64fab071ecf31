package main

import (
	"strconv"
)

// OpCode names an instruction.
type OpCode uint8

const (
	OpPush OpCode = iota // push Op.Value
	OpCall               // call the definition of Op.Sym
	OpReturn             // pop the return stack, resume after the popped address
	OpDef                // ( code sym -- ) bind sym to code

	OpAdd // ( a b -- a+b ) integers, or string concatenation
	OpSub // ( a b -- a-b )
	OpMul // ( a b -- a*b )
	OpDiv // ( a b -- a/b ) truncating

	OpLt  // ( a b -- a<b )
	OpLte // ( a b -- a<=b )
	OpGt  // ( a b -- a>b )
	OpGte // ( a b -- a>=b )
	OpEq  // ( a b -- a=b ) any values

	OpDrop  // ( a -- )
	OpDup   // ( a -- a a )
	OpSwap  // ( a b -- b a )
	OpRot   // ( a b c -- b c a )
	OpUnRot // ( a b c -- c a b )

	OpNot // ( a -- a=false )
	OpAnd // ( a b -- a&&b )
	OpOr  // ( a b -- a||b )

	OpExec    // ( code -- ) dispatch code
	OpCondPop // ( cond t f -- t|f ) select a branch

	// The loop instructions; see compiler.loop for their layout.
	OpLoopEnter // ( cond body -- ) push a loop frame
	OpLoopCond  // dispatch the loop condition
	OpWhile     // ( flag -- ) leave the loop to Op.Addr if flag is false
	OpLoopBody  // dispatch the loop body
	OpJump      // continue at Op.Addr

	opCodeMax
)

var opNames = [opCodeMax]string{
	OpPush:      "push",
	OpCall:      "call",
	OpReturn:    "return",
	OpDef:       "def",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMul:       "mul",
	OpDiv:       "div",
	OpLt:        "lt",
	OpLte:       "lte",
	OpGt:        "gt",
	OpGte:       "gte",
	OpEq:        "eq",
	OpDrop:      "drop",
	OpDup:       "dup",
	OpSwap:      "swap",
	OpRot:       "rot",
	OpUnRot:     "unrot",
	OpNot:       "not",
	OpAnd:       "and",
	OpOr:        "or",
	OpExec:      "exec",
	OpCondPop:   "condpop",
	OpLoopEnter: "loopenter",
	OpLoopCond:  "loopcond",
	OpWhile:     "while",
	OpLoopBody:  "loopbody",
	OpJump:      "jump",
}

func (code OpCode) String() string {
	if code < opCodeMax {
		return opNames[code]
	}
	return "op(" + strconv.Itoa(int(code)) + ")"
}

// jumps reports whether Op.Addr is a branch target; such targets are block
// relative until the block is flushed into the instruction buffer.
func (code OpCode) jumps() bool { return code == OpWhile || code == OpJump }

// Op is one instruction. Only the field that its Code uses is set.
type Op struct {
	Code  OpCode
	Value Value  // OpPush
	Sym   Symbol // OpCall
	Addr  int    // OpWhile, OpJump
}

// Program is a compiled instruction buffer. Blocks are emitted depth-first
// ahead of the code referencing them; top-level code starts at Entry and runs
// off the end of Ops.
type Program struct {
	Ops   []Op
	Entry int
}

var reservedWords = map[string][]Op{
	"+":     {{Code: OpAdd}},
	"-":     {{Code: OpSub}},
	"*":     {{Code: OpMul}},
	"/":     {{Code: OpDiv}},
	"<":     {{Code: OpLt}},
	"<=":    {{Code: OpLte}},
	">":     {{Code: OpGt}},
	">=":    {{Code: OpGte}},
	"=":     {{Code: OpEq}},
	".":     {{Code: OpDrop}},
	"dup":   {{Code: OpDup}},
	"swap":  {{Code: OpSwap}},
	"rot":   {{Code: OpRot}},
	"-rot":  {{Code: OpUnRot}},
	"not":   {{Code: OpNot}},
	"and":   {{Code: OpAnd}},
	"or":    {{Code: OpOr}},
	"exec":  {{Code: OpExec}},
	"def":   {{Code: OpDef}},
	"true":  {{Code: OpPush, Value: True}},
	"false": {{Code: OpPush, Value: False}},
	"if":    {{Code: OpCondPop}, {Code: OpExec}},
}

type compiler struct {
	syms *symbols
	logf func(mess string, args ...interface{})

	ops    []Op
	blocks [][]Op
	opens  []Position
}

// Compile compiles src into a fresh Program, interning names into syms.
func Compile(syms *symbols, src string) (Program, error) {
	c := compiler{syms: syms}
	return c.compile(src)
}

func (c *compiler) compile(src string) (Program, error) {
	c.blocks = append(c.blocks[:0], nil)
	c.opens = c.opens[:0]

	tz := tokenize(src)
	for tz.Scan() {
		if err := c.token(tz.Token()); err != nil {
			return Program{}, err
		}
	}
	if err := tz.Err(); err != nil {
		return Program{}, err
	}
	if n := len(c.opens); n > 0 {
		return Program{}, incompleteError(c.opens[n-1], "unclosed block")
	}

	entry := c.flush(c.blocks[0])
	c.blocks = c.blocks[:0]
	return Program{Ops: c.ops, Entry: entry}, nil
}

func (c *compiler) token(tok Token) error {
	switch tok.Kind {
	case NumberToken:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return parsingError(tok.Pos, "invalid number %q", tok.Text)
		}
		c.emit(Op{Code: OpPush, Value: Int(n)})

	case StringToken:
		s := c.syms.intern(stringNamespace, unquoteString(tok.Text))
		c.emit(Op{Code: OpPush, Value: Str(s)})

	case SymbolToken:
		sym := c.syms.intern(globalNamespace, tok.Text[1:])
		c.emit(Op{Code: OpPush, Value: Sym(sym)})

	case WordToken:
		return c.word(tok)

	default:
		return parsingError(tok.Pos, "unexpected %v token", tok.Kind)
	}
	return nil
}

func (c *compiler) word(tok Token) error {
	switch tok.Text {
	case "{":
		c.blocks = append(c.blocks, nil)
		c.opens = append(c.opens, tok.Pos)
	case "}":
		return c.close(tok.Pos)
	case "while":
		c.loop()
	default:
		if ops, reserved := reservedWords[tok.Text]; reserved {
			c.emit(ops...)
		} else {
			c.emit(Op{Code: OpCall, Sym: c.syms.intern(globalNamespace, tok.Text)})
		}
	}
	return nil
}

// close finishes the innermost open block: its body, followed by a return, is
// appended to the instruction buffer, and the enclosing block pushes a
// reference to it.
func (c *compiler) close(pos Position) error {
	i := len(c.blocks) - 1
	if i == 0 {
		return parsingError(pos, "unmatched }")
	}
	block := c.blocks[i]
	c.blocks = c.blocks[:i]
	c.opens = c.opens[:i-1]

	start := c.flush(append(block, Op{Code: OpReturn}))
	c.emit(Op{Code: OpPush, Value: CodeValue(Custom(start))})
	return nil
}

// loop emits, for a condition and body already pushed:
//
//	@n+0 loopenter
//	@n+1 loopcond
//	@n+2 while @n+5
//	@n+3 loopbody
//	@n+4 jump @n+1
//	@n+5 ...
//
// so the condition is dispatched before every pass, including the first.
func (c *compiler) loop() {
	n := len(c.blocks[len(c.blocks)-1])
	c.emit(
		Op{Code: OpLoopEnter},
		Op{Code: OpLoopCond},
		Op{Code: OpWhile, Addr: n + 5},
		Op{Code: OpLoopBody},
		Op{Code: OpJump, Addr: n + 1},
	)
}

func (c *compiler) emit(ops ...Op) {
	i := len(c.blocks) - 1
	c.blocks[i] = append(c.blocks[i], ops...)
}

// flush appends a block to the instruction buffer, resolving its branch
// targets, and returns its start address.
func (c *compiler) flush(block []Op) int {
	start := len(c.ops)
	for _, op := range block {
		if op.Code.jumps() {
			op.Addr += start
		}
		c.ops = append(c.ops, op)
	}
	if c.logf != nil {
		c.logf("block @%v len %v", start, len(block))
	}
	return start
}
