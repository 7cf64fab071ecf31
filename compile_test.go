package main

import (
	"fmt"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strValue(s string) Value { return Str(testSyms.intern(stringNamespace, s)) }

func TestCompile(t *testing.T) {
	for _, tc := range []struct {
		name  string
		src   string
		ops   []Op
		entry int
	}{
		{
			name: "empty",
			ops:  []Op{},
		},
		{
			name: "arithmetic",
			src:  "1 2 +",
			ops:  []Op{push(Int(1)), push(Int(2)), op(OpAdd)},
		},
		{
			name: "literals and calls",
			src:  `"hi" :x foo true false`,
			ops: []Op{
				push(strValue("hi")),
				push(symValue("x")),
				callOp("foo"),
				push(True),
				push(False),
			},
		},
		{
			name: "reserved words",
			src:  ". dup swap rot -rot not and or = < <= > >= - * / exec def",
			ops: []Op{
				op(OpDrop), op(OpDup), op(OpSwap), op(OpRot), op(OpUnRot),
				op(OpNot), op(OpAnd), op(OpOr),
				op(OpEq), op(OpLt), op(OpLte), op(OpGt), op(OpGte),
				op(OpSub), op(OpMul), op(OpDiv),
				op(OpExec), op(OpDef),
			},
		},
		{
			name: "definition",
			src:  "{ 1 + } :inc def",
			ops: []Op{
				push(Int(1)),          // 0: inc
				op(OpAdd),             // 1:
				op(OpReturn),          // 2:
				pushCode(0),           // 3: entry
				push(symValue("inc")), // 4:
				op(OpDef),             // 5:
			},
			entry: 3,
		},
		{
			name: "nested blocks",
			src:  "{ { 1 } 2 } exec",
			ops: []Op{
				push(Int(1)), // 0: inner
				op(OpReturn), // 1:
				pushCode(0),  // 2: outer
				push(Int(2)), // 3:
				op(OpReturn), // 4:
				pushCode(2),  // 5: entry
				op(OpExec),   // 6:
			},
			entry: 5,
		},
		{
			name: "if",
			src:  "true { 1 } { 2 } if",
			ops: []Op{
				push(Int(1)),  // 0: then
				op(OpReturn),  // 1:
				push(Int(2)),  // 2: else
				op(OpReturn),  // 3:
				push(True),    // 4: entry
				pushCode(0),   // 5:
				pushCode(2),   // 6:
				op(OpCondPop), // 7:
				op(OpExec),    // 8:
			},
			entry: 4,
		},
		{
			name: "while",
			src:  "0 { dup } { } while",
			ops: []Op{
				op(OpDup),       // 0: cond
				op(OpReturn),    // 1:
				op(OpReturn),    // 2: body
				push(Int(0)),    // 3: entry
				pushCode(0),     // 4:
				pushCode(2),     // 5:
				op(OpLoopEnter), // 6:
				op(OpLoopCond),  // 7:
				whileOp(11),     // 8:
				op(OpLoopBody),  // 9:
				jump(7),         // 10:
			},
			entry: 3,
		},
		{
			name: "while in block",
			src:  "{ { true } { } while } exec",
			ops: []Op{
				push(True),      // 0: cond
				op(OpReturn),    // 1:
				op(OpReturn),    // 2: body
				pushCode(0),     // 3: loop
				pushCode(2),     // 4:
				op(OpLoopEnter), // 5:
				op(OpLoopCond),  // 6:
				whileOp(10),     // 7:
				op(OpLoopBody),  // 8:
				jump(6),         // 9:
				op(OpReturn),    // 10:
				pushCode(3),     // 11: entry
				op(OpExec),      // 12:
			},
			entry: 11,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := Compile(testSyms, tc.src)
			require.NoError(t, err)
			ops := prog.Ops
			if ops == nil {
				ops = []Op{}
			}
			assert.Equal(t, tc.ops, ops, "expected ops")
			assert.Equal(t, tc.entry, prog.Entry, "expected entry")
			if t.Failed() {
				for addr, op := range prog.Ops {
					t.Logf("@%v %v", addr, formatOp(testSyms, op))
				}
			}
		})
	}
}

func TestCompile_blockLayout(t *testing.T) {
	for _, src := range []string{
		"{ 1 + } :inc def 5 inc",
		"{ { { 1 } exec } exec } exec",
		"{ 1 } { { 2 } { 3 } if } { 4 } if",
		"3 { dup 0 > } { { 1 - } exec } while .",
		"{ 0 { dup 3 < } { 1 + { dup } exec . } while } :count def count",
	} {
		t.Run(src, func(t *testing.T) {
			prog, err := Compile(testSyms, src)
			require.NoError(t, err)
			for addr, op := range prog.Ops {
				if op.Code.jumps() {
					assert.True(t, op.Addr <= len(prog.Ops), "@%v %v target out of range", addr, op.Code)
				}
				code, ok := op.Value.Code()
				if op.Code != OpPush || !ok {
					continue
				}
				assert.True(t, code.Addr() < addr, "@%v block @%v must precede its reference", addr, code.Addr())
				assert.True(t, code.Addr() < prog.Entry, "@%v block @%v must precede the entry", addr, code.Addr())
				returns := false
				for i := code.Addr(); i < addr; i++ {
					if prog.Ops[i].Code == OpReturn {
						returns = true
						break
					}
				}
				assert.True(t, returns, "block @%v must end in return before @%v", code.Addr(), addr)
			}
		})
	}
}

func TestCompile_appends(t *testing.T) {
	var logs []string
	c := compiler{
		syms: testSyms,
		logf: func(mess string, args ...interface{}) { logs = append(logs, fmt.Sprintf(mess, args...)) },
		ops:  []Op{push(Int(7))},
	}
	prog, err := c.compile("{ 1 } { } while")
	require.NoError(t, err)
	assert.Equal(t, []Op{
		push(Int(7)),    // 0: earlier program
		push(Int(1)),    // 1: cond
		op(OpReturn),    // 2:
		op(OpReturn),    // 3: body
		pushCode(1),     // 4: entry
		pushCode(3),     // 5:
		op(OpLoopEnter), // 6:
		op(OpLoopCond),  // 7:
		whileOp(11),     // 8:
		op(OpLoopBody),  // 9:
		jump(7),         // 10:
	}, prog.Ops)
	assert.Equal(t, 4, prog.Entry)
	assert.Equal(t, []string{
		"block @1 len 2",
		"block @3 len 1",
		"block @4 len 7",
	}, logs)
}

func TestCompile_errors(t *testing.T) {
	for _, tc := range []struct {
		src        string
		mess       string
		incomplete bool
		pos        Position
	}{
		{src: "1 }", mess: "1:3: unmatched }", pos: Position{2, 1, 3}},
		{src: "{ } }", mess: "1:5: unmatched }", pos: Position{4, 1, 5}},
		{src: "12x", mess: `1:1: invalid number "12x"`, pos: Position{0, 1, 1}},
		{src: "1 99999999999999999999", mess: "invalid number", pos: Position{2, 1, 3}},
		{src: "{ 1", mess: "1:1: unclosed block", incomplete: true, pos: Position{0, 1, 1}},
		{src: "{ { }\n", mess: "1:1: unclosed block", incomplete: true, pos: Position{0, 1, 1}},
		{src: "1\n{ {", mess: "2:3: unclosed block", incomplete: true, pos: Position{4, 2, 3}},
		{src: `"abc`, mess: "1:1: unterminated string", incomplete: true, pos: Position{0, 1, 1}},
	} {
		t.Run(tc.src, func(t *testing.T) {
			_, err := Compile(testSyms, tc.src)
			require.Error(t, err)
			assert.True(t, errorx.IsOfType(err, ErrParsing), "expected a parsing error, got %v", err)
			assert.Contains(t, err.Error(), tc.mess)
			assert.Equal(t, tc.incomplete, IsIncomplete(err), "expected IsIncomplete")
			pos, ok := errorx.ExtractProperty(err, PropertyPosition)
			if assert.True(t, ok, "expected a position property") {
				assert.Equal(t, tc.pos, pos)
			}
		})
	}
}
