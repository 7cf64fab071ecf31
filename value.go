package main

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind uint8

// The zero Kind is KindFalse, so the zero Value is False.
const (
	KindFalse Kind = iota
	KindTrue
	KindInt
	KindSym
	KindStr
	KindCode
)

var kindNames = [...]string{"false", "true", "int", "sym", "str", "code"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the only runtime datum. Values are plain data, comparable with ==:
// interned handles make symbol and string equality a handle comparison.
type Value struct {
	kind Kind
	i    int64
	sym  Symbol
	code Code
}

// The boolean values.
var (
	False = Value{kind: KindFalse}
	True  = Value{kind: KindTrue}
)

// Bool converts a Go bool.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Int makes an integer value.
func Int(n int64) Value { return Value{kind: KindInt, i: n} }

// Sym makes a symbol value from an interned handle.
func Sym(sym Symbol) Value { return Value{kind: KindSym, sym: sym} }

// Str makes a string value from a handle interned in the string namespace.
func Str(sym Symbol) Value { return Value{kind: KindStr, sym: sym} }

// CodeValue makes an executable value.
func CodeValue(code Code) Value { return Value{kind: KindCode, code: code} }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by v, and whether v is an Int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Symbol returns the handle held by a Sym or Str value.
func (v Value) Symbol() (Symbol, bool) {
	return v.sym, v.kind == KindSym || v.kind == KindStr
}

// Code returns the code held by v, and whether v is a Code value.
func (v Value) Code() (Code, bool) { return v.code, v.kind == KindCode }

// CodeKind discriminates Code.
type CodeKind uint8

// Code kinds; the zero CodeKind is not valid code.
const (
	CodeCustom CodeKind = iota + 1
	CodeBuiltin
)

// Code references something executable: an address in the instruction
// buffer, or an entry in the builtin table. Two Codes are equal only when both
// kind and address match.
type Code struct {
	kind CodeKind
	addr int
}

// Custom makes a reference to the block starting at addr.
func Custom(addr int) Code { return Code{CodeCustom, addr} }

// Builtin makes a reference to the i-th builtin routine.
func Builtin(i int) Code { return Code{CodeBuiltin, i} }

// Kind returns the kind of code.
func (c Code) Kind() CodeKind { return c.kind }

// Addr returns the instruction address or builtin index.
func (c Code) Addr() int { return c.addr }

func formatCode(c Code) string {
	switch c.kind {
	case CodeCustom:
		return "{@" + strconv.Itoa(c.addr) + "}"
	case CodeBuiltin:
		if c.addr >= 0 && c.addr < len(builtins) {
			return "<" + builtins[c.addr].name + ">"
		}
	}
	return "<invalid code " + strconv.Itoa(c.addr) + ">"
}

// formatValue renders v in its textual form; strings are written raw unless
// quote is set, in which case they are written back as literals.
func formatValue(syms *symbols, v Value, quote bool) string {
	switch v.kind {
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindSym:
		return ":" + syms.string(v.sym)
	case KindStr:
		s := syms.string(v.sym)
		if quote {
			return quoteString(s)
		}
		return s
	case KindCode:
		return formatCode(v.code)
	}
	return "<" + v.kind.String() + ">"
}

func formatValues(syms *symbols, vs []Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatValue(syms, v, true))
	}
	sb.WriteByte(']')
	return sb.String()
}

func quoteString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func unquoteString(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	}
	return strings.ReplaceAll(lit, `""`, `"`)
}
