package main

import (
	"fmt"
	"strings"
)

// TokenKind classifies a lexical token.
type TokenKind uint8

// Token kinds.
const (
	NumberToken TokenKind = iota + 1
	StringToken
	SymbolToken
	WordToken
)

var tokenKindNames = [...]string{"", "number", "string", "symbol", "word"}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && k != 0 {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("token(%d)", uint8(k))
}

// Position locates a byte in source text; Line and Col count from 1.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (pos Position) String() string { return fmt.Sprintf("%v:%v", pos.Line, pos.Col) }

// Token is a span of source text. Text is the raw span: a string token keeps
// its quotes and doubled-quote escapes, a symbol token keeps its colon.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

func (tok Token) String() string { return fmt.Sprintf("%v %v %q", tok.Pos, tok.Kind, tok.Text) }

// tokenizer is a single pass scanner over source text; it is not restartable.
//
//	for tz := tokenize(src); tz.Scan(); {
//		tok := tz.Token()
//	}
type tokenizer struct {
	src       string
	pos       int
	line      int
	lineStart int

	tok Token
	err error
}

func tokenize(src string) *tokenizer {
	return &tokenizer{src: src, line: 1}
}

// Token returns the token found by the last successful Scan.
func (tz *tokenizer) Token() Token { return tz.tok }

// Err returns the error that stopped scanning, if any.
func (tz *tokenizer) Err() error { return tz.err }

// Scan advances to the next token, returning false at the end of input or
// after an error.
func (tz *tokenizer) Scan() bool {
	if tz.err != nil {
		return false
	}
	for tz.pos < len(tz.src) {
		switch c := tz.src[tz.pos]; {
		case isSpace(c):
			tz.advance(1)
		case c == '#':
			if i := strings.IndexByte(tz.src[tz.pos:], '\n'); i >= 0 {
				tz.advance(i)
			} else {
				tz.advance(len(tz.src) - tz.pos)
			}
		default:
			return tz.scanToken()
		}
	}
	return false
}

func (tz *tokenizer) scanToken() bool {
	start := tz.position()
	end := tz.pos
	kind := WordToken

	switch c := tz.src[tz.pos]; {
	case c == '"':
		kind = StringToken
		end++
		for {
			i := strings.IndexByte(tz.src[end:], '"')
			if i < 0 {
				tz.err = incompleteError(start, "unterminated string")
				tz.advance(len(tz.src) - tz.pos)
				return false
			}
			end += i + 1
			// a doubled quote is an escaped quote
			if end < len(tz.src) && tz.src[end] == '"' {
				end++
				continue
			}
			break
		}

	case c == ':':
		kind = SymbolToken
		end = tz.wordEnd()

	case '0' <= c && c <= '9':
		kind = NumberToken
		end = tz.wordEnd()

	default:
		end = tz.wordEnd()
	}

	tz.tok = Token{Kind: kind, Text: tz.src[tz.pos:end], Pos: start}
	tz.advance(end - tz.pos)
	return true
}

func (tz *tokenizer) wordEnd() int {
	end := tz.pos
	for end < len(tz.src) && !isSpace(tz.src[end]) {
		end++
	}
	return end
}

func (tz *tokenizer) advance(n int) {
	for end := tz.pos + n; tz.pos < end; tz.pos++ {
		if tz.src[tz.pos] == '\n' {
			tz.line++
			tz.lineStart = tz.pos + 1
		}
	}
}

func (tz *tokenizer) position() Position {
	return Position{
		Offset: tz.pos,
		Line:   tz.line,
		Col:    tz.pos - tz.lineStart + 1,
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
