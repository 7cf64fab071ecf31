// Package runeio writes text for terminals: C1 control runes, which many
// terminals mishandle in their UTF-8 form, are written in 7-bit escape form.
package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteANSIRune writes a rune to the given writer:
// - ASCII runes are written directly as bytes
// - NEL is written as the more conventional \r\n
// - all other C1 controls are written in their classic 7-bit form
//   e.g. "\x9b" "\x1b\x5b" for CSI
// - all other runes are written in utf8 form
func WriteANSIRune(w io.Writer, r rune) (n int, err error) {
	var buf [utf8.UTFMax]byte
	return w.Write(appendANSIRune(buf[:0], r))
}

// WriteANSIString writes s in one Write, transforming its runes as
// WriteANSIRune does. Strings without C1 controls are written as-is.
func WriteANSIString(w io.Writer, s string) (n int, err error) {
	if !hasC1(s) {
		return io.WriteString(w, s)
	}
	buf := make([]byte, 0, len(s)+8)
	for _, r := range s {
		buf = appendANSIRune(buf, r)
	}
	return w.Write(buf)
}

func appendANSIRune(buf []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(buf, byte(r))
	case r == 0x85:
		return append(buf, '\r', '\n')
	case r <= 0x9f:
		return append(buf, 0x1b, byte(r^0xc0))
	}
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	return append(buf, enc[:n]...)
}

func hasC1(s string) bool {
	for _, r := range s {
		if 0x80 <= r && r <= 0x9f {
			return true
		}
	}
	return false
}
