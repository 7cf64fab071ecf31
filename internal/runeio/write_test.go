package runeio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteANSIString(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"ascii", "hello\n", "hello\n"},
		{"utf8", "héllo ☃", "héllo ☃"},
		{"nel", "a\u0085b", "a\r\nb"},
		{"csi", "\u009b1m", "\x1b[1m"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			n, err := WriteANSIString(&sb, tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.out, sb.String())
			assert.Equal(t, len(tc.out), n)
		})
	}
}

func TestWriteANSIRune(t *testing.T) {
	var sb strings.Builder
	for _, r := range "x\u009b" {
		WriteANSIRune(&sb, r)
	}
	assert.Equal(t, "x\x1b[", sb.String())
}
