package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]Token, error) {
	var toks []Token
	tz := tokenize(src)
	for tz.Scan() {
		toks = append(toks, tz.Token())
	}
	for _, tok := range toks {
		t.Logf("%v", tok)
	}
	return toks, tz.Err()
}

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		expect []Token
	}{
		{name: "empty"},
		{name: "blank", src: " \t\r\n "},
		{name: "only comment", src: "# nothing here"},
		{
			name: "mixed",
			src:  "1 \"a \"\"b\"\"\" :sym # note\n  word{ }",
			expect: []Token{
				{NumberToken, `1`, Position{0, 1, 1}},
				{StringToken, `"a ""b"""`, Position{2, 1, 3}},
				{SymbolToken, `:sym`, Position{12, 1, 13}},
				{WordToken, `word{`, Position{26, 2, 3}},
				{WordToken, `}`, Position{32, 2, 9}},
			},
		},
		{
			name: "comment marks only at token start",
			src:  "a#b # c",
			expect: []Token{
				{WordToken, `a#b`, Position{0, 1, 1}},
			},
		},
		{
			name: "digits lead numbers",
			src:  "12ab -5 x1",
			expect: []Token{
				{NumberToken, `12ab`, Position{0, 1, 1}},
				{WordToken, `-5`, Position{5, 1, 6}},
				{WordToken, `x1`, Position{8, 1, 9}},
			},
		},
		{
			name: "string spans lines",
			src:  "\"a\nb\" c",
			expect: []Token{
				{StringToken, "\"a\nb\"", Position{0, 1, 1}},
				{WordToken, `c`, Position{6, 2, 4}},
			},
		},
		{
			name: "string ends token",
			src:  `"a"b`,
			expect: []Token{
				{StringToken, `"a"`, Position{0, 1, 1}},
				{WordToken, `b`, Position{3, 1, 4}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := scanAll(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, toks)
		})
	}
}

func TestTokenize_unterminated(t *testing.T) {
	toks, err := scanAll(t, `1 "abc`)
	require.Error(t, err)
	assert.True(t, IsIncomplete(err), "expected an incomplete error, got %v", err)
	assert.Contains(t, err.Error(), "1:3: unterminated string")
	assert.Equal(t, []Token{{NumberToken, `1`, Position{0, 1, 1}}}, toks)
}

func TestUnquoteString(t *testing.T) {
	assert.Equal(t, `a "b"`, unquoteString(`"a ""b"""`))
	assert.Equal(t, ``, unquoteString(`""`))
	assert.Equal(t, `"a ""b"""`, quoteString(`a "b"`))
}
