package airyc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokenizesKeywordsAndPunctuation(t *testing.T) {
	toks := NewLexer([]byte("fn -> :: && || <=")).Tokenize()
	var kinds []SyntaxKind
	for _, tok := range toks {
		if tok.Kind.IsTrivia() {
			continue
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []SyntaxKind{
		SyntaxKind_KwFn, SyntaxKind_Arrow, SyntaxKind_ColonColon,
		SyntaxKind_AndAnd, SyntaxKind_OrOr, SyntaxKind_Le, SyntaxKind_EOF,
	}, kinds)
}

func TestLexerIntLiteralSuffixes(t *testing.T) {
	for _, tt := range []struct {
		src  string
		text string
	}{
		{"10", "10"},
		{"10i8", "10i8"},
		{"10u32", "10u32"},
		{"10abc", "10"}, // "abc" is not a recognized suffix; re-lexed separately
	} {
		toks := NewLexer([]byte(tt.src)).Tokenize()
		require.NotEmpty(t, toks)
		assert.Equal(t, SyntaxKind_IntLiteral, toks[0].Kind)
		assert.Equal(t, tt.text, toks[0].Text)
	}
}

func TestLexerStringAndCharLiterals(t *testing.T) {
	toks := NewLexer([]byte(`"hi\n" 'a' '\x41'`)).Tokenize()
	var significant []Token
	for _, tok := range toks {
		if !tok.Kind.IsTrivia() && tok.Kind != SyntaxKind_EOF {
			significant = append(significant, tok)
		}
	}
	require.Len(t, significant, 3)
	assert.Equal(t, SyntaxKind_StringLiteral, significant[0].Kind)
	assert.Equal(t, `"hi\n"`, significant[0].Text)
	assert.Equal(t, SyntaxKind_CharLiteral, significant[1].Kind)
	assert.Equal(t, `'a'`, significant[1].Text)
	assert.Equal(t, SyntaxKind_CharLiteral, significant[2].Kind)
	assert.Equal(t, `'\x41'`, significant[2].Text)
}

func TestLexerRoundTripReproducesSource(t *testing.T) {
	src := "fn main() -> i32 {\n  return 0; // done\n}\n"
	toks := NewLexer([]byte(src)).Tokenize()
	var buf []byte
	for _, tok := range toks {
		buf = append(buf, tok.Text...)
	}
	assert.Equal(t, src, string(buf))
}

func TestLexerUnrecognizedByteYieldsErrorTokenWithoutAborting(t *testing.T) {
	toks := NewLexer([]byte("1 @ 2")).Tokenize()
	var sawError bool
	for _, tok := range toks {
		if tok.Kind == SyntaxKind_Error {
			sawError = true
		}
	}
	assert.True(t, sawError)
	assert.Equal(t, SyntaxKind_EOF, toks[len(toks)-1].Kind)
}

func TestUnescapeString(t *testing.T) {
	out, err := UnescapeString(`"a\nb\tc\\d\"e\x41"`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\\d\"eA", string(out))
}
