package airyc

// Token is the unit the Lexer produces: a kind, the byte range it
// occupies in the source, and the raw lexeme. Trivia tokens (§4.1)
// carry the same shape as significant ones so the CST can reconstruct
// every byte of input.
type Token struct {
	Kind  SyntaxKind
	Range Range
	Text  string
}

func (t Token) String() string { return t.Text }

// IntSuffix tags the optional type suffix on an integer literal, or
// IntSuffixNone when the literal is unsuffixed. An unsuffixed literal
// is typed i32 in every context: it reaches i64 by implicit widening,
// and it is not accepted where i8 or an unsigned type is expected.
type IntSuffix int8

const (
	IntSuffixNone IntSuffix = iota
	IntSuffixI8
	IntSuffixI32
	IntSuffixI64
	IntSuffixU8
	IntSuffixU32
	IntSuffixU64
)

func (s IntSuffix) Type() *Type {
	switch s {
	case IntSuffixI8:
		return TypeI8
	case IntSuffixI32, IntSuffixNone:
		return TypeI32
	case IntSuffixI64:
		return TypeI64
	case IntSuffixU8:
		return TypeU8
	case IntSuffixU32:
		return TypeU32
	case IntSuffixU64:
		return TypeU64
	default:
		return TypeI32
	}
}

var intSuffixes = map[string]IntSuffix{
	"i8":  IntSuffixI8,
	"i32": IntSuffixI32,
	"i64": IntSuffixI64,
	"u8":  IntSuffixU8,
	"u32": IntSuffixU32,
	"u64": IntSuffixU64,
}
