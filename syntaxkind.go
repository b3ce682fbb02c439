package airyc

// SyntaxKind tags every token and every interior node of the CST.
// Token kinds and node kinds share one enumeration the way the
// teacher's NodeType/FormatToken enums live side by side (tree.go),
// so a single switch can dispatch on either a token or a tree node.
type SyntaxKind int32

const (
	SyntaxKind_Unknown SyntaxKind = iota

	// ---- Trivia ----
	SyntaxKind_Whitespace
	SyntaxKind_Newline
	SyntaxKind_LineComment
	SyntaxKind_BlockComment

	// ---- Literals & identifiers ----
	SyntaxKind_IntLiteral
	SyntaxKind_CharLiteral
	SyntaxKind_StringLiteral
	SyntaxKind_Ident

	// ---- Keywords ----
	SyntaxKind_KwLet
	SyntaxKind_KwConst
	SyntaxKind_KwMut
	SyntaxKind_KwFn
	SyntaxKind_KwStruct
	SyntaxKind_KwAttach
	SyntaxKind_KwImport
	SyntaxKind_KwIf
	SyntaxKind_KwElse
	SyntaxKind_KwWhile
	SyntaxKind_KwBreak
	SyntaxKind_KwContinue
	SyntaxKind_KwReturn
	SyntaxKind_KwVoid
	SyntaxKind_KwBool
	SyntaxKind_KwI8
	SyntaxKind_KwI32
	SyntaxKind_KwI64
	SyntaxKind_KwU8
	SyntaxKind_KwU32
	SyntaxKind_KwU64
	SyntaxKind_KwNull
	SyntaxKind_KwTrue
	SyntaxKind_KwFalse

	// ---- Punctuation ----
	SyntaxKind_Plus      // +
	SyntaxKind_Minus     // -
	SyntaxKind_Star      // *
	SyntaxKind_Slash     // /
	SyntaxKind_Percent   // %
	SyntaxKind_Eq        // =
	SyntaxKind_EqEq      // ==
	SyntaxKind_NotEq     // !=
	SyntaxKind_Lt        // <
	SyntaxKind_Gt        // >
	SyntaxKind_Le        // <=
	SyntaxKind_Ge        // >=
	SyntaxKind_AndAnd    // &&
	SyntaxKind_OrOr      // ||
	SyntaxKind_Bang      // !
	SyntaxKind_Amp       // &
	SyntaxKind_Dot       // .
	SyntaxKind_Arrow     // ->
	SyntaxKind_ColonColon // ::
	SyntaxKind_Semi      // ;
	SyntaxKind_Comma     // ,
	SyntaxKind_Colon     // :
	SyntaxKind_LParen    // (
	SyntaxKind_RParen    // )
	SyntaxKind_LBracket  // [
	SyntaxKind_RBracket  // ]
	SyntaxKind_LBrace    // {
	SyntaxKind_RBrace    // }
	SyntaxKind_DotDotDot // ...

	SyntaxKind_EOF
	SyntaxKind_Error

	// ---- Tree (non-token) node kinds ----
	SyntaxKind_CompUnit
	SyntaxKind_ImportDecl
	SyntaxKind_VarDef
	SyntaxKind_FuncSign
	SyntaxKind_FuncDecl
	SyntaxKind_AttachDef
	SyntaxKind_StructDef
	SyntaxKind_FieldDef
	SyntaxKind_ParamList
	SyntaxKind_Param
	SyntaxKind_TypeRef
	SyntaxKind_PtrType
	SyntaxKind_ArrayType
	SyntaxKind_InitValList
	SyntaxKind_Block
	SyntaxKind_IfStmt
	SyntaxKind_WhileStmt
	SyntaxKind_BreakStmt
	SyntaxKind_ContinueStmt
	SyntaxKind_ReturnStmt
	SyntaxKind_AssignStmt
	SyntaxKind_ExprStmt
	SyntaxKind_LetStmt
	SyntaxKind_BinaryExpr
	SyntaxKind_UnaryExpr
	SyntaxKind_CallExpr
	SyntaxKind_IndexExpr
	SyntaxKind_FieldExpr
	SyntaxKind_ArrowExpr
	SyntaxKind_ParenExpr
	SyntaxKind_IdentExpr
	SyntaxKind_IntLiteralExpr
	SyntaxKind_CharLiteralExpr
	SyntaxKind_StringLiteralExpr
	SyntaxKind_BoolLiteralExpr
	SyntaxKind_NullLiteralExpr
	SyntaxKind_ArgList
	SyntaxKind_ErrorNode
)

var syntaxKindNames = map[SyntaxKind]string{
	SyntaxKind_Unknown:       "Unknown",
	SyntaxKind_Whitespace:    "Whitespace",
	SyntaxKind_Newline:       "Newline",
	SyntaxKind_LineComment:   "LineComment",
	SyntaxKind_BlockComment:  "BlockComment",
	SyntaxKind_IntLiteral:    "IntLiteral",
	SyntaxKind_CharLiteral:   "CharLiteral",
	SyntaxKind_StringLiteral: "StringLiteral",
	SyntaxKind_Ident:         "Ident",
	SyntaxKind_EOF:           "EOF",
	SyntaxKind_Error:         "Error",
	SyntaxKind_CompUnit:      "CompUnit",
	SyntaxKind_ImportDecl:    "ImportDecl",
	SyntaxKind_VarDef:        "VarDef",
	SyntaxKind_FuncSign:      "FuncSign",
	SyntaxKind_FuncDecl:      "FuncDecl",
	SyntaxKind_AttachDef:     "AttachDef",
	SyntaxKind_StructDef:     "StructDef",
	SyntaxKind_FieldDef:      "FieldDef",
	SyntaxKind_ParamList:     "ParamList",
	SyntaxKind_Param:         "Param",
	SyntaxKind_TypeRef:       "TypeRef",
	SyntaxKind_PtrType:       "PtrType",
	SyntaxKind_ArrayType:     "ArrayType",
	SyntaxKind_InitValList:   "InitValList",
	SyntaxKind_Block:         "Block",
	SyntaxKind_IfStmt:        "IfStmt",
	SyntaxKind_WhileStmt:     "WhileStmt",
	SyntaxKind_BreakStmt:     "BreakStmt",
	SyntaxKind_ContinueStmt:  "ContinueStmt",
	SyntaxKind_ReturnStmt:    "ReturnStmt",
	SyntaxKind_AssignStmt:    "AssignStmt",
	SyntaxKind_ExprStmt:      "ExprStmt",
	SyntaxKind_LetStmt:       "LetStmt",
	SyntaxKind_BinaryExpr:    "BinaryExpr",
	SyntaxKind_UnaryExpr:     "UnaryExpr",
	SyntaxKind_CallExpr:      "CallExpr",
	SyntaxKind_IndexExpr:     "IndexExpr",
	SyntaxKind_FieldExpr:     "FieldExpr",
	SyntaxKind_ArrowExpr:     "ArrowExpr",
	SyntaxKind_ParenExpr:     "ParenExpr",
	SyntaxKind_IdentExpr:         "IdentExpr",
	SyntaxKind_IntLiteralExpr:    "IntLiteralExpr",
	SyntaxKind_CharLiteralExpr:   "CharLiteralExpr",
	SyntaxKind_StringLiteralExpr: "StringLiteralExpr",
	SyntaxKind_BoolLiteralExpr:   "BoolLiteralExpr",
	SyntaxKind_NullLiteralExpr:   "NullLiteralExpr",
	SyntaxKind_ArgList:           "ArgList",
	SyntaxKind_ErrorNode:         "ErrorNode",
}

func (k SyntaxKind) String() string {
	if s, ok := syntaxKindNames[k]; ok {
		return s
	}
	return "Token"
}

// IsTrivia reports whether tokens of this kind are skipped by the
// parser's logical token stream but still retained in the CST for
// lossless reconstruction (invariant §3: "CST covers every source
// byte exactly once").
func (k SyntaxKind) IsTrivia() bool {
	switch k {
	case SyntaxKind_Whitespace, SyntaxKind_Newline, SyntaxKind_LineComment, SyntaxKind_BlockComment:
		return true
	default:
		return false
	}
}

var keywords = map[string]SyntaxKind{
	"let":      SyntaxKind_KwLet,
	"const":    SyntaxKind_KwConst,
	"mut":      SyntaxKind_KwMut,
	"fn":       SyntaxKind_KwFn,
	"struct":   SyntaxKind_KwStruct,
	"attach":   SyntaxKind_KwAttach,
	"import":   SyntaxKind_KwImport,
	"if":       SyntaxKind_KwIf,
	"else":     SyntaxKind_KwElse,
	"while":    SyntaxKind_KwWhile,
	"break":    SyntaxKind_KwBreak,
	"continue": SyntaxKind_KwContinue,
	"return":   SyntaxKind_KwReturn,
	"void":     SyntaxKind_KwVoid,
	"bool":     SyntaxKind_KwBool,
	"i8":       SyntaxKind_KwI8,
	"i32":      SyntaxKind_KwI32,
	"i64":      SyntaxKind_KwI64,
	"u8":       SyntaxKind_KwU8,
	"u32":      SyntaxKind_KwU32,
	"u64":      SyntaxKind_KwU64,
	"null":     SyntaxKind_KwNull,
	"true":     SyntaxKind_KwTrue,
	"false":    SyntaxKind_KwFalse,
}

// LookupKeyword returns the keyword SyntaxKind for ident, if any.
func LookupKeyword(ident string) (SyntaxKind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
