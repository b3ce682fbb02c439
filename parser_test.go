package airyc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVarDef(t *testing.T) {
	tree, diags := Parse(0, []byte(`let x: i32 = 10;`))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	decls := unit.Decls()
	require.Len(t, decls, 1)
	require.Equal(t, SyntaxKind_VarDef, decls[0].Kind())

	v := VarDefView{decls[0]}
	name, ok := v.Name()
	require.True(t, ok)
	assert.Equal(t, "x", name.Text)

	ty, ok := v.TypeRef()
	require.True(t, ok)
	kw, ok := ty.PrimKeyword()
	require.True(t, ok)
	assert.Equal(t, SyntaxKind_KwI32, kw.Kind)

	init, ok := v.Init()
	require.True(t, ok)
	lit, ok := init.IntLiteral()
	require.True(t, ok)
	assert.Equal(t, "10", lit.Text)
}

func TestParseFuncDeclWithBody(t *testing.T) {
	src := `fn add(a: i32, b: i32) -> i32 { return a + b; }`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	decls := unit.Decls()
	require.Len(t, decls, 1)
	fn := FuncDeclView{decls[0]}

	sign, ok := fn.Sign()
	require.True(t, ok)
	name, ok := sign.Name()
	require.True(t, ok)
	assert.Equal(t, "add", name.Text)
	assert.Len(t, sign.Params(), 2)
	assert.False(t, sign.Variadic())

	ret, ok := sign.ReturnType()
	require.True(t, ok)
	retKw, _ := ret.PrimKeyword()
	assert.Equal(t, SyntaxKind_KwI32, retKw.Kind)

	body, ok := fn.Body()
	require.True(t, ok)
	stmts := body.Stmts()
	require.Len(t, stmts, 1)
	require.Equal(t, SyntaxKind_ReturnStmt, stmts[0].Kind())

	ret2 := ReturnStmtView{stmts[0]}
	val, ok := ret2.Value()
	require.True(t, ok)
	bin, ok := val.AsBinary()
	require.True(t, ok)
	assert.Equal(t, SyntaxKind_Plus, bin.Op())
}

func TestParseVariadicExternDecl(t *testing.T) {
	src := `fn printf(fmt: *const u8, ...) -> i32;`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	fn := FuncDeclView{unit.Decls()[0]}
	sign, _ := fn.Sign()
	assert.True(t, sign.Variadic())
	_, hasBody := fn.Body()
	assert.False(t, hasBody)
}

func TestParseStructDef(t *testing.T) {
	src := `struct Node { value: i32, next: *mut struct Node }`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	s := StructDefView{unit.Decls()[0]}
	name, _ := s.Name()
	assert.Equal(t, "Node", name.Text)

	fields := s.Fields()
	require.Len(t, fields, 2)
	f0, _ := fields[0].Name()
	assert.Equal(t, "value", f0.Text)

	f1Type, _ := fields[1].TypeRef()
	ptr, ok := f1Type.PtrType()
	require.True(t, ok)
	assert.Equal(t, QualMut, ptr.Qualifier())
	pointee, ok := ptr.Pointee()
	require.True(t, ok)
	sn, ok := pointee.StructName()
	require.True(t, ok)
	assert.Equal(t, "Node", sn.Text)
}

func TestParseArrayInitializer(t *testing.T) {
	src := `let arr: [i32; 5] = {10, 20, 30, 40, 50};`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	v := VarDefView{unit.Decls()[0]}
	ty, _ := v.TypeRef()
	arr, ok := ty.ArrayType()
	require.True(t, ok)
	_, ok = arr.SizeExpr()
	require.True(t, ok)

	list, ok := v.InitList()
	require.True(t, ok)
	items := list.Items()
	require.Len(t, items, 5)
}

func TestParseIfElseChain(t *testing.T) {
	src := `fn f() -> i32 {
		if a == 1 {
			return 1;
		} else if a == 2 {
			return 2;
		} else {
			return 3;
		}
	}`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	fn := FuncDeclView{unit.Decls()[0]}
	body, _ := fn.Body()
	stmts := body.Stmts()
	require.Len(t, stmts, 1)

	ifStmt := IfStmtView{stmts[0]}
	_, hasThen := ifStmt.Then()
	assert.True(t, hasThen)

	elseBlock, ok := ifStmt.Else()
	require.True(t, ok)
	elseStmts := elseBlock.Stmts()
	require.Len(t, elseStmts, 1)
	assert.Equal(t, SyntaxKind_IfStmt, elseStmts[0].Kind())
}

func TestParseBinaryPrecedenceAndAssociativity(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3): outer op is '+'.
	src := `fn f() -> i32 { return 1 + 2 * 3; }`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	fn := FuncDeclView{unit.Decls()[0]}
	body, _ := fn.Body()
	ret := ReturnStmtView{body.Stmts()[0]}
	val, _ := ret.Value()
	outer, ok := val.AsBinary()
	require.True(t, ok)
	assert.Equal(t, SyntaxKind_Plus, outer.Op())

	_, isLiteral := outer.Left().IntLiteral()
	assert.True(t, isLiteral)

	inner, ok := outer.Right().AsBinary()
	require.True(t, ok)
	assert.Equal(t, SyntaxKind_Star, inner.Op())
}

func TestParseLeftAssociativeChain(t *testing.T) {
	// a - b - c must parse as (a - b) - c, not a - (b - c).
	src := `fn f() -> i32 { return a - b - c; }`
	tree, _ := Parse(0, []byte(src))

	unit := NewCompUnitView(tree)
	fn := FuncDeclView{unit.Decls()[0]}
	body, _ := fn.Body()
	ret := ReturnStmtView{body.Stmts()[0]}
	val, _ := ret.Value()
	outer, ok := val.AsBinary()
	require.True(t, ok)
	assert.Equal(t, SyntaxKind_Minus, outer.Op())

	_, rightIsIdent := outer.Right().Ident()
	assert.True(t, rightIsIdent)

	leftBin, ok := outer.Left().AsBinary()
	require.True(t, ok)
	assert.Equal(t, SyntaxKind_Minus, leftBin.Op())
}

func TestParsePostfixChain(t *testing.T) {
	src := `fn f() -> i32 { return a.b->c[0](1, 2); }`
	tree, diags := Parse(0, []byte(src))
	require.Empty(t, diags.Items())

	unit := NewCompUnitView(tree)
	fn := FuncDeclView{unit.Decls()[0]}
	body, _ := fn.Body()
	ret := ReturnStmtView{body.Stmts()[0]}
	val, _ := ret.Value()

	call, ok := val.AsCall()
	require.True(t, ok)
	assert.Len(t, call.Args(), 2)

	idx, ok := call.Callee().AsIndex()
	require.True(t, ok)

	arrow, ok := idx.Base().AsArrow()
	require.True(t, ok)
	fname, _ := arrow.FieldName()
	assert.Equal(t, "c", fname.Text)

	field, ok := arrow.Base().AsField()
	require.True(t, ok)
	fname2, _ := field.FieldName()
	assert.Equal(t, "b", fname2.Text)
}

func TestParseTreeIsLossless(t *testing.T) {
	src := "let x : i32 = 1 + 2 ; // trailing comment\n"
	tree, _ := Parse(0, []byte(src))

	var buf []byte
	for _, tok := range tree.AllTokens() {
		buf = append(buf, tok.Text...)
	}
	assert.Equal(t, src, string(buf))
}

func TestParseErrorRecoverySkipsToNextDecl(t *testing.T) {
	src := `let x: i32 = ; fn f() -> i32 { return 1; }`
	tree, diags := Parse(0, []byte(src))
	assert.NotEmpty(t, diags.Items())

	unit := NewCompUnitView(tree)
	var fnDecls int
	for _, d := range unit.Decls() {
		if d.Kind() == SyntaxKind_FuncDecl {
			fnDecls++
		}
	}
	assert.Equal(t, 1, fnDecls)
}
