package airyc

// AstView wraps a CST node with a zero-copy typed accessor layer
// (§3 "AST view"). Every accessor method below returns (View, bool);
// a false second result means the expected child is absent — a
// parse-error recovery signal to read, never a panic (§4.2 "Parser
// philosophy", §3 "AST view").
type AstView struct {
	Tree *Tree
	Node NodeID
}

func (v AstView) Kind() SyntaxKind { return v.Tree.Kind(v.Node) }
func (v AstView) Range() Range     { return v.Tree.Range(v.Node) }
func (v AstView) Text() string     { return v.Tree.Text(v.Node) }

func (v AstView) childOfKind(k SyntaxKind) (AstView, bool) {
	n, ok := v.Tree.FirstChildOfKind(v.Node, k)
	if !ok {
		return AstView{}, false
	}
	return AstView{Tree: v.Tree, Node: n}, true
}

func (v AstView) childrenOfKind(k SyntaxKind) []AstView {
	ids := v.Tree.ChildNodesOfKind(v.Node, k)
	out := make([]AstView, len(ids))
	for i, id := range ids {
		out[i] = AstView{Tree: v.Tree, Node: id}
	}
	return out
}

func (v AstView) childNodes() []AstView {
	ids := v.Tree.ChildNodes(v.Node)
	out := make([]AstView, len(ids))
	for i, id := range ids {
		out[i] = AstView{Tree: v.Tree, Node: id}
	}
	return out
}

func (v AstView) tokenOfKind(k SyntaxKind) (Token, bool) {
	return v.Tree.FirstTokenOfKind(v.Node, k)
}

var exprKinds = map[SyntaxKind]bool{
	SyntaxKind_BinaryExpr:        true,
	SyntaxKind_UnaryExpr:         true,
	SyntaxKind_CallExpr:          true,
	SyntaxKind_IndexExpr:         true,
	SyntaxKind_FieldExpr:         true,
	SyntaxKind_ArrowExpr:         true,
	SyntaxKind_ParenExpr:         true,
	SyntaxKind_IdentExpr:         true,
	SyntaxKind_IntLiteralExpr:    true,
	SyntaxKind_CharLiteralExpr:   true,
	SyntaxKind_StringLiteralExpr: true,
	SyntaxKind_BoolLiteralExpr:   true,
	SyntaxKind_NullLiteralExpr:   true,
}

// childExprs returns every direct child that is itself an expression
// node, in source order. Binary/call/index/field/arrow productions
// have no other node children, so positional indexing into this list
// (left=[0], right=[1], …) is unambiguous.
func (v AstView) childExprs() []ExprView {
	var out []ExprView
	for _, c := range v.childNodes() {
		if exprKinds[c.Kind()] {
			out = append(out, ExprView{c})
		}
	}
	return out
}

func (v AstView) nthExpr(i int) (ExprView, bool) {
	exprs := v.childExprs()
	if i < 0 || i >= len(exprs) {
		return ExprView{}, false
	}
	return exprs[i], true
}

// ---- CompUnit := {Import} {GlobalDecl} ----

type CompUnitView struct{ AstView }

func NewCompUnitView(t *Tree) CompUnitView {
	return CompUnitView{AstView{Tree: t, Node: t.Root()}}
}

func (v CompUnitView) Imports() []ImportDeclView {
	raw := v.childrenOfKind(SyntaxKind_ImportDecl)
	out := make([]ImportDeclView, len(raw))
	for i, r := range raw {
		out[i] = ImportDeclView{r}
	}
	return out
}

// Decls returns every top-level declaration view in source order:
// VarDef, FuncDecl (signature with or without body), StructDef, or
// AttachDef.
func (v CompUnitView) Decls() []AstView {
	var out []AstView
	for _, c := range v.childNodes() {
		switch c.Kind() {
		case SyntaxKind_VarDef, SyntaxKind_FuncDecl, SyntaxKind_StructDef, SyntaxKind_AttachDef:
			out = append(out, c)
		}
	}
	return out
}

// ---- Import := 'import' StringLit ['::' Ident] [';'] ----

type ImportDeclView struct{ AstView }

func (v ImportDeclView) PathLiteral() (Token, bool) {
	return v.tokenOfKind(SyntaxKind_StringLiteral)
}

// SelectedName returns the single imported symbol name for a
// selective `import "p" :: Name`, or false for a bare import that
// exposes every public top-level symbol (§4.3).
func (v ImportDeclView) SelectedName() (Token, bool) {
	if _, ok := v.tokenOfKind(SyntaxKind_ColonColon); !ok {
		return Token{}, false
	}
	return v.tokenOfKind(SyntaxKind_Ident)
}

// ---- VarDef := 'let' Ident ':' Type ['=' InitVal] ';' ----

type VarDefView struct{ AstView }

func (v VarDefView) Name() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }

func (v VarDefView) TypeRef() (TypeRefView, bool) {
	n, ok := v.childOfKind(SyntaxKind_TypeRef)
	return TypeRefView{n}, ok
}

// Init returns the `= Expr` initializer, when the InitVal is a bare
// expression rather than a brace list.
func (v VarDefView) Init() (ExprView, bool) { return v.nthExpr(0) }

// InitList returns the `= { … }` initializer, when present.
func (v VarDefView) InitList() (InitValListView, bool) {
	n, ok := v.childOfKind(SyntaxKind_InitValList)
	return InitValListView{n}, ok
}

// ---- FuncSign := 'fn' Ident '(' [Params ['...']] ')' ['->' Type] ----
// ---- FuncDecl wraps a FuncSign plus an optional Block ----

type FuncDeclView struct{ AstView }

func (v FuncDeclView) Sign() (FuncSignView, bool) {
	n, ok := v.childOfKind(SyntaxKind_FuncSign)
	return FuncSignView{n}, ok
}

func (v FuncDeclView) Body() (BlockView, bool) {
	n, ok := v.childOfKind(SyntaxKind_Block)
	return BlockView{n}, ok
}

type FuncSignView struct{ AstView }

func (v FuncSignView) Name() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }

func (v FuncSignView) Params() []ParamView {
	n, ok := v.childOfKind(SyntaxKind_ParamList)
	if !ok {
		return nil
	}
	raw := n.childrenOfKind(SyntaxKind_Param)
	out := make([]ParamView, len(raw))
	for i, r := range raw {
		out[i] = ParamView{r}
	}
	return out
}

func (v FuncSignView) Variadic() bool {
	n, ok := v.childOfKind(SyntaxKind_ParamList)
	if !ok {
		return false
	}
	_, ok = n.tokenOfKind(SyntaxKind_DotDotDot)
	return ok
}

func (v FuncSignView) ReturnType() (TypeRefView, bool) {
	n, ok := v.childOfKind(SyntaxKind_TypeRef)
	return TypeRefView{n}, ok
}

type ParamView struct{ AstView }

func (v ParamView) Name() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }
func (v ParamView) TypeRef() (TypeRefView, bool) {
	n, ok := v.childOfKind(SyntaxKind_TypeRef)
	return TypeRefView{n}, ok
}

// ---- AttachDef := 'attach' Ident Block ----

type AttachDefView struct{ AstView }

func (v AttachDefView) Name() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }
func (v AttachDefView) Body() (BlockView, bool) {
	n, ok := v.childOfKind(SyntaxKind_Block)
	return BlockView{n}, ok
}

// ---- StructDef := 'struct' Ident '{' [Field {',' Field} [',']] '}' ----

type StructDefView struct{ AstView }

func (v StructDefView) Name() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }
func (v StructDefView) Fields() []FieldDefView {
	raw := v.childrenOfKind(SyntaxKind_FieldDef)
	out := make([]FieldDefView, len(raw))
	for i, r := range raw {
		out[i] = FieldDefView{r}
	}
	return out
}

type FieldDefView struct{ AstView }

func (v FieldDefView) Name() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }
func (v FieldDefView) TypeRef() (TypeRefView, bool) {
	n, ok := v.childOfKind(SyntaxKind_TypeRef)
	return TypeRefView{n}, ok
}

// ---- Type := ['const'] PrimType | PtrQual Type | '[' Type ';' ConstExpr ']' ----

type TypeRefView struct{ AstView }

func (v TypeRefView) IsConst() bool {
	_, ok := v.tokenOfKind(SyntaxKind_KwConst)
	return ok
}

func (v TypeRefView) PtrType() (PtrTypeView, bool) {
	n, ok := v.childOfKind(SyntaxKind_PtrType)
	return PtrTypeView{n}, ok
}

func (v TypeRefView) ArrayType() (ArrayTypeView, bool) {
	n, ok := v.childOfKind(SyntaxKind_ArrayType)
	return ArrayTypeView{n}, ok
}

// PrimKeyword returns the primitive-type keyword token (i32, bool,
// void, …) when this TypeRef names neither a pointer, an array, nor a
// struct.
func (v TypeRefView) PrimKeyword() (Token, bool) {
	for _, k := range []SyntaxKind{
		SyntaxKind_KwVoid, SyntaxKind_KwBool, SyntaxKind_KwI8, SyntaxKind_KwI32, SyntaxKind_KwI64,
		SyntaxKind_KwU8, SyntaxKind_KwU32, SyntaxKind_KwU64,
	} {
		if tok, ok := v.tokenOfKind(k); ok {
			return tok, true
		}
	}
	return Token{}, false
}

func (v TypeRefView) StructName() (Token, bool) {
	if _, ok := v.tokenOfKind(SyntaxKind_KwStruct); !ok {
		return Token{}, false
	}
	return v.tokenOfKind(SyntaxKind_Ident)
}

type PtrTypeView struct{ AstView }

func (v PtrTypeView) Qualifier() Qualifier {
	if _, ok := v.tokenOfKind(SyntaxKind_KwMut); ok {
		return QualMut
	}
	return QualConst
}

func (v PtrTypeView) Pointee() (TypeRefView, bool) {
	n, ok := v.childOfKind(SyntaxKind_TypeRef)
	return TypeRefView{n}, ok
}

type ArrayTypeView struct{ AstView }

func (v ArrayTypeView) Elem() (TypeRefView, bool) {
	n, ok := v.childOfKind(SyntaxKind_TypeRef)
	return TypeRefView{n}, ok
}

func (v ArrayTypeView) SizeExpr() (ExprView, bool) { return v.nthExpr(0) }

// ---- InitVal := Expr | '{' [InitVal {',' InitVal}] '}' ----

type InitValListView struct{ AstView }

// Items returns each element of the brace list: either an expression
// view or a nested InitValListView, both exposed as AstView so the
// analyzer/lowering can type-switch on Kind().
func (v InitValListView) Items() []AstView {
	var out []AstView
	for _, c := range v.childNodes() {
		switch {
		case exprKinds[c.Kind()]:
			out = append(out, c)
		case c.Kind() == SyntaxKind_InitValList:
			out = append(out, c)
		}
	}
	return out
}

// ---- Block & statements ----

type BlockView struct{ AstView }

func (v BlockView) Stmts() []AstView {
	var out []AstView
	for _, c := range v.childNodes() {
		switch c.Kind() {
		case SyntaxKind_LetStmt, SyntaxKind_IfStmt, SyntaxKind_WhileStmt, SyntaxKind_BreakStmt,
			SyntaxKind_ContinueStmt, SyntaxKind_ReturnStmt, SyntaxKind_AssignStmt, SyntaxKind_ExprStmt, SyntaxKind_Block:
			out = append(out, c)
		}
	}
	return out
}

type LetStmtView struct{ AstView } // reuses VarDef's shape inside a block
func (v LetStmtView) VarDef() VarDefView {
	n, _ := v.childOfKind(SyntaxKind_VarDef)
	return VarDefView{n}
}

type IfStmtView struct{ AstView }

func (v IfStmtView) Cond() (ExprView, bool) { return v.nthExpr(0) }

func (v IfStmtView) Then() (BlockView, bool) {
	blocks := v.childrenOfKind(SyntaxKind_Block)
	if len(blocks) == 0 {
		return BlockView{}, false
	}
	return BlockView{blocks[0]}, true
}

func (v IfStmtView) Else() (BlockView, bool) {
	blocks := v.childrenOfKind(SyntaxKind_Block)
	if len(blocks) < 2 {
		return BlockView{}, false
	}
	return BlockView{blocks[1]}, true
}

type WhileStmtView struct{ AstView }

func (v WhileStmtView) Cond() (ExprView, bool) { return v.nthExpr(0) }

func (v WhileStmtView) Body() (BlockView, bool) {
	n, ok := v.childOfKind(SyntaxKind_Block)
	return BlockView{n}, ok
}

type ReturnStmtView struct{ AstView }

func (v ReturnStmtView) Value() (ExprView, bool) { return v.nthExpr(0) }

type AssignStmtView struct{ AstView }

func (v AssignStmtView) Target() (ExprView, bool) { return v.nthExpr(0) }
func (v AssignStmtView) Value() (ExprView, bool)  { return v.nthExpr(1) }

type ExprStmtView struct{ AstView }

func (v ExprStmtView) Expr() (ExprView, bool) { return v.nthExpr(0) }

// ---- Expressions ----

type ExprView struct{ AstView }

func (v ExprView) AsBinary() (BinaryExprView, bool) {
	if v.Kind() != SyntaxKind_BinaryExpr {
		return BinaryExprView{}, false
	}
	return BinaryExprView{v.AstView}, true
}

func (v ExprView) AsUnary() (UnaryExprView, bool) {
	if v.Kind() != SyntaxKind_UnaryExpr {
		return UnaryExprView{}, false
	}
	return UnaryExprView{v.AstView}, true
}

func (v ExprView) AsCall() (CallExprView, bool) {
	if v.Kind() != SyntaxKind_CallExpr {
		return CallExprView{}, false
	}
	return CallExprView{v.AstView}, true
}

func (v ExprView) AsIndex() (IndexExprView, bool) {
	if v.Kind() != SyntaxKind_IndexExpr {
		return IndexExprView{}, false
	}
	return IndexExprView{v.AstView}, true
}

func (v ExprView) AsField() (FieldExprView, bool) {
	if v.Kind() != SyntaxKind_FieldExpr {
		return FieldExprView{}, false
	}
	return FieldExprView{v.AstView}, true
}

func (v ExprView) AsArrow() (ArrowExprView, bool) {
	if v.Kind() != SyntaxKind_ArrowExpr {
		return ArrowExprView{}, false
	}
	return ArrowExprView{v.AstView}, true
}

func (v ExprView) AsParen() (ExprView, bool) {
	if v.Kind() != SyntaxKind_ParenExpr {
		return ExprView{}, false
	}
	return v.nthExpr(0)
}

func (v ExprView) Ident() (Token, bool) {
	if v.Kind() != SyntaxKind_IdentExpr {
		return Token{}, false
	}
	return v.tokenOfKind(SyntaxKind_Ident)
}

func (v ExprView) IntLiteral() (Token, bool) {
	if v.Kind() != SyntaxKind_IntLiteralExpr {
		return Token{}, false
	}
	return v.tokenOfKind(SyntaxKind_IntLiteral)
}

func (v ExprView) CharLiteral() (Token, bool) {
	if v.Kind() != SyntaxKind_CharLiteralExpr {
		return Token{}, false
	}
	return v.tokenOfKind(SyntaxKind_CharLiteral)
}

func (v ExprView) StringLiteral() (Token, bool) {
	if v.Kind() != SyntaxKind_StringLiteralExpr {
		return Token{}, false
	}
	return v.tokenOfKind(SyntaxKind_StringLiteral)
}

func (v ExprView) BoolLiteral() (bool, bool) {
	if v.Kind() != SyntaxKind_BoolLiteralExpr {
		return false, false
	}
	if _, ok := v.tokenOfKind(SyntaxKind_KwTrue); ok {
		return true, true
	}
	if _, ok := v.tokenOfKind(SyntaxKind_KwFalse); ok {
		return false, true
	}
	return false, false
}

func (v ExprView) IsNullLiteral() bool { return v.Kind() == SyntaxKind_NullLiteralExpr }

type BinaryExprView struct{ AstView }

func (v BinaryExprView) Left() ExprView  { e, _ := v.nthExpr(0); return e }
func (v BinaryExprView) Right() ExprView { e, _ := v.nthExpr(1); return e }

func (v BinaryExprView) Op() SyntaxKind {
	for _, tok := range v.Tree.Tokens(v.Node) {
		if !tok.Kind.IsTrivia() {
			return tok.Kind
		}
	}
	return SyntaxKind_Unknown
}

type UnaryExprView struct{ AstView }

func (v UnaryExprView) Op() SyntaxKind {
	for _, tok := range v.Tree.Tokens(v.Node) {
		if !tok.Kind.IsTrivia() {
			return tok.Kind
		}
	}
	return SyntaxKind_Unknown
}

func (v UnaryExprView) Operand() ExprView { e, _ := v.nthExpr(0); return e }

type CallExprView struct{ AstView }

func (v CallExprView) Callee() ExprView { e, _ := v.nthExpr(0); return e }

func (v CallExprView) Args() []ExprView {
	n, ok := v.childOfKind(SyntaxKind_ArgList)
	if !ok {
		return nil
	}
	return n.childExprs()
}

type IndexExprView struct{ AstView }

func (v IndexExprView) Base() ExprView  { e, _ := v.nthExpr(0); return e }
func (v IndexExprView) Index() ExprView { e, _ := v.nthExpr(1); return e }

type FieldExprView struct{ AstView }

func (v FieldExprView) Base() ExprView           { e, _ := v.nthExpr(0); return e }
func (v FieldExprView) FieldName() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }

type ArrowExprView struct{ AstView }

func (v ArrowExprView) Base() ExprView           { e, _ := v.nthExpr(0); return e }
func (v ArrowExprView) FieldName() (Token, bool) { return v.tokenOfKind(SyntaxKind_Ident) }
