package airyc

// analyzeModule walks every function and attach body, plus every
// global variable initializer, for one module. Struct/function
// signatures and the recursive-type/layout passes have already run
// for every module by the time this is called (analyzer.go's Run).
func (a *Analyzer) analyzeModule(mod *Module) {
	a.applyAttaches(mod)
	modScope := a.moduleScope(mod)

	for _, d := range mod.Unit.Decls() {
		switch d.Kind() {
		case SyntaxKind_VarDef:
			a.analyzeGlobalVar(mod, VarDefView{d}, modScope)
		case SyntaxKind_FuncDecl:
			a.analyzeFuncDecl(mod, FuncDeclView{d}, modScope)
		case SyntaxKind_AttachDef:
			a.analyzeAttachDef(mod, AttachDefView{d}, modScope)
		}
	}
}

func (a *Analyzer) analyzeGlobalVar(mod *Module, v VarDefView, sc *scope) {
	name, ok := v.Name()
	if !ok {
		return
	}
	typeRef, ok := v.TypeRef()
	declared := TypeVoid
	if ok {
		declared = a.resolveTypeRef(mod, typeRef)
	}

	if init, ok := v.Init(); ok {
		cv, ok := a.foldConstant(init, sc)
		if !ok {
			a.errAt(mod, init.AstView, KindConstantExprExpected, "global variable initializer must be a constant expression")
		} else if !CanWidenTo(cv.Type, declared) && !StructurallyEqual(cv.Type, declared) {
			a.errAt(mod, init.AstView, KindTypeMismatch, "cannot initialize %q of type %s with a value of type %s", name.Text, declared, cv.Type)
		}
	} else if list, ok := v.InitList(); ok {
		a.analyzeInitList(mod, list.AstView, declared, sc)
	}

	isConst := typeRef.IsConst()
	sym, ok := a.symbols.Declare(sc, SymbolVar, name.Text, declared, isConst, mod.ID, v.Node)
	if !ok {
		a.errAt(mod, v.AstView, KindDuplicateDefinition, "%q is already defined in this module", name.Text)
		return
	}
	a.side.SetSymbol(v.Node, sym.ID)
	a.side.SetType(v.Node, declared)
}

func (a *Analyzer) analyzeFuncDecl(mod *Module, fd FuncDeclView, modScope *scope) {
	sign, ok := fd.Sign()
	if !ok {
		return
	}
	body, hasBody := fd.Body()
	if !hasBody {
		return
	}
	a.analyzeFuncBody(mod, sign, body, modScope)
}

func (a *Analyzer) analyzeAttachDef(mod *Module, ad AttachDefView, modScope *scope) {
	name, ok := ad.Name()
	if !ok {
		return
	}
	body, ok := ad.Body()
	if !ok {
		return
	}
	fn, ok := mod.Funcs[name.Text]
	if !ok {
		return
	}
	fnScope := a.symbols.PushScope(modScope, false)
	a.declareFuncParamsFromNode(mod, fn, fnScope)
	a.analyzeBlock(mod, body, fnScope, fn.Return)
}

// declareFuncParamsFromNode re-resolves a FuncSign's parameter nodes to
// bind fresh parameter symbols in fnScope — used for `attach` bodies,
// whose parameter list lives on the separately-declared signature, not
// on the AttachDef node itself.
func (a *Analyzer) declareFuncParamsFromNode(mod *Module, fn *FuncSymbol, fnScope *scope) {
	sign := FuncSignView{AstView{Tree: mod.Tree, Node: fn.Node}}
	for i, p := range sign.Params() {
		pname, ok := p.Name()
		if !ok || i >= len(fn.Params) {
			continue
		}
		sym, ok := a.symbols.Declare(fnScope, SymbolParam, pname.Text, fn.Params[i], false, mod.ID, p.Node)
		if ok {
			a.side.SetSymbol(p.Node, sym.ID)
			a.side.SetType(p.Node, fn.Params[i])
		}
	}
}

func (a *Analyzer) analyzeFuncBody(mod *Module, sign FuncSignView, body BlockView, modScope *scope) {
	name, ok := sign.Name()
	if !ok {
		return
	}
	fn, ok := mod.Funcs[name.Text]
	if !ok {
		return
	}
	fnScope := a.symbols.PushScope(modScope, false)
	for i, p := range sign.Params() {
		pname, ok := p.Name()
		if !ok || i >= len(fn.Params) {
			continue
		}
		sym, ok := a.symbols.Declare(fnScope, SymbolParam, pname.Text, fn.Params[i], false, mod.ID, p.Node)
		if !ok {
			a.errAt(mod, p.AstView, KindDuplicateDefinition, "duplicate parameter name %q", pname.Text)
			continue
		}
		a.side.SetSymbol(p.Node, sym.ID)
		a.side.SetType(p.Node, fn.Params[i])
	}
	a.analyzeBlock(mod, body, fnScope, fn.Return)
}

func (a *Analyzer) analyzeBlock(mod *Module, b BlockView, parent *scope, retType *Type) *scope {
	sc := a.symbols.PushScope(parent, false)
	for _, s := range b.Stmts() {
		a.analyzeStmt(mod, s, sc, retType)
	}
	return sc
}

func (a *Analyzer) analyzeStmt(mod *Module, s AstView, sc *scope, retType *Type) {
	switch s.Kind() {
	case SyntaxKind_LetStmt:
		a.analyzeLetStmt(mod, LetStmtView{s}, sc)

	case SyntaxKind_IfStmt:
		ifs := IfStmtView{s}
		if cond, ok := ifs.Cond(); ok {
			ct := a.analyzeExpr(mod, cond, sc)
			if !ct.IsBool() {
				a.errAt(mod, cond.AstView, KindTypeMismatch, "if condition must be bool, found %s", ct)
			}
		}
		if then, ok := ifs.Then(); ok {
			a.analyzeBlock(mod, then, sc, retType)
		}
		if els, ok := ifs.Else(); ok {
			a.analyzeBlock(mod, els, sc, retType)
		}

	case SyntaxKind_WhileStmt:
		ws := WhileStmtView{s}
		if cond, ok := ws.Cond(); ok {
			ct := a.analyzeExpr(mod, cond, sc)
			if !ct.IsBool() {
				a.errAt(mod, cond.AstView, KindTypeMismatch, "while condition must be bool, found %s", ct)
			}
		}
		if body, ok := ws.Body(); ok {
			loopScope := a.symbols.PushScope(sc, true)
			for _, st := range body.Stmts() {
				a.analyzeStmt(mod, st, loopScope, retType)
			}
		}

	case SyntaxKind_BreakStmt:
		if !sc.InLoop() {
			a.errAt(mod, s, KindBreakOutsideLoop, "break used outside of a loop")
		}

	case SyntaxKind_ContinueStmt:
		if !sc.InLoop() {
			a.errAt(mod, s, KindContinueOutsideLoop, "continue used outside of a loop")
		}

	case SyntaxKind_ReturnStmt:
		rs := ReturnStmtView{s}
		val, hasVal := rs.Value()
		if !hasVal {
			if !retType.IsVoid() {
				a.errAt(mod, s, KindTypeMismatch, "missing return value, function returns %s", retType)
			}
			return
		}
		vt := a.analyzeExpr(mod, val, sc)
		if !assignable(vt, retType) {
			a.errAt(mod, val.AstView, KindTypeMismatch, "cannot return %s from a function returning %s", vt, retType)
		}

	case SyntaxKind_AssignStmt:
		as := AssignStmtView{s}
		target, okT := as.Target()
		value, okV := as.Value()
		if !okT || !okV {
			return
		}
		tt := a.analyzeExpr(mod, target, sc)
		vt := a.analyzeExpr(mod, value, sc)
		if !a.isLValue(mod, target, sc) {
			a.errAt(mod, target.AstView, KindNotALValue, "assignment target is not an lvalue")
			return
		}
		if a.isConstTarget(mod, target, sc) {
			a.errAt(mod, target.AstView, KindAssignToConst, "cannot assign to a const-qualified location")
			return
		}
		if !assignable(vt, tt) {
			a.errAt(mod, value.AstView, KindTypeMismatch, "cannot assign %s to a location of type %s", vt, tt)
		}

	case SyntaxKind_ExprStmt:
		es := ExprStmtView{s}
		if e, ok := es.Expr(); ok {
			a.analyzeExpr(mod, e, sc)
		}

	case SyntaxKind_Block:
		a.analyzeBlock(mod, BlockView{s}, sc, retType)
	}
}

func (a *Analyzer) analyzeLetStmt(mod *Module, ls LetStmtView, sc *scope) {
	v := ls.VarDef()
	name, ok := v.Name()
	if !ok {
		return
	}
	typeRef, ok := v.TypeRef()
	declared := TypeVoid
	if ok {
		declared = a.resolveTypeRef(mod, typeRef)
	}
	if declared.IsVoid() {
		a.errAt(mod, v.AstView, KindInvalidVoidUsage, "variable %q cannot have type void", name.Text)
	}

	if init, ok := v.Init(); ok {
		it := a.analyzeExpr(mod, init, sc)
		if !assignable(it, declared) {
			a.errAt(mod, init.AstView, KindTypeMismatch, "cannot initialize %q of type %s with a value of type %s", name.Text, declared, it)
		}
	} else if list, ok := v.InitList(); ok {
		a.analyzeInitList(mod, list.AstView, declared, sc)
	}

	isConst := typeRef.IsConst()
	sym, ok := a.symbols.Declare(sc, SymbolVar, name.Text, declared, isConst, mod.ID, v.Node)
	if !ok {
		a.errAt(mod, v.AstView, KindDuplicateDefinition, "%q is already defined in this scope", name.Text)
		return
	}
	a.side.SetSymbol(v.Node, sym.ID)
	a.side.SetType(v.Node, declared)
}

// analyzeInitList walks a brace initializer against its expected
// array or struct type, checking each element/field in turn.
func (a *Analyzer) analyzeInitList(mod *Module, list AstView, declared *Type, sc *scope) {
	items := InitValListView{list}.Items()
	switch {
	case declared.IsArray():
		for _, item := range items {
			a.analyzeInitItem(mod, item, declared.Elem, sc)
		}
	case declared.IsStruct():
		def, ok := a.structs[structKey{declared.StructModule, declared.StructName}]
		if !ok {
			return
		}
		for i, item := range items {
			if i >= len(def.Fields) {
				a.errAt(mod, item, KindArityMismatch, "too many initializers for struct %s", declared.StructName)
				break
			}
			a.analyzeInitItem(mod, item, def.Fields[i].Type, sc)
		}
	default:
		a.errAt(mod, list, KindTypeMismatch, "brace initializer used for non-aggregate type %s", declared)
	}
}

func (a *Analyzer) analyzeInitItem(mod *Module, item AstView, expected *Type, sc *scope) {
	if item.Kind() == SyntaxKind_InitValList {
		a.analyzeInitList(mod, item, expected, sc)
		return
	}
	et := a.analyzeExpr(mod, ExprView{item}, sc)
	if !assignable(et, expected) {
		a.errAt(mod, item, KindTypeMismatch, "cannot use a value of type %s where %s is expected", et, expected)
	}
}

// assignable reports whether a value of type from may be stored into
// a location of type to, combining implicit widening (§4.4) and
// pointer-to-void assignability.
func assignable(from, to *Type) bool {
	if StructurallyEqual(from, to) {
		return true
	}
	if from.IsPointer() && to.IsPointer() {
		return PointerAssignable(from, to)
	}
	return CanWidenTo(from, to)
}

// analyzeExpr type-checks e bottom-up, recording the resolved type
// (and, opportunistically, a folded constant) into the side table
// keyed by e's node identity (§9 "every syntax node has exactly one
// resolved-type entry").
func (a *Analyzer) analyzeExpr(mod *Module, e ExprView, sc *scope) *Type {
	if ty, ok := a.side.Type(e.Node); ok {
		return ty
	}
	ty := a.analyzeExprUncached(mod, e, sc)
	a.side.SetType(e.Node, ty)
	return ty
}

func (a *Analyzer) analyzeExprUncached(mod *Module, e ExprView, sc *scope) *Type {
	if cv, ok := a.foldConstant(e, sc); ok {
		return cv.Type
	}

	switch e.Kind() {
	case SyntaxKind_StringLiteralExpr:
		return NewPointerType(TypeU8, QualConst, QualConst)

	case SyntaxKind_IdentExpr:
		tok, ok := e.Ident()
		if !ok {
			return TypeVoid
		}
		sym, ok := a.symbols.Lookup(sc, tok.Text)
		if !ok {
			a.errAt(mod, e.AstView, KindUnresolvedName, "unresolved name %q", tok.Text)
			return TypeVoid
		}
		a.side.SetSymbol(e.Node, sym.ID)
		return sym.Type

	case SyntaxKind_ParenExpr:
		inner, ok := e.AsParen()
		if !ok {
			return TypeVoid
		}
		return a.analyzeExpr(mod, inner, sc)

	case SyntaxKind_UnaryExpr:
		u, _ := e.AsUnary()
		return a.analyzeUnary(mod, u, sc)

	case SyntaxKind_BinaryExpr:
		b, _ := e.AsBinary()
		return a.analyzeBinary(mod, b, sc)

	case SyntaxKind_CallExpr:
		c, _ := e.AsCall()
		return a.analyzeCall(mod, c, sc)

	case SyntaxKind_IndexExpr:
		ix, _ := e.AsIndex()
		return a.analyzeIndex(mod, ix, sc)

	case SyntaxKind_FieldExpr:
		f, _ := e.AsField()
		return a.analyzeField(mod, f, sc, false)

	case SyntaxKind_ArrowExpr:
		arw, _ := e.AsArrow()
		return a.analyzeArrow(mod, arw, sc)

	default:
		return TypeVoid
	}
}

func (a *Analyzer) analyzeUnary(mod *Module, u UnaryExprView, sc *scope) *Type {
	switch u.Op() {
	case SyntaxKind_Amp:
		operand := u.Operand()
		ot := a.analyzeExpr(mod, operand, sc)
		if !a.isLValue(mod, operand, sc) {
			a.errAt(mod, operand.AstView, KindNotALValue, "cannot take the address of a non-lvalue")
			return NewPointerType(ot, QualMut, QualMut)
		}
		pq := QualMut
		if a.isConstTarget(mod, operand, sc) {
			pq = QualConst
		}
		return NewPointerType(ot, QualMut, pq)

	case SyntaxKind_Star:
		operand := u.Operand()
		ot := a.analyzeExpr(mod, operand, sc)
		if !ot.IsPointer() {
			a.errAt(mod, operand.AstView, KindTypeMismatch, "cannot dereference non-pointer type %s", ot)
			return TypeVoid
		}
		if ot.IsVoidPointer() {
			a.errAt(mod, operand.AstView, KindVoidPointerDeref, "cannot dereference a pointer to void")
			return TypeVoid
		}
		return ot.Elem

	case SyntaxKind_Minus, SyntaxKind_Plus:
		operand := u.Operand()
		ot := a.analyzeExpr(mod, operand, sc)
		if !ot.IsInteger() {
			a.errAt(mod, operand.AstView, KindTypeMismatch, "unary %s requires an integer operand, found %s", u.Op(), ot)
		}
		return ot

	case SyntaxKind_Bang:
		operand := u.Operand()
		ot := a.analyzeExpr(mod, operand, sc)
		if !ot.IsBool() {
			a.errAt(mod, operand.AstView, KindTypeMismatch, "! requires a bool operand, found %s", ot)
		}
		return TypeBool

	default:
		return TypeVoid
	}
}

func (a *Analyzer) analyzeBinary(mod *Module, b BinaryExprView, sc *scope) *Type {
	lt := a.analyzeExpr(mod, b.Left(), sc)
	rt := a.analyzeExpr(mod, b.Right(), sc)

	switch b.Op() {
	case SyntaxKind_AndAnd, SyntaxKind_OrOr:
		if !lt.IsBool() || !rt.IsBool() {
			a.errAt(mod, b.AstView, KindTypeMismatch, "%s requires bool operands, found %s and %s", b.Op(), lt, rt)
		}
		return TypeBool

	case SyntaxKind_EqEq, SyntaxKind_NotEq, SyntaxKind_Lt, SyntaxKind_Gt, SyntaxKind_Le, SyntaxKind_Ge:
		if !compatibleOperands(lt, rt) {
			a.errAt(mod, b.AstView, KindTypeMismatch, "cannot compare %s and %s", lt, rt)
		}
		return TypeBool

	case SyntaxKind_Plus, SyntaxKind_Minus, SyntaxKind_Star, SyntaxKind_Slash, SyntaxKind_Percent:
		if lt.IsPointer() || rt.IsPointer() {
			return a.analyzePointerArith(mod, b, lt, rt)
		}
		if !lt.IsInteger() || !rt.IsInteger() {
			a.errAt(mod, b.AstView, KindTypeMismatch, "arithmetic requires integer operands, found %s and %s", lt, rt)
			return TypeI32
		}
		if lt.IsSigned() != rt.IsSigned() {
			a.errAt(mod, b.AstView, KindTypeMismatch, "cannot mix signed and unsigned operands (%s and %s)", lt, rt)
		}
		if rt.widenRank() > lt.widenRank() {
			return rt
		}
		return lt

	default:
		return TypeVoid
	}
}

// analyzePointerArith handles the two pointer-arithmetic shapes of
// §4.4: `p + n` / `n + p` (pointer±integer, result is the pointer
// type) and `p1 - p2` between same-pointee pointers (result is `i64`,
// "the offset scales by the pointee's size in bytes").
func (a *Analyzer) analyzePointerArith(mod *Module, b BinaryExprView, lt, rt *Type) *Type {
	switch b.Op() {
	case SyntaxKind_Plus:
		switch {
		case lt.IsPointer() && rt.IsInteger():
			return lt
		case lt.IsInteger() && rt.IsPointer():
			return rt
		default:
			a.errAt(mod, b.AstView, KindTypeMismatch, "+ requires a pointer and an integer operand, found %s and %s", lt, rt)
			return TypeI32
		}

	case SyntaxKind_Minus:
		switch {
		case lt.IsPointer() && rt.IsInteger():
			return lt
		case lt.IsPointer() && rt.IsPointer():
			if lt.IsVoidPointer() || rt.IsVoidPointer() || !StructurallyEqual(lt.Elem, rt.Elem) {
				a.errAt(mod, b.AstView, KindTypeMismatch, "pointer difference requires matching non-void pointee types, found %s and %s", lt, rt)
			}
			return TypeI64
		default:
			a.errAt(mod, b.AstView, KindTypeMismatch, "- requires a pointer and an integer, or two pointers, found %s and %s", lt, rt)
			return TypeI32
		}

	default:
		a.errAt(mod, b.AstView, KindTypeMismatch, "%s does not apply to pointer operands, found %s and %s", b.Op(), lt, rt)
		return TypeI32
	}
}

func compatibleOperands(a, b *Type) bool {
	if a.IsInteger() && b.IsInteger() {
		return true
	}
	if a.IsPointer() && b.IsPointer() {
		return true
	}
	return StructurallyEqual(a, b)
}

func (a *Analyzer) analyzeCall(mod *Module, c CallExprView, sc *scope) *Type {
	callee := c.Callee()
	args := c.Args()
	argTypes := make([]*Type, len(args))
	for i, arg := range args {
		argTypes[i] = a.analyzeExpr(mod, arg, sc)
	}

	name, ok := callee.Ident()
	if !ok {
		a.errAt(mod, callee.AstView, KindNotALValue, "call target must be a function name")
		return TypeVoid
	}

	fn, ok := a.lookupFunc(mod, name.Text)
	if !ok {
		a.errAt(mod, callee.AstView, KindUnresolvedName, "unresolved function %q", name.Text)
		return TypeVoid
	}

	if fn.Variadic {
		if len(args) < len(fn.Params) {
			a.errAt(mod, c.AstView, KindArityMismatch, "%q expects at least %d arguments, found %d", name.Text, len(fn.Params), len(args))
		}
	} else if len(args) != len(fn.Params) {
		a.errAt(mod, c.AstView, KindArityMismatch, "%q expects %d arguments, found %d", name.Text, len(fn.Params), len(args))
	}

	for i := 0; i < len(fn.Params) && i < len(argTypes); i++ {
		if !assignable(argTypes[i], fn.Params[i]) {
			a.errAt(mod, args[i].AstView, KindTypeMismatch, "argument %d of %q expects %s, found %s", i+1, name.Text, fn.Params[i], argTypes[i])
		}
	}

	return fn.Return
}

// lookupFunc resolves name against mod's own functions first, then
// against whatever it imported (bare imports expose every public
// top-level symbol; selective imports expose only the chosen name,
// §4.3).
func (a *Analyzer) lookupFunc(mod *Module, name string) (*FuncSymbol, bool) {
	if fn, ok := mod.Funcs[name]; ok {
		return fn, true
	}
	for _, imp := range mod.Imports {
		if imp.TargetID == unknownModuleID {
			continue
		}
		if imp.Selected != "" && imp.Selected != name {
			continue
		}
		target := a.modules.Module(imp.TargetID)
		if fn, ok := target.Funcs[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// lookupStruct mirrors lookupFunc for struct definitions.
func (a *Analyzer) lookupStruct(mod *Module, name string) (*StructDef, bool) {
	if def, ok := mod.Structs[name]; ok {
		return def, true
	}
	for _, imp := range mod.Imports {
		if imp.TargetID == unknownModuleID {
			continue
		}
		if imp.Selected != "" && imp.Selected != name {
			continue
		}
		target := a.modules.Module(imp.TargetID)
		if def, ok := target.Structs[name]; ok {
			return def, true
		}
	}
	return nil, false
}

func (a *Analyzer) analyzeIndex(mod *Module, ix IndexExprView, sc *scope) *Type {
	base := ix.Base()
	bt := a.analyzeExpr(mod, base, sc)
	idx := ix.Index()
	it := a.analyzeExpr(mod, idx, sc)
	if !it.IsInteger() {
		a.errAt(mod, idx.AstView, KindTypeMismatch, "array index must be an integer, found %s", it)
	}
	switch {
	case bt.IsArray():
		return bt.Elem
	case bt.IsPointer():
		if bt.IsVoidPointer() {
			a.errAt(mod, base.AstView, KindVoidPointerDeref, "cannot index a pointer to void")
			return TypeVoid
		}
		return bt.Elem
	default:
		a.errAt(mod, base.AstView, KindTypeMismatch, "cannot index non-array, non-pointer type %s", bt)
		return TypeVoid
	}
}

func (a *Analyzer) analyzeField(mod *Module, f FieldExprView, sc *scope, viaArrow bool) *Type {
	base := f.Base()
	bt := a.analyzeExpr(mod, base, sc)
	name, ok := f.FieldName()
	if !ok {
		return TypeVoid
	}
	if !bt.IsStruct() {
		a.errAt(mod, base.AstView, KindTypeMismatch, "field access requires a struct value, found %s", bt)
		return TypeVoid
	}
	def, ok := a.structs[structKey{bt.StructModule, bt.StructName}]
	if !ok {
		return TypeVoid
	}
	for _, field := range def.Fields {
		if field.Name == name.Text {
			return field.Type
		}
	}
	a.errAt(mod, f.AstView, KindUnresolvedName, "struct %s has no field %q", bt.StructName, name.Text)
	return TypeVoid
}

func (a *Analyzer) analyzeArrow(mod *Module, arw ArrowExprView, sc *scope) *Type {
	base := arw.Base()
	bt := a.analyzeExpr(mod, base, sc)
	name, ok := arw.FieldName()
	if !ok {
		return TypeVoid
	}
	if !bt.IsPointer() {
		a.errAt(mod, base.AstView, KindTypeMismatch, "-> requires a pointer operand, found %s", bt)
		return TypeVoid
	}
	if bt.IsVoidPointer() {
		a.errAt(mod, base.AstView, KindVoidPointerDeref, "cannot dereference a pointer to void")
		return TypeVoid
	}
	pointee := bt.Elem
	if !pointee.IsStruct() {
		a.errAt(mod, base.AstView, KindTypeMismatch, "-> requires a pointer to struct, found %s", bt)
		return TypeVoid
	}
	def, ok := a.structs[structKey{pointee.StructModule, pointee.StructName}]
	if !ok {
		return TypeVoid
	}
	for _, field := range def.Fields {
		if field.Name == name.Text {
			return field.Type
		}
	}
	a.errAt(mod, arw.AstView, KindUnresolvedName, "struct %s has no field %q", pointee.StructName, name.Text)
	return TypeVoid
}

// isLValue classifies e per §4.4 "l-value classification": an
// identifier naming a variable or parameter, a dereference, an index
// and an arrow access are l-values, a field access is one when its
// base is, and a parenthesized expression when its inner one is;
// everything else (literals, calls, arithmetic results) is not.
func (a *Analyzer) isLValue(mod *Module, e ExprView, sc *scope) bool {
	switch e.Kind() {
	case SyntaxKind_IdentExpr:
		tok, ok := e.Ident()
		if !ok {
			return false
		}
		_, ok = a.symbols.Lookup(sc, tok.Text)
		return ok
	case SyntaxKind_UnaryExpr:
		u, _ := e.AsUnary()
		return u.Op() == SyntaxKind_Star
	case SyntaxKind_IndexExpr:
		return true
	case SyntaxKind_FieldExpr:
		f, _ := e.AsField()
		return a.isLValue(mod, f.Base(), sc)
	case SyntaxKind_ArrowExpr:
		return true
	case SyntaxKind_ParenExpr:
		inner, ok := e.AsParen()
		return ok && a.isLValue(mod, inner, sc)
	default:
		return false
	}
}

// isConstTarget reports whether assigning through e would violate a
// const qualifier — either e itself names a const variable, or e
// dereferences a const-qualified pointer (§4.4 "Constness").
func (a *Analyzer) isConstTarget(mod *Module, e ExprView, sc *scope) bool {
	switch e.Kind() {
	case SyntaxKind_IdentExpr:
		tok, ok := e.Ident()
		if !ok {
			return false
		}
		sym, ok := a.symbols.Lookup(sc, tok.Text)
		return ok && sym.Const
	case SyntaxKind_UnaryExpr:
		u, _ := e.AsUnary()
		if u.Op() != SyntaxKind_Star {
			return false
		}
		pt := a.analyzeExpr(mod, u.Operand(), sc)
		return pt.IsPointer() && pt.PointeeQual == QualConst
	case SyntaxKind_ArrowExpr:
		arw, _ := e.AsArrow()
		pt := a.analyzeExpr(mod, arw.Base(), sc)
		return pt.IsPointer() && pt.PointeeQual == QualConst
	case SyntaxKind_FieldExpr:
		f, _ := e.AsField()
		return a.isConstTarget(mod, f.Base(), sc)
	case SyntaxKind_IndexExpr:
		ix, _ := e.AsIndex()
		bt := a.analyzeExpr(mod, ix.Base(), sc)
		return bt.IsPointer() && bt.PointeeQual == QualConst
	case SyntaxKind_ParenExpr:
		inner, ok := e.AsParen()
		return ok && a.isConstTarget(mod, inner, sc)
	default:
		return false
	}
}
