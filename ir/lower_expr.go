package ir

import "github.com/airyc-lang/airyc"

// lowerRValue lowers e to the value it denotes, loading through its
// address for every l-value expression kind (§4.5 "R-value lowering").
func (l *Lowerer) lowerRValue(e airyc.ExprView) Value {
	if cv, ok := l.side.Const(e.Node); ok {
		return ConstInt(l.translateType(cv.Type), cv.Int64())
	}

	switch e.Kind() {
	case airyc.SyntaxKind_StringLiteralExpr:
		tok, ok := e.StringLiteral()
		if !ok {
			return Value{}
		}
		raw, err := airyc.UnescapeString(tok.Text)
		if err != nil {
			return Value{}
		}
		return Value{Name: l.out.Intern(string(raw)), Type: Ptr}

	case airyc.SyntaxKind_ParenExpr:
		inner, ok := e.AsParen()
		if !ok {
			return Value{}
		}
		return l.lowerRValue(inner)

	case airyc.SyntaxKind_UnaryExpr:
		u, _ := e.AsUnary()
		return l.lowerUnary(u)

	case airyc.SyntaxKind_BinaryExpr:
		b, _ := e.AsBinary()
		return l.lowerBinary(b)

	case airyc.SyntaxKind_CallExpr:
		c, _ := e.AsCall()
		return l.lowerCall(c)

	case airyc.SyntaxKind_IdentExpr, airyc.SyntaxKind_IndexExpr, airyc.SyntaxKind_FieldExpr, airyc.SyntaxKind_ArrowExpr:
		addr := l.lowerAddress(e)
		ty, ok := l.side.Type(e.Node)
		if !ok {
			return Value{}
		}
		// An array-typed l-value decays to the address of its first
		// element rather than loading the whole aggregate into a
		// register (no LLVM instruction loads an array by value here).
		if ty.IsArray() {
			return l.decayArray(addr, ty)
		}
		return l.b.Load(l.translateType(ty), addr)

	default:
		return Value{}
	}
}

func (l *Lowerer) decayArray(addr Value, arrTy *airyc.Type) Value {
	return l.b.GEP(l.translateType(arrTy), addr, ConstInt(I64, 0), ConstInt(I64, 0))
}

func (l *Lowerer) lowerUnary(u airyc.UnaryExprView) Value {
	switch u.Op() {
	case airyc.SyntaxKind_Amp:
		return l.lowerAddress(u.Operand())

	case airyc.SyntaxKind_Star:
		addr := l.lowerRValue(u.Operand())
		ty, ok := l.side.Type(u.Node)
		if !ok {
			return Value{}
		}
		return l.b.Load(l.translateType(ty), addr)

	case airyc.SyntaxKind_Minus:
		operand := u.Operand()
		v := l.lowerRValue(operand)
		ty, _ := l.side.Type(u.Node)
		irTy := l.translateType(ty)
		return l.b.BinOp("sub", irTy, ConstInt(irTy, 0), v)

	case airyc.SyntaxKind_Plus:
		return l.lowerRValue(u.Operand())

	case airyc.SyntaxKind_Bang:
		v := l.lowerRValue(u.Operand())
		return l.b.BinOp("xor", I1, v, ConstInt(I1, 1))

	default:
		return Value{}
	}
}

// lowerBinary lowers the non-constant-foldable arithmetic/comparison/
// short-circuit binary operators (constant subtrees are already
// intercepted in lowerRValue via the side table's memoized fold).
func (l *Lowerer) lowerBinary(b airyc.BinaryExprView) Value {
	if b.Op() == airyc.SyntaxKind_AndAnd || b.Op() == airyc.SyntaxKind_OrOr {
		return l.lowerShortCircuit(b)
	}

	leftE, rightE := b.Left(), b.Right()
	lt, _ := l.side.Type(leftE.Node)
	rt, _ := l.side.Type(rightE.Node)
	lv := l.lowerRValue(leftE)
	rv := l.lowerRValue(rightE)

	switch b.Op() {
	case airyc.SyntaxKind_EqEq, airyc.SyntaxKind_NotEq, airyc.SyntaxKind_Lt, airyc.SyntaxKind_Gt, airyc.SyntaxKind_Le, airyc.SyntaxKind_Ge:
		opTy := widerOperand(lt, rt)
		if opTy != nil && !opTy.IsPointer() {
			lv = l.widen(lv, lt, opTy)
			rv = l.widen(rv, rt, opTy)
		}
		return l.b.ICmp(icmpPredicate(b.Op(), opTy), operandIRType(opTy), lv, rv)

	case airyc.SyntaxKind_Plus, airyc.SyntaxKind_Minus:
		if (lt != nil && lt.IsPointer()) || (rt != nil && rt.IsPointer()) {
			return l.lowerPointerArith(b.Op(), lt, rt, lv, rv)
		}
		opTy := widerOperand(lt, rt)
		lv = l.widen(lv, lt, opTy)
		rv = l.widen(rv, rt, opTy)
		return l.b.BinOp(arithOpcode(b.Op(), opTy), operandIRType(opTy), lv, rv)

	default:
		opTy := widerOperand(lt, rt)
		lv = l.widen(lv, lt, opTy)
		rv = l.widen(rv, rt, opTy)
		return l.b.BinOp(arithOpcode(b.Op(), opTy), operandIRType(opTy), lv, rv)
	}
}

// lowerPointerArith lowers the pointer-arithmetic shapes of §4.4: `p +
// n` / `n + p` and `p - n` scale n by the pointee's size via a single
// GEP index (mirroring the pointer-base case in lowerAddress's
// IndexExpr), and `p1 - p2` converts both pointers to i64 and divides
// their byte difference by the pointee's size.
func (l *Lowerer) lowerPointerArith(op airyc.SyntaxKind, lt, rt *airyc.Type, lv, rv Value) Value {
	if lt != nil && lt.IsPointer() && rt != nil && rt.IsPointer() {
		lInt := l.b.PtrToInt(lv, I64)
		rInt := l.b.PtrToInt(rv, I64)
		diff := l.b.BinOp("sub", I64, lInt, rInt)
		size := l.an.SizeOf(lt.Elem)
		if size <= 1 {
			return diff
		}
		return l.b.BinOp("sdiv", I64, diff, ConstInt(I64, size))
	}

	if lt != nil && lt.IsPointer() {
		idx := rv
		if op == airyc.SyntaxKind_Minus {
			idx = l.b.BinOp("sub", idx.Type, ConstInt(idx.Type, 0), idx)
		}
		return l.b.GEP(l.translateType(lt.Elem), lv, idx)
	}

	// n + p: the integer operand is on the left, the pointer on the
	// right; subtraction with a pointer divisor never reaches here
	// since `n - p` is rejected by the analyzer.
	return l.b.GEP(l.translateType(rt.Elem), rv, lv)
}

// lowerShortCircuit lowers && / || to a diamond of blocks with a phi
// merging the short-circuited constant and the evaluated right side
// (§4.5 "Short-circuit && / || lower to a diamond ... with a phi").
func (l *Lowerer) lowerShortCircuit(b airyc.BinaryExprView) Value {
	isAnd := b.Op() == airyc.SyntaxKind_AndAnd
	lv := l.lowerRValue(b.Left())
	startBlock := l.b.Current()

	rhsBlock := l.b.NewBlock("sc.rhs")
	mergeBlock := l.b.NewBlock("sc.end")
	if isAnd {
		l.b.CondBr(lv, rhsBlock, mergeBlock)
	} else {
		l.b.CondBr(lv, mergeBlock, rhsBlock)
	}

	l.b.SetBlock(rhsBlock)
	rv := l.lowerRValue(b.Right())
	rhsEnd := l.b.Current()
	l.b.Br(mergeBlock)

	l.b.SetBlock(mergeBlock)
	shortCircuitValue := ConstInt(I1, 0)
	if !isAnd {
		shortCircuitValue = ConstInt(I1, 1)
	}
	return l.b.Phi(I1, []PhiEdge{
		{Value: shortCircuitValue, Block: startBlock},
		{Value: rv, Block: rhsEnd},
	})
}

func (l *Lowerer) lowerCall(c airyc.CallExprView) Value {
	name, ok := c.Callee().Ident()
	if !ok {
		return Value{}
	}
	fn := l.lookupFunc(name.Text)
	if fn == nil {
		return Value{}
	}

	var argVals []Value
	for _, argE := range c.Args() {
		at, ok := l.side.Type(argE.Node)
		if ok && at.IsArray() {
			// Array arguments implicitly convert to a pointer to their
			// element type (§4.5 "Calls").
			argVals = append(argVals, l.decayArray(l.lowerAddress(argE), at))
			continue
		}
		argVals = append(argVals, l.lowerRValue(argE))
	}

	return l.b.Call(l.translateType(fn.Return), name.Text, argVals)
}

// lowerAddress computes the storage address of an l-value expression
// (§4.5 "L-value lowering").
func (l *Lowerer) lowerAddress(e airyc.ExprView) Value {
	switch e.Kind() {
	case airyc.SyntaxKind_IdentExpr:
		symID, ok := l.side.Symbol(e.Node)
		if !ok {
			return Value{}
		}
		if addr, ok := l.locals[symID]; ok {
			return addr
		}
		return l.globals[symID]

	case airyc.SyntaxKind_ParenExpr:
		inner, ok := e.AsParen()
		if !ok {
			return Value{}
		}
		return l.lowerAddress(inner)

	case airyc.SyntaxKind_UnaryExpr:
		u, _ := e.AsUnary() // only Star reaches here; the analyzer rejects & and others as non-lvalues
		return l.lowerRValue(u.Operand())

	case airyc.SyntaxKind_IndexExpr:
		ix, _ := e.AsIndex()
		baseE := ix.Base()
		bt, ok := l.side.Type(baseE.Node)
		if !ok {
			return Value{}
		}
		idxV := l.lowerRValue(ix.Index())
		if bt.IsArray() {
			baseAddr := l.lowerAddress(baseE)
			return l.b.GEP(l.translateType(bt), baseAddr, ConstInt(I64, 0), idxV)
		}
		baseVal := l.lowerRValue(baseE)
		return l.b.GEP(l.translateType(bt.Elem), baseVal, idxV)

	case airyc.SyntaxKind_FieldExpr:
		f, _ := e.AsField()
		baseAddr := l.lowerAddress(f.Base())
		bt, ok := l.side.Type(f.Base().Node)
		if !ok {
			return Value{}
		}
		name, ok := f.FieldName()
		if !ok {
			return Value{}
		}
		idx := l.fieldIndex(bt, name.Text)
		return l.b.GEP(l.translateType(bt), baseAddr, ConstInt(I64, 0), ConstInt(I32, idx))

	case airyc.SyntaxKind_ArrowExpr:
		arw, _ := e.AsArrow()
		baseVal := l.lowerRValue(arw.Base())
		bt, ok := l.side.Type(arw.Base().Node)
		if !ok {
			return Value{}
		}
		name, ok := arw.FieldName()
		if !ok {
			return Value{}
		}
		idx := l.fieldIndex(bt.Elem, name.Text)
		return l.b.GEP(l.translateType(bt.Elem), baseVal, ConstInt(I64, 0), ConstInt(I32, idx))

	default:
		return Value{}
	}
}

// convertValue widens v from the type recorded for fromNode to to,
// implementing the implicit-widening half of assignability (§4.4
// "Implicit conversions", applied during lowering rather than
// type-checking).
func (l *Lowerer) convertValue(v Value, fromNode airyc.NodeID, to *airyc.Type) Value {
	from, ok := l.side.Type(fromNode)
	if !ok {
		return v
	}
	return l.widen(v, from, to)
}

func (l *Lowerer) widen(v Value, from, to *airyc.Type) Value {
	if from == nil || to == nil || from.IsPointer() || to.IsPointer() {
		return v
	}
	toIR := l.translateType(to)
	if v.Type.Equal(toIR) {
		return v
	}
	if from.IsSigned() {
		return l.b.SExt(v, toIR)
	}
	return l.b.ZExt(v, toIR)
}

// widerOperand picks the operand type arithmetic/comparison should be
// performed at, mirroring analyzer_expr.go's analyzeBinary: the wider
// of the two ranks in the shared signed or unsigned ladder.
func widerOperand(lt, rt *airyc.Type) *airyc.Type {
	if lt == nil {
		return rt
	}
	if rt == nil {
		return lt
	}
	if rt.IsInteger() && lt.IsInteger() {
		if rankOf(rt) > rankOf(lt) {
			return rt
		}
	}
	return lt
}

// rankOf mirrors Type.widenRank, unexported in the airyc package;
// integer comparisons here only need relative ordering within one
// signedness ladder, which the kind alone determines.
func rankOf(t *airyc.Type) int {
	switch t.Kind {
	case airyc.TypeKind_Bool:
		return 0
	case airyc.TypeKind_I8, airyc.TypeKind_U8:
		return 1
	case airyc.TypeKind_I32, airyc.TypeKind_U32:
		return 2
	case airyc.TypeKind_I64, airyc.TypeKind_U64:
		return 3
	default:
		return -1
	}
}

func operandIRType(t *airyc.Type) *Type {
	if t == nil {
		return I32
	}
	switch {
	case t.IsPointer():
		return Ptr
	case t.IsBool():
		return I1
	case rankOf(t) == 1:
		return I8
	case rankOf(t) == 3:
		return I64
	default:
		return I32
	}
}

func icmpPredicate(op airyc.SyntaxKind, ty *airyc.Type) string {
	signed := ty != nil && ty.IsSigned()
	switch op {
	case airyc.SyntaxKind_EqEq:
		return "eq"
	case airyc.SyntaxKind_NotEq:
		return "ne"
	case airyc.SyntaxKind_Lt:
		if signed {
			return "slt"
		}
		return "ult"
	case airyc.SyntaxKind_Gt:
		if signed {
			return "sgt"
		}
		return "ugt"
	case airyc.SyntaxKind_Le:
		if signed {
			return "sle"
		}
		return "ule"
	case airyc.SyntaxKind_Ge:
		if signed {
			return "sge"
		}
		return "uge"
	default:
		return "eq"
	}
}

func arithOpcode(op airyc.SyntaxKind, ty *airyc.Type) string {
	signed := ty != nil && ty.IsSigned()
	switch op {
	case airyc.SyntaxKind_Plus:
		return "add"
	case airyc.SyntaxKind_Minus:
		return "sub"
	case airyc.SyntaxKind_Star:
		return "mul"
	case airyc.SyntaxKind_Slash:
		if signed {
			return "sdiv"
		}
		return "udiv"
	case airyc.SyntaxKind_Percent:
		if signed {
			return "srem"
		}
		return "urem"
	default:
		return "add"
	}
}
