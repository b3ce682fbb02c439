package airyc

import "strconv"

// foldConstant evaluates e as a compile-time constant, memoizing the
// result into the side table. It is self-contained (it does not
// depend on a prior type-checking pass) because array bounds are
// resolved while struct/function signatures are still being
// registered, before general expression analysis runs (§4.4 "Constant
// expression evaluation": "required in: array bounds, global and
// const-variable initializers").
func (a *Analyzer) foldConstant(e ExprView, sc *scope) (ConstValue, bool) {
	if v, ok := a.side.Const(e.Node); ok {
		return v, true
	}
	v, ok := a.foldConstantUncached(e, sc)
	if ok {
		a.side.SetConst(e.Node, v)
		a.side.SetType(e.Node, v.Type)
	}
	return v, ok
}

func (a *Analyzer) foldConstantUncached(e ExprView, sc *scope) (ConstValue, bool) {
	switch e.Kind() {
	case SyntaxKind_IntLiteralExpr:
		tok, ok := e.IntLiteral()
		if !ok {
			return ConstValue{}, false
		}
		return parseIntLiteral(tok.Text)

	case SyntaxKind_CharLiteralExpr:
		tok, ok := e.CharLiteral()
		if !ok {
			return ConstValue{}, false
		}
		raw, err := UnescapeString(tok.Text)
		if err != nil || len(raw) == 0 {
			return ConstValue{}, false
		}
		return NewConstInt(TypeU8, int64(raw[0])), true

	case SyntaxKind_BoolLiteralExpr:
		b, ok := e.BoolLiteral()
		if !ok {
			return ConstValue{}, false
		}
		if b {
			return ConstValue{Type: TypeBool, Bits: 1}, true
		}
		return ConstValue{Type: TypeBool, Bits: 0}, true

	case SyntaxKind_NullLiteralExpr:
		return ConstValue{Type: NewPointerType(TypeVoid, QualMut, QualMut), Bits: 0}, true

	case SyntaxKind_ParenExpr:
		inner, ok := e.AsParen()
		if !ok {
			return ConstValue{}, false
		}
		return a.foldConstant(inner, sc)

	case SyntaxKind_IdentExpr:
		tok, ok := e.Ident()
		if !ok {
			return ConstValue{}, false
		}
		sym, ok := a.symbols.Lookup(sc, tok.Text)
		if !ok || !sym.Const {
			return ConstValue{}, false
		}
		if v, ok := a.side.Const(sym.Node); ok {
			return v, true
		}
		return ConstValue{}, false

	case SyntaxKind_UnaryExpr:
		u, _ := e.AsUnary()
		operand, ok := a.foldConstant(u.Operand(), sc)
		if !ok {
			return ConstValue{}, false
		}
		switch u.Op() {
		case SyntaxKind_Plus:
			return operand, true
		case SyntaxKind_Minus:
			if !operand.Type.IsInteger() {
				return ConstValue{}, false
			}
			return NewConstInt(operand.Type, -operand.Int64()), true
		case SyntaxKind_Bang:
			if !operand.Type.IsBool() {
				return ConstValue{}, false
			}
			return ConstValue{Type: TypeBool, Bits: maskTo(8, boolBit(!operand.Bool()))}, true
		default:
			// & and * (address-of, dereference) are never constant.
			return ConstValue{}, false
		}

	case SyntaxKind_BinaryExpr:
		b, _ := e.AsBinary()
		left, ok := a.foldConstant(b.Left(), sc)
		if !ok {
			return ConstValue{}, false
		}
		right, ok := a.foldConstant(b.Right(), sc)
		if !ok {
			return ConstValue{}, false
		}
		return foldBinary(b.Op(), left, right)

	default:
		// Calls, indexing, field/arrow access, and string literals are
		// never constant expressions.
		return ConstValue{}, false
	}
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func foldBinary(op SyntaxKind, left, right ConstValue) (ConstValue, bool) {
	switch op {
	case SyntaxKind_AndAnd, SyntaxKind_OrOr:
		if !left.Type.IsBool() || !right.Type.IsBool() {
			return ConstValue{}, false
		}
		var result bool
		if op == SyntaxKind_AndAnd {
			result = left.Bool() && right.Bool()
		} else {
			result = left.Bool() || right.Bool()
		}
		return ConstValue{Type: TypeBool, Bits: boolBit(result)}, true

	case SyntaxKind_EqEq, SyntaxKind_NotEq, SyntaxKind_Lt, SyntaxKind_Gt, SyntaxKind_Le, SyntaxKind_Ge:
		if !left.Type.IsInteger() || !right.Type.IsInteger() || left.Type.IsSigned() != right.Type.IsSigned() {
			return ConstValue{}, false
		}
		lv, rv := left.Int64(), right.Int64()
		var result bool
		switch op {
		case SyntaxKind_EqEq:
			result = lv == rv
		case SyntaxKind_NotEq:
			result = lv != rv
		case SyntaxKind_Lt:
			result = lv < rv
		case SyntaxKind_Gt:
			result = lv > rv
		case SyntaxKind_Le:
			result = lv <= rv
		case SyntaxKind_Ge:
			result = lv >= rv
		}
		return ConstValue{Type: TypeBool, Bits: boolBit(result)}, true

	case SyntaxKind_Plus, SyntaxKind_Minus, SyntaxKind_Star, SyntaxKind_Slash, SyntaxKind_Percent:
		if !left.Type.IsInteger() || !right.Type.IsInteger() || left.Type.IsSigned() != right.Type.IsSigned() {
			return ConstValue{}, false
		}
		ty := left.Type
		if right.Type.widenRank() > left.Type.widenRank() {
			ty = right.Type
		}
		lv, rv := left.Int64(), right.Int64()
		switch op {
		case SyntaxKind_Plus:
			return NewConstInt(ty, lv+rv), true
		case SyntaxKind_Minus:
			return NewConstInt(ty, lv-rv), true
		case SyntaxKind_Star:
			return NewConstInt(ty, lv*rv), true
		case SyntaxKind_Slash:
			if rv == 0 {
				return ConstValue{}, false
			}
			return NewConstInt(ty, lv/rv), true
		case SyntaxKind_Percent:
			if rv == 0 {
				return ConstValue{}, false
			}
			return NewConstInt(ty, lv%rv), true
		}
	}
	return ConstValue{}, false
}

// parseIntLiteral splits the lexer's IntLiteral text into its decimal
// digits and optional type suffix (token.go's intSuffixes), per §6
// "unsuffixed literals default to i32".
func parseIntLiteral(text string) (ConstValue, bool) {
	digits := text
	suffix := IntSuffixNone
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			if s, ok := intSuffixes[text[i:]]; ok {
				suffix = s
				digits = text[:i]
			}
			break
		}
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return ConstValue{}, false
	}
	return NewConstInt(suffix.Type(), int64(v)), true
}
