package ir

import "github.com/airyc-lang/airyc"

// loopCtx is the innermost enclosing while's header/exit blocks, used
// to lower break/continue (§4.5 "Control flow").
type loopCtx struct {
	header *Block
	exit   *Block
}

func (l *Lowerer) lowerBlockStmts(blk airyc.BlockView, loop *loopCtx) {
	for _, s := range blk.Stmts() {
		l.lowerStmt(s, loop)
		if l.b.Terminated() {
			return // unreachable code after a terminator is never lowered
		}
	}
}

func (l *Lowerer) lowerStmt(s airyc.AstView, loop *loopCtx) {
	switch s.Kind() {
	case airyc.SyntaxKind_LetStmt:
		l.lowerLetStmt(airyc.LetStmtView{AstView: s})
	case airyc.SyntaxKind_IfStmt:
		l.lowerIf(airyc.IfStmtView{AstView: s}, loop)
	case airyc.SyntaxKind_WhileStmt:
		l.lowerWhile(airyc.WhileStmtView{AstView: s})
	case airyc.SyntaxKind_BreakStmt:
		if loop != nil {
			l.b.Br(loop.exit)
		}
	case airyc.SyntaxKind_ContinueStmt:
		if loop != nil {
			l.b.Br(loop.header)
		}
	case airyc.SyntaxKind_ReturnStmt:
		l.lowerReturn(airyc.ReturnStmtView{AstView: s})
	case airyc.SyntaxKind_AssignStmt:
		l.lowerAssign(airyc.AssignStmtView{AstView: s})
	case airyc.SyntaxKind_ExprStmt:
		if e, ok := (airyc.ExprStmtView{AstView: s}).Expr(); ok {
			l.lowerRValue(e)
		}
	case airyc.SyntaxKind_Block:
		l.lowerBlockStmts(airyc.BlockView{AstView: s}, loop)
	}
}

func (l *Lowerer) lowerLetStmt(ls airyc.LetStmtView) {
	v := ls.VarDef()
	declared, ok := l.side.Type(v.Node)
	if !ok {
		return
	}
	irTy := l.translateType(declared)
	addr := l.b.Alloca(irTy)
	if symID, ok := l.side.Symbol(v.Node); ok {
		l.locals[symID] = addr
	}

	if init, ok := v.Init(); ok {
		val := l.lowerRValue(init)
		val = l.convertValue(val, init.Node, declared)
		l.b.Store(val, addr)
	} else if list, ok := v.InitList(); ok {
		l.lowerInitListInto(addr, list.AstView, declared)
	}
}

// lowerInitListInto stores each element of a brace initializer
// through a GEP off addr — the general, always-correct fallback
// lowering path for aggregate initializers (§4.5 "otherwise as a
// sequence of element stores").
func (l *Lowerer) lowerInitListInto(addr Value, list airyc.AstView, ty *airyc.Type) {
	items := (airyc.InitValListView{AstView: list}).Items()
	irTy := l.translateType(ty)
	switch {
	case ty.IsArray():
		for i, item := range items {
			elemAddr := l.b.GEP(irTy, addr, ConstInt(I64, 0), ConstInt(I64, int64(i)))
			l.lowerInitItemInto(elemAddr, item, ty.Elem)
		}
	case ty.IsStruct():
		def, ok := l.an.StructDef(ty.StructModule, ty.StructName)
		if !ok {
			return
		}
		for i, item := range items {
			if i >= len(def.Fields) {
				break
			}
			fieldAddr := l.b.GEP(irTy, addr, ConstInt(I64, 0), ConstInt(I32, int64(i)))
			l.lowerInitItemInto(fieldAddr, item, def.Fields[i].Type)
		}
	}
}

func (l *Lowerer) lowerInitItemInto(addr Value, item airyc.AstView, expected *airyc.Type) {
	if item.Kind() == airyc.SyntaxKind_InitValList {
		l.lowerInitListInto(addr, item, expected)
		return
	}
	e := airyc.ExprView{AstView: item}
	val := l.lowerRValue(e)
	val = l.convertValue(val, item.Node, expected)
	l.b.Store(val, addr)
}

func (l *Lowerer) lowerIf(s airyc.IfStmtView, loop *loopCtx) {
	cond, ok := s.Cond()
	if !ok {
		return
	}
	condVal := l.lowerRValue(cond)

	thenBlk := l.b.NewBlock("if.then")
	mergeBlk := l.b.NewBlock("if.end")
	elseView, hasElse := s.Else()
	var elseBlk *Block
	if hasElse {
		elseBlk = l.b.NewBlock("if.else")
		l.b.CondBr(condVal, thenBlk, elseBlk)
	} else {
		l.b.CondBr(condVal, thenBlk, mergeBlk)
	}

	l.b.SetBlock(thenBlk)
	if thenView, ok := s.Then(); ok {
		l.lowerBlockStmts(thenView, loop)
	}
	l.b.Br(mergeBlk)

	if hasElse {
		l.b.SetBlock(elseBlk)
		l.lowerBlockStmts(elseView, loop)
		l.b.Br(mergeBlk)
	}

	l.b.SetBlock(mergeBlk)
}

func (l *Lowerer) lowerWhile(s airyc.WhileStmtView) {
	header := l.b.NewBlock("while.cond")
	body := l.b.NewBlock("while.body")
	exit := l.b.NewBlock("while.end")

	l.b.Br(header)
	l.b.SetBlock(header)
	if cond, ok := s.Cond(); ok {
		condVal := l.lowerRValue(cond)
		l.b.CondBr(condVal, body, exit)
	} else {
		l.b.Br(exit)
	}

	l.b.SetBlock(body)
	loop := &loopCtx{header: header, exit: exit}
	if bodyView, ok := s.Body(); ok {
		l.lowerBlockStmts(bodyView, loop)
	}
	l.b.Br(header)

	l.b.SetBlock(exit)
}

func (l *Lowerer) lowerReturn(rs airyc.ReturnStmtView) {
	val, ok := rs.Value()
	if !ok {
		l.b.Ret(nil)
		return
	}
	v := l.lowerRValue(val)
	v = l.convertValue(v, val.Node, l.curRet)
	v.Type = l.translateType(l.curRet)
	l.b.Ret(&v)
}

func (l *Lowerer) lowerAssign(as airyc.AssignStmtView) {
	target, okT := as.Target()
	value, okV := as.Value()
	if !okT || !okV {
		return
	}
	tt, ok := l.side.Type(target.Node)
	if !ok {
		return
	}
	addr := l.lowerAddress(target)
	v := l.lowerRValue(value)
	v = l.convertValue(v, value.Node, tt)
	l.b.Store(v, addr)
}
