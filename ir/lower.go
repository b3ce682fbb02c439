package ir

import (
	"strconv"

	"github.com/airyc-lang/airyc"
)

// Lowerer walks one analyzed airyc.Module and emits its ir.Module —
// the entry point into §4.5. It is re-created (via NewLowerer) once
// per module; the active Builder and the enclosing return type are
// set for each function, while the map of local variable addresses
// is reset once per module (in LowerModule).
type Lowerer struct {
	modules *airyc.ModuleSet
	an      *airyc.Analyzer
	side    *airyc.SideTable

	mod *airyc.Module
	out *Module

	b       *Builder
	locals  map[airyc.SymbolID]Value
	globals map[airyc.SymbolID]Value
	curRet  *airyc.Type
}

func NewLowerer(modules *airyc.ModuleSet, an *airyc.Analyzer, side *airyc.SideTable) *Lowerer {
	return &Lowerer{modules: modules, an: an, side: side, globals: map[airyc.SymbolID]Value{}}
}

// LowerModule translates mod into its own ir.Module, one per
// translation unit (§6 "one .ll per translation unit").
func (l *Lowerer) LowerModule(mod *airyc.Module) *Module {
	l.mod = mod
	l.out = NewModule(mod.Path)
	l.locals = map[airyc.SymbolID]Value{}

	for _, d := range mod.Unit.Decls() {
		switch d.Kind() {
		case airyc.SyntaxKind_VarDef:
			l.lowerGlobalVar(airyc.VarDefView{AstView: d})
		}
	}
	for _, d := range mod.Unit.Decls() {
		switch d.Kind() {
		case airyc.SyntaxKind_FuncDecl:
			l.lowerFuncDecl(airyc.FuncDeclView{AstView: d})
		case airyc.SyntaxKind_AttachDef:
			l.lowerAttachDef(airyc.AttachDefView{AstView: d})
		}
	}
	return l.out
}

func (l *Lowerer) lowerGlobalVar(v airyc.VarDefView) {
	name, ok := v.Name()
	if !ok {
		return
	}
	declared, ok := l.side.Type(v.Node)
	if !ok {
		return
	}
	isConst := false
	if tr, ok := v.TypeRef(); ok {
		isConst = tr.IsConst()
	}

	init := "zeroinitializer"
	if initE, ok := v.Init(); ok {
		if cv, ok := l.an.FoldConstant(l.mod, initE); ok {
			init = constText(cv)
		}
	}
	// The analyzer requires a scalar `= Expr` global initializer to
	// fold (analyzeGlobalVar), but only type-checks a brace initializer
	// and does not require its items to be constant. A brace-initialized
	// global is emitted as zeroinitializer here rather than as a
	// structural constant — see DESIGN.md.

	g := &Global{Name: "@" + name.Text, Type: l.translateType(declared), Const: isConst, Init: init}
	l.out.Globals = append(l.out.Globals, g)

	if symID, ok := l.side.Symbol(v.Node); ok {
		l.globals[symID] = Value{Name: g.Name, Type: Ptr}
	}
}

func (l *Lowerer) lowerFuncDecl(fd airyc.FuncDeclView) {
	sign, ok := fd.Sign()
	if !ok {
		return
	}
	name, ok := sign.Name()
	if !ok {
		return
	}
	fn, ok := l.mod.Funcs[name.Text]
	if !ok {
		return
	}
	body, hasBody := fd.Body()
	if !hasBody {
		if !fn.HasBody {
			l.declareExternFunc(fn, sign)
		}
		return
	}
	l.lowerFuncBody(fn, sign, body)
}

func (l *Lowerer) lowerAttachDef(ad airyc.AttachDefView) {
	name, ok := ad.Name()
	if !ok {
		return
	}
	fn, ok := l.mod.Funcs[name.Text]
	if !ok {
		return
	}
	body, ok := ad.Body()
	if !ok {
		return
	}
	sign := airyc.FuncSignView{AstView: airyc.AstView{Tree: l.mod.Tree, Node: fn.Node}}
	l.lowerFuncBody(fn, sign, body)
}

func (l *Lowerer) declareExternFunc(fn *airyc.FuncSymbol, sign airyc.FuncSignView) {
	name, ok := sign.Name()
	if !ok {
		return
	}
	f := &Function{Name: name.Text, Return: l.translateType(fn.Return), Variadic: fn.Variadic, Extern: true}
	for i, p := range sign.Params() {
		pname, ok := p.Name()
		if !ok || i >= len(fn.Params) {
			continue
		}
		f.Params = append(f.Params, Param{Name: pname.Text, Type: l.translateType(fn.Params[i])})
	}
	l.out.Funcs = append(l.out.Funcs, f)
}

func (l *Lowerer) lowerFuncBody(fn *airyc.FuncSymbol, sign airyc.FuncSignView, body airyc.BlockView) {
	name, ok := sign.Name()
	if !ok {
		return
	}
	f := &Function{Name: name.Text, Return: l.translateType(fn.Return), Variadic: fn.Variadic}
	l.out.Funcs = append(l.out.Funcs, f)

	b := NewBuilder(f)
	l.b = b
	l.curRet = fn.Return
	entry := b.NewBlock("entry")
	b.SetBlock(entry)

	for i, p := range sign.Params() {
		pname, ok := p.Name()
		if !ok || i >= len(fn.Params) {
			continue
		}
		pty := l.translateType(fn.Params[i])
		f.Params = append(f.Params, Param{Name: pname.Text, Type: pty})
		addr := b.Alloca(pty)
		b.Store(Value{Name: "%" + pname.Text, Type: pty}, addr)
		if symID, ok := l.side.Symbol(p.Node); ok {
			l.locals[symID] = addr
		}
	}

	l.lowerBlockStmts(body, nil)
	if !b.Terminated() {
		if fn.Return.IsVoid() {
			b.Ret(nil)
		} else {
			zero := ConstInt(l.translateType(fn.Return), 0)
			b.Ret(&zero)
		}
	}
}

// translateType maps an analyzed airyc.Type to its IR counterpart
// (§4.5 "Type translation"), registering any named struct type the
// first time it is referenced.
func (l *Lowerer) translateType(t *airyc.Type) *Type {
	switch t.Kind {
	case airyc.TypeKind_Void:
		return Void
	case airyc.TypeKind_Bool:
		return I1
	case airyc.TypeKind_I8, airyc.TypeKind_U8:
		return I8
	case airyc.TypeKind_I32, airyc.TypeKind_U32:
		return I32
	case airyc.TypeKind_I64, airyc.TypeKind_U64:
		return I64
	case airyc.TypeKind_Pointer:
		return Ptr
	case airyc.TypeKind_Array:
		return Array(l.translateType(t.Elem), t.Count)
	case airyc.TypeKind_Struct:
		l.ensureStructType(t.StructModule, t.StructName)
		return Named(t.StructName)
	default:
		return Void
	}
}

func (l *Lowerer) ensureStructType(mod airyc.ModuleID, name string) {
	if l.out.hasStruct(name) {
		return
	}
	def, ok := l.an.StructDef(mod, name)
	if !ok {
		return
	}
	// Reserve the name before recursing so a struct that (legally)
	// holds a pointer back to itself doesn't recurse forever.
	l.out.Structs = append(l.out.Structs, StructTypeDef{Name: name})
	fields := make([]*Type, len(def.Fields))
	for i, f := range def.Fields {
		fields[i] = l.translateType(f.Type)
	}
	for i := range l.out.Structs {
		if l.out.Structs[i].Name == name {
			l.out.Structs[i].Fields = fields
		}
	}
}

func (l *Lowerer) fieldIndex(structTy *airyc.Type, field string) int64 {
	def, ok := l.an.StructDef(structTy.StructModule, structTy.StructName)
	if !ok {
		return 0
	}
	for i, f := range def.Fields {
		if f.Name == field {
			return int64(i)
		}
	}
	return 0
}

// lookupFunc mirrors the analyzer's own cross-module resolution rule
// (lookupFunc in analyzer_expr.go): own declarations first, then
// resolved imports honoring selective-import filtering.
func (l *Lowerer) lookupFunc(name string) *airyc.FuncSymbol {
	if fn, ok := l.mod.Funcs[name]; ok {
		return fn
	}
	for _, imp := range l.mod.Imports {
		if imp.TargetID < 0 {
			continue
		}
		if imp.Selected != "" && imp.Selected != name {
			continue
		}
		if fn, ok := l.modules.Module(imp.TargetID).Funcs[name]; ok {
			return fn
		}
	}
	return nil
}

func constText(cv airyc.ConstValue) string {
	return strconv.FormatInt(cv.Int64(), 10)
}
