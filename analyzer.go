package airyc

import "fmt"

type funcKey struct {
	Module ModuleID
	Name   string
}

// Analyzer is the stateful tree walk described in §4.4: it runs once
// per compilation, visits every module in topological order, and
// writes every resolved fact into a SideTable keyed by syntax-node
// identity rather than mutating the immutable CST.
type Analyzer struct {
	modules *ModuleSet
	diags   *Bag
	side    *SideTable
	symbols *SymbolTable

	structs map[structKey]*StructDef
	layouts map[structKey]*StructLayout
	funcs   map[funcKey]*FuncSymbol

	moduleScopes map[ModuleID]*scope
}

func NewAnalyzer(modules *ModuleSet, diags *Bag) *Analyzer {
	return &Analyzer{
		modules:      modules,
		diags:        diags,
		side:         NewSideTable(),
		symbols:      NewSymbolTable(),
		structs:      make(map[structKey]*StructDef),
		layouts:      make(map[structKey]*StructLayout),
		funcs:        make(map[funcKey]*FuncSymbol),
		moduleScopes: make(map[ModuleID]*scope),
	}
}

// Run analyzes every module the ModuleSet loaded, in topological
// order, and returns the populated SideTable and SymbolTable. Lowering
// should only proceed if a.diags.HasErrors() is false afterward
// (§7 "Lowering runs only if analysis produced zero errors").
func (a *Analyzer) Run() (*SideTable, *SymbolTable) {
	order := a.modules.TopoOrder()

	for _, id := range order {
		a.registerStructs(a.modules.Module(id))
	}
	a.detectRecursiveTypes()
	for _, key := range structOrderFor(a.structs) {
		a.layouts[key] = ComputeStructLayout(a.structs[key], a.layouts)
	}

	for _, id := range order {
		a.registerFuncs(a.modules.Module(id))
	}

	for _, id := range order {
		a.analyzeModule(a.modules.Module(id))
	}

	return a.side, a.symbols
}

// structOrderFor returns struct keys ordered so that a struct always
// precedes any struct that contains it by value — the same dependency
// order recursive-type detection establishes, required before
// ComputeStructLayout can size a containing struct (layout.go).
func structOrderFor(structs map[structKey]*StructDef) []structKey {
	visited := make(map[structKey]bool)
	var order []structKey
	var visit func(structKey)
	visit = func(k structKey) {
		if visited[k] {
			return
		}
		visited[k] = true
		def, ok := structs[k]
		if !ok {
			return
		}
		for _, f := range def.Fields {
			if f.Type.IsStruct() {
				visit(structKey{f.Type.StructModule, f.Type.StructName})
			}
		}
		order = append(order, k)
	}
	for k := range structs {
		visit(k)
	}
	return order
}

// ---- declaration registration ----

func (a *Analyzer) registerStructs(mod *Module) {
	for _, d := range mod.Unit.Decls() {
		if d.Kind() != SyntaxKind_StructDef {
			continue
		}
		s := StructDefView{d}
		name, ok := s.Name()
		if !ok {
			continue
		}
		def := &StructDef{Module: mod.ID, Name: name.Text, Node: d.Node}
		for _, fv := range s.Fields() {
			fname, ok := fv.Name()
			if !ok {
				continue
			}
			ftRef, ok := fv.TypeRef()
			if !ok {
				continue
			}
			ft := a.resolveTypeRef(mod, ftRef)
			if ft.IsVoid() {
				a.errAt(mod, fv.AstView, KindInvalidVoidUsage, "struct field %q cannot have type void", fname.Text)
			}
			def.Fields = append(def.Fields, Field{Name: fname.Text, Type: ft, Node: fv.Node})
		}
		key := structKey{mod.ID, name.Text}
		if _, dup := a.structs[key]; dup {
			a.errAt(mod, d, KindDuplicateDefinition, "struct %q already defined in this module", name.Text)
			continue
		}
		a.structs[key] = def
		mod.Structs[name.Text] = def
	}
}

func (a *Analyzer) registerFuncs(mod *Module) {
	for _, d := range mod.Unit.Decls() {
		if d.Kind() != SyntaxKind_FuncDecl {
			continue
		}
		fd := FuncDeclView{d}
		sign, ok := fd.Sign()
		if !ok {
			continue
		}
		name, ok := sign.Name()
		if !ok {
			continue
		}
		_, hasBody := fd.Body()

		sym := &FuncSymbol{Module: mod.ID, Name: name.Text, Variadic: sign.Variadic(), HasBody: hasBody, Node: sign.Node}
		if ret, ok := sign.ReturnType(); ok {
			sym.Return = a.resolveTypeRef(mod, ret)
		} else {
			sym.Return = TypeVoid
		}
		for _, p := range sign.Params() {
			pt, ok := p.TypeRef()
			if !ok {
				continue
			}
			sym.Params = append(sym.Params, a.resolveTypeRef(mod, pt))
		}
		if sym.Variadic && hasBody {
			a.errAt(mod, d, KindArityMismatch, "variadic parameter lists are forbidden on functions with a body")
		}

		key := funcKey{mod.ID, name.Text}
		if existing, dup := a.funcs[key]; dup {
			if !signaturesCompatible(existing, sym) {
				a.errAt(mod, d, KindArityMismatch, "conflicting redeclaration of function %q", name.Text)
				continue
			}
			if hasBody {
				existing.HasBody = true
				existing.Node = sym.Node
			}
			continue
		}
		a.funcs[key] = sym
		mod.Funcs[name.Text] = sym
	}
}

func signaturesCompatible(a, b *FuncSymbol) bool {
	if a.Variadic != b.Variadic || len(a.Params) != len(b.Params) {
		return false
	}
	if !StructurallyEqual(a.Return, b.Return) {
		return false
	}
	for i := range a.Params {
		if !StructurallyEqual(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// ---- attach ----

func (a *Analyzer) applyAttaches(mod *Module) {
	for _, d := range mod.Unit.Decls() {
		if d.Kind() != SyntaxKind_AttachDef {
			continue
		}
		ad := AttachDefView{d}
		name, ok := ad.Name()
		if !ok {
			continue
		}
		key := funcKey{mod.ID, name.Text}
		fn, ok := a.funcs[key]
		if !ok || fn.Module != mod.ID {
			a.errAt(mod, d, KindUnresolvedName, "attach target %q is not declared in this module", name.Text)
			continue
		}
		if fn.HasBody {
			a.errAt(mod, d, KindDuplicateDefinition, "function %q already has a body", name.Text)
			continue
		}
		fn.HasBody = true
	}
}

// ---- type resolution ----

func (a *Analyzer) resolveTypeRef(mod *Module, t TypeRefView) *Type {
	if ptr, ok := t.PtrType(); ok {
		pointee, ok := ptr.Pointee()
		elemTy := TypeVoid
		if ok {
			elemTy = a.resolveTypeRef(mod, pointee)
		}
		// The grammar carries a single mut/const qualifier per pointer
		// level, controlling whether the pointee may be written through
		// it; PtrQual (whether the pointer binding itself may be
		// reassigned) is governed by the enclosing variable's own
		// const-ness, not by syntax at the type level.
		return NewPointerType(elemTy, QualMut, ptr.Qualifier())
	}
	if arr, ok := t.ArrayType(); ok {
		elem, ok := arr.Elem()
		elemTy := TypeVoid
		if ok {
			elemTy = a.resolveTypeRef(mod, elem)
		}
		count := int64(0)
		if sizeExpr, ok := arr.SizeExpr(); ok {
			if cv, ok := a.foldConstant(sizeExpr, a.moduleScope(mod)); ok {
				count = cv.Int64()
			} else {
				a.errAt(mod, sizeExpr.AstView, KindConstantExprExpected, "array size must be a constant expression")
			}
		}
		return NewArrayType(elemTy, count)
	}
	if sn, ok := t.StructName(); ok {
		if def, ok := mod.Structs[sn.Text]; ok {
			return NewStructType(def.Module, def.Name)
		}
		return NewStructType(mod.ID, sn.Text)
	}
	if kw, ok := t.PrimKeyword(); ok {
		switch kw.Kind {
		case SyntaxKind_KwVoid:
			return TypeVoid
		case SyntaxKind_KwBool:
			return TypeBool
		case SyntaxKind_KwI8:
			return TypeI8
		case SyntaxKind_KwI32:
			return TypeI32
		case SyntaxKind_KwI64:
			return TypeI64
		case SyntaxKind_KwU8:
			return TypeU8
		case SyntaxKind_KwU32:
			return TypeU32
		case SyntaxKind_KwU64:
			return TypeU64
		}
	}
	return TypeVoid
}

// ---- recursive-type detection ----

// detectRecursiveTypes looks for by-value field cycles across all
// modules (§4.4 "Recursive-type detection") with one depth-first walk.
// Each back edge it meets yields one diagnostic, for the struct the
// edge returns to, with the cycle path in its help line; the other
// structs on that cycle get no diagnostic of their own. Pointer
// fields never induce an edge, so they always break a cycle.
func (a *Analyzer) detectRecursiveTypes() {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[structKey]int)
	var path []structKey

	var visit func(structKey) bool
	visit = func(k structKey) bool {
		switch state[k] {
		case gray:
			a.reportRecursiveType(k, path)
			return true
		case black:
			return false
		}
		state[k] = gray
		path = append(path, k)
		def, ok := a.structs[k]
		found := false
		if ok {
			for _, f := range def.Fields {
				if f.Type.IsStruct() {
					child := structKey{f.Type.StructModule, f.Type.StructName}
					if visit(child) {
						found = true
					}
				}
			}
		}
		path = path[:len(path)-1]
		state[k] = black
		return found
	}

	for k := range a.structs {
		if state[k] == white {
			visit(k)
		}
	}
}

func (a *Analyzer) reportRecursiveType(start structKey, path []structKey) {
	idx := 0
	for i, k := range path {
		if k == start {
			idx = i
			break
		}
	}
	cycle := append(append([]structKey{}, path[idx:]...), start)
	help := cycle[0].Name
	for _, k := range cycle[1:] {
		help += " -> " + k.Name
	}
	mod := a.modules.Module(start.Module)
	a.diags.Add(Diagnostic{
		Kind:     KindRecursiveType,
		Severity: SeverityError,
		Message:  fmt.Sprintf("struct %q is recursive by value", start.Name),
		Help:     help,
		Primary:  a.locOf(mod, a.structs[start].Node),
	})
}

// ---- exported lookups for the IR lowerer ----

// StructDef returns the resolved field list for struct (mod, name),
// once registerStructs has run for that module.
func (a *Analyzer) StructDef(mod ModuleID, name string) (*StructDef, bool) {
	d, ok := a.structs[structKey{mod, name}]
	return d, ok
}

// StructLayout returns the computed offset/size/align for struct
// (mod, name), once Run's layout pass has completed.
func (a *Analyzer) StructLayout(mod ModuleID, name string) (*StructLayout, bool) {
	l, ok := a.layouts[structKey{mod, name}]
	return l, ok
}

// SizeOf returns t's size in bytes, resolving struct sizes against the
// layouts computed by Run. The IR lowerer uses it to scale pointer
// arithmetic (§4.4 "the offset scales by the pointee's size in
// bytes").
func (a *Analyzer) SizeOf(t *Type) int64 {
	return sizeOf(t, a.layouts)
}

// FoldConstant evaluates e as a compile-time constant in mod's module
// scope. The IR lowerer uses it to synthesize global initializers
// (§4.5 "Locals and globals").
func (a *Analyzer) FoldConstant(mod *Module, e ExprView) (ConstValue, bool) {
	return a.foldConstant(e, a.moduleScope(mod))
}

// ---- helpers ----

func (a *Analyzer) moduleScope(mod *Module) *scope {
	if sc, ok := a.moduleScopes[mod.ID]; ok {
		return sc
	}
	sc := a.symbols.PushScope(nil, false)
	a.moduleScopes[mod.ID] = sc
	return sc
}

func (a *Analyzer) locOf(mod *Module, n NodeID) SourceLocation {
	li := NewLineIndex(mod.Source)
	return NewSourceLocation(mod.File, li.Span(mod.Tree.Range(n)))
}

func (a *Analyzer) errAt(mod *Module, v AstView, kind DiagnosticKind, format string, args ...any) {
	a.diags.Add(Diagnostic{
		Kind:     kind,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Primary:  a.locOf(mod, v.Node),
	})
}
