package airyc

import (
	"sort"

	"golang.org/x/exp/maps"
)

// color is the three-state DFS marker used to find back-edges in the
// directed import graph: White (unvisited), Gray (on the current DFS
// stack), Black (fully processed). A back-edge to a Gray node is an
// import cycle (§4.3 "Circular import is detected by a DFS coloring").
type color int8

const (
	colorWhite color = iota
	colorGray
	colorBlack
)

// ModuleSet owns every loaded Module for one compilation, keyed by
// canonicalized path, and the running DFS state used while resolving
// imports (§4.3 "maintains a work set, and loads each unique path
// once").
type ModuleSet struct {
	loader  ImportLoader
	diags   *Bag
	byPath  map[string]ModuleID
	modules []*Module
	colors  map[ModuleID]color
	stack   []ModuleID // current DFS path, for cycle-path reporting
}

func NewModuleSet(loader ImportLoader, diags *Bag) *ModuleSet {
	return &ModuleSet{
		loader: loader,
		diags:  diags,
		byPath: make(map[string]ModuleID),
		colors: make(map[ModuleID]color),
	}
}

func (ms *ModuleSet) Module(id ModuleID) *Module { return ms.modules[id] }

func (ms *ModuleSet) Len() int { return len(ms.modules) }

// LoadedPaths returns every distinct path loaded into this set so far,
// sorted for stable diagnostic/progress output (e.g. "compiling N
// files"). ms.byPath's key order is otherwise map-random.
func (ms *ModuleSet) LoadedPaths() []string {
	paths := maps.Keys(ms.byPath)
	sort.Strings(paths)
	return paths
}

// LoadEntry loads path as the compilation's entry module and every
// module it transitively imports, in source order, detecting import
// cycles along the way. It returns the entry module's id, or
// unknownModuleID if loading failed fatally (a CircularDependency was
// already recorded in that case).
func (ms *ModuleSet) LoadEntry(path string) ModuleID {
	return ms.load(path, path)
}

func (ms *ModuleSet) load(path, parentPath string) ModuleID {
	resolved, err := ms.loader.GetPath(path, parentPath)
	if err != nil {
		ms.diags.Errorf(KindCircularDependency, SourceLocation{}, "cannot resolve import %q: %s", path, err)
		return unknownModuleID
	}

	if id, ok := ms.byPath[resolved]; ok {
		if ms.colors[id] == colorGray {
			ms.reportCycle(id)
			return unknownModuleID
		}
		return id
	}

	src, err := ms.loader.GetContent(resolved)
	if err != nil {
		ms.diags.Errorf(KindCircularDependency, SourceLocation{}, "cannot read module %q: %s", resolved, err)
		return unknownModuleID
	}

	id := ModuleID(len(ms.modules))
	file := FileID(id)
	tree, parseDiags := Parse(file, src)
	for _, d := range parseDiags.Items() {
		ms.diags.Add(d)
	}

	mod := &Module{
		ID:      id,
		Path:    resolved,
		File:    file,
		Source:  src,
		Tree:    tree,
		Unit:    NewCompUnitView(tree),
		Structs: make(map[string]*StructDef),
		Funcs:   make(map[string]*FuncSymbol),
	}
	ms.modules = append(ms.modules, mod)
	ms.byPath[resolved] = id
	ms.colors[id] = colorGray
	ms.stack = append(ms.stack, id)

	for _, imp := range mod.Unit.Imports() {
		ms.resolveImport(mod, imp)
	}

	ms.stack = ms.stack[:len(ms.stack)-1]
	ms.colors[id] = colorBlack
	return id
}

func (ms *ModuleSet) resolveImport(mod *Module, decl ImportDeclView) {
	pathTok, ok := decl.PathLiteral()
	if !ok {
		return
	}
	raw, err := UnescapeString(pathTok.Text)
	if err != nil {
		return
	}
	importPath := string(raw)

	selected := ""
	if sel, ok := decl.SelectedName(); ok {
		selected = sel.Text
	}

	targetID := ms.load(importPath, mod.Path)
	mod.Imports = append(mod.Imports, ResolvedImport{
		Decl:     decl,
		Path:     importPath,
		Selected: selected,
		TargetID: targetID,
	})
}

// reportCycle walks the DFS stack to describe the cycle back to id,
// matching the help-line format in §4.4: "StructA -> StructB ->
// StructA".
func (ms *ModuleSet) reportCycle(id ModuleID) {
	var names []string
	start := 0
	for i, s := range ms.stack {
		if s == id {
			start = i
			break
		}
	}
	for _, s := range ms.stack[start:] {
		names = append(names, ms.modules[s].Path)
	}
	names = append(names, ms.modules[id].Path)

	help := names[0]
	for _, n := range names[1:] {
		help += " -> " + n
	}
	ms.diags.Add(Diagnostic{
		Kind:     KindCircularDependency,
		Severity: SeverityError,
		Message:  "import cycle detected",
		Help:     help,
	})
}

// TopoOrder returns every loaded module id in an order where each
// module appears after every module it (transitively) imports, so an
// importer's analyzer pass always sees a fully analyzed importee
// (§5 "the module graph is walked in topological order").
func (ms *ModuleSet) TopoOrder() []ModuleID {
	visited := make(map[ModuleID]bool, len(ms.modules))
	var order []ModuleID
	var visit func(ModuleID)
	visit = func(id ModuleID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, imp := range ms.modules[id].Imports {
			if imp.TargetID != unknownModuleID {
				visit(imp.TargetID)
			}
		}
		order = append(order, id)
	}
	for id := range ms.modules {
		visit(ModuleID(id))
	}
	return order
}
