package airyc

// ModuleID identifies one loaded translation unit (one `.airy` file)
// within a compilation's module graph (§4.3). It indexes directly
// into ModuleSet.modules and is stable for the lifetime of a compile.
type ModuleID int32

const unknownModuleID ModuleID = -1

// Field is one member of a struct definition, resolved to a concrete
// Type by the analyzer (§3 "Struct definition", §4.4 "Type
// resolution").
type Field struct {
	Name string
	Type *Type
	Node NodeID // FieldDef syntax node, for diagnostics
}

// StructDef is the analyzer's resolved view of a `struct` declaration:
// its fields in declaration order, independent of the StructDefView
// syntax it was built from.
type StructDef struct {
	Module ModuleID
	Name   string
	Fields []Field
	Node   NodeID
}

// Module is one loaded, parsed `.airy` file plus everything the
// loader and analyzer attach to it as compilation proceeds.
type Module struct {
	ID       ModuleID
	Path     string // canonicalized path used as the dedup key
	File     FileID
	Source   []byte
	Tree     *Tree
	Unit     CompUnitView
	Imports  []ResolvedImport

	Structs map[string]*StructDef
	Funcs   map[string]*FuncSymbol
}

// ResolvedImport records one `import` declaration after path
// canonicalization, with the imported module's id once loaded.
type ResolvedImport struct {
	Decl       ImportDeclView
	Path       string
	Selected   string // imported symbol name, or "" for a bare import
	TargetID   ModuleID
}

// FuncSymbol is the analyzer's resolved view of a function
// declaration/definition, tracked per module so `attach` and
// duplicate-signature checks can find the earlier declaration
// (§4.4 "Function signatures", "Attach").
type FuncSymbol struct {
	Module   ModuleID
	Name     string
	Params   []*Type
	Variadic bool
	Return   *Type
	HasBody  bool
	Node     NodeID // FuncSign syntax node of the declaring FuncDecl
}
