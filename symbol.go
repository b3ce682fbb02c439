package airyc

// SymbolID is an opaque, arena-relative reference to a variable,
// parameter, function, or struct binding. It is comparable and
// hashable and, like NodeID, is never reused once allocated — the
// side table keys resolved facts off both NodeID (syntax identity)
// and SymbolID (binding identity) (§9 "Symbol identity").
type SymbolID int32

const unknownSymbolID SymbolID = -1

// SymbolKind distinguishes what a SymbolID names.
type SymbolKind int8

const (
	SymbolVar SymbolKind = iota
	SymbolParam
	SymbolFunc
	SymbolStruct
)

// Symbol is one arena entry: a name, its kind, its resolved type, and
// whether it is const-qualified (meaningful for SymbolVar/SymbolParam
// only).
type Symbol struct {
	ID      SymbolID
	Kind    SymbolKind
	Name    string
	Type    *Type
	Const   bool
	Module  ModuleID
	Node    NodeID
}

// SymbolTable is the analyzer's arena of every symbol allocated across
// a compilation, plus the nested lexical scopes used during a single
// module's tree walk to resolve identifiers to SymbolIDs.
type SymbolTable struct {
	symbols []*Symbol
	scopes  []*scope
}

type scope struct {
	parent  *scope
	names   map[string]SymbolID
	inLoop  bool // true if this scope or an ancestor is a while body
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Declare allocates a fresh Symbol and binds name to it in the
// current (innermost) scope. It returns nil and false if
// name is already bound in that same scope (§7 DuplicateDefinition is
// the caller's responsibility to report).
func (st *SymbolTable) Declare(sc *scope, kind SymbolKind, name string, typ *Type, isConst bool, module ModuleID, node NodeID) (*Symbol, bool) {
	if _, exists := sc.names[name]; exists {
		return nil, false
	}
	id := SymbolID(len(st.symbols))
	sym := &Symbol{ID: id, Kind: kind, Name: name, Type: typ, Const: isConst, Module: module, Node: node}
	st.symbols = append(st.symbols, sym)
	sc.names[name] = id
	return sym, true
}

func (st *SymbolTable) Symbol(id SymbolID) *Symbol { return st.symbols[id] }

// PushScope opens a new lexical scope nested under parent (nil for a
// module's top-level scope). inLoop marks a `while` body so break/
// continue validation can walk up the scope chain (§4.4
// "Control-flow validation").
func (st *SymbolTable) PushScope(parent *scope, inLoop bool) *scope {
	s := &scope{parent: parent, names: make(map[string]SymbolID), inLoop: inLoop || (parent != nil && parent.inLoop)}
	st.scopes = append(st.scopes, s)
	return s
}

// Lookup resolves name starting at sc and walking up through parent
// scopes, returning the nearest enclosing binding.
func (st *SymbolTable) Lookup(sc *scope, name string) (*Symbol, bool) {
	for s := sc; s != nil; s = s.parent {
		if id, ok := s.names[name]; ok {
			return st.symbols[id], true
		}
	}
	return nil, false
}

// InLoop reports whether sc (or an ancestor) is nested inside a
// `while` body.
func (sc *scope) InLoop() bool { return sc != nil && sc.inLoop }
