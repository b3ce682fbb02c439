package ir

import "fmt"

// StructTypeDef is one named LLVM struct type emitted ahead of the
// functions that reference it, field order preserved from the airyc
// struct definition (§4.5 "Structs map to named LLVM structs with
// field order preserved").
type StructTypeDef struct {
	Name   string
	Fields []*Type
}

// Global is a module-level variable: a compiler-synthesized string
// constant or a lowered `let`-at-module-scope declaration. Const
// globals are marked read-only per §4.5.
type Global struct {
	Name  string
	Type  *Type
	Const bool
	Init  string // textual constant initializer, or "zeroinitializer"
}

// Param is one function parameter's IR name and type.
type Param struct {
	Name string
	Type *Type
}

// Function is one lowered (or external) airyc function. Extern
// functions carry no blocks and print as an LLVM `declare`.
type Function struct {
	Name     string
	Params   []Param
	Variadic bool
	Return   *Type
	Blocks   []*Block
	Extern   bool
}

// Module is one translation unit's worth of lowered IR — the lowerer
// produces exactly one per analyzed airyc.Module (§6 "one .ll per
// translation unit").
type Module struct {
	Name    string
	Structs []StructTypeDef
	Globals []*Global
	Funcs   []*Function

	strings     map[string]string // content -> already-interned global name
	stringOrder []string
}

func NewModule(name string) *Module {
	return &Module{Name: name, strings: map[string]string{}}
}

func (m *Module) hasStruct(name string) bool {
	for _, s := range m.Structs {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Intern returns the name of the private NUL-terminated string
// constant holding s, creating it on first use and deduplicating on
// repeat content (§4.5 "String literals").
func (m *Module) Intern(s string) string {
	if name, ok := m.strings[s]; ok {
		return name
	}
	name := fmt.Sprintf("@.str.%d", len(m.stringOrder))
	m.strings[s] = name
	m.stringOrder = append(m.stringOrder, s)
	return name
}
