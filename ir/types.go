// Package ir is airyc's LLVM-IR-like lowering target: a small type
// system, an SSA-ish instruction builder, and a textual printer (§4.5
// "IR Lowering"). It depends on the analyzed airyc AST but knows
// nothing about surface syntax beyond what the lowerer feeds it.
package ir

import "fmt"

// TypeKind tags the handful of LLVM type shapes airyc's lowering
// needs: no floats, no vectors. Named struct types are first-class:
// struct values are loaded, stored, passed and returned by value.
type TypeKind int8

const (
	KindVoid TypeKind = iota
	KindI1
	KindI8
	KindI32
	KindI64
	KindPtr
	KindArray
	KindStruct
)

// Type is the IR-level counterpart of airyc's *Type (types.go),
// translated by Lowerer.translateType. Pointers are opaque (modern
// LLVM style, §4.5 "Pointers map to opaque pointers").
type Type struct {
	Kind  TypeKind
	Elem  *Type  // Array element type
	Count int64  // Array element count
	Name  string // Struct type name ("%Name")
}

var (
	Void = &Type{Kind: KindVoid}
	I1   = &Type{Kind: KindI1}
	I8   = &Type{Kind: KindI8}
	I32  = &Type{Kind: KindI32}
	I64  = &Type{Kind: KindI64}
	Ptr  = &Type{Kind: KindPtr}
)

func Array(elem *Type, count int64) *Type { return &Type{Kind: KindArray, Elem: elem, Count: count} }

func Named(name string) *Type { return &Type{Kind: KindStruct, Name: name} }

func (t *Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindI1:
		return "i1"
	case KindI8:
		return "i8"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindPtr:
		return "ptr"
	case KindArray:
		return fmt.Sprintf("[%d x %s]", t.Count, t.Elem)
	case KindStruct:
		return "%" + t.Name
	default:
		return "void"
	}
}

func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.String() == o.String()
}

// StorageType returns the type a value of t occupies at rest: bool is
// an i1 in registers but widens to i8 in memory/as a parameter (§4.5
// "i1 for bool internally, widened to i8 at storage").
func StorageType(t *Type) *Type {
	if t.Kind == KindI1 {
		return I8
	}
	return t
}
