package airyc

import "fmt"

// TypeKind tags the sum-of-kinds type representation described in §3.
type TypeKind int8

const (
	TypeKind_Void TypeKind = iota
	TypeKind_Bool
	TypeKind_I8
	TypeKind_I32
	TypeKind_I64
	TypeKind_U8
	TypeKind_U32
	TypeKind_U64
	TypeKind_Pointer
	TypeKind_Array
	TypeKind_Struct
)

// Qualifier is mut or const, applied independently to a pointer and
// to its pointee (§3, §9 "Pointer qualifiers").
type Qualifier int8

const (
	QualMut Qualifier = iota
	QualConst
)

func (q Qualifier) String() string {
	if q == QualConst {
		return "const"
	}
	return "mut"
}

// Type is an immutable, structurally-shared description of an airyc
// type. Pointer and Array carry an Elem; Struct carries a name that
// is resolved against a (module, name) keyed struct table.
type Type struct {
	Kind TypeKind

	// Pointer only.
	PtrQual    Qualifier // qualifier on the pointer itself (reassignable or not)
	PointeeQual Qualifier // qualifier on the pointee (mutable through the pointer or not)
	Elem       *Type     // pointee type (Pointer) or element type (Array)

	// Array only.
	Count int64

	// Struct only.
	StructModule ModuleID
	StructName   string
}

var (
	TypeVoid = &Type{Kind: TypeKind_Void}
	TypeBool = &Type{Kind: TypeKind_Bool}
	TypeI8   = &Type{Kind: TypeKind_I8}
	TypeI32  = &Type{Kind: TypeKind_I32}
	TypeI64  = &Type{Kind: TypeKind_I64}
	TypeU8   = &Type{Kind: TypeKind_U8}
	TypeU32  = &Type{Kind: TypeKind_U32}
	TypeU64  = &Type{Kind: TypeKind_U64}
)

func NewPointerType(elem *Type, ptrQual, pointeeQual Qualifier) *Type {
	return &Type{Kind: TypeKind_Pointer, Elem: elem, PtrQual: ptrQual, PointeeQual: pointeeQual}
}

func NewArrayType(elem *Type, count int64) *Type {
	return &Type{Kind: TypeKind_Array, Elem: elem, Count: count}
}

func NewStructType(mod ModuleID, name string) *Type {
	return &Type{Kind: TypeKind_Struct, StructModule: mod, StructName: name}
}

func (t *Type) IsInteger() bool {
	switch t.Kind {
	case TypeKind_I8, TypeKind_I32, TypeKind_I64, TypeKind_U8, TypeKind_U32, TypeKind_U64:
		return true
	default:
		return false
	}
}

func (t *Type) IsSigned() bool {
	switch t.Kind {
	case TypeKind_I8, TypeKind_I32, TypeKind_I64:
		return true
	default:
		return false
	}
}

func (t *Type) IsUnsigned() bool {
	switch t.Kind {
	case TypeKind_U8, TypeKind_U32, TypeKind_U64:
		return true
	default:
		return false
	}
}

func (t *Type) IsVoid() bool    { return t.Kind == TypeKind_Void }
func (t *Type) IsPointer() bool { return t.Kind == TypeKind_Pointer }
func (t *Type) IsArray() bool   { return t.Kind == TypeKind_Array }
func (t *Type) IsStruct() bool  { return t.Kind == TypeKind_Struct }
func (t *Type) IsBool() bool    { return t.Kind == TypeKind_Bool }

// IsVoidPointer reports whether t is a pointer to void, in either
// pointee qualification (§4.4 "Pointer-to-void").
func (t *Type) IsVoidPointer() bool {
	return t.Kind == TypeKind_Pointer && t.Elem.IsVoid()
}

// widenRank orders the two widening lattices bool<i8<i32<i64 and
// u8<u32<u64 (§4.4 "Implicit conversions"). Mixed signedness has no
// common rank; callers must check signedness first.
func (t *Type) widenRank() int {
	switch t.Kind {
	case TypeKind_Bool:
		return 0
	case TypeKind_I8, TypeKind_U8:
		return 1
	case TypeKind_I32, TypeKind_U32:
		return 2
	case TypeKind_I64, TypeKind_U64:
		return 3
	default:
		return -1
	}
}

// StructurallyEqual reports whether two types describe the same
// shape, ignoring pointer/pointee qualifiers (§9 "Compatibility checks
// ignore qualifiers; assignability checks honor them").
func StructurallyEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeKind_Pointer:
		return StructurallyEqual(a.Elem, b.Elem)
	case TypeKind_Array:
		return a.Count == b.Count && StructurallyEqual(a.Elem, b.Elem)
	case TypeKind_Struct:
		return a.StructModule == b.StructModule && a.StructName == b.StructName
	default:
		return true
	}
}

// CanWidenTo reports whether a value of type from may be implicitly
// converted to type to: bool→i8→i32→i64 and u8→u32→u64, never
// crossing signedness, never narrowing (§4.4).
func CanWidenTo(from, to *Type) bool {
	if StructurallyEqual(from, to) {
		return true
	}
	if from.Kind == TypeKind_Bool && to.IsSigned() {
		return true
	}
	if from.IsInteger() && to.IsInteger() {
		if from.IsSigned() != to.IsSigned() {
			return false
		}
		return from.widenRank() <= to.widenRank()
	}
	return false
}

// PointerAssignable reports whether a value of pointer type from may
// be assigned/passed where pointer type to is expected: same
// structural pointee, or either side pointing to void (§4.4).
func PointerAssignable(from, to *Type) bool {
	if !from.IsPointer() || !to.IsPointer() {
		return false
	}
	if from.IsVoidPointer() || to.IsVoidPointer() {
		return true
	}
	return StructurallyEqual(from.Elem, to.Elem)
}

func (t *Type) String() string {
	switch t.Kind {
	case TypeKind_Void:
		return "void"
	case TypeKind_Bool:
		return "bool"
	case TypeKind_I8:
		return "i8"
	case TypeKind_I32:
		return "i32"
	case TypeKind_I64:
		return "i64"
	case TypeKind_U8:
		return "u8"
	case TypeKind_U32:
		return "u32"
	case TypeKind_U64:
		return "u64"
	case TypeKind_Pointer:
		return fmt.Sprintf("*%s %s", t.PointeeQual, t.Elem)
	case TypeKind_Array:
		return fmt.Sprintf("[%s; %d]", t.Elem, t.Count)
	case TypeKind_Struct:
		return fmt.Sprintf("struct %s", t.StructName)
	default:
		return "<unknown type>"
	}
}
