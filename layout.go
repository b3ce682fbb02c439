package airyc

// StructLayout is computed once per struct definition: offset for
// each field, total size, and alignment (§3 "Struct definition").
// Layout uses natural alignment for primitives and the maximum field
// alignment for the whole struct; padding is inserted between fields
// and at the tail so the struct's own size is a multiple of its
// alignment.
type StructLayout struct {
	FieldOffsets []int64
	Size         int64
	Align        int64
}

// sizeOf and alignOf are defined for every type reachable from a
// struct field. Struct sizes depend on their own (already computed)
// layout, which is why struct layouts must be computed in a
// dependency order that respects by-value containment (the same
// order the recursive-type check establishes, §4.4).
func sizeOf(t *Type, layouts map[structKey]*StructLayout) int64 {
	switch t.Kind {
	case TypeKind_Bool, TypeKind_I8, TypeKind_U8:
		return 1
	case TypeKind_I32, TypeKind_U32:
		return 4
	case TypeKind_I64, TypeKind_U64, TypeKind_Pointer:
		return 8
	case TypeKind_Array:
		return sizeOf(t.Elem, layouts) * t.Count
	case TypeKind_Struct:
		if l, ok := layouts[structKey{t.StructModule, t.StructName}]; ok {
			return l.Size
		}
		return 0
	default:
		return 0
	}
}

func alignOf(t *Type, layouts map[structKey]*StructLayout) int64 {
	switch t.Kind {
	case TypeKind_Bool, TypeKind_I8, TypeKind_U8:
		return 1
	case TypeKind_I32, TypeKind_U32:
		return 4
	case TypeKind_I64, TypeKind_U64, TypeKind_Pointer:
		return 8
	case TypeKind_Array:
		return alignOf(t.Elem, layouts)
	case TypeKind_Struct:
		if l, ok := layouts[structKey{t.StructModule, t.StructName}]; ok {
			return l.Align
		}
		return 1
	default:
		return 1
	}
}

type structKey struct {
	Module ModuleID
	Name   string
}

func alignUp(offset, align int64) int64 {
	if align <= 1 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}

// ComputeStructLayout lays out def's fields in declaration order given
// the layouts of every struct it may reference by value. It is the
// implementation of testable property 6 (§8): sizeof(S) equals the
// offset of its last field plus that field's size, rounded up to the
// struct's alignment.
func ComputeStructLayout(def *StructDef, layouts map[structKey]*StructLayout) *StructLayout {
	var offset, maxAlign int64 = 0, 1
	offsets := make([]int64, len(def.Fields))

	for i, f := range def.Fields {
		align := alignOf(f.Type, layouts)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		offsets[i] = offset
		offset += sizeOf(f.Type, layouts)
	}

	size := alignUp(offset, maxAlign)
	return &StructLayout{FieldOffsets: offsets, Size: size, Align: maxAlign}
}
