package ir

import "fmt"

// Value is an operand: an SSA register ("%t7"), a function parameter
// ("%a"), a global ("@g"), or a literal constant rendered as text
// ("42"). The builder never tracks values beyond their printed form —
// LLVM IR is itself the representation, in the spirit of the
// teacher's own VM instruction builder.
type Value struct {
	Name string
	Type *Type
}

// ConstInt renders a literal integer operand of type t.
func ConstInt(t *Type, v int64) Value {
	return Value{Name: fmt.Sprintf("%d", v), Type: t}
}

// Block is one basic block of a Function: a label and an ordered,
// append-only list of already-rendered instruction lines.
type Block struct {
	Label      string
	Instrs     []string
	Terminated bool
}

// PhiEdge is one incoming value of a phi node, paired with the block
// it flows from.
type PhiEdge struct {
	Value Value
	Block *Block
}

// Builder emits instructions into the current block of one Function,
// allocating fresh SSA register names and basic-block labels as it
// goes (§4.5 "emits SSA-style instructions against an LLVM-IR-like
// builder interface").
type Builder struct {
	fn       *Function
	cur      *Block
	regSeq   int
	blockSeq int
}

func NewBuilder(fn *Function) *Builder { return &Builder{fn: fn} }

func (b *Builder) Current() *Block { return b.cur }

func (b *Builder) SetBlock(bl *Block) { b.cur = bl }

// Terminated reports whether the current block already ends in a
// br/ret — the lowerer uses this to skip a redundant fall-through
// branch after an if/while (§4.5 "After lowering an if or while the
// builder checks whether the resumed block already has a
// terminator").
func (b *Builder) Terminated() bool { return b.cur == nil || b.cur.Terminated }

// NewBlock appends a fresh, empty block to the function under
// construction, labeled with a unique suffix so nested if/while
// constructs never collide.
func (b *Builder) NewBlock(prefix string) *Block {
	bl := &Block{Label: fmt.Sprintf("%s.%d", prefix, b.blockSeq)}
	b.blockSeq++
	b.fn.Blocks = append(b.fn.Blocks, bl)
	return bl
}

func (b *Builder) fresh() string {
	b.regSeq++
	return fmt.Sprintf("%%t%d", b.regSeq)
}

func (b *Builder) emit(line string) {
	b.cur.Instrs = append(b.cur.Instrs, line)
}

func (b *Builder) Alloca(t *Type) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = alloca %s", name, StorageType(t)))
	return Value{Name: name, Type: Ptr}
}

func (b *Builder) Load(t *Type, addr Value) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = load %s, ptr %s", name, StorageType(t), addr.Name))
	return Value{Name: name, Type: t}
}

func (b *Builder) Store(v Value, addr Value) {
	b.emit(fmt.Sprintf("store %s %s, ptr %s", StorageType(v.Type), v.Name, addr.Name))
}

// GEP indexes into a value of type elemType starting at base, the
// first index selecting the pointee itself (0 for "dereference
// through the pointer") and subsequent indices walking array elements
// or struct fields (§4.5 "L-value lowering").
func (b *Builder) GEP(elemType *Type, base Value, indices ...Value) Value {
	name := b.fresh()
	args := "ptr " + base.Name
	for _, idx := range indices {
		args += fmt.Sprintf(", %s %s", idx.Type, idx.Name)
	}
	b.emit(fmt.Sprintf("%s = getelementptr %s, %s", name, elemType, args))
	return Value{Name: name, Type: Ptr}
}

// BinOp emits a binary arithmetic instruction; opcode selection
// between signed/unsigned/pointer variants is the caller's
// responsibility (§4.5 "the signed or unsigned LLVM opcode per the
// operand type's signedness").
func (b *Builder) BinOp(opcode string, t *Type, l, r Value) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = %s %s %s, %s", name, opcode, t, l.Name, r.Name))
	return Value{Name: name, Type: t}
}

// ICmp emits a comparison producing i1 (§4.5 "Comparisons produce
// i1").
func (b *Builder) ICmp(pred string, t *Type, l, r Value) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = icmp %s %s %s, %s", name, pred, t, l.Name, r.Name))
	return Value{Name: name, Type: I1}
}

func (b *Builder) ZExt(v Value, to *Type) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = zext %s %s to %s", name, v.Type, v.Name, to))
	return Value{Name: name, Type: to}
}

func (b *Builder) SExt(v Value, to *Type) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = sext %s %s to %s", name, v.Type, v.Name, to))
	return Value{Name: name, Type: to}
}

func (b *Builder) Trunc(v Value, to *Type) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = trunc %s %s to %s", name, v.Type, v.Name, to))
	return Value{Name: name, Type: to}
}

// PtrToInt converts a pointer operand to an integer register, used by
// pointer-difference lowering (§4.5, §4.4 "p1 - p2").
func (b *Builder) PtrToInt(v Value, to *Type) Value {
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = ptrtoint ptr %s to %s", name, v.Name, to))
	return Value{Name: name, Type: to}
}

// Call emits a call, returning a zero Value for a void callee. args'
// declared types already carry the platform C calling convention for
// variadic calls (§4.5 "Variadic calls pass remaining arguments with
// the platform's C calling convention").
func (b *Builder) Call(ret *Type, callee string, args []Value) Value {
	argStr := ""
	for i, a := range args {
		if i > 0 {
			argStr += ", "
		}
		argStr += fmt.Sprintf("%s %s", a.Type, a.Name)
	}
	if ret.Kind == KindVoid {
		b.emit(fmt.Sprintf("call %s @%s(%s)", ret, callee, argStr))
		return Value{}
	}
	name := b.fresh()
	b.emit(fmt.Sprintf("%s = call %s @%s(%s)", name, ret, callee, argStr))
	return Value{Name: name, Type: ret}
}

// Br emits an unconditional branch, a no-op if the current block
// already has a terminator (the current block fell off the end of a
// return/break/continue path, §4.5).
func (b *Builder) Br(target *Block) {
	if b.Terminated() {
		return
	}
	b.emit(fmt.Sprintf("br label %%%s", target.Label))
	b.cur.Terminated = true
}

func (b *Builder) CondBr(cond Value, thenB, elseB *Block) {
	if b.Terminated() {
		return
	}
	b.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond.Name, thenB.Label, elseB.Label))
	b.cur.Terminated = true
}

func (b *Builder) Ret(v *Value) {
	if b.Terminated() {
		return
	}
	if v == nil {
		b.emit("ret void")
	} else {
		b.emit(fmt.Sprintf("ret %s %s", StorageType(v.Type), v.Name))
	}
	b.cur.Terminated = true
}

// Phi merges values flowing from two predecessor blocks, used for
// short-circuit && / || (§4.5 "a phi node merging the two sides").
func (b *Builder) Phi(t *Type, incoming []PhiEdge) Value {
	name := b.fresh()
	line := fmt.Sprintf("%s = phi %s ", name, t)
	for i, e := range incoming {
		if i > 0 {
			line += ", "
		}
		line += fmt.Sprintf("[ %s, %%%s ]", e.Value.Name, e.Block.Label)
	}
	b.emit(line)
	return Value{Name: name, Type: t}
}
