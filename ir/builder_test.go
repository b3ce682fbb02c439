package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageTypeWidensBoolToI8(t *testing.T) {
	assert.Equal(t, I8, StorageType(I1))
	assert.Equal(t, I32, StorageType(I32))
}

func TestArrayTypeString(t *testing.T) {
	at := Array(I32, 4)
	assert.Equal(t, "[4 x i32]", at.String())
}

func TestNamedStructTypeString(t *testing.T) {
	st := Named("Point")
	assert.Equal(t, "%Point", st.String())
}

func TestBuilderSkipsBranchAfterTerminator(t *testing.T) {
	fn := &Function{Name: "f", Return: Void}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	exit := b.NewBlock("exit")
	b.SetBlock(entry)
	b.Ret(nil)
	assert.True(t, b.Terminated())

	b.Br(exit) // must be a no-op: the block already terminated
	assert.Len(t, entry.Instrs, 1)
}

func TestModuleInternDeduplicatesStrings(t *testing.T) {
	m := NewModule("main")
	a := m.Intern("hello")
	b := m.Intern("hello")
	c := m.Intern("world")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
