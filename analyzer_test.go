package airyc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeSource(t *testing.T, src string) (*Bag, *SideTable) {
	t.Helper()
	diags := NewBag()
	loader := NewInMemoryImportLoader()
	loader.Add("main.airy", []byte(src))
	ms := NewModuleSet(loader, diags)
	entry := ms.LoadEntry("main.airy")
	require.NotEqual(t, unknownModuleID, entry)

	a := NewAnalyzer(ms, diags)
	side, _ := a.Run()
	return diags, side
}

func TestAnalyzerAcceptsWellTypedFunction(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn add(a: i32, b: i32) -> i32 {
			return a + b;
		}
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerRejectsTypeMismatchOnReturn(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f() -> bool {
			return 1;
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindTypeMismatch, diags.Items()[0].Kind)
}

func TestAnalyzerRejectsAssignToConst(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f() -> i32 {
			let x: const i32 = 1;
			x = 2;
			return x;
		}
	`)
	require.True(t, diags.HasErrors())
	var found bool
	for _, d := range diags.Items() {
		if d.Kind == KindAssignToConst {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyzerRejectsBreakOutsideLoop(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f() -> i32 {
			break;
			return 0;
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindBreakOutsideLoop, diags.Items()[0].Kind)
}

func TestAnalyzerAllowsBreakInsideWhile(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f() -> i32 {
			let i: i32 = 0;
			while i < 10 {
				break;
			}
			return i;
		}
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerRejectsUnresolvedName(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f() -> i32 {
			return y;
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindUnresolvedName, diags.Items()[0].Kind)
}

func TestAnalyzerRejectsArityMismatch(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn add(a: i32, b: i32) -> i32 { return a + b; }
		fn f() -> i32 {
			return add(1);
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindArityMismatch, diags.Items()[0].Kind)
}

func TestAnalyzerDetectsRecursiveStruct(t *testing.T) {
	diags, _ := analyzeSource(t, `
		struct Node { value: i32, next: struct Node }
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindRecursiveType, diags.Items()[0].Kind)
}

func TestAnalyzerAllowsPointerBreakingStructRecursion(t *testing.T) {
	diags, _ := analyzeSource(t, `
		struct Node { value: i32, next: *mut struct Node }
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerFoldsConstantArraySize(t *testing.T) {
	diags, _ := analyzeSource(t, `
		let n: const i32 = 3;
		fn f() -> i32 {
			let arr: [i32; 3] = {1, 2, 3};
			return arr[0];
		}
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerRejectsNonConstantArraySize(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f(n: i32) -> i32 {
			let arr: [i32; n] = {1};
			return arr[0];
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindConstantExprExpected, diags.Items()[0].Kind)
}

func TestAnalyzerRejectsVoidPointerDeref(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn f(p: *mut void) -> i32 {
			return *p;
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindVoidPointerDeref, diags.Items()[0].Kind)
}

func TestAnalyzerResolvesStructFieldAccess(t *testing.T) {
	diags, _ := analyzeSource(t, `
		struct Point { x: i32, y: i32 }
		fn sum(p: struct Point) -> i32 {
			return p.x + p.y;
		}
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerResolvesArrowFieldAccess(t *testing.T) {
	diags, _ := analyzeSource(t, `
		struct Point { x: i32, y: i32 }
		fn sum(p: *const struct Point) -> i32 {
			return p->x + p->y;
		}
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerAllowsAttachDefiningExternFunction(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn double(a: i32) -> i32;
		attach double {
			return a + a;
		}
	`)
	assert.False(t, diags.HasErrors(), diags.Items())
}

func TestAnalyzerRejectsDuplicateAttach(t *testing.T) {
	diags, _ := analyzeSource(t, `
		fn double(a: i32) -> i32 { return a + a; }
		attach double {
			return a + a;
		}
	`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, KindDuplicateDefinition, diags.Items()[0].Kind)
}
