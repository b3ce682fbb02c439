package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airyc-lang/airyc"
	"github.com/airyc-lang/airyc/ir"
)

func lowerSource(t *testing.T, src string) (string, *airyc.Bag) {
	t.Helper()
	diags := airyc.NewBag()
	loader := airyc.NewInMemoryImportLoader()
	loader.Add("main.airy", []byte(src))
	ms := airyc.NewModuleSet(loader, diags)
	entry := ms.LoadEntry("main.airy")
	require.False(t, diags.HasErrors(), diags.Items())

	an := airyc.NewAnalyzer(ms, diags)
	side, _ := an.Run()
	require.False(t, diags.HasErrors(), diags.Items())

	l := ir.NewLowerer(ms, an, side)
	out := l.LowerModule(ms.Module(entry))
	return out.Print(), diags
}

func TestLowerSimpleAddFunction(t *testing.T) {
	text, _ := lowerSource(t, `
		fn add(a: i32, b: i32) -> i32 {
			return a + b;
		}
	`)
	assert.Contains(t, text, "define i32 @add(i32 %a, i32 %b)")
	assert.Contains(t, text, "add i32")
	assert.Contains(t, text, "ret i32")
}

func TestLowerIfElseBranchesToMergeBlock(t *testing.T) {
	text, _ := lowerSource(t, `
		fn sign(x: i32) -> i32 {
			let r: i32 = 0;
			if (x > 0) {
				r = 1;
			} else {
				r = 0 - 1;
			}
			return r;
		}
	`)
	assert.Contains(t, text, "if.then.")
	assert.Contains(t, text, "if.else.")
	assert.Contains(t, text, "if.end.")
	assert.Contains(t, text, "icmp sgt i32")
}

func TestLowerWhileLoopHeaderBodyExit(t *testing.T) {
	text, _ := lowerSource(t, `
		fn count(n: i32) -> i32 {
			let i: i32 = 0;
			while (i < n) {
				i = i + 1;
			}
			return i;
		}
	`)
	assert.Contains(t, text, "while.cond.")
	assert.Contains(t, text, "while.body.")
	assert.Contains(t, text, "while.end.")
}

func TestLowerShortCircuitAndEmitsPhi(t *testing.T) {
	text, _ := lowerSource(t, `
		fn both(a: bool, b: bool) -> bool {
			return a && b;
		}
	`)
	assert.Contains(t, text, "phi i1")
	assert.Contains(t, text, "sc.rhs.")
}

func TestLowerStructFieldAccess(t *testing.T) {
	text, _ := lowerSource(t, `
		struct Point {
			x: i32,
			y: i32,
		}
		fn getX(p: struct Point) -> i32 {
			return p.x;
		}
	`)
	assert.Contains(t, text, "%Point = type { i32, i32 }")
	assert.Contains(t, text, "getelementptr")
}

func TestLowerStringLiteralInternsPool(t *testing.T) {
	text, _ := lowerSource(t, `
		fn puts(s: *const u8) -> i32;
		fn greet() -> i32 {
			return puts("hi");
		}
	`)
	assert.Contains(t, text, `constant [3 x i8] c"hi`)
	assert.Contains(t, text, "@.str.0")
}

func TestLowerExternFunctionDeclares(t *testing.T) {
	text, _ := lowerSource(t, `
		fn getint() -> i32;
		fn read() -> i32 {
			return getint();
		}
	`)
	assert.Contains(t, text, "declare i32 @getint()")
}
