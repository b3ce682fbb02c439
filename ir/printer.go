package ir

import (
	"fmt"
	"strings"
)

// Print renders m as textual LLVM IR: struct type definitions, the
// interned string-constant pool, module-level globals, then function
// defines/declares in declaration order.
func (m *Module) Print() string {
	var b strings.Builder

	for _, s := range m.Structs {
		fmt.Fprintf(&b, "%%%s = type { %s }\n", s.Name, joinTypes(s.Fields))
	}
	if len(m.Structs) > 0 {
		b.WriteString("\n")
	}

	for i, content := range m.stringOrder {
		name := fmt.Sprintf("@.str.%d", i)
		bytes := []byte(content)
		bytes = append(bytes, 0)
		fmt.Fprintf(&b, "%s = private unnamed_addr constant [%d x i8] c\"%s\"\n", name, len(bytes), escapeBytes(bytes))
	}
	if len(m.stringOrder) > 0 {
		b.WriteString("\n")
	}

	for _, g := range m.Globals {
		qual := "global"
		if g.Const {
			qual = "constant"
		}
		fmt.Fprintf(&b, "%s = %s %s %s\n", g.Name, qual, g.Type, g.Init)
	}
	if len(m.Globals) > 0 {
		b.WriteString("\n")
	}

	for i, fn := range m.Funcs {
		if i > 0 {
			b.WriteString("\n")
		}
		printFunction(&b, fn)
	}

	return b.String()
}

func printFunction(b *strings.Builder, fn *Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if fn.Extern {
			params[i] = StorageType(p.Type).String()
		} else {
			params[i] = fmt.Sprintf("%s %%%s", StorageType(p.Type), p.Name)
		}
	}
	paramStr := strings.Join(params, ", ")
	if fn.Variadic {
		if paramStr != "" {
			paramStr += ", "
		}
		paramStr += "..."
	}

	if fn.Extern {
		fmt.Fprintf(b, "declare %s @%s(%s)\n", fn.Return, fn.Name, paramStr)
		return
	}

	fmt.Fprintf(b, "define %s @%s(%s) {\n", fn.Return, fn.Name, paramStr)
	for _, blk := range fn.Blocks {
		fmt.Fprintf(b, "%s:\n", blk.Label)
		for _, instr := range blk.Instrs {
			fmt.Fprintf(b, "  %s\n", instr)
		}
	}
	b.WriteString("}\n")
}

func joinTypes(ts []*Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// escapeBytes renders raw bytes the way llvm-as expects inside a
// quoted string constant: printable ASCII verbatim except `"` and `\`,
// which, like everything else (including the trailing NUL), are
// written as \XX hex.
func escapeBytes(bs []byte) string {
	var b strings.Builder
	for _, c := range bs {
		if c == '"' || c == '\\' || c < 0x20 || c >= 0x7f {
			fmt.Fprintf(&b, "\\%02X", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
