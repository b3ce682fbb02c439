package airyc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/airyc-lang/airyc/ascii"
)

// DiagnosticKind is the stable, surface-visible taxonomy of §7. Kind
// tags never change meaning once shipped; new kinds are appended.
type DiagnosticKind string

const (
	KindTypeMismatch         DiagnosticKind = "TypeMismatch"
	KindConstantExprExpected DiagnosticKind = "ConstantExprExpected"
	KindAssignToConst        DiagnosticKind = "AssignToConst"
	KindNotALValue           DiagnosticKind = "NotALValue"
	KindVoidPointerDeref     DiagnosticKind = "VoidPointerDeref"
	KindInvalidVoidUsage     DiagnosticKind = "InvalidVoidUsage"
	KindRecursiveType        DiagnosticKind = "RecursiveType"
	KindCircularDependency   DiagnosticKind = "CircularDependency"
	KindBreakOutsideLoop     DiagnosticKind = "BreakOutsideLoop"
	KindContinueOutsideLoop DiagnosticKind = "ContinueOutsideLoop"
	KindUnresolvedName       DiagnosticKind = "UnresolvedName"
	KindDuplicateDefinition  DiagnosticKind = "DuplicateDefinition"
	KindArityMismatch        DiagnosticKind = "ArityMismatch"
	KindParseError           DiagnosticKind = "ParseError"
)

// Severity distinguishes a build-failing error from advisory output.
// Only Error currently fails a build (§4.6: "iff at least one
// diagnostic of severity error was emitted"), but the renderer themes
// every level distinctly so a future warning pass has somewhere to
// live.
type Severity int8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "hint"
	}
}

// Diagnostic is the unit the analyzer, loader, and lexer/parser all
// collect into rather than throw (§4.6, §7 "Propagation policy").
type Diagnostic struct {
	Kind     DiagnosticKind
	Severity Severity
	Message  string
	Help     string
	Primary  SourceLocation
	Secondary []SourceLocation
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Kind, d.Message)
}

// Bag collects diagnostics for one compilation (§5: "the driver
// collects diagnostics and returns a non-zero exit code"). It is not
// safe for concurrent use — the compiler core is single-threaded
// (§5).
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag { return &Bag{} }

func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) Errorf(kind DiagnosticKind, loc SourceLocation, format string, args ...any) {
	b.Add(Diagnostic{Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Primary: loc})
}

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (b *Bag) Items() []Diagnostic { return b.items }

// Sorted returns every diagnostic ordered by file then by start
// cursor, the order the CLI driver reports them in.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Primary.File != out[j].Primary.File {
			return out[i].Primary.File < out[j].Primary.File
		}
		return out[i].Primary.Span.Start.Cursor < out[j].Primary.Span.Start.Cursor
	})
	return out
}

// Renderer formats diagnostics as multi-line caret snippets, themed
// with the shared ascii.Theme (tree_printer.go uses the same theme for
// CST dumps so error output and debug dumps read consistently).
type Renderer struct {
	files map[FileID]renderedFile
	theme ascii.Theme
}

type renderedFile struct {
	name  string
	index *LineIndex
}

// AirycTheme is the palette airyc's caret snippets are rendered with.
// Render colors the severity label and the carets in the severity's
// color, the gutter and arrow in Muted, and the "help:" label in
// Accent; the source line, the message and the help text are printed
// uncolored.
var AirycTheme = ascii.Theme{
	Error:   ascii.Red,
	Warning: ascii.Yellow,
	Info:    ascii.Cyan,
	Hint:    ascii.Gray,

	Muted:   ascii.Gray,
	Accent:  ascii.Blue,
	Success: ascii.Green,

	Operator: ascii.Purple,
	Operand:  ascii.Pink,
	Literal:  ascii.Green,
	Span:     ascii.Orange,
	Comment:  ascii.Gray245,
	Label:    ascii.Red,
}

func NewRenderer(theme ascii.Theme) *Renderer {
	return &Renderer{files: make(map[FileID]renderedFile), theme: theme}
}

func (r *Renderer) AddFile(id FileID, name string, src []byte) {
	r.files[id] = renderedFile{name: name, index: NewLineIndex(src)}
}

// Render produces the caret-annotated report for a single diagnostic.
func (r *Renderer) Render(d Diagnostic) string {
	var b strings.Builder
	color := r.theme.Error
	if d.Severity == SeverityWarning {
		color = r.theme.Warning
	} else if d.Severity == SeverityHint {
		color = r.theme.Hint
	}

	fmt.Fprintf(&b, "%s: %s\n", ascii.Color(color, d.Severity.String()), d.Message)

	rf, ok := r.files[d.Primary.File]
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", ascii.Color(r.theme.Muted, "-->"), rf.name,
		d.Primary.Span.Start.Line, d.Primary.Span.Start.Column)

	line := rf.index.LineText(d.Primary.Span.Start.Line)
	gutter := fmt.Sprintf("%d", d.Primary.Span.Start.Line)
	fmt.Fprintf(&b, "%s %s | %s\n", ascii.Color(r.theme.Muted, gutter), ascii.Color(r.theme.Muted, "|"), line)

	col := int(d.Primary.Span.Start.Column) - 1
	if col < 0 {
		col = 0
	}
	pad := strings.Repeat(" ", col)
	width := d.Primary.Span.End.Cursor - d.Primary.Span.Start.Cursor
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&b, "%s   | %s%s\n", strings.Repeat(" ", len(gutter)), pad, ascii.Color(color, strings.Repeat("^", width)))

	if d.Help != "" {
		fmt.Fprintf(&b, "  %s %s\n", ascii.Color(r.theme.Accent, "help:"), d.Help)
	}
	return b.String()
}

// RenderAll renders every diagnostic in the bag, sorted by location.
func (r *Renderer) RenderAll(b *Bag) string {
	var out strings.Builder
	for _, d := range b.Sorted() {
		out.WriteString(r.Render(d))
	}
	return out.String()
}
