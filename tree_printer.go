package airyc

import (
	"fmt"
	"strings"

	"github.com/airyc-lang/airyc/ascii"
)

type FormatFunc[T any] func(input string, token T) string

type treePrinter[T any] struct {
	padStr *[]string
	output *strings.Builder
	format FormatFunc[T]
}

func newTreePrinter[T any](format FormatFunc[T]) *treePrinter[T] {
	return &treePrinter[T]{
		padStr: &[]string{},
		output: &strings.Builder{},
		format: format,
	}
}

func (tp *treePrinter[T]) indent(s string) {
	*tp.padStr = append(*tp.padStr, s)
}

func (tp *treePrinter[T]) unindent() {
	index := len(*tp.padStr) - 1
	*tp.padStr = (*tp.padStr)[:index]
}

func (tp *treePrinter[T]) padding() {
	for _, item := range *tp.padStr {
		tp.write(item)
	}
}

func (tp *treePrinter[T]) writel(s string) {
	tp.write(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter[T]) pwritel(s string) {
	tp.pwrite(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter[T]) write(s string) {
	tp.output.WriteString(s)
}

func (tp *treePrinter[T]) pwrite(s string) {
	tp.padding()
	tp.write(s)
}

var literalSanitizer = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
	string('\n'), `\n`,
	string('\r'), `\r`,
	string('\t'), `\t`,
)

func escapeLiteral(s string) string {
	return literalSanitizer.Replace(s)
}

// DumpTree renders id and its descendants as an indented outline:
// interior nodes in Accent, tokens in Literal, trivia dimmed with
// Muted. This is the debug companion to the caret-snippet renderer in
// diagnostics.go — both read from the same ascii.Theme so a terminal
// session shows a consistent palette across tree dumps and error
// output.
func DumpTree(t *Tree, id NodeID, theme ascii.Theme) string {
	tp := newTreePrinter[any](nil)
	dumpNode(tp, t, id, theme)
	return tp.output.String()
}

func dumpNode(tp *treePrinter[any], t *Tree, id NodeID, theme ascii.Theme) {
	kind := t.Kind(id)
	rng := t.Range(id)
	tp.pwritel(fmt.Sprintf("%s %s", ascii.Color(theme.Accent, kind.String()), ascii.Color(theme.Span, rng.String())))

	tp.indent("  ")
	for _, c := range t.Children(id) {
		if c.IsToken {
			if c.Token.Kind.IsTrivia() {
				tp.pwritel(ascii.Color(theme.Muted, fmt.Sprintf("%s %q", c.Token.Kind, escapeLiteral(c.Token.Text))))
				continue
			}
			tp.pwritel(ascii.Color(theme.Literal, fmt.Sprintf("%s %q", c.Token.Kind, escapeLiteral(c.Token.Text))))
			continue
		}
		dumpNode(tp, t, c.Node, theme)
	}
	tp.unindent()
}
