package airyc

// TreeBuilder accumulates Tree nodes as the parser recognizes them.
// It follows the open/close-marker discipline common to lossless
// parsers: StartNode returns a Marker, further tokens/children are
// pushed onto an implicit stack, and FinishNode pops everything
// pushed since the marker into one new interior node.
type TreeBuilder struct {
	nodes []treeNode
	stack [][]Child // one frame per currently-open node
}

// Marker names a point where a node was opened; FinishNode closes the
// most recently opened, still-open marker (LIFO, matching recursive
// descent call structure).
type Marker struct{ depth int }

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{stack: [][]Child{{}}}
}

func (b *TreeBuilder) StartNode() Marker {
	b.stack = append(b.stack, []Child{})
	return Marker{depth: len(b.stack) - 1}
}

// PushToken appends a leaf token (including trivia) to the
// currently-open node.
func (b *TreeBuilder) PushToken(tok Token) {
	top := len(b.stack) - 1
	b.stack[top] = append(b.stack[top], Child{IsToken: true, Token: tok})
}

// FinishNode closes the node opened at m with kind k, folding
// everything pushed since m into a new node and attaching it as a
// child of the now-current frame.
func (b *TreeBuilder) FinishNode(m Marker, k SyntaxKind) NodeID {
	children := b.stack[m.depth]
	b.stack = b.stack[:m.depth]

	width := 0
	for _, c := range children {
		if c.IsToken {
			width += c.Token.Range.Len()
		} else {
			width += b.nodes[c.Node].width
		}
	}

	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, treeNode{kind: k, children: children, width: width})

	parent := len(b.stack) - 1
	b.stack[parent] = append(b.stack[parent], Child{IsToken: false, Node: id})
	return id
}

// Precede pops the most recently finished child off the current frame
// and reopens it inside a fresh frame, returning a Marker for that
// frame. This lets the parser decide *after* parsing an operand
// whether it needs to wrap that operand in an outer node (a binary
// expression, a call, an index) without having guessed the wrapper
// kind up front — the same "retroactive wrap" a lossless event-based
// tree builder needs wherever left-recursive grammar is parsed
// top-down (Pratt binary chains, postfix call/index/field chains).
func (b *TreeBuilder) Precede() Marker {
	top := len(b.stack) - 1
	n := len(b.stack[top])
	last := b.stack[top][n-1]
	b.stack[top] = b.stack[top][:n-1]
	b.stack = append(b.stack, []Child{last})
	return Marker{depth: len(b.stack) - 1}
}

// Finish closes the implicit root frame: its sole child becomes the
// Tree's root. Call exactly once, after the outermost FinishNode.
func (b *TreeBuilder) Finish(src []byte) *Tree {
	root := b.stack[0]
	if len(root) != 1 || root[0].IsToken {
		panic("TreeBuilder.Finish: expected exactly one root node")
	}
	return &Tree{nodes: b.nodes, root: root[0].Node, src: src}
}
