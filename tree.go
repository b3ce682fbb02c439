package airyc

import "fmt"

// NodeID is an opaque, arena-relative reference into a Tree. It is
// comparable and hashable and is never invalidated once the Tree is
// built, which is what lets the side table (§3 "Lifecycles") key
// analysis facts off syntax-node identity.
type NodeID int32

// Child is one element of a node's ordered child list: either a
// leaf Token or another interior NodeID (§3 "children are an ordered
// sequence of nodes or tokens").
type Child struct {
	IsToken bool
	Token   Token
	Node    NodeID
}

type treeNode struct {
	kind     SyntaxKind
	children []Child
	width    int // cached byte width = sum of children widths; never an absolute offset
}

// Tree is the lossless, immutable concrete syntax tree (CST). Nodes
// carry only a SyntaxKind and an ordered child list; absolute byte
// offsets are never stored per node, only recomputed on demand by
// walking from an ancestor with a running offset (§3, §9 "Lossless
// tree"). The backing arena (`nodes`) makes the tree cheaply clonable
// by structural sharing: copying a Tree value copies only the slice
// header, and NodeIDs remain valid against the same backing array.
type Tree struct {
	nodes []treeNode
	root  NodeID
	src   []byte
}

func (t *Tree) Root() NodeID { return t.root }

func (t *Tree) Kind(id NodeID) SyntaxKind { return t.nodes[id].kind }

func (t *Tree) Children(id NodeID) []Child { return t.nodes[id].children }

func (t *Tree) Width(id NodeID) int { return t.nodes[id].width }

// Range recomputes the absolute byte range of id by walking down from
// root, accumulating the width of preceding siblings at each level.
// This is the traversal invariant described in §9: "Absolute spans
// are recomputed on demand from an offset passed during traversal."
func (t *Tree) Range(id NodeID) Range {
	start, ok := t.findOffset(t.root, id, 0)
	if !ok {
		return Range{}
	}
	return Range{Start: start, End: start + t.Width(id)}
}

func (t *Tree) findOffset(cur NodeID, target NodeID, offset int) (int, bool) {
	if cur == target {
		return offset, true
	}
	running := offset
	for _, c := range t.nodes[cur].children {
		if c.IsToken {
			running += c.Token.Range.Len()
			continue
		}
		if c.Node == target {
			return running, true
		}
		if found, ok := t.findOffset(c.Node, target, running); ok {
			return found, true
		}
		running += t.Width(c.Node)
	}
	return 0, false
}

// ChildNodes returns only the node (non-token) children, in order.
func (t *Tree) ChildNodes(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.nodes[id].children {
		if !c.IsToken {
			out = append(out, c.Node)
		}
	}
	return out
}

// ChildNodesOfKind returns the node children whose kind is k, in
// order. Used by AST view accessors to find an expected child by
// semantic role (§3 "AST view").
func (t *Tree) ChildNodesOfKind(id NodeID, k SyntaxKind) []NodeID {
	var out []NodeID
	for _, c := range t.nodes[id].children {
		if !c.IsToken && t.nodes[c.Node].kind == k {
			out = append(out, c.Node)
		}
	}
	return out
}

// FirstChildOfKind returns the first node child of kind k, if any.
func (t *Tree) FirstChildOfKind(id NodeID, k SyntaxKind) (NodeID, bool) {
	for _, c := range t.nodes[id].children {
		if !c.IsToken && t.nodes[c.Node].kind == k {
			return c.Node, true
		}
	}
	return 0, false
}

// Tokens returns every token child directly under id, in order,
// including trivia.
func (t *Tree) Tokens(id NodeID) []Token {
	var out []Token
	for _, c := range t.nodes[id].children {
		if c.IsToken {
			out = append(out, c.Token)
		}
	}
	return out
}

// FirstTokenOfKind returns the first direct token child of kind k.
func (t *Tree) FirstTokenOfKind(id NodeID, k SyntaxKind) (Token, bool) {
	for _, c := range t.nodes[id].children {
		if c.IsToken && c.Token.Kind == k {
			return c.Token, true
		}
	}
	return Token{}, false
}

// AllTokens performs an in-order, lossless traversal yielding every
// token in the tree, trivia included. Concatenating their Text
// reproduces the source byte-for-byte (§8 universal invariant 3).
func (t *Tree) AllTokens() []Token {
	var out []Token
	var walk func(NodeID)
	walk = func(id NodeID) {
		for _, c := range t.nodes[id].children {
			if c.IsToken {
				out = append(out, c.Token)
			} else {
				walk(c.Node)
			}
		}
	}
	walk(t.root)
	return out
}

// Text returns the exact source text covered by id, reconstructed
// from its token leaves.
func (t *Tree) Text(id NodeID) string {
	buf := make([]byte, 0, t.Width(id))
	var walk func(NodeID)
	walk = func(id NodeID) {
		for _, c := range t.nodes[id].children {
			if c.IsToken {
				buf = append(buf, c.Token.Text...)
			} else {
				walk(c.Node)
			}
		}
	}
	walk(id)
	return string(buf)
}

// Visit walks id and its descendants depth-first, calling fn on every
// node. If fn returns false, id's children are skipped.
func (t *Tree) Visit(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].children {
		if !c.IsToken {
			t.Visit(c.Node, fn)
		}
	}
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree{root=%s, nodes=%d}", t.Kind(t.root), len(t.nodes))
}
