// Package pytree wraps the tree-sitter Python grammar behind an immutable
// value tree. Nodes carry their byte span in the original source, so node
// identity is positional: two textually identical subtrees are still
// distinct nodes. All edits are expressed as span splices against the
// original bytes; the parsed tree itself is never modified.
package pytree

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ParseError reports that a file could not be parsed as Python at all.
// The caller is expected to copy such files through unmutated.
type ParseError struct {
	Path string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid python syntax in %s near line %d", e.Path, e.Line)
}

// Node is one node of the concrete syntax tree. Anonymous tokens (operators,
// keywords, punctuation) are included; their Kind is the token text.
// Synthesized nodes (created by Synth) carry replacement text but no span.
type Node struct {
	kind     string
	field    string
	named    bool
	text     string
	start    int // byte offset in the module source; -1 for synthesized nodes
	end      int
	line     int // 1-based start line
	col      int // 0-based start column
	children []*Node
}

// Module is a parsed source file.
type Module struct {
	Source []byte
	Root   *Node
}

var pythonLanguage = sitter.NewLanguage(python.Language())

// Parse parses source as a Python module. A syntactically broken file yields
// a ParseError; tree-sitter's error recovery is deliberately not exposed.
func Parse(path string, source []byte) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: path, Line: 0}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path, Line: firstErrorLine(root)}
	}

	return &Module{
		Source: source,
		Root:   convert(root, "", source),
	}, nil
}

// Check re-parses source and reports whether it is syntactically valid.
// It is used to validate single mutants and whole assembled files.
func Check(source []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return &ParseError{Line: 0}
	}
	defer tree.Close()

	if root := tree.RootNode(); root.HasError() {
		return &ParseError{Line: firstErrorLine(root)}
	}

	return nil
}

func firstErrorLine(node *sitter.Node) int {
	if node.IsError() || node.IsMissing() {
		return int(node.StartPosition().Row) + 1
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if line := firstErrorLine(node.Child(i)); line > 0 {
			return line
		}
	}

	return 0
}

func convert(n *sitter.Node, field string, source []byte) *Node {
	node := &Node{
		kind:  n.Kind(),
		field: field,
		named: n.IsNamed(),
		text:  string(source[n.StartByte():n.EndByte()]),
		start: int(n.StartByte()),
		end:   int(n.EndByte()),
		line:  int(n.StartPosition().Row) + 1,
		col:   int(n.StartPosition().Column),
	}

	count := n.ChildCount()
	if count > 0 {
		node.children = make([]*Node, 0, count)
		for i := uint(0); i < count; i++ {
			childField := n.FieldNameForChild(uint32(i))
			node.children = append(node.children, convert(n.Child(i), childField, source))
		}
	}

	return node
}

// Synth creates a synthesized replacement node carrying only text. It has no
// span and can never be the target of a splice, only the source of one.
func Synth(kind, text string) *Node {
	return &Node{kind: kind, text: text, start: -1, end: -1}
}

// Kind returns the node's grammar type. For anonymous tokens this is the
// token text itself (e.g. "==", "not in").
func (n *Node) Kind() string { return n.kind }

// Field returns the grammar field name this node occupies in its parent,
// or "" if it has none.
func (n *Node) Field() string { return n.field }

// IsNamed reports whether the node is a named grammar rule rather than an
// anonymous token.
func (n *Node) IsNamed() bool { return n.named }

// Text returns the node's source text (or synthesized replacement text).
func (n *Node) Text() string { return n.text }

// Synthesized reports whether the node was created by Synth rather than
// parsed from source.
func (n *Node) Synthesized() bool { return n.start < 0 }

// Start returns the node's starting byte offset in the module source.
func (n *Node) Start() int { return n.start }

// End returns the byte offset just past the node in the module source.
func (n *Node) End() int { return n.end }

// Line returns the 1-based source line the node starts on.
func (n *Node) Line() int { return n.line }

// Col returns the 0-based column the node starts on.
func (n *Node) Col() int { return n.col }

// Children returns all children, anonymous tokens included.
func (n *Node) Children() []*Node { return n.children }

// NamedChildren returns only the named children.
func (n *Node) NamedChildren() []*Node {
	var out []*Node

	for _, c := range n.children {
		if c.named {
			out = append(out, c)
		}
	}

	return out
}

// ChildByField returns the first child occupying the given grammar field.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.children {
		if c.field == field {
			return c
		}
	}

	return nil
}

// ChildrenByField returns every child occupying the given grammar field.
func (n *Node) ChildrenByField(field string) []*Node {
	var out []*Node

	for _, c := range n.children {
		if c.field == field {
			out = append(out, c)
		}
	}

	return out
}

// ChildrenOfKind returns the direct children of the given kind.
func (n *Node) ChildrenOfKind(kind string) []*Node {
	var out []*Node

	for _, c := range n.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}

	return out
}

// HasChildOfKind reports whether any direct child has the given kind.
func (n *Node) HasChildOfKind(kind string) bool {
	for _, c := range n.children {
		if c.kind == kind {
			return true
		}
	}

	return false
}

// Contains reports whether other lies within n's span. A node contains
// itself. Synthesized nodes contain nothing.
func (n *Node) Contains(other *Node) bool {
	if n.Synthesized() || other.Synthesized() {
		return false
	}

	return n.start <= other.start && other.end <= n.end
}

// Walk visits n and every descendant in depth-first pre-order. Returning
// false from visit prunes that subtree.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}

	for _, c := range n.children {
		c.Walk(visit)
	}
}

// Edit replaces one parsed node's span with replacement text.
type Edit struct {
	Target *Node
	Text   string
}

// Splice renders window's source text with every edit applied. Edits must
// target parsed nodes inside window's span and must not overlap; violating
// either is a programming error, not an input condition.
func Splice(window *Node, edits ...Edit) (string, error) {
	for _, e := range edits {
		if e.Target.Synthesized() {
			return "", fmt.Errorf("cannot splice over a synthesized node")
		}

		if !window.Contains(e.Target) {
			return "", fmt.Errorf("edit target %s at %d..%d outside window %d..%d",
				e.Target.kind, e.Target.start, e.Target.end, window.start, window.end)
		}
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Target.start < sorted[j].Target.start })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Target.start < sorted[i-1].Target.end {
			return "", fmt.Errorf("overlapping edits at %d and %d",
				sorted[i-1].Target.start, sorted[i].Target.start)
		}
	}

	var b strings.Builder

	cursor := window.start
	for _, e := range sorted {
		b.WriteString(window.text[cursor-window.start : e.Target.start-window.start])
		b.WriteString(e.Text)
		cursor = e.Target.end
	}

	b.WriteString(window.text[cursor-window.start:])

	return b.String(), nil
}
