package domain

import (
	"pymut.dev/pkg/pymut/internal/domain/mutagens"
	"pymut.dev/pkg/pymut/internal/pytree"
)

// Mutation is one recorded replacement: the node an operator matched, the
// node whose span actually changes, the replacement text, and the
// top-level function or method containing the match. Enclosing is nil for
// module-level matches; those are collected but never woven, since only
// function bodies get trampolined.
type Mutation struct {
	Node      *pytree.Node
	Target    *pytree.Node
	Text      string
	Enclosing *pytree.Node
}

var defaultRegistry = mutagens.Default()

// CreateMutations parses code and walks it depth first, applying the
// operator catalogue subject to the exclusion policy. coveredLines nil
// means mutate everywhere; a non-nil set restricts mutation to its lines.
func CreateMutations(path string, code []byte, coveredLines map[int]bool) (*pytree.Module, []Mutation, error) {
	mod, err := pytree.Parse(path, code)
	if err != nil {
		return nil, nil, err
	}

	filter := newLineFilter(pragmaNoMutateLines(code), coveredLines, coveredLines != nil)
	ancestors := outerFunctionTable(mod.Root)

	var mutations []Mutation

	mod.Root.Walk(func(n *pytree.Node) bool {
		if skipSubtree(n) {
			return false
		}

		if filter.allows(n.Line()) {
			for _, r := range defaultRegistry.Apply(n) {
				mutations = append(mutations, Mutation{
					Node:      n,
					Target:    r.Target,
					Text:      r.Text,
					Enclosing: ancestors[n],
				})
			}
		}

		return !skipDescend(n)
	})

	return mod, mutations, nil
}

// outerFunctionTable links every node to the top-level function or class
// method containing it. Nested functions map to their outermost def; class
// attributes and module-level nodes are absent from the table.
func outerFunctionTable(root *pytree.Node) map[*pytree.Node]*pytree.Node {
	table := map[*pytree.Node]*pytree.Node{}

	for _, child := range root.NamedChildren() {
		switch child.Kind() {
		case "function_definition":
			markContained(table, child, child)
		case "class_definition":
			body := child.ChildByField("body")
			if body == nil || body.Kind() != "block" {
				continue
			}

			for _, member := range body.NamedChildren() {
				if member.Kind() == "function_definition" {
					markContained(table, member, member)
				}
			}
		}
	}

	return table
}

func markContained(table map[*pytree.Node]*pytree.Node, n, top *pytree.Node) {
	n.Walk(func(d *pytree.Node) bool {
		table[d] = top
		return true
	})
}

// groupByEnclosing buckets mutations by their top-level function,
// preserving collection order inside each bucket. Module-level mutations
// are dropped here.
func groupByEnclosing(mutations []Mutation) map[*pytree.Node][]Mutation {
	grouped := map[*pytree.Node][]Mutation{}

	for _, m := range mutations {
		if m.Enclosing != nil {
			grouped[m.Enclosing] = append(grouped[m.Enclosing], m)
		}
	}

	return grouped
}
