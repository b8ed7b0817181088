package mutagens

import (
	"pymut.dev/pkg/pymut/internal/pytree"
)

// ProcessAssignmentMutations replaces the right-hand value of an
// assignment: None becomes an empty string literal, anything else becomes
// None. Pure annotations without a value are not mutated.
func ProcessAssignmentMutations(n *pytree.Node) []Replacement {
	right := n.ChildByField("right")
	if right == nil {
		return nil
	}

	if right.Kind() == "none" {
		return []Replacement{{Target: right, Text: `""`}}
	}

	return []Replacement{{Target: right, Text: "None"}}
}

// ProcessAugmentedAssignmentMutations rewrites `x += v` and friends to a
// plain `x = v`, so the compound update never happens the compound way.
func ProcessAugmentedAssignmentMutations(n *pytree.Node) []Replacement {
	left := n.ChildByField("left")
	right := n.ChildByField("right")

	if left == nil || right == nil {
		return nil
	}

	return []Replacement{{Target: n, Text: left.Text() + " = " + right.Text()}}
}
