package mutagens

import (
	"pymut.dev/pkg/pymut/internal/pytree"
)

// ProcessUnaryRemovalMutations drops a boolean-not or bitwise-invert
// operator, leaving just the operand. Unary plus and minus are handled by
// the operator swap table instead.
func ProcessUnaryRemovalMutations(n *pytree.Node) []Replacement {
	if n.Kind() == "not_operator" {
		if arg := n.ChildByField("argument"); arg != nil {
			return []Replacement{{Target: n, Text: arg.Text()}}
		}

		return nil
	}

	op := n.ChildByField("operator")
	arg := n.ChildByField("argument")

	if op == nil || arg == nil || op.Kind() != "~" {
		return nil
	}

	return []Replacement{{Target: n, Text: arg.Text()}}
}

// ProcessKeywordMutations applies the fixed structural keyword mapping:
// break becomes return, continue becomes break.
func ProcessKeywordMutations(n *pytree.Node) []Replacement {
	switch n.Kind() {
	case "break_statement":
		return []Replacement{{Target: n, Text: "return"}}
	case "continue_statement":
		return []Replacement{{Target: n, Text: "break"}}
	}

	return nil
}
