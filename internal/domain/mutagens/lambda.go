package mutagens

import (
	"pymut.dev/pkg/pymut/internal/pytree"
)

// ProcessLambdaMutations replaces a lambda's body: a body of None becomes
// 0, anything else becomes None.
func ProcessLambdaMutations(n *pytree.Node) []Replacement {
	body := n.ChildByField("body")
	if body == nil {
		return nil
	}

	if body.Kind() == "none" {
		return []Replacement{{Target: body, Text: "0"}}
	}

	return []Replacement{{Target: body, Text: "None"}}
}

// ProcessMatchCaseMutations drops one case clause per mutation from a
// match statement. A match with a single case is left alone, since
// removing its only case rarely survives the import.
func ProcessMatchCaseMutations(n *pytree.Node) []Replacement {
	body := n.ChildByField("body")
	if body == nil {
		return nil
	}

	cases := body.ChildrenOfKind("case_clause")
	if len(cases) <= 1 {
		return nil
	}

	out := make([]Replacement, 0, len(cases))
	for _, c := range cases {
		out = append(out, Replacement{Target: c, Text: ""})
	}

	return out
}
