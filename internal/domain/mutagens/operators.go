package mutagens

import (
	"pymut.dev/pkg/pymut/internal/pytree"
)

// Each operator token maps to exactly one replacement. Entries for
// membership and identity tests negate the test; everything else swaps to
// its oppositional operator.
var binarySwap = map[string]string{
	"+":  "-",
	"-":  "+",
	"*":  "/",
	"/":  "*",
	"//": "/",
	"%":  "/",
	"<<": ">>",
	">>": "<<",
	"&":  "|",
	"|":  "&",
	"^":  "&",
	"**": "*",
}

var booleanSwap = map[string]string{
	"and": "or",
	"or":  "and",
}

var comparisonSwap = map[string]string{
	"<":      "<=",
	"<=":     "<",
	">":      ">=",
	">=":     ">",
	"==":     "!=",
	"!=":     "==",
	"in":     "not in",
	"not in": "in",
	"is":     "is not",
	"is not": "is",
}

var augmentedSwap = map[string]string{
	"+=":  "-=",
	"-=":  "+=",
	"*=":  "/=",
	"/=":  "*=",
	"//=": "/=",
	"%=":  "/=",
	"<<=": ">>=",
	">>=": "<<=",
	"&=":  "|=",
	"|=":  "&=",
	"^=":  "&=",
	"**=": "*=",
}

var unarySwap = map[string]string{
	"+": "-",
	"-": "+",
}

// ProcessOperatorSwapMutations applies the fixed operator swap tables to
// the operator tokens of binary, boolean, comparison, augmented
// assignment and unary expressions. Chained comparisons yield one
// mutation per operator token.
func ProcessOperatorSwapMutations(n *pytree.Node) []Replacement {
	switch n.Kind() {
	case "binary_operator":
		return swapField(n, "operator", binarySwap)
	case "boolean_operator":
		return swapField(n, "operator", booleanSwap)
	case "augmented_assignment":
		return swapField(n, "operator", augmentedSwap)
	case "unary_operator":
		return swapField(n, "operator", unarySwap)
	case "comparison_operator":
		var out []Replacement
		for _, op := range n.ChildrenByField("operators") {
			if mutated, ok := comparisonSwap[op.Kind()]; ok {
				out = append(out, Replacement{Target: op, Text: mutated})
			}
		}

		return out
	}

	return nil
}

func swapField(n *pytree.Node, field string, table map[string]string) []Replacement {
	op := n.ChildByField(field)
	if op == nil {
		return nil
	}

	mutated, ok := table[op.Kind()]
	if !ok {
		return nil
	}

	return []Replacement{{Target: op, Text: mutated}}
}
