package mutagens

import (
	"pymut.dev/pkg/pymut/internal/pytree"
)

// nameMapping is the fixed table of oppositional identifiers. It is kept
// deliberately small: swaps like len/sum or min/max are excluded because
// they tend to manufacture equivalent or trivially crashing mutants.
var nameMapping = map[string]string{
	"True":     "False",
	"False":    "True",
	"copy":     "deepcopy",
	"deepcopy": "copy",
	"sorted":   "reversed",
	"reversed": "sorted",
	"any":      "all",
	"all":      "any",
	"StrEnum":  "Enum",
	"IntEnum":  "Enum",
}

// ProcessNameMutations swaps an identifier against the oppositional name
// table. Unknown names yield nothing.
func ProcessNameMutations(n *pytree.Node) []Replacement {
	mutated, ok := nameMapping[n.Text()]
	if !ok {
		return nil
	}

	return []Replacement{{Target: n, Text: mutated}}
}
