package mutagens

import (
	"pymut.dev/pkg/pymut/internal/pytree"
)

// ProcessEnumBaseMutations swaps enum base classes written in attribute
// form: enum.Enum becomes enum.StrEnum and enum.IntEnum, while the
// specialized bases each collapse back to enum.Enum.
func ProcessEnumBaseMutations(n *pytree.Node) []Replacement {
	object := n.ChildByField("object")
	attr := n.ChildByField("attribute")

	if object == nil || attr == nil {
		return nil
	}

	if object.Kind() != "identifier" || object.Text() != "enum" {
		return nil
	}

	switch attr.Text() {
	case "Enum":
		return []Replacement{
			{Target: attr, Text: "StrEnum"},
			{Target: attr, Text: "IntEnum"},
		}
	case "StrEnum", "IntEnum":
		return []Replacement{{Target: attr, Text: "Enum"}}
	}

	return nil
}
