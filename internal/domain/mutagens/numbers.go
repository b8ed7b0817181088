package mutagens

import (
	"math/big"
	"strconv"
	"strings"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// ProcessNumberMutations increments a numeric literal by one, keeping the
// literal's notation family: integers stay integers, floats stay floats
// and imaginary literals keep their j suffix.
func ProcessNumberMutations(n *pytree.Node) []Replacement {
	text := n.Text()

	if suffix := text[len(text)-1]; suffix == 'j' || suffix == 'J' {
		return imaginaryIncrement(n, text[:len(text)-1])
	}

	switch n.Kind() {
	case "integer":
		return integerIncrement(n, text)
	case "float":
		return floatIncrement(n, text)
	}

	return nil
}

func integerIncrement(n *pytree.Node, text string) []Replacement {
	// Python integers are unbounded, so the increment must not clip at
	// machine width.
	value, ok := new(big.Int).SetString(strings.ReplaceAll(text, "_", ""), 0)
	if !ok {
		return nil
	}

	return []Replacement{{Target: n, Text: value.Add(value, big.NewInt(1)).String()}}
}

func floatIncrement(n *pytree.Node, text string) []Replacement {
	value, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return nil
	}

	return []Replacement{{Target: n, Text: formatFloatLiteral(value + 1)}}
}

func imaginaryIncrement(n *pytree.Node, coefficient string) []Replacement {
	value, err := strconv.ParseFloat(strings.ReplaceAll(coefficient, "_", ""), 64)
	if err != nil {
		return nil
	}

	// The coefficient of an imaginary literal prints without a decimal
	// point when it is integral, matching how Python renders 6j.
	return []Replacement{{Target: n, Text: strconv.FormatFloat(value+1, 'g', -1, 64) + "j"}}
}

// formatFloatLiteral renders a float so that it still parses as a float
// literal, never as an integer.
func formatFloatLiteral(value float64) string {
	text := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}

	return text
}
