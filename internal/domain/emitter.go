package domain

import (
	"crypto/md5" // #nosec G501 - fingerprint for change detection, not security
	"encoding/hex"
	"fmt"
	"strings"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// EmittedMutant pairs a generated mutant name with the mutation it
// carries.
type EmittedMutant struct {
	Name     string
	Mutation Mutation
}

// functionArrangement is the woven output for one mutated function: the
// text that replaces the original definition, the emitted mutants and a
// note per mutant that had to be dropped.
type functionArrangement struct {
	text    string
	mutants []EmittedMutant
	dropped []string

	// mangledName and sourceHash fingerprint the original function so a
	// later run can tell whether its recorded results are still valid.
	mangledName string
	sourceHash  string
}

// functionTrampolineArrangement emits the renamed original, one patched
// copy per mutation, the dispatch mapping and the forwarding function for
// a single function or method. indent is the method's leading whitespace,
// empty for free functions. Mutants whose patched text no longer parses
// are dropped individually; the rest of the function's mutants survive.
func functionTrampolineArrangement(fn *pytree.Node, mutations []Mutation, className, indent string) (functionArrangement, error) {
	nameNode := fn.ChildByField("name")
	if nameNode == nil {
		return functionArrangement{}, fmt.Errorf("function definition without a name at line %d", fn.Line())
	}

	name := nameNode.Text()
	mangled := MangleFunctionName(name, className) + "__mutmut"

	origText, err := pytree.Splice(fn, pytree.Edit{Target: nameNode, Text: mangled + "_orig"})
	if err != nil {
		return functionArrangement{}, err
	}

	sum := md5.Sum([]byte(fn.Text())) // #nosec G401 - change detection only

	arrangement := functionArrangement{
		mangledName: MangleFunctionName(name, className),
		sourceHash:  hex.EncodeToString(sum[:]),
	}

	var b strings.Builder

	b.WriteString(origText)

	for i, m := range mutations {
		mutantName := fmt.Sprintf("%s_%d", mangled, i+1)

		candidate, err := pytree.Splice(fn,
			pytree.Edit{Target: nameNode, Text: mutantName},
			pytree.Edit{Target: m.Target, Text: m.Text},
		)
		if err != nil {
			arrangement.dropped = append(arrangement.dropped,
				fmt.Sprintf("%s: %v", mutantName, err))
			continue
		}

		if err := checkFunctionText(candidate, indent); err != nil {
			arrangement.dropped = append(arrangement.dropped,
				fmt.Sprintf("%s does not re-parse: %v", mutantName, err))
			continue
		}

		arrangement.mutants = append(arrangement.mutants, EmittedMutant{Name: mutantName, Mutation: m})

		b.WriteString("\n\n")
		b.WriteString(indent)
		b.WriteString(candidate)
	}

	names := make([]string, 0, len(arrangement.mutants))
	for _, m := range arrangement.mutants {
		names = append(names, m.Name)
	}

	trampoline := buildTrampoline(name, names, className, detectConvention(fn))

	b.WriteString("\n\n")
	b.WriteString(indentBlock(trampoline, indent))

	arrangement.text = b.String()

	return arrangement, nil
}

// checkFunctionText re-parses one emitted definition. Method text keeps
// its original inner indentation, so it is wrapped in a synthetic class
// for the check.
func checkFunctionText(text, indent string) error {
	if indent == "" {
		return pytree.Check([]byte(text + "\n"))
	}

	return pytree.Check([]byte("class _check_:\n" + indent + text + "\n"))
}

// indentBlock prefixes every non-empty line, the first included, with
// indent.
func indentBlock(text, indent string) string {
	if indent == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}
