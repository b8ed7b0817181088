package domain

import (
	"strings"

	"pymut.dev/pkg/pymut/internal/pytree"
)

func isDefinitionKind(kind string) bool {
	switch kind {
	case "function_definition", "class_definition", "decorated_definition":
		return true
	}

	return false
}

// combineMutationsToSource reassembles the module: leading statements
// verbatim, then the trampoline prelude, then every top-level statement
// either woven (mutated functions and class methods) or copied untouched.
// It returns the final source, the generated mutant names in emission
// order and a note per dropped mutant.
func combineMutationsToSource(mod *pytree.Module, mutations []Mutation) (string, []EmittedMutant, []string, map[string]string, error) {
	grouped := groupByEnclosing(mutations)
	children := mod.Root.Children()

	firstDef := -1

	for i, child := range children {
		if isDefinitionKind(child.Kind()) {
			firstDef = i
			break
		}
	}

	var (
		b           strings.Builder
		mutantNames []EmittedMutant
		dropped     []string
	)

	hashes := map[string]string{}

	if firstDef < 0 {
		b.Write(mod.Source)
		if len(mod.Source) > 0 && mod.Source[len(mod.Source)-1] != '\n' {
			b.WriteByte('\n')
		}

		b.WriteString("\n\n")
		b.WriteString(preludeText)

		return b.String(), nil, nil, hashes, nil
	}

	insertAt := children[firstDef].Start()

	b.Write(mod.Source[:insertAt])
	b.WriteString(preludeText)
	b.WriteString("\n\n")

	cursor := insertAt

	for _, child := range children[firstDef:] {
		b.Write(mod.Source[cursor:child.Start()])
		cursor = child.End()

		switch {
		case child.Kind() == "function_definition" && len(grouped[child]) > 0:
			arrangement, err := functionTrampolineArrangement(child, grouped[child], "", "")
			if err != nil {
				return "", nil, nil, nil, err
			}

			b.WriteString(arrangement.text)
			mutantNames = append(mutantNames, arrangement.mutants...)
			dropped = append(dropped, arrangement.dropped...)
			hashes[arrangement.mangledName] = arrangement.sourceHash

		case child.Kind() == "class_definition":
			text, names, notes, err := weaveClass(mod, child, grouped, hashes)
			if err != nil {
				return "", nil, nil, nil, err
			}

			b.WriteString(text)
			mutantNames = append(mutantNames, names...)
			dropped = append(dropped, notes...)

		default:
			b.WriteString(child.Text())
		}
	}

	b.Write(mod.Source[cursor:])

	return b.String(), mutantNames, dropped, hashes, nil
}

// weaveClass rewrites a class body, replacing each mutated method with its
// trampoline arrangement. Classes with a single-line body are deliberately
// left unmutated.
func weaveClass(mod *pytree.Module, class *pytree.Node, grouped map[*pytree.Node][]Mutation, hashes map[string]string) (string, []EmittedMutant, []string, error) {
	body := class.ChildByField("body")
	if body == nil || body.Kind() != "block" || body.Line() == class.Line() {
		return class.Text(), nil, nil, nil
	}

	className := ""
	if name := class.ChildByField("name"); name != nil {
		className = name.Text()
	}

	var (
		edits       []pytree.Edit
		mutantNames []EmittedMutant
		dropped     []string
	)

	for _, member := range body.NamedChildren() {
		if member.Kind() != "function_definition" || len(grouped[member]) == 0 {
			continue
		}

		indent := leadingIndent(mod.Source, member)

		arrangement, err := functionTrampolineArrangement(member, grouped[member], className, indent)
		if err != nil {
			return "", nil, nil, err
		}

		edits = append(edits, pytree.Edit{Target: member, Text: arrangement.text})
		mutantNames = append(mutantNames, arrangement.mutants...)
		dropped = append(dropped, arrangement.dropped...)
		hashes[arrangement.mangledName] = arrangement.sourceHash
	}

	if len(edits) == 0 {
		return class.Text(), nil, nil, nil
	}

	text, err := pytree.Splice(class, edits...)
	if err != nil {
		return "", nil, nil, err
	}

	return text, mutantNames, dropped, nil
}

// leadingIndent returns the whitespace between the start of n's line and
// n itself, or "" when anything but whitespace precedes it.
func leadingIndent(source []byte, n *pytree.Node) string {
	start := n.Start()

	lineStart := start
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}

	prefix := string(source[lineStart:start])
	if strings.TrimSpace(prefix) != "" {
		return ""
	}

	return prefix
}
