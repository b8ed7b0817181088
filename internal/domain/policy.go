package domain

import (
	"strings"

	"pymut.dev/pkg/pymut/internal/domain/mutagens"
	"pymut.dev/pkg/pymut/internal/pytree"
)

// NeverMutateFunctionNames lists functions whose semantics the trampoline
// itself relies on: mutating how attribute access works breaks every
// dispatch into the mutated class.
var NeverMutateFunctionNames = map[string]bool{
	"__getattribute__": true,
	"__setattr__":      true,
	"__new__":          true,
}

// skipSubtree reports whether n and everything below it must be left
// alone: type annotations, decorated definitions, functions on the
// never-mutate list and non-trivial parameter defaults, which execute at
// import time and would blow up the module load when mutated.
func skipSubtree(n *pytree.Node) bool {
	switch n.Kind() {
	case "type":
		return true
	case "decorated_definition":
		return true
	case "function_definition":
		name := n.ChildByField("name")
		return name != nil && NeverMutateFunctionNames[name.Text()]
	case "default_parameter", "typed_default_parameter":
		value := n.ChildByField("value")
		return value != nil && !isSimpleDefault(value)
	}

	return false
}

// skipDescend reports whether n's children must not be visited even
// though operators still apply to n itself. This keeps the arguments of
// control-flow guards like len and isinstance out of reach while the call
// as a whole can still receive the aggregate nudge.
func skipDescend(n *pytree.Node) bool {
	return n.Kind() == "call" && mutagens.NeverMutateCallTargets[mutagens.CalleeName(n)]
}

func isSimpleDefault(n *pytree.Node) bool {
	switch n.Kind() {
	case "identifier", "integer", "float", "string", "true", "false", "none":
		return true
	}

	return false
}

// lineFilter rejects mutations by source line: pragma-marked lines always,
// and lines outside the covered set when one is supplied. A present but
// empty covered set means mutate nothing.
type lineFilter struct {
	ignored map[int]bool
	covered map[int]bool
	useCov  bool
}

func newLineFilter(ignored map[int]bool, covered map[int]bool, useCovered bool) lineFilter {
	return lineFilter{ignored: ignored, covered: covered, useCov: useCovered}
}

func (f lineFilter) allows(line int) bool {
	if f.ignored[line] {
		return false
	}

	if f.useCov && !f.covered[line] {
		return false
	}

	return true
}

// pragmaNoMutateLines scans source text for lines carrying a
// "# pragma: no mutate" comment and returns their 1-based numbers.
func pragmaNoMutateLines(code []byte) map[int]bool {
	lines := map[int]bool{}

	for i, line := range strings.Split(string(code), "\n") {
		_, after, found := strings.Cut(line, "# pragma:")
		if found && strings.Contains(after, "no mutate") {
			lines[i+1] = true
		}
	}

	return lines
}
