// Package mutagens provides the catalogue of node mutation operators.
package mutagens

import (
	"fmt"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// Marker is the two character marker woven into string and keyword
// argument mutations.
const Marker = "XX"

// Replacement is one candidate mutation yielded by an operator: replace
// the target node's source text with Text. Target is usually the node the
// operator was invoked on, but may be one of its children (an operator
// token, a single argument) or empty text for removals.
type Replacement struct {
	Target *pytree.Node
	Text   string
}

// Operator inspects one node and proposes zero or more replacements. It
// must be pure and must never fail: when semantics are ambiguous it
// yields nothing.
type Operator func(n *pytree.Node) []Replacement

type registration struct {
	kind string
	name string
	op   Operator
}

// Registry is an ordered sequence of (node kind, operator) pairs.
// Registration order is significant: it fixes the order mutations are
// yielded for a node, which in turn fixes mutant numbering.
type Registry struct {
	ordered []registration
	byKind  map[string][]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: map[string][]registration{}}
}

// Register adds an operator for a node kind. Registering the same named
// operator twice for the same kind is a programming error and fails.
func (r *Registry) Register(kind, name string, op Operator) error {
	for _, reg := range r.byKind[kind] {
		if reg.name == name {
			return fmt.Errorf("operator %q already registered for node kind %q", name, kind)
		}
	}

	reg := registration{kind: kind, name: name, op: op}
	r.ordered = append(r.ordered, reg)
	r.byKind[kind] = append(r.byKind[kind], reg)

	return nil
}

// MustRegister is Register for static catalogue construction.
func (r *Registry) MustRegister(kind, name string, op Operator) {
	if err := r.Register(kind, name, op); err != nil {
		panic(err)
	}
}

// Apply invokes every operator registered for n's kind, in registration
// order, and returns all yielded replacements.
func (r *Registry) Apply(n *pytree.Node) []Replacement {
	var out []Replacement

	for _, reg := range r.byKind[n.Kind()] {
		out = append(out, reg.op(n)...)
	}

	return out
}

// Default returns the built-in operator catalogue.
func Default() *Registry {
	r := NewRegistry()

	for _, kind := range []string{"integer", "float"} {
		r.MustRegister(kind, "number", ProcessNumberMutations)
	}

	r.MustRegister("string", "string", ProcessStringMutations)

	for _, kind := range []string{"identifier", "true", "false"} {
		r.MustRegister(kind, "name", ProcessNameMutations)
	}

	r.MustRegister("assignment", "assignment", ProcessAssignmentMutations)
	r.MustRegister("augmented_assignment", "augmented_assignment", ProcessAugmentedAssignmentMutations)

	for _, kind := range []string{"not_operator", "unary_operator"} {
		r.MustRegister(kind, "unary_removal", ProcessUnaryRemovalMutations)
	}

	for _, kind := range []string{"break_statement", "continue_statement"} {
		r.MustRegister(kind, "keyword", ProcessKeywordMutations)
	}

	for _, kind := range []string{
		"binary_operator", "boolean_operator", "comparison_operator",
		"augmented_assignment", "unary_operator",
	} {
		r.MustRegister(kind, "operator_swap", ProcessOperatorSwapMutations)
	}

	r.MustRegister("call", "dict_arguments", ProcessDictArgumentMutations)
	r.MustRegister("call", "argument_removal", ProcessArgumentMutations)
	r.MustRegister("call", "chr_ord", ProcessChrOrdMutations)
	r.MustRegister("call", "aggregate_nudge", ProcessAggregateCallMutations)
	r.MustRegister("call", "map_filter", ProcessMapFilterMutations)
	r.MustRegister("call", "regex_pattern", ProcessRegexMutations)

	r.MustRegister("attribute", "enum_base", ProcessEnumBaseMutations)
	r.MustRegister("lambda", "lambda_body", ProcessLambdaMutations)
	r.MustRegister("match_statement", "match_case", ProcessMatchCaseMutations)

	return r
}
