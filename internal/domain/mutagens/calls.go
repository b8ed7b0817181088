package mutagens

import (
	"strings"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// NeverMutateCallTargets lists callees whose arguments must never be
// mutated: they guard control flow, and mutating them reliably produces
// unrunnable code instead of a useful test signal.
var NeverMutateCallTargets = map[string]bool{
	"len":        true,
	"isinstance": true,
}

// AggregateCallTargets lists callees whose result gets the plus/minus one
// nudge instead of a name swap.
var AggregateCallTargets = map[string]bool{
	"len": true,
	"sum": true,
	"min": true,
	"max": true,
}

// CalleeName returns the call's function name when the callee is a bare
// identifier, or "" otherwise.
func CalleeName(call *pytree.Node) string {
	fn := call.ChildByField("function")
	if fn == nil || fn.Kind() != "identifier" {
		return ""
	}

	return fn.Text()
}

// callArguments returns the call's arguments, comments excluded. Calls
// whose argument is a bare generator expression have no argument list and
// yield nil.
func callArguments(call *pytree.Node) []*pytree.Node {
	list := call.ChildByField("arguments")
	if list == nil || list.Kind() != "argument_list" {
		return nil
	}

	var out []*pytree.Node

	for _, c := range list.NamedChildren() {
		if c.Kind() != "comment" {
			out = append(out, c)
		}
	}

	return out
}

// ProcessDictArgumentMutations appends the marker to one keyword argument
// name per mutation for calls of the form dict(a=1, b=2). A positional
// argument anywhere in the call disables the operator.
func ProcessDictArgumentMutations(call *pytree.Node) []Replacement {
	if CalleeName(call) != "dict" {
		return nil
	}

	args := callArguments(call)

	var out []Replacement

	for _, arg := range args {
		if arg.Kind() != "keyword_argument" {
			return out
		}

		name := arg.ChildByField("name")
		if name == nil {
			return out
		}

		out = append(out, Replacement{Target: name, Text: name.Text() + Marker})
	}

	return out
}

// ProcessArgumentMutations nulls and removes call arguments: every
// non-starred argument not already None is replaced by None, and when the
// call has more than one argument each argument is dropped in turn.
// Dropping the only argument of a one-argument call is not attempted.
func ProcessArgumentMutations(call *pytree.Node) []Replacement {
	if NeverMutateCallTargets[CalleeName(call)] {
		return nil
	}

	args := callArguments(call)

	var out []Replacement

	for _, arg := range args {
		switch arg.Kind() {
		case "list_splat", "dictionary_splat":
			continue
		case "keyword_argument":
			value := arg.ChildByField("value")
			if value != nil && value.Kind() != "none" {
				out = append(out, Replacement{Target: value, Text: "None"})
			}
		default:
			if arg.Kind() != "none" {
				out = append(out, Replacement{Target: arg, Text: "None"})
			}
		}
	}

	if len(args) > 1 {
		list := call.ChildByField("arguments")
		for i := range args {
			texts := make([]string, 0, len(args)-1)
			for j, other := range args {
				if j != i {
					texts = append(texts, other.Text())
				}
			}

			out = append(out, Replacement{
				Target: list,
				Text:   "(" + strings.Join(texts, ", ") + ")",
			})
		}
	}

	return out
}

// ProcessChrOrdMutations nudges character conversions by one without
// swapping the function names, which would usually just raise.
func ProcessChrOrdMutations(call *pytree.Node) []Replacement {
	name := CalleeName(call)
	if name != "chr" && name != "ord" {
		return nil
	}

	args := callArguments(call)
	if len(args) != 1 || args[0].Kind() == "keyword_argument" {
		return nil
	}

	if name == "chr" {
		return []Replacement{{Target: call, Text: "chr(" + args[0].Text() + " + 1)"}}
	}

	return []Replacement{{Target: call, Text: "(ord(" + args[0].Text() + ") + 1)"}}
}

// ProcessAggregateCallMutations nudges the result of len/sum/min/max by
// plus and minus one. The nudge is parenthesized so it keeps binding to
// the call result inside larger expressions (2 * len(x) must become
// 2 * (len(x) + 1), not 2 * len(x) + 1).
func ProcessAggregateCallMutations(call *pytree.Node) []Replacement {
	if !AggregateCallTargets[CalleeName(call)] {
		return nil
	}

	return []Replacement{
		{Target: call, Text: "(" + call.Text() + " + 1)"},
		{Target: call, Text: "(" + call.Text() + " - 1)"},
	}
}

// ProcessMapFilterMutations drops the function argument's effect
// entirely: map(fn, xs) and filter(fn, xs) each become list(xs).
func ProcessMapFilterMutations(call *pytree.Node) []Replacement {
	name := CalleeName(call)
	if name != "map" && name != "filter" {
		return nil
	}

	args := callArguments(call)
	if len(args) != 2 {
		return nil
	}

	for _, arg := range args {
		switch arg.Kind() {
		case "keyword_argument", "list_splat", "dictionary_splat":
			return nil
		}
	}

	return []Replacement{{Target: call, Text: "list(" + args[1].Text() + ")"}}
}
