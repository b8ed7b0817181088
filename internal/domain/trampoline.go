package domain

import (
	"fmt"
	"strings"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// ClassNameSeparator joins class and method names inside a mangled
// function name. The character is a valid Python identifier character
// that never occurs in ordinary code, so decoding is unambiguous.
const ClassNameSeparator = "ᴉ"

// MangleFunctionName encodes a function name and its owning class (empty
// for free functions) into a single identifier: x_{function} for free
// functions, x{SEP}{class}{SEP}{method} for methods.
func MangleFunctionName(name, className string) string {
	if className != "" {
		return "x" + ClassNameSeparator + className + ClassNameSeparator + name
	}

	return "x_" + name
}

// OrigNameFromMutantName decodes a mutant or orig name such as
// "x_foo__mutmut_3" back into the original function and class names.
// Names this component never produces are an invariant violation.
func OrigNameFromMutantName(mutantName string) (funcName, className string, err error) {
	mangled, _, _ := strings.Cut(mutantName, "__mutmut_")

	if first := strings.Index(mangled, ClassNameSeparator); first >= 0 {
		last := strings.LastIndex(mangled, ClassNameSeparator)
		className = mangled[first+len(ClassNameSeparator) : last]
		funcName = mangled[last+len(ClassNameSeparator):]

		return funcName, className, nil
	}

	if !strings.HasPrefix(mangled, "x_") {
		return "", "", fmt.Errorf("malformed mangled name %q", mangled)
	}

	return mangled[2:], "", nil
}

// callingConvention is how a function's calls must be forwarded.
type callingConvention int

const (
	conventionSync callingConvention = iota
	conventionGenerator
	conventionAsync
	conventionAsyncGenerator
)

func (c callingConvention) trampolineName() string {
	switch c {
	case conventionGenerator:
		return "_mutmut_yield_from_trampoline"
	case conventionAsync:
		return "_mutmut_async_trampoline"
	case conventionAsyncGenerator:
		return "_mutmut_async_yield_from_trampoline"
	default:
		return "_mutmut_trampoline"
	}
}

// detectConvention classifies a function definition as sync, generator,
// async or async generator. Yields inside nested defs and lambdas do not
// make the outer function a generator.
func detectConvention(fn *pytree.Node) callingConvention {
	isAsync := fn.HasChildOfKind("async")
	isGenerator := bodyYields(fn.ChildByField("body"))

	switch {
	case isAsync && isGenerator:
		return conventionAsyncGenerator
	case isAsync:
		return conventionAsync
	case isGenerator:
		return conventionGenerator
	default:
		return conventionSync
	}
}

func bodyYields(body *pytree.Node) bool {
	if body == nil {
		return false
	}

	found := false

	body.Walk(func(n *pytree.Node) bool {
		switch n.Kind() {
		case "function_definition", "lambda":
			return false
		case "yield":
			found = true
		}
		return !found
	})

	return found
}

// buildTrampoline renders the dispatch mapping, the forwarding function
// and the signature/rename postscript for one mutated function. The
// output is unindented; the emitter re-indents it for methods.
func buildTrampoline(origName string, mutantNames []string, className string, convention callingConvention) string {
	mangled := MangleFunctionName(origName, className)

	entries := make([]string, 0, len(mutantNames))
	for _, m := range mutantNames {
		entries = append(entries, fmt.Sprintf("'%s': %s", m, m))
	}

	dict := mangled + "__mutmut_mutants : ClassVar[MutantDict] = {\n" +
		strings.Join(entries, ", \n    ") + "\n}"

	accessPrefix, accessSuffix, selfParam, selfArg := "", "", "", ""
	if className != "" {
		accessPrefix = `object.__getattribute__(self, "`
		accessSuffix = `")`
		selfParam = "self, "
		selfArg = ", self"
	}

	call := fmt.Sprintf("%s(%s%s__mutmut_orig%s, %s%s__mutmut_mutants%s, args, kwargs%s)",
		convention.trampolineName(),
		accessPrefix, mangled, accessSuffix,
		accessPrefix, mangled, accessSuffix,
		selfArg)

	var def string

	switch convention {
	case conventionGenerator:
		def = fmt.Sprintf("def %s(%s*args, **kwargs):\n    result = yield from %s\n    return result", origName, selfParam, call)
	case conventionAsync:
		def = fmt.Sprintf("async def %s(%s*args, **kwargs):\n    result = await %s\n    return result", origName, selfParam, call)
	case conventionAsyncGenerator:
		def = fmt.Sprintf("async def %s(%s*args, **kwargs):\n    async for _mutmut_item in %s:\n        yield _mutmut_item", origName, selfParam, call)
	default:
		def = fmt.Sprintf("def %s(%s*args, **kwargs):\n    result = %s\n    return result", origName, selfParam, call)
	}

	postscript := fmt.Sprintf("%s.__signature__ = _mutmut_signature(%s__mutmut_orig)\n%s__mutmut_orig.__name__ = '%s'",
		origName, mangled, mangled, mangled)

	return dict + "\n\n" + def + "\n\n" + postscript
}

// preludeText is the fixed trampoline runtime woven into every mutated
// module. It is self-contained: the marker exception, the stats recorder
// and all four dispatch variants live in the module itself, so mutated
// trees run without this tool installed in the target environment.
const preludeText = `from inspect import signature as _mutmut_signature
from typing import Annotated
from typing import Callable
from typing import ClassVar


MutantDict = Annotated[dict[str, Callable], "Mutant"]


class MutmutProgrammaticFailException(Exception):
    pass


def _mutmut_record_hit(name):
    import builtins
    hits = getattr(builtins, '_mutmut_hits', None)
    if hits is None:
        hits = set()
        builtins._mutmut_hits = hits
    hits.add(name)


def _mutmut_trampoline(orig, mutants, call_args, call_kwargs, self_arg = None):
    """Forward call to original or mutated function, depending on the environment"""
    import os
    mutant_under_test = os.environ.get('MUTANT_UNDER_TEST', '')
    if mutant_under_test == 'fail':
        raise MutmutProgrammaticFailException('Failed programmatically')
    elif mutant_under_test == 'stats':
        _mutmut_record_hit(orig.__module__ + '.' + orig.__name__)
        result = orig(*call_args, **call_kwargs)
        return result
    prefix = orig.__module__ + '.' + orig.__name__ + '__mutmut_'
    if not mutant_under_test.startswith(prefix):
        result = orig(*call_args, **call_kwargs)
        return result
    mutant_name = mutant_under_test.rpartition('.')[-1]
    if self_arg is not None:
        result = mutants[mutant_name](self_arg, *call_args, **call_kwargs)
    else:
        result = mutants[mutant_name](*call_args, **call_kwargs)
    return result


def _mutmut_yield_from_trampoline(orig, mutants, call_args, call_kwargs, self_arg = None):
    import os
    mutant_under_test = os.environ.get('MUTANT_UNDER_TEST', '')
    if mutant_under_test == 'fail':
        raise MutmutProgrammaticFailException('Failed programmatically')
    elif mutant_under_test == 'stats':
        _mutmut_record_hit(orig.__module__ + '.' + orig.__name__)
        result = yield from orig(*call_args, **call_kwargs)
        return result
    prefix = orig.__module__ + '.' + orig.__name__ + '__mutmut_'
    if not mutant_under_test.startswith(prefix):
        result = yield from orig(*call_args, **call_kwargs)
        return result
    mutant_name = mutant_under_test.rpartition('.')[-1]
    if self_arg is not None:
        result = yield from mutants[mutant_name](self_arg, *call_args, **call_kwargs)
    else:
        result = yield from mutants[mutant_name](*call_args, **call_kwargs)
    return result


async def _mutmut_async_trampoline(orig, mutants, call_args, call_kwargs, self_arg = None):
    import os
    mutant_under_test = os.environ.get('MUTANT_UNDER_TEST', '')
    if mutant_under_test == 'fail':
        raise MutmutProgrammaticFailException('Failed programmatically')
    elif mutant_under_test == 'stats':
        _mutmut_record_hit(orig.__module__ + '.' + orig.__name__)
        result = await orig(*call_args, **call_kwargs)
        return result
    prefix = orig.__module__ + '.' + orig.__name__ + '__mutmut_'
    if not mutant_under_test.startswith(prefix):
        result = await orig(*call_args, **call_kwargs)
        return result
    mutant_name = mutant_under_test.rpartition('.')[-1]
    if self_arg is not None:
        result = await mutants[mutant_name](self_arg, *call_args, **call_kwargs)
    else:
        result = await mutants[mutant_name](*call_args, **call_kwargs)
    return result


async def _mutmut_async_yield_from_trampoline(orig, mutants, call_args, call_kwargs, self_arg = None):
    import os
    mutant_under_test = os.environ.get('MUTANT_UNDER_TEST', '')
    if mutant_under_test == 'fail':
        raise MutmutProgrammaticFailException('Failed programmatically')
    elif mutant_under_test == 'stats':
        _mutmut_record_hit(orig.__module__ + '.' + orig.__name__)
        async for _mutmut_item in orig(*call_args, **call_kwargs):
            yield _mutmut_item
        return
    prefix = orig.__module__ + '.' + orig.__name__ + '__mutmut_'
    if not mutant_under_test.startswith(prefix):
        async for _mutmut_item in orig(*call_args, **call_kwargs):
            yield _mutmut_item
        return
    mutant_name = mutant_under_test.rpartition('.')[-1]
    if self_arg is not None:
        source = mutants[mutant_name](self_arg, *call_args, **call_kwargs)
    else:
        source = mutants[mutant_name](*call_args, **call_kwargs)
    async for _mutmut_item in source:
        yield _mutmut_item
`
