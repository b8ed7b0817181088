package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pymut.dev/pkg/pymut/internal/pytree"
)

func mutantNames(result MutatedFile) []string {
	names := make([]string, 0, len(result.Mutants))
	for _, m := range result.Mutants {
		names = append(names, m.Name)
	}

	return names
}

func TestMutateFileContentsTrampolineDispatch(t *testing.T) {
	src := "def foo(a, b, c):\n    return a + b * c\n"

	result, err := MutateFileContents("foo.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"x_foo__mutmut_1", "x_foo__mutmut_2"}, mutantNames(result))

	// original copy, one mutant per operator swap, dispatch and forwarding
	assert.Contains(t, result.Source, "def x_foo__mutmut_orig(a, b, c):\n    return a + b * c")
	assert.Contains(t, result.Source, "def x_foo__mutmut_1(a, b, c):\n    return a - b * c")
	assert.Contains(t, result.Source, "def x_foo__mutmut_2(a, b, c):\n    return a + b / c")
	assert.Contains(t, result.Source, "x_foo__mutmut_mutants : ClassVar[MutantDict] = {\n'x_foo__mutmut_1': x_foo__mutmut_1, \n    'x_foo__mutmut_2': x_foo__mutmut_2\n}")
	assert.Contains(t, result.Source, "def foo(*args, **kwargs):\n    result = _mutmut_trampoline(x_foo__mutmut_orig, x_foo__mutmut_mutants, args, kwargs)\n    return result")
	assert.Contains(t, result.Source, "foo.__signature__ = _mutmut_signature(x_foo__mutmut_orig)")
	assert.Contains(t, result.Source, "x_foo__mutmut_orig.__name__ = 'x_foo'")

	// prelude woven in ahead of the first definition
	assert.Less(t,
		strings.Index(result.Source, "def _mutmut_trampoline"),
		strings.Index(result.Source, "def x_foo__mutmut_orig"))

	// the whole output still parses
	assert.NoError(t, pytree.Check([]byte(result.Source)))
}

func TestMutateFileContentsIsDeterministic(t *testing.T) {
	src := "import os\n\ndef foo(a):\n    return a + 1\n\nclass C:\n    def m(self):\n        return True\n"

	first, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	second, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Source, second.Source)
	assert.Equal(t, mutantNames(first), mutantNames(second))
}

func TestMutateFileContentsLeadingStatements(t *testing.T) {
	src := "from __future__ import annotations\nimport os\n\ndef foo():\n    return 1\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	future := strings.Index(result.Source, "from __future__ import annotations")
	prelude := strings.Index(result.Source, "from inspect import signature as _mutmut_signature")
	orig := strings.Index(result.Source, "def x_foo__mutmut_orig")

	require.GreaterOrEqual(t, future, 0)
	require.Greater(t, prelude, future)
	require.Greater(t, orig, prelude)
}

func TestMutateFileContentsMethodWeaving(t *testing.T) {
	src := "class Greeter:\n    def greet(self, name):\n        return name + '!'\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Mutants)

	mangled := MangleFunctionName("greet", "Greeter")

	for _, m := range result.Mutants {
		assert.True(t, strings.HasPrefix(m.Name, mangled+"__mutmut_"),
			"mutant %q not mangled with class name", m.Name)
	}

	// unbound lookups go through the attribute indirection, self is
	// routed out of band
	assert.Contains(t, result.Source, `object.__getattribute__(self, "`+mangled+`__mutmut_orig")`)
	assert.Contains(t, result.Source, "args, kwargs, self)")
	assert.Contains(t, result.Source, "    def greet(self, *args, **kwargs):")

	assert.NoError(t, pytree.Check([]byte(result.Source)))
}

func TestMutateFileContentsModuleLevelMutationsDropped(t *testing.T) {
	src := "x = 1\n\ndef foo():\n    return 2\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"x_foo__mutmut_1"}, mutantNames(result))

	// the module-level statement is copied through untouched
	assert.True(t, strings.HasPrefix(result.Source, "x = 1\n"))
	assert.Contains(t, result.Source, "def x_foo__mutmut_1():\n    return 3")
}

func TestMutateFileContentsPragmaSuppression(t *testing.T) {
	src := "def foo(a):\n    return a + 1  # pragma: no mutate\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Mutants)

	// function without mutations is emitted unchanged
	assert.Contains(t, result.Source, "def foo(a):\n    return a + 1")
	assert.NotContains(t, result.Source, "x_foo__mutmut_orig")
}

func TestMutateFileContentsCoverageFilter(t *testing.T) {
	src := "def foo(a):\n    a = a + 1\n    return a + 2\n"

	all, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	onlyLineTwo, err := MutateFileContents("m.py", []byte(src), map[int]bool{2: true})
	require.NoError(t, err)

	assert.Greater(t, len(all.Mutants), len(onlyLineTwo.Mutants))
	require.NotEmpty(t, onlyLineTwo.Mutants)

	for _, m := range onlyLineTwo.Mutants {
		assert.Equal(t, 2, m.Mutation.Node.Line())
	}

	// an empty covered set mutates nothing
	none, err := MutateFileContents("m.py", []byte(src), map[int]bool{})
	require.NoError(t, err)
	assert.Empty(t, none.Mutants)
}

func TestMutateFileContentsNeverMutateCalls(t *testing.T) {
	src := "def foo(x):\n    return isinstance(x, int)\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Mutants)

	src = "def foo(x):\n    return len(x)\n"

	result, err = MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	// only the aggregate nudge fires, never the argument operators
	assert.Equal(t, []string{"x_foo__mutmut_1", "x_foo__mutmut_2"}, mutantNames(result))
	assert.Contains(t, result.Source, "return (len(x) + 1)")
	assert.Contains(t, result.Source, "return (len(x) - 1)")
}

func TestMutateFileContentsAggregateNudgeInProduct(t *testing.T) {
	// the nudge binds to the call result even under a tighter operator
	src := "def foo(x):\n    return 2 * len(x)\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Contains(t, result.Source, "return 2 * (len(x) + 1)")
	assert.Contains(t, result.Source, "return 2 * (len(x) - 1)")
	assert.NotContains(t, result.Source, "return 2 * len(x) + 1")
}

func TestMutateFileContentsDropsUnpatchableMutants(t *testing.T) {
	// the name operator matches the def's own name, which collides with
	// the rename edit; that single mutant is dropped, the rest survive.
	src := "def deepcopy(a):\n    return a + 1\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	require.Len(t, result.Dropped, 1)
	assert.Contains(t, result.Dropped[0], "x_deepcopy__mutmut_1")

	// numbering keeps the traversal index, leaving a gap
	assert.Equal(t, []string{"x_deepcopy__mutmut_2", "x_deepcopy__mutmut_3"}, mutantNames(result))
	assert.NoError(t, pytree.Check([]byte(result.Source)))
}

func TestMutateFileContentsParseErrorPropagates(t *testing.T) {
	_, err := MutateFileContents("bad.py", []byte("def broken(:\n"), nil)

	var parseErr *pytree.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "bad.py", parseErr.Path)
}

func TestMutateFileContentsNoDefinitions(t *testing.T) {
	src := "x = 1\ny = 2\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Empty(t, result.Mutants)
	assert.True(t, strings.HasPrefix(result.Source, "x = 1\ny = 2\n"))
	assert.Contains(t, result.Source, "def _mutmut_trampoline")
	assert.NoError(t, pytree.Check([]byte(result.Source)))
}

func TestMutateFileContentsDecoratedDefinitionsUntouched(t *testing.T) {
	src := "@app.route('/x')\ndef handler():\n    return 1\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Empty(t, result.Mutants)
	assert.Contains(t, result.Source, "@app.route('/x')\ndef handler():\n    return 1")
}

func TestMangleFunctionNameRoundTrip(t *testing.T) {
	fn, class, err := OrigNameFromMutantName("x_foo__mutmut_3")
	require.NoError(t, err)
	assert.Equal(t, "foo", fn)
	assert.Equal(t, "", class)

	mangled := MangleFunctionName("greet", "Greeter")
	fn, class, err = OrigNameFromMutantName(mangled + "__mutmut_orig")
	require.NoError(t, err)
	assert.Equal(t, "greet", fn)
	assert.Equal(t, "Greeter", class)

	_, _, err = OrigNameFromMutantName("unmangled__mutmut_1")
	assert.Error(t, err)
}

func TestDetectConvention(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want callingConvention
	}{
		{name: "sync", src: "def f():\n    return 1\n", want: conventionSync},
		{name: "generator", src: "def f():\n    yield 1\n", want: conventionGenerator},
		{name: "async", src: "async def f():\n    return 1\n", want: conventionAsync},
		{name: "async generator", src: "async def f():\n    yield 1\n", want: conventionAsyncGenerator},
		{name: "nested generator stays sync", src: "def f():\n    def g():\n        yield 1\n    return g\n", want: conventionSync},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := pytree.Parse("m.py", []byte(tt.src))
			require.NoError(t, err)

			fns := mod.Root.ChildrenOfKind("function_definition")
			require.NotEmpty(t, fns)

			assert.Equal(t, tt.want, detectConvention(fns[0]))
		})
	}
}

func TestGeneratorForwardingUsesYieldFrom(t *testing.T) {
	src := "def gen(n):\n    yield n + 1\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Contains(t, result.Source, "result = yield from _mutmut_yield_from_trampoline(")
	assert.NoError(t, pytree.Check([]byte(result.Source)))
}

func TestAsyncForwardingAwaits(t *testing.T) {
	src := "async def fetch(n):\n    return n + 1\n"

	result, err := MutateFileContents("m.py", []byte(src), nil)
	require.NoError(t, err)

	assert.Contains(t, result.Source, "async def fetch(*args, **kwargs):\n    result = await _mutmut_async_trampoline(")
	assert.NoError(t, pytree.Check([]byte(result.Source)))
}

func TestPragmaNoMutateLines(t *testing.T) {
	src := "a = 1\nb = 2  # pragma: no mutate\nc = 3  # pragma: keep\n"

	lines := pragmaNoMutateLines([]byte(src))
	assert.Equal(t, map[int]bool{2: true}, lines)
}
