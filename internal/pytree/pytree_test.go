package pytree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleModule(t *testing.T) {
	src := []byte("def foo(a, b):\n    return a + b\n")

	mod, err := Parse("foo.py", src)
	require.NoError(t, err)
	require.Equal(t, "module", mod.Root.Kind())

	funcs := mod.Root.ChildrenOfKind("function_definition")
	require.Len(t, funcs, 1)

	name := funcs[0].ChildByField("name")
	require.NotNil(t, name)
	assert.Equal(t, "identifier", name.Kind())
	assert.Equal(t, "foo", name.Text())
	assert.Equal(t, 1, name.Line())
	assert.Equal(t, 4, name.Col())
}

func TestParseReportsSyntaxError(t *testing.T) {
	src := []byte("def broken(:\n    pass\n")

	_, err := Parse("broken.py", src)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "broken.py", parseErr.Path)
	assert.Equal(t, 1, parseErr.Line)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check([]byte("x = 1\n")))
	assert.Error(t, Check([]byte("x = = 1\n")))
}

func TestNodeSpansSliceSource(t *testing.T) {
	src := []byte("value = 1 + 2\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	var binary *Node

	mod.Root.Walk(func(n *Node) bool {
		if n.Kind() == "binary_operator" {
			binary = n
		}
		return true
	})

	require.NotNil(t, binary)
	assert.Equal(t, "1 + 2", binary.Text())
	assert.Equal(t, string(src[binary.Start():binary.End()]), binary.Text())

	op := binary.ChildByField("operator")
	require.NotNil(t, op)
	assert.Equal(t, "+", op.Kind())
	assert.False(t, op.IsNamed())
}

func TestSpliceSingleEdit(t *testing.T) {
	src := []byte("def foo():\n    return 1 + 2\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	fn := mod.Root.ChildrenOfKind("function_definition")[0]

	var op *Node

	fn.Walk(func(n *Node) bool {
		if n.Kind() == "+" {
			op = n
		}
		return true
	})

	require.NotNil(t, op)

	out, err := Splice(fn, Edit{Target: op, Text: "-"})
	require.NoError(t, err)
	assert.Equal(t, "def foo():\n    return 1 - 2", out)
}

func TestSpliceMultipleEditsAppliedInOrder(t *testing.T) {
	src := []byte("x = a + b + c\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	var ops []*Node

	mod.Root.Walk(func(n *Node) bool {
		if n.Kind() == "+" {
			ops = append(ops, n)
		}
		return true
	})

	require.Len(t, ops, 2)

	// Deliberately pass the later edit first; Splice orders by position.
	out, err := Splice(mod.Root, Edit{Target: ops[1], Text: "*"}, Edit{Target: ops[0], Text: "-"})
	require.NoError(t, err)
	assert.Equal(t, "x = a - b * c\n", out)
}

func TestSpliceRejectsEditOutsideWindow(t *testing.T) {
	src := []byte("def foo():\n    pass\n\ndef bar():\n    pass\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	funcs := mod.Root.ChildrenOfKind("function_definition")
	require.Len(t, funcs, 2)

	barName := funcs[1].ChildByField("name")
	require.NotNil(t, barName)

	_, err = Splice(funcs[0], Edit{Target: barName, Text: "baz"})
	assert.Error(t, err)
}

func TestSpliceRejectsOverlappingEdits(t *testing.T) {
	src := []byte("x = 1 + 2\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	var binary, lit *Node

	mod.Root.Walk(func(n *Node) bool {
		switch n.Kind() {
		case "binary_operator":
			binary = n
		case "integer":
			if lit == nil {
				lit = n
			}
		}
		return true
	})

	require.NotNil(t, binary)
	require.NotNil(t, lit)

	_, err = Splice(mod.Root, Edit{Target: binary, Text: "0"}, Edit{Target: lit, Text: "9"})
	assert.Error(t, err)
}

func TestSynthNodes(t *testing.T) {
	n := Synth("none", "None")

	assert.True(t, n.Synthesized())
	assert.Equal(t, "None", n.Text())
	assert.False(t, n.Contains(n))

	src := []byte("x = 1\n")
	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	_, err = Splice(mod.Root, Edit{Target: n, Text: "y"})
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	src := []byte("def foo():\n    return 1\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	fn := mod.Root.ChildrenOfKind("function_definition")[0]

	var lit *Node

	fn.Walk(func(n *Node) bool {
		if n.Kind() == "integer" {
			lit = n
		}
		return true
	})

	require.NotNil(t, lit)
	assert.True(t, mod.Root.Contains(fn))
	assert.True(t, fn.Contains(lit))
	assert.True(t, fn.Contains(fn))
	assert.False(t, lit.Contains(fn))
}

func TestComparisonOperatorTokens(t *testing.T) {
	src := []byte("flag = a not in b\n")

	mod, err := Parse("m.py", src)
	require.NoError(t, err)

	var cmp *Node

	mod.Root.Walk(func(n *Node) bool {
		if n.Kind() == "comparison_operator" {
			cmp = n
		}
		return true
	})

	require.NotNil(t, cmp)

	ops := cmp.ChildrenByField("operators")
	require.Len(t, ops, 1)
	assert.Equal(t, "not in", ops[0].Kind())
}
