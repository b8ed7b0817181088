package mutagens

import "testing"

func TestProcessNameMutations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
		want []string
	}{
		{name: "true to false", src: "x = True\n", kind: "true", want: []string{"x = False\n"}},
		{name: "false to true", src: "x = False\n", kind: "false", want: []string{"x = True\n"}},
		{name: "deepcopy", src: "y = deepcopy(x)\n", kind: "identifier", want: []string{"y = copy(x)\n"}},
		{name: "sorted", src: "y = sorted(x)\n", kind: "identifier", want: []string{"y = reversed(x)\n"}},
		{name: "any", src: "y = any(x)\n", kind: "identifier", want: []string{"y = all(x)\n"}},
		{name: "strenum collapses", src: "x = StrEnum\n", kind: "identifier", want: []string{"x = Enum\n"}},
		{name: "intenum collapses", src: "x = IntEnum\n", kind: "identifier", want: []string{"x = Enum\n"}},
		{name: "len not swapped", src: "y = len(x)\n", kind: "identifier", want: nil},
		{name: "unknown name", src: "y = foo(x)\n", kind: "identifier", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderEvery(t, tt.src, tt.kind, ProcessNameMutations)
			assertVariants(t, got, tt.want...)
		})
	}
}

func TestProcessAssignmentMutations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "value to none", src: "a = b\n", want: []string{"a = None\n"}},
		{name: "none to empty string", src: "a = None\n", want: []string{"a = \"\"\n"}},
		{name: "annotated with value", src: "a: int = 5\n", want: []string{"a: int = None\n"}},
		{name: "bare annotation untouched", src: "a: int\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderAll(t, tt.src, "assignment", ProcessAssignmentMutations)
			assertVariants(t, got, tt.want...)
		})
	}
}

func TestProcessAugmentedAssignmentMutations(t *testing.T) {
	got := renderAll(t, "x += 1\n", "augmented_assignment", ProcessAugmentedAssignmentMutations)
	assertVariants(t, got, "x = 1\n")

	got = renderAll(t, "x |= mask\n", "augmented_assignment", ProcessAugmentedAssignmentMutations)
	assertVariants(t, got, "x = mask\n")
}

func TestProcessUnaryRemovalMutations(t *testing.T) {
	got := renderAll(t, "x = not y\n", "not_operator", ProcessUnaryRemovalMutations)
	assertVariants(t, got, "x = y\n")

	got = renderAll(t, "x = ~y\n", "unary_operator", ProcessUnaryRemovalMutations)
	assertVariants(t, got, "x = y\n")

	// unary minus is swapped, not removed
	got = renderAll(t, "x = -y\n", "unary_operator", ProcessUnaryRemovalMutations)
	assertVariants(t, got)
}

func TestProcessKeywordMutations(t *testing.T) {
	got := renderAll(t, "while x:\n    break\n", "break_statement", ProcessKeywordMutations)
	assertVariants(t, got, "while x:\n    return\n")

	got = renderAll(t, "while x:\n    continue\n", "continue_statement", ProcessKeywordMutations)
	assertVariants(t, got, "while x:\n    break\n")
}

func TestProcessOperatorSwapMutations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
		want []string
	}{
		{name: "plus", src: "x = a + b\n", kind: "binary_operator", want: []string{"x = a - b\n"}},
		{name: "star", src: "x = a * b\n", kind: "binary_operator", want: []string{"x = a / b\n"}},
		{name: "floordiv", src: "x = a // b\n", kind: "binary_operator", want: []string{"x = a / b\n"}},
		{name: "power", src: "x = a ** b\n", kind: "binary_operator", want: []string{"x = a * b\n"}},
		{name: "matmul unmapped", src: "x = a @ b\n", kind: "binary_operator", want: nil},
		{name: "and", src: "x = a and b\n", kind: "boolean_operator", want: []string{"x = a or b\n"}},
		{name: "less than", src: "x = a < b\n", kind: "comparison_operator", want: []string{"x = a <= b\n"}},
		{name: "equality", src: "x = a == b\n", kind: "comparison_operator", want: []string{"x = a != b\n"}},
		{name: "membership", src: "x = a in b\n", kind: "comparison_operator", want: []string{"x = a not in b\n"}},
		{name: "negated membership", src: "x = a not in b\n", kind: "comparison_operator", want: []string{"x = a in b\n"}},
		{name: "identity", src: "x = a is b\n", kind: "comparison_operator", want: []string{"x = a is not b\n"}},
		{
			name: "chained comparison",
			src:  "x = a < b <= c\n",
			kind: "comparison_operator",
			want: []string{"x = a <= b <= c\n", "x = a < b < c\n"},
		},
		{name: "augmented plus", src: "x += 1\n", kind: "augmented_assignment", want: []string{"x -= 1\n"}},
		{name: "augmented xor", src: "x ^= 1\n", kind: "augmented_assignment", want: []string{"x &= 1\n"}},
		{name: "unary minus", src: "x = -y\n", kind: "unary_operator", want: []string{"x = +y\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderAll(t, tt.src, tt.kind, ProcessOperatorSwapMutations)
			assertVariants(t, got, tt.want...)
		})
	}
}
