package mutagens

import "testing"

func TestProcessDictArgumentMutations(t *testing.T) {
	got := renderAll(t, "d = dict(a=1, b=2)\n", "call", ProcessDictArgumentMutations)
	assertVariants(t, got, "d = dict(aXX=1, b=2)\n", "d = dict(a=1, bXX=2)\n")

	// positional argument disables the operator
	got = renderAll(t, "d = dict(pairs, a=1)\n", "call", ProcessDictArgumentMutations)
	assertVariants(t, got)

	// other callees are not dict-style
	got = renderAll(t, "d = make(a=1)\n", "call", ProcessDictArgumentMutations)
	assertVariants(t, got)
}

func TestProcessArgumentMutations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "null and remove",
			src:  "foo(a, b)\n",
			want: []string{
				"foo(None, b)\n",
				"foo(a, None)\n",
				"foo(b)\n",
				"foo(a)\n",
			},
		},
		{
			name: "single argument only nulled",
			src:  "foo(a)\n",
			want: []string{"foo(None)\n"},
		},
		{
			name: "literal none slot skipped",
			src:  "foo(None, b)\n",
			want: []string{
				"foo(None, None)\n",
				"foo(b)\n",
				"foo(None)\n",
			},
		},
		{
			name: "keyword argument nulled",
			src:  "foo(a=1)\n",
			want: []string{"foo(a=None)\n"},
		},
		{
			name: "starred not nulled but removed",
			src:  "foo(a, *rest)\n",
			want: []string{
				"foo(None, *rest)\n",
				"foo(*rest)\n",
				"foo(a)\n",
			},
		},
		{
			name: "len arguments untouched",
			src:  "x = len(a)\n",
			want: nil,
		},
		{
			name: "isinstance arguments untouched",
			src:  "x = isinstance(a, int)\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderAll(t, tt.src, "call", ProcessArgumentMutations)
			assertVariants(t, got, tt.want...)
		})
	}
}

func TestProcessChrOrdMutations(t *testing.T) {
	got := renderAll(t, "c = chr(x)\n", "call", ProcessChrOrdMutations)
	assertVariants(t, got, "c = chr(x + 1)\n")

	got = renderAll(t, "c = ord(x)\n", "call", ProcessChrOrdMutations)
	assertVariants(t, got, "c = (ord(x) + 1)\n")

	// the increment must stay attached to the call result
	got = renderAll(t, "c = 2 * ord(x)\n", "call", ProcessChrOrdMutations)
	assertVariants(t, got, "c = 2 * (ord(x) + 1)\n")

	got = renderAll(t, "c = chr(x, y)\n", "call", ProcessChrOrdMutations)
	assertVariants(t, got)
}

func TestProcessAggregateCallMutations(t *testing.T) {
	got := renderAll(t, "n = len(items)\n", "call", ProcessAggregateCallMutations)
	assertVariants(t, got, "n = (len(items) + 1)\n", "n = (len(items) - 1)\n")

	got = renderAll(t, "n = sum(items)\n", "call", ProcessAggregateCallMutations)
	assertVariants(t, got, "n = (sum(items) + 1)\n", "n = (sum(items) - 1)\n")

	// a surrounding multiplication must not capture the nudge
	got = renderAll(t, "n = 2 * len(items)\n", "call", ProcessAggregateCallMutations)
	assertVariants(t, got, "n = 2 * (len(items) + 1)\n", "n = 2 * (len(items) - 1)\n")

	// a subtraction on the left must not flip the nudge's sign
	got = renderAll(t, "n = a - len(items)\n", "call", ProcessAggregateCallMutations)
	assertVariants(t, got, "n = a - (len(items) + 1)\n", "n = a - (len(items) - 1)\n")

	got = renderAll(t, "n = foo(items)\n", "call", ProcessAggregateCallMutations)
	assertVariants(t, got)
}

func TestProcessMapFilterMutations(t *testing.T) {
	got := renderAll(t, "y = map(f, xs)\n", "call", ProcessMapFilterMutations)
	assertVariants(t, got, "y = list(xs)\n")

	got = renderAll(t, "y = filter(f, xs)\n", "call", ProcessMapFilterMutations)
	assertVariants(t, got, "y = list(xs)\n")

	// three-argument map is left alone
	got = renderAll(t, "y = map(f, xs, ys)\n", "call", ProcessMapFilterMutations)
	assertVariants(t, got)
}

func TestProcessRegexMutations(t *testing.T) {
	got := renderAll(t, "p = re.compile('a+b')\n", "call", ProcessRegexMutations)
	assertVariants(t, got, "p = re.compile('a*b')\n")

	got = renderAll(t, "p = re.search('a?', s)\n", "call", ProcessRegexMutations)
	assertVariants(t, got, "p = re.search('a*', s)\n", "p = re.search('a{0,1}', s)\n")

	got = renderAll(t, "p = re.compile(r'\\d+')\n", "call", ProcessRegexMutations)
	assertVariants(t, got,
		"p = re.compile(r'[0-9]+')\n",
		"p = re.compile(r'\\d*')\n",
	)

	got = renderAll(t, "p = re.compile('[abc]')\n", "call", ProcessRegexMutations)
	assertVariants(t, got, "p = re.compile('[cba]')\n")

	// not a re entry point
	got = renderAll(t, "p = os.path('a+b')\n", "call", ProcessRegexMutations)
	assertVariants(t, got)

	// non-literal pattern
	got = renderAll(t, "p = re.compile(pat)\n", "call", ProcessRegexMutations)
	assertVariants(t, got)
}

func TestProcessRegexMutationsDeduplicates(t *testing.T) {
	// "a{1,}" yields {2,} and {0,} variants once each even though the
	// token table scans the pattern twice.
	got := renderAll(t, "p = re.compile('a{1,}b{1,}')\n", "call", ProcessRegexMutations)
	assertVariants(t, got,
		"p = re.compile('a{2,}b{1,}')\n",
		"p = re.compile('a{1,}b{2,}')\n",
		"p = re.compile('a{0,}b{1,}')\n",
		"p = re.compile('a{1,}b{0,}')\n",
	)
}
