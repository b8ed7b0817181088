package mutagens

import (
	"strings"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// regexEntryPoints lists the re module functions whose first argument is
// treated as a pattern literal.
var regexEntryPoints = map[string]bool{
	"compile":   true,
	"match":     true,
	"search":    true,
	"fullmatch": true,
	"findall":   true,
}

// Token substitutions applied one occurrence at a time. Longer tokens
// come first so that "?" never matches inside "{0,1}".
var regexTokenSwaps = [][2]string{
	{"{0,1}", "?"},
	{"{1,}", "{2,}"},
	{"{1,}", "{0,}"},
	{`[0-9]`, `\d`},
	{`[A-Za-z0-9_]`, `\w`},
	{`\d`, `[0-9]`},
	{`\w`, `[A-Za-z0-9_]`},
	{"+", "*"},
	{"*", "+"},
	{"*", "?"},
	{"?", "*"},
	{"?", "{0,1}"},
}

// ProcessRegexMutations generates nasty but valid variants of a literal
// regex pattern passed to re.compile/match/search/fullmatch/findall:
// quantifier swaps, shorthand class expansions and character class
// reversals. Variants are deduplicated preserving first-seen order.
func ProcessRegexMutations(call *pytree.Node) []Replacement {
	fn := call.ChildByField("function")
	if fn == nil || fn.Kind() != "attribute" {
		return nil
	}

	object := fn.ChildByField("object")
	attr := fn.ChildByField("attribute")

	if object == nil || attr == nil {
		return nil
	}

	if object.Kind() != "identifier" || object.Text() != "re" || !regexEntryPoints[attr.Text()] {
		return nil
	}

	args := callArguments(call)
	if len(args) == 0 || args[0].Kind() != "string" {
		return nil
	}

	pattern := args[0]

	open, content, closing, ok := stringLiteralParts(pattern)
	if !ok {
		return nil
	}

	var out []Replacement

	seen := map[string]bool{content: true}
	for _, variant := range patternVariants(content) {
		if seen[variant] {
			continue
		}

		seen[variant] = true

		out = append(out, Replacement{
			Target: pattern,
			Text:   open + variant + closing,
		})
	}

	return out
}

func patternVariants(pattern string) []string {
	var out []string

	for _, swap := range regexTokenSwaps {
		from, to := swap[0], swap[1]
		for pos := 0; ; {
			i := strings.Index(pattern[pos:], from)
			if i < 0 {
				break
			}

			i += pos
			out = append(out, pattern[:i]+to+pattern[i+len(from):])
			pos = i + len(from)
		}
	}

	out = append(out, classReversals(pattern)...)

	return out
}

// classReversals reverses the contents of each bracketed character class
// in turn. A leading ^ stays in place, and classes containing a range are
// left alone since reversing them would not compile.
func classReversals(pattern string) []string {
	var out []string

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				return out
			}

			end += i + 1

			inner := pattern[i+1 : end]
			if reversed, ok := reverseClass(inner); ok && reversed != inner {
				out = append(out, pattern[:i+1]+reversed+pattern[end:])
			}

			i = end
		}
	}

	return out
}

func reverseClass(inner string) (string, bool) {
	keep := ""
	if strings.HasPrefix(inner, "^") {
		keep = "^"
		inner = inner[1:]
	}

	if strings.Contains(inner, "-") || strings.Contains(inner, "\\") {
		return "", false
	}

	runes := []rune(inner)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return keep + string(runes), true
}
