package mutagens

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// ProcessStringMutations mutates a plain string literal by wrapping its
// content in the marker, upper-casing it and capitalizing it, skipping
// variants that do not change the content. Triple-quoted strings are
// treated as documentation and never mutated; f-strings are left alone
// because their content is code, not data.
func ProcessStringMutations(n *pytree.Node) []Replacement {
	open, content, closing, ok := stringLiteralParts(n)
	if !ok {
		return nil
	}

	variants := []string{
		Marker + content + Marker,
		strings.ToUpper(content),
		capitalize(content),
	}

	var out []Replacement

	seen := map[string]bool{content: true}
	for _, variant := range variants {
		if seen[variant] {
			continue
		}

		seen[variant] = true

		out = append(out, Replacement{
			Target: n,
			Text:   open + variant + closing,
		})
	}

	return out
}

// stringLiteralParts splits a string node into its opening delimiter
// (prefix plus quote), raw content and closing quote. It reports ok=false
// for anything that is not a plain single-quoted literal: f-strings,
// strings with interpolations and triple-quoted strings.
func stringLiteralParts(n *pytree.Node) (open, content, closing string, ok bool) {
	if n.Kind() != "string" || n.HasChildOfKind("interpolation") {
		return "", "", "", false
	}

	opening := firstChildOfKind(n, "string_start")
	end := firstChildOfKind(n, "string_end")

	if opening == nil || end == nil {
		return "", "", "", false
	}

	open = opening.Text()
	if strings.HasSuffix(open, `"""`) || strings.HasSuffix(open, "'''") {
		return "", "", "", false
	}

	if strings.ContainsAny(open, "fF") {
		return "", "", "", false
	}

	text := n.Text()
	closing = end.Text()
	content = text[len(open) : len(text)-len(closing)]

	return open, content, closing, true
}

func firstChildOfKind(n *pytree.Node, kind string) *pytree.Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}

	return nil
}

// capitalize matches Python's str.capitalize: first character upper,
// the rest lower.
func capitalize(s string) string {
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
