package domain

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders a unified diff between two renditions of the same
// file, labelled with its path.
func unifiedDiff(path, original, mutated string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(mutated),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
}
