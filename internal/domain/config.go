package domain

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	m "pymut.dev/pkg/pymut/internal/model"
)

// MutantsDirName is the shadow tree the generated files live in.
const MutantsDirName = "mutants"

// Config is the resolved project configuration the workflow operates on.
type Config struct {
	// PathsToMutate are the files and directories whose Python files get
	// mutated.
	PathsToMutate []m.Path
	// DoNotMutate are glob patterns for files that are copied into the
	// mutants tree untouched.
	DoNotMutate []string
	// AlsoCopy are extra files and directories copied verbatim so the
	// test suite can run inside the mutants tree.
	AlsoCopy []m.Path
	// TestsDir narrows the pytest selection for whole-suite runs.
	TestsDir []string
	// PytestArgs are appended to every pytest invocation.
	PytestArgs []string
	// CoverageReport is a coverage.py JSON export; when set, mutation is
	// limited to covered lines.
	CoverageReport m.Path
	// MaxChildren caps the number of concurrent mutant test runs.
	MaxChildren int
	Debug       bool
}

// ignoreMatcher decides which files are excluded from mutation. Patterns
// follow fnmatch semantics: `*` crosses path separators.
type ignoreMatcher struct {
	globs []glob.Glob
}

func newIgnoreMatcher(patterns []string) (*ignoreMatcher, error) {
	matcher := &ignoreMatcher{}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad do_not_mutate pattern %q: %w", pattern, err)
		}

		matcher.globs = append(matcher.globs, g)
	}

	return matcher, nil
}

// shouldIgnore reports whether path must not be mutated. Non-Python
// files are always ignored.
func (im *ignoreMatcher) shouldIgnore(path m.Path) bool {
	if !strings.HasSuffix(string(path), ".py") {
		return true
	}

	for _, g := range im.globs {
		if g.Match(string(path)) {
			return true
		}
	}

	return false
}
