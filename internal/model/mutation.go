package model

// Mutant identifies a single generated mutant within a source file.
type Mutant struct {
	// Name is the full mutant name, e.g. "x_foo__mutmut_3".
	Name string
	// SourceFile is the path of the source file the mutant lives in,
	// relative to the project root.
	SourceFile Path
	// Line and Column locate the mutated node in the original source.
	// Column is zero based.
	Line   int
	Column int
	// OriginalText and MutatedText are the node texts before and after
	// the mutation, used for listing and diffing.
	OriginalText string
	MutatedText  string
}

// Key returns the stable identifier used in result files and on the
// command line: module name, then the mutant name, dot separated.
func (m Mutant) Key() string {
	module := m.SourceFile.ModuleName()
	if module == "" {
		return m.Name
	}

	return module + "." + m.Name
}
