// Package model defines the data structures for mutation testing.
package model

import "strings"

// Path represents a file system path.
type Path string

// SourceFile represents one Python source file under mutation.
type SourceFile struct {
	Path Path
	Hash string
}

// ModuleName converts a source path relative to the project root into the
// dotted module name pytest will import it as. Package __init__ files take
// the name of their package.
func (p Path) ModuleName() string {
	s := strings.TrimSuffix(string(p), ".py")
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.TrimPrefix(s, "src.")
	s = strings.ReplaceAll(s, ".__init__", "")

	if s == "__init__" {
		return ""
	}

	return s
}
