package adapter

import (
	"fmt"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// FunctionDef is one function or method found in a Python module. For
// methods, ClassName carries the enclosing class.
type FunctionDef struct {
	Name      string
	ClassName string
	Line      int
	Start     int
	End       int
	Text      string

	// Offsets of the name token relative to Start, so the def can be
	// renamed without re-parsing.
	nameOffset int
	nameLen    int
}

// Renamed returns the def's source text with its name replaced.
func (d FunctionDef) Renamed(newName string) string {
	return d.Text[:d.nameOffset] + newName + d.Text[d.nameOffset+d.nameLen:]
}

// PythonFileAdapter encapsulates Python-specific parsing so the workflow
// can locate functions in original and generated files while delegating
// grammar details to an infrastructure component.
type PythonFileAdapter interface {
	// Functions parses a module and returns its top-level functions and
	// the methods of its top-level classes.
	Functions(path string, source []byte) ([]FunctionDef, error)

	// FindFunction returns the function or method with the given name,
	// or an error when the module has no such def.
	FindFunction(path string, source []byte, name string) (FunctionDef, error)
}

// LocalPythonFileAdapter provides a concrete PythonFileAdapter backed by
// the pytree parser.
type LocalPythonFileAdapter struct{}

// NewLocalPythonFileAdapter constructs a LocalPythonFileAdapter.
func NewLocalPythonFileAdapter() *LocalPythonFileAdapter {
	return &LocalPythonFileAdapter{}
}

// Functions parses source and collects its defs.
func (a *LocalPythonFileAdapter) Functions(path string, source []byte) ([]FunctionDef, error) {
	mod, err := pytree.Parse(path, source)
	if err != nil {
		return nil, err
	}

	var defs []FunctionDef

	for _, child := range mod.Root.NamedChildren() {
		switch child.Kind() {
		case "function_definition":
			defs = appendDef(defs, child, "")
		case "decorated_definition":
			if fn := firstOfKind(child, "function_definition"); fn != nil {
				defs = appendDef(defs, fn, "")
			}
		case "class_definition":
			className := nameOf(child)

			body := child.ChildByField("body")
			if body == nil {
				continue
			}

			for _, member := range body.NamedChildren() {
				switch member.Kind() {
				case "function_definition":
					defs = appendDef(defs, member, className)
				case "decorated_definition":
					if fn := firstOfKind(member, "function_definition"); fn != nil {
						defs = appendDef(defs, fn, className)
					}
				}
			}
		}
	}

	return defs, nil
}

// FindFunction locates a def by name anywhere in the module.
func (a *LocalPythonFileAdapter) FindFunction(path string, source []byte, name string) (FunctionDef, error) {
	defs, err := a.Functions(path, source)
	if err != nil {
		return FunctionDef{}, err
	}

	for _, def := range defs {
		if def.Name == name {
			return def, nil
		}
	}

	return FunctionDef{}, fmt.Errorf("no function %q in %s", name, path)
}

func appendDef(defs []FunctionDef, fn *pytree.Node, className string) []FunctionDef {
	nameNode := fn.ChildByField("name")
	if nameNode == nil {
		return defs
	}

	return append(defs, FunctionDef{
		Name:       nameNode.Text(),
		ClassName:  className,
		Line:       fn.Line(),
		Start:      fn.Start(),
		End:        fn.End(),
		Text:       fn.Text(),
		nameOffset: nameNode.Start() - fn.Start(),
		nameLen:    nameNode.End() - nameNode.Start(),
	})
}

func nameOf(n *pytree.Node) string {
	nameNode := n.ChildByField("name")
	if nameNode == nil {
		return ""
	}

	return nameNode.Text()
}

func firstOfKind(n *pytree.Node, kind string) *pytree.Node {
	for _, child := range n.NamedChildren() {
		if child.Kind() == kind {
			return child
		}
	}

	return nil
}
