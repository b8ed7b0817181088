// Package domain contains the core mutation generation and weaving logic.
package domain

import (
	"fmt"

	"pymut.dev/pkg/pymut/internal/pytree"
)

// InvalidMutatedFileError reports that a whole assembled module failed to
// re-parse. This should never happen when per-mutant validation holds, so
// it indicates a defect rather than a transient condition.
type InvalidMutatedFileError struct {
	Path string
	Err  error
}

func (e *InvalidMutatedFileError) Error() string {
	return fmt.Sprintf("mutated output for %s is not valid python: %v", e.Path, e.Err)
}

func (e *InvalidMutatedFileError) Unwrap() error { return e.Err }

// MutatedFile is the result of mutating one source file.
type MutatedFile struct {
	// Source is the rewritten module text, prelude and trampolines
	// included.
	Source string
	// Mutants are the generated mutants in emission order.
	Mutants []EmittedMutant
	// Dropped describes mutants discarded because their patched text no
	// longer parsed; callers are expected to log these.
	Dropped []string
	// HashByFunctionName fingerprints every mutated function's original
	// source, keyed by mangled name, so stale results can be invalidated.
	HashByFunctionName map[string]string
}

// MutateFileContents runs the full pipeline for one file: parse, collect
// mutations, weave trampolines and validate the assembled output.
// coveredLines nil mutates everywhere; a non-nil set restricts mutation
// to its lines. A file that cannot be parsed yields a *pytree.ParseError
// so the caller can copy it through unmutated.
func MutateFileContents(path string, code []byte, coveredLines map[int]bool) (MutatedFile, error) {
	mod, mutations, err := CreateMutations(path, code, coveredLines)
	if err != nil {
		return MutatedFile{}, err
	}

	source, mutants, dropped, hashes, err := combineMutationsToSource(mod, mutations)
	if err != nil {
		return MutatedFile{}, err
	}

	if err := pytree.Check([]byte(source)); err != nil {
		return MutatedFile{}, &InvalidMutatedFileError{Path: path, Err: err}
	}

	return MutatedFile{
		Source:             source,
		Mutants:            mutants,
		Dropped:            dropped,
		HashByFunctionName: hashes,
	}, nil
}
