package domain

import (
	m "pymut.dev/pkg/pymut/internal/model"
)

// MutationScore is the percentage of caught mutants among those that
// could have been caught. Killed and timed out mutants count as caught;
// skipped mutants, mutants with no tests and mutants that never ran are
// excluded from the denominator. An empty denominator scores 100.
func MutationScore(counts m.StatusCounts) float64 {
	caught := counts.Killed + counts.Timeout
	total := caught + counts.Survived + counts.Suspicious + counts.Segfault

	if total == 0 {
		return 100.0
	}

	return 100.0 * float64(caught) / float64(total)
}
