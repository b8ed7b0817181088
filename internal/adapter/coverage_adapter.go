package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "pymut.dev/pkg/pymut/internal/model"
)

// CoverageAdapter reads line coverage produced by coverage.py so mutation
// can be limited to code the test suite actually executes.
type CoverageAdapter interface {
	// CoveredLines parses a coverage JSON report and returns the covered
	// line sets keyed by the file paths recorded in the report.
	CoveredLines(path m.Path) (map[m.Path]map[int]bool, error)
}

// LocalCoverageAdapter reads the `coverage json` export format.
type LocalCoverageAdapter struct{}

// NewLocalCoverageAdapter constructs a LocalCoverageAdapter.
func NewLocalCoverageAdapter() *LocalCoverageAdapter {
	return &LocalCoverageAdapter{}
}

type coverageReport struct {
	Files map[string]coverageFile `json:"files"`
}

type coverageFile struct {
	ExecutedLines []int `json:"executed_lines"`
}

// CoveredLines parses the report at path.
func (a *LocalCoverageAdapter) CoveredLines(path m.Path) (map[m.Path]map[int]bool, error) {
	data, err := os.ReadFile(string(path)) // #nosec G304 - path comes from config
	if err != nil {
		return nil, fmt.Errorf("read coverage report: %w", err)
	}

	var report coverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse coverage report %s: %w", path, err)
	}

	covered := make(map[m.Path]map[int]bool, len(report.Files))

	for file, entry := range report.Files {
		lines := make(map[int]bool, len(entry.ExecutedLines))
		for _, line := range entry.ExecutedLines {
			lines[line] = true
		}

		covered[m.Path(file)] = lines
	}

	return covered, nil
}
