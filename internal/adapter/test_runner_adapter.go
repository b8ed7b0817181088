package adapter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// MutantSelectorEnv is the environment variable the trampolines read to
// decide which mutant (if any) is live during a test run.
const MutantSelectorEnv = "MUTANT_UNDER_TEST"

// TestRunSpec describes one pytest invocation against the mutants tree.
type TestRunSpec struct {
	// WorkDir is the directory pytest runs in, normally "mutants".
	WorkDir string
	// Selector is the MUTANT_UNDER_TEST value: a full mutant key, "stats",
	// "fail", or empty for a clean run.
	Selector string
	// Tests limits the run to specific test ids. Empty means the
	// configured test selection.
	Tests []string
	// ExtraArgs are appended to the pytest command line.
	ExtraArgs []string
	// Timeout aborts the run after the given duration. Zero means no
	// per-run limit.
	Timeout time.Duration
}

// TestRunResult is the outcome of one pytest invocation.
type TestRunResult struct {
	ExitCode int
	Output   string
	Duration float64 // seconds
	TimedOut bool
}

// TestRunnerAdapter abstracts test execution so the workflow can be
// tested without spawning real pytest processes.
type TestRunnerAdapter interface {
	// RunPytest runs the project's pytest suite with the given selector
	// in the environment. A non-zero exit code is a result, not an error;
	// the error return covers failures to start the process.
	RunPytest(ctx context.Context, spec TestRunSpec) (TestRunResult, error)

	// CollectTests lists all test ids pytest would select, without
	// running them.
	CollectTests(ctx context.Context, workDir string) ([]string, error)
}

// LocalTestRunnerAdapter runs pytest as a subprocess via os/exec.
type LocalTestRunnerAdapter struct {
	python   string
	baseArgs []string
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter. python
// is the interpreter to use ("python" when empty); baseArgs are appended
// to every invocation.
func NewLocalTestRunnerAdapter(python string, baseArgs []string) *LocalTestRunnerAdapter {
	if python == "" {
		python = "python"
	}

	return &LocalTestRunnerAdapter{python: python, baseArgs: baseArgs}
}

// RunPytest runs pytest with the selector exported in the environment.
func (a *LocalTestRunnerAdapter) RunPytest(ctx context.Context, spec TestRunSpec) (TestRunResult, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	args := []string{"-m", "pytest", "--rootdir=.", "--tb=native", "-x", "-q"}
	args = append(args, a.baseArgs...)
	args = append(args, spec.ExtraArgs...)
	args = append(args, spec.Tests...)

	cmd := exec.CommandContext(ctx, a.python, args...)
	cmd.Dir = spec.WorkDir
	cmd.Env = append(os.Environ(),
		MutantSelectorEnv+"="+spec.Selector,
		"PY_IGNORE_IMPORTMISMATCH=1",
	)

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start).Seconds()

	result := TestRunResult{
		Output:   output.String(),
		Duration: duration,
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) || result.TimedOut {
		result.ExitCode = cmd.ProcessState.ExitCode()
		return result, nil
	}

	return result, err
}

// CollectTests runs pytest --collect-only and parses the selected ids.
func (a *LocalTestRunnerAdapter) CollectTests(ctx context.Context, workDir string) ([]string, error) {
	args := []string{"-m", "pytest", "--rootdir=.", "-q", "--collect-only"}
	args = append(args, a.baseArgs...)

	cmd := exec.CommandContext(ctx, a.python, args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		MutantSelectorEnv+"=list_all_tests",
		"PY_IGNORE_IMPORTMISMATCH=1",
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	return parseCollectedTests(out), nil
}

// parseCollectedTests extracts test node ids from quiet collect-only
// output. Ids look like path::test_name; summary lines do not.
func parseCollectedTests(out []byte) []string {
	var tests []string

	for _, line := range bytes.Split(out, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 || !bytes.Contains(trimmed, []byte("::")) {
			continue
		}

		tests = append(tests, string(trimmed))
	}

	return tests
}
