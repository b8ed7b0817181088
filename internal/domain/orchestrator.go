package domain

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pymut.dev/pkg/pymut/internal/adapter"
	m "pymut.dev/pkg/pymut/internal/model"
)

// Orchestrator runs the test suite against a single mutant and classifies
// the outcome.
type Orchestrator interface {
	TestMutant(ctx context.Context, mutant ScheduledMutant) (int, m.Report, error)
}

// ScheduledMutant is one mutant queued for execution, together with the
// tests known to exercise it.
type ScheduledMutant struct {
	Key string
	// SourcePath is the original file, relative to the project root.
	SourcePath m.Path
	// Tests are the pytest node ids to run, fastest first.
	Tests []string
	// EstimatedTime is the summed duration of those tests in seconds.
	EstimatedTime float64
}

type orchestrator struct {
	runner    adapter.TestRunnerAdapter
	workDir   string
	extraArgs []string
}

// NewOrchestrator constructs an Orchestrator that runs pytest in workDir
// through the provided runner adapter.
func NewOrchestrator(runner adapter.TestRunnerAdapter, workDir string, extraArgs []string) Orchestrator {
	return &orchestrator{
		runner:    runner,
		workDir:   workDir,
		extraArgs: extraArgs,
	}
}

// TestMutant activates one mutant via the environment selector and runs
// its tests. The deadline scales with the estimated test time, so slow
// suites are not misclassified while runaway mutants (infinite loops are
// a common mutation outcome) still get killed and recorded as timeouts.
func (o *orchestrator) TestMutant(ctx context.Context, mutant ScheduledMutant) (int, m.Report, error) {
	if err := ctx.Err(); err != nil {
		return 2, o.report(mutant, m.StatusInterrupted, "", 0), nil
	}

	timeout := time.Duration((mutant.EstimatedTime + 1) * 15 * float64(time.Second))

	result, err := o.runner.RunPytest(ctx, adapter.TestRunSpec{
		WorkDir:   o.workDir,
		Selector:  mutant.Key,
		Tests:     mutant.Tests,
		ExtraArgs: o.extraArgs,
		Timeout:   timeout,
	})
	if err != nil {
		return 0, m.Report{}, err
	}

	exitCode := result.ExitCode

	switch {
	case result.TimedOut:
		exitCode = m.ExitCodeTimeout
	case ctx.Err() != nil:
		exitCode = 2
	}

	status := m.StatusForExitCode(exitCode)

	slog.Debug("mutant tested",
		"key", mutant.Key,
		"exitCode", exitCode,
		"status", string(status),
		"duration", result.Duration)

	return exitCode, o.report(mutant, status, result.Output, result.Duration), nil
}

func (o *orchestrator) report(mutant ScheduledMutant, status m.MutantStatus, output string, duration float64) m.Report {
	name := mutant.Key
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	return m.Report{
		Mutant: m.Mutant{
			Name:       name,
			SourceFile: mutant.SourcePath,
		},
		Status:   status,
		Output:   output,
		Duration: duration,
	}
}
