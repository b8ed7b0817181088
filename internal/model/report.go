package model

// MutantStatus is the outcome of testing one mutant.
type MutantStatus string

const (
	// StatusNotChecked indicates the mutant has not been run yet.
	StatusNotChecked MutantStatus = "not checked"
	// StatusKilled indicates the test suite failed under the mutant.
	StatusKilled MutantStatus = "killed"
	// StatusSurvived indicates the test suite passed under the mutant.
	StatusSurvived MutantStatus = "survived"
	// StatusNoTests indicates no test exercises the mutated function.
	StatusNoTests MutantStatus = "no tests"
	// StatusSkipped indicates the mutant was excluded from the run.
	StatusSkipped MutantStatus = "skipped"
	// StatusTimeout indicates the test run exceeded its time budget.
	StatusTimeout MutantStatus = "timeout"
	// StatusSuspicious indicates the run took far longer than the
	// baseline without timing out.
	StatusSuspicious MutantStatus = "suspicious"
	// StatusInterrupted indicates the run was cut short by the user.
	StatusInterrupted MutantStatus = "check was interrupted by user"
	// StatusSegfault indicates the test process died on a memory fault.
	StatusSegfault MutantStatus = "segfault"
)

// Runner exit codes that carry a status on their own.
const (
	ExitCodeNoTestsCollected = 5
	ExitCodeNoTests          = 33
	ExitCodeSkipped          = 34
	ExitCodeSuspicious       = 35
	ExitCodeTimeout          = 36
)

// StatusForExitCode maps a test runner exit code to a mutant status.
// Negative codes are deaths by signal. Anything unrecognized is
// suspicious rather than killed, so runner breakage never inflates the
// score.
func StatusForExitCode(code int) MutantStatus {
	switch code {
	case 0:
		return StatusSurvived
	case 1, 3:
		return StatusKilled
	case 2:
		return StatusInterrupted
	case ExitCodeNoTestsCollected, ExitCodeNoTests:
		return StatusNoTests
	case ExitCodeSkipped:
		return StatusSkipped
	case ExitCodeSuspicious:
		return StatusSuspicious
	case ExitCodeTimeout, -24, 24, 152, 255: // SIGXCPU in its various encodings
		return StatusTimeout
	case -11, -9:
		return StatusSegfault
	default:
		return StatusSuspicious
	}
}

// Emoji returns the one glyph summary used in progress output.
func (s MutantStatus) Emoji() string {
	switch s {
	case StatusKilled:
		return "🎉"
	case StatusSurvived:
		return "🙁"
	case StatusNoTests:
		return "🫥"
	case StatusSkipped:
		return "🔇"
	case StatusTimeout:
		return "⏰"
	case StatusSuspicious:
		return "🤔"
	case StatusInterrupted:
		return "🛑"
	case StatusSegfault:
		return "💥"
	default:
		return "?"
	}
}

// IsKilled reports whether the status counts toward the kill score.
func (s MutantStatus) IsKilled() bool {
	return s == StatusKilled || s == StatusTimeout
}

// NeedsRun reports whether the mutant still has to be executed.
func (s MutantStatus) NeedsRun() bool {
	return s == StatusNotChecked || s == StatusInterrupted
}

// Report is the outcome of running the test suite against one mutant.
type Report struct {
	Mutant   Mutant
	Status   MutantStatus
	Output   string
	Duration float64 // seconds
}

// FileResult holds the mutation testing state for a single source file.
type FileResult struct {
	Source  SourceFile
	Mutants []Mutant
	Reports map[string]Report // keyed by mutant name
}
