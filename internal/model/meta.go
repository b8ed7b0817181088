package model

// FileMeta is the persisted mutation state for one source file. It is
// stored next to the generated file as a .meta JSON document and lets a
// later run skip everything that is still up to date.
type FileMeta struct {
	// ExitCodeByKey maps full mutant keys to the exit code of their last
	// test run. A nil entry means the mutant has never been run.
	ExitCodeByKey map[string]*int `json:"exit_code_by_key"`
	// HashByFunctionName maps mangled function names to the md5 of the
	// original function source, so unchanged functions keep their results
	// across runs.
	HashByFunctionName map[string]string `json:"hash_by_function_name"`
	// DurationsByKey records how long each mutant's test run took.
	DurationsByKey map[string]float64 `json:"durations_by_key"`
	// EstimatedDurationsByKey is the summed duration of the tests known
	// to exercise each mutant, used for scheduling and timeouts.
	EstimatedDurationsByKey map[string]float64 `json:"estimated_durations_by_key"`
}

// NewFileMeta returns an empty, initialized FileMeta.
func NewFileMeta() *FileMeta {
	return &FileMeta{
		ExitCodeByKey:           map[string]*int{},
		HashByFunctionName:      map[string]string{},
		DurationsByKey:          map[string]float64{},
		EstimatedDurationsByKey: map[string]float64{},
	}
}

// StatusOf returns the status recorded for a mutant key. Unknown keys
// and keys without a result are not checked.
func (m *FileMeta) StatusOf(key string) MutantStatus {
	code, ok := m.ExitCodeByKey[key]
	if !ok || code == nil {
		return StatusNotChecked
	}

	return StatusForExitCode(*code)
}

// SetResult records a finished test run for a mutant key.
func (m *FileMeta) SetResult(key string, exitCode int, duration float64) {
	code := exitCode
	m.ExitCodeByKey[key] = &code
	m.DurationsByKey[key] = duration
}

// Counts tallies the statuses of all mutants in this file.
func (m *FileMeta) Counts() StatusCounts {
	counts := StatusCounts{}
	for key := range m.ExitCodeByKey {
		counts.Add(m.StatusOf(key))
	}

	return counts
}

// StatusCounts is a per-status tally of mutants.
type StatusCounts struct {
	NotChecked  int
	Killed      int
	Survived    int
	NoTests     int
	Skipped     int
	Timeout     int
	Suspicious  int
	Interrupted int
	Segfault    int
}

// Add records one mutant with the given status.
func (c *StatusCounts) Add(status MutantStatus) {
	switch status {
	case StatusKilled:
		c.Killed++
	case StatusSurvived:
		c.Survived++
	case StatusNoTests:
		c.NoTests++
	case StatusSkipped:
		c.Skipped++
	case StatusTimeout:
		c.Timeout++
	case StatusSuspicious:
		c.Suspicious++
	case StatusInterrupted:
		c.Interrupted++
	case StatusSegfault:
		c.Segfault++
	default:
		c.NotChecked++
	}
}

// Remove takes one mutant with the given status back out of the tally,
// used when a mutant moves from one status to another.
func (c *StatusCounts) Remove(status MutantStatus) {
	switch status {
	case StatusKilled:
		c.Killed--
	case StatusSurvived:
		c.Survived--
	case StatusNoTests:
		c.NoTests--
	case StatusSkipped:
		c.Skipped--
	case StatusTimeout:
		c.Timeout--
	case StatusSuspicious:
		c.Suspicious--
	case StatusInterrupted:
		c.Interrupted--
	case StatusSegfault:
		c.Segfault--
	default:
		c.NotChecked--
	}
}

// Merge adds another tally into this one.
func (c *StatusCounts) Merge(other StatusCounts) {
	c.NotChecked += other.NotChecked
	c.Killed += other.Killed
	c.Survived += other.Survived
	c.NoTests += other.NoTests
	c.Skipped += other.Skipped
	c.Timeout += other.Timeout
	c.Suspicious += other.Suspicious
	c.Interrupted += other.Interrupted
	c.Segfault += other.Segfault
}

// Total is the number of mutants counted.
func (c StatusCounts) Total() int {
	return c.NotChecked + c.Killed + c.Survived + c.NoTests +
		c.Skipped + c.Timeout + c.Suspicious + c.Interrupted + c.Segfault
}

// Checked is the number of mutants with a recorded result.
func (c StatusCounts) Checked() int {
	return c.Total() - c.NotChecked
}

// Stats is the persisted outcome of a stats run: which tests exercise
// which mangled functions, and how long each test takes.
type Stats struct {
	TestsByMangledFunctionName map[string][]string `json:"tests_by_mangled_function_name"`
	DurationByTest             map[string]float64  `json:"duration_by_test"`
	StatsTime                  float64             `json:"stats_time"`
}

// NewStats returns an empty, initialized Stats.
func NewStats() *Stats {
	return &Stats{
		TestsByMangledFunctionName: map[string][]string{},
		DurationByTest:             map[string]float64{},
	}
}

// TestsFor returns the tests known to exercise the given mangled
// function name.
func (s *Stats) TestsFor(mangledName string) []string {
	return s.TestsByMangledFunctionName[mangledName]
}

// EstimatedTime sums the recorded durations of the given tests.
func (s *Stats) EstimatedTime(tests []string) float64 {
	total := 0.0
	for _, test := range tests {
		total += s.DurationByTest[test]
	}

	return total
}
