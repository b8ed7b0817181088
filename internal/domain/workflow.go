package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"pymut.dev/pkg/pymut/internal/adapter"
	"pymut.dev/pkg/pymut/internal/controller"
	m "pymut.dev/pkg/pymut/internal/model"
	"pymut.dev/pkg/pymut/internal/pytree"
	"pymut.dev/pkg/pymut/pkg"
)

// RunOptions narrows a Run invocation. Empty patterns means run every
// mutant without a recorded result; patterns force a rerun of every
// mutant key they match.
type RunOptions struct {
	MutantPatterns []string
}

// MutantResult pairs a full mutant key with its recorded status, for
// result listings.
type MutantResult struct {
	Key    string
	Status m.MutantStatus
}

// Workflow is the top level mutation testing driver. Generate builds the
// mutants tree, Run executes the test suite against it, and the rest
// expose the recorded results.
type Workflow interface {
	Generate(ctx context.Context) error
	ListMutants(ctx context.Context) ([]m.Mutant, error)
	Run(ctx context.Context, opts RunOptions) error
	Results(ctx context.Context, includeKilled bool) ([]MutantResult, error)
	FileResults(ctx context.Context) ([]m.FileResult, error)
	ShowMutant(ctx context.Context, key string) (string, error)
	ApplyMutant(ctx context.Context, key string) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.TestRunnerAdapter
	adapter.MetaStore
	adapter.CoverageAdapter
	adapter.PythonFileAdapter
	controller.UI

	config Config
	ignore *ignoreMatcher

	// metaMu serializes result recording across the worker pool.
	metaMu sync.Mutex
}

// NewWorkflow wires the adapters into a Workflow for the given
// configuration.
func NewWorkflow(
	config Config,
	fs adapter.SourceFSAdapter,
	runner adapter.TestRunnerAdapter,
	metaStore adapter.MetaStore,
	coverage adapter.CoverageAdapter,
	pythonFiles adapter.PythonFileAdapter,
	ui controller.UI,
) (Workflow, error) {
	ignore, err := newIgnoreMatcher(config.DoNotMutate)
	if err != nil {
		return nil, err
	}

	return &workflow{
		SourceFSAdapter:   fs,
		TestRunnerAdapter: runner,
		MetaStore:         metaStore,
		CoverageAdapter:   coverage,
		PythonFileAdapter: pythonFiles,
		UI:                ui,
		config:            config,
		ignore:            ignore,
	}, nil
}

// Generate builds the mutants tree: the source roots and also_copy
// entries are copied in, every mutable Python file is rewritten with its
// trampolines, and a .meta document is written next to each generated
// file. Results from a previous run survive for functions whose source
// is unchanged.
func (w *workflow) Generate(ctx context.Context) error {
	w.UI.DisplayPhase(ctx, "Generating mutants")

	covered, err := w.coveredLines()
	if err != nil {
		return err
	}

	if err := w.copyProject(); err != nil {
		return err
	}

	files, err := w.sourceFiles()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers())

	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return w.generateFile(file, covered)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w.UI.DisplayPhaseDone(ctx)

	return nil
}

// copyProject mirrors the source roots and also_copy entries into the
// mutants tree so the test suite can run there unmodified.
func (w *workflow) copyProject() error {
	if err := w.MkdirAll(m.Path(MutantsDirName), 0o750); err != nil {
		return err
	}

	for _, root := range w.config.PathsToMutate {
		if err := w.copyEntry(root, true); err != nil {
			return err
		}
	}

	for _, extra := range w.config.AlsoCopy {
		if err := w.copyEntry(extra, false); err != nil {
			return err
		}
	}

	plugin := w.JoinPath(MutantsDirName, StatsPluginFileName)

	return w.WriteFile(plugin, []byte(statsPluginText), 0o600)
}

// copyEntry copies one file or directory into the mutants tree. Missing
// optional entries are skipped so also_copy can list files a project may
// not have.
func (w *workflow) copyEntry(path m.Path, required bool) error {
	info, err := w.FileInfo(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	dst := w.JoinPath(MutantsDirName, string(path))
	if info.IsDir() {
		return w.CopyTree(path, dst)
	}

	return w.CopyFile(path, dst)
}

// generateFile mutates one source file and writes its meta. Excluded and
// unparseable files keep the verbatim copy made by copyProject.
func (w *workflow) generateFile(path m.Path, covered map[m.Path]map[int]bool) error {
	if w.ignore.shouldIgnore(path) {
		return nil
	}

	code, err := w.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := MutateFileContents(string(path), code, coveredFor(covered, path))

	var parseErr *pytree.ParseError
	if errors.As(err, &parseErr) {
		slog.Warn("copying file through unmutated, it does not parse as python",
			"path", string(path), "line", parseErr.Line)

		return nil
	}

	if err != nil {
		return err
	}

	for _, dropped := range result.Dropped {
		slog.Debug("dropped mutant", "path", string(path), "reason", dropped)
	}

	dst := w.JoinPath(MutantsDirName, string(path))
	if err := w.WriteFile(dst, []byte(result.Source), 0o600); err != nil {
		return err
	}

	// Mirror mtimes so pytest's import cache does not rebuild on every
	// run.
	if err := w.MirrorTimes(path, dst); err != nil {
		return err
	}

	meta, err := w.buildMeta(path, result)
	if err != nil {
		return err
	}

	return w.SaveFileMeta(w.metaPath(path), meta)
}

// buildMeta creates the meta for a freshly generated file, carrying over
// results from the previous meta for every function whose source hash is
// unchanged.
func (w *workflow) buildMeta(path m.Path, result MutatedFile) (*m.FileMeta, error) {
	previous, err := w.LoadFileMeta(w.metaPath(path))
	if err != nil {
		return nil, err
	}

	meta := m.NewFileMeta()
	meta.HashByFunctionName = result.HashByFunctionName

	for _, mutant := range result.Mutants {
		key := m.Mutant{Name: mutant.Name, SourceFile: path}.Key()
		meta.ExitCodeByKey[key] = nil

		mangled := MangledNameFromKey(mutant.Name)
		if previous.HashByFunctionName[mangled] != result.HashByFunctionName[mangled] {
			continue
		}

		if code, ok := previous.ExitCodeByKey[key]; ok {
			meta.ExitCodeByKey[key] = code
		}

		if duration, ok := previous.DurationsByKey[key]; ok {
			meta.DurationsByKey[key] = duration
		}

		if estimate, ok := previous.EstimatedDurationsByKey[key]; ok {
			meta.EstimatedDurationsByKey[key] = estimate
		}
	}

	return meta, nil
}

// ListMutants generates mutants in memory, without touching the mutants
// tree, and returns them with their source locations.
func (w *workflow) ListMutants(_ context.Context) ([]m.Mutant, error) {
	covered, err := w.coveredLines()
	if err != nil {
		return nil, err
	}

	files, err := w.sourceFiles()
	if err != nil {
		return nil, err
	}

	var mutants []m.Mutant

	for _, path := range files {
		if w.ignore.shouldIgnore(path) {
			continue
		}

		code, err := w.ReadFile(path)
		if err != nil {
			return nil, err
		}

		result, err := MutateFileContents(string(path), code, coveredFor(covered, path))

		var parseErr *pytree.ParseError
		if errors.As(err, &parseErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		for _, mutant := range result.Mutants {
			target := mutant.Mutation.Target
			mutants = append(mutants, m.Mutant{
				Name:         mutant.Name,
				SourceFile:   path,
				Line:         target.Line(),
				Column:       target.Col(),
				OriginalText: target.Text(),
				MutatedText:  mutant.Mutation.Text,
			})
		}
	}

	return mutants, nil
}

// fileState is one generated file's meta, tracked during a run.
type fileState struct {
	path m.Path
	meta *m.FileMeta
}

// Run is the full driver: regenerate mutants, collect test stats, verify
// the suite passes clean and fails when forced to, then execute the test
// suite once per remaining mutant.
func (w *workflow) Run(ctx context.Context, opts RunOptions) error {
	if err := w.Generate(ctx); err != nil {
		return err
	}

	states, err := w.loadStates()
	if err != nil {
		return err
	}

	stats, err := w.ensureStats(ctx)
	if err != nil {
		return err
	}

	if err := w.verifySuite(ctx); err != nil {
		return err
	}

	scheduled, err := w.schedule(states, stats, opts.MutantPatterns)
	if err != nil {
		return err
	}

	return w.runMutants(ctx, states, scheduled)
}

// ensureStats loads the stats snapshot, collecting it with a dedicated
// pytest run when it is missing. When a snapshot exists, tests added
// since it was taken are run and merged in rather than rerunning the
// whole suite.
func (w *workflow) ensureStats(ctx context.Context) (*m.Stats, error) {
	w.UI.DisplayPhase(ctx, "Listing all tests")
	defer w.UI.DisplayPhaseDone(ctx)

	statsPath := w.JoinPath(MutantsDirName, StatsFileName)

	stats, found, err := w.LoadStats(statsPath)
	if err != nil {
		return nil, err
	}

	if !found {
		if err := w.runStats(ctx, nil); err != nil {
			return nil, err
		}

		stats, found, err = w.LoadStats(statsPath)
		if err != nil {
			return nil, err
		}

		if !found {
			return nil, errors.New("stats run finished but wrote no stats file")
		}
	} else if err := w.refreshStats(ctx, statsPath, stats); err != nil {
		return nil, err
	}

	if len(stats.TestsByMangledFunctionName) == 0 {
		return nil, errors.New("failed to collect stats: no tests executed any mutated function")
	}

	return stats, nil
}

// refreshStats runs only the tests that appeared after the existing
// snapshot was taken, then folds their results into it.
func (w *workflow) refreshStats(ctx context.Context, statsPath m.Path, stats *m.Stats) error {
	collected, err := w.CollectTests(ctx, MutantsDirName)
	if err != nil {
		return err
	}

	var newTests []string

	for _, test := range collected {
		if _, ok := stats.DurationByTest[test]; !ok {
			newTests = append(newTests, test)
		}
	}

	if len(newTests) == 0 {
		return nil
	}

	slog.Info("collecting stats for new tests", "count", len(newTests))

	if err := w.runStats(ctx, newTests); err != nil {
		return err
	}

	fresh, found, err := w.LoadStats(statsPath)
	if err != nil {
		return err
	}

	if !found {
		return errors.New("stats run finished but wrote no stats file")
	}

	for name, tests := range fresh.TestsByMangledFunctionName {
		stats.TestsByMangledFunctionName[name] = mergeTests(stats.TestsByMangledFunctionName[name], tests)
	}

	for test, duration := range fresh.DurationByTest {
		stats.DurationByTest[test] = duration
	}

	stats.StatsTime += fresh.StatsTime

	return w.SaveStats(statsPath, stats)
}

// runStats executes the test suite with the stats selector active and
// the stats plugin loaded. tests nil runs the configured selection.
func (w *workflow) runStats(ctx context.Context, tests []string) error {
	if tests == nil {
		tests = w.testSelection()
	}

	result, err := w.RunPytest(ctx, adapter.TestRunSpec{
		WorkDir:   MutantsDirName,
		Selector:  "stats",
		Tests:     tests,
		ExtraArgs: append(w.config.PytestArgs, "-p", statsPluginModule()),
	})
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("failed to collect stats, tests failed under the stats selector:\n%s", result.Output)
	}

	return nil
}

// verifySuite runs the two gates every run starts with: the suite must
// pass with no mutant active, and must fail when every trampoline is
// forced to raise. A suite that fails the second gate is not actually
// executing the mutated code.
func (w *workflow) verifySuite(ctx context.Context) error {
	w.UI.DisplayPhase(ctx, "Running clean tests")

	clean, err := w.RunPytest(ctx, adapter.TestRunSpec{
		WorkDir:   MutantsDirName,
		Selector:  "",
		Tests:     w.testSelection(),
		ExtraArgs: w.config.PytestArgs,
	})
	if err != nil {
		return err
	}

	if clean.ExitCode != 0 {
		return fmt.Errorf("failed to run clean tests:\n%s", clean.Output)
	}

	w.UI.DisplayPhaseDone(ctx)
	w.UI.DisplayPhase(ctx, "Running forced fail test")

	forced, err := w.RunPytest(ctx, adapter.TestRunSpec{
		WorkDir:   MutantsDirName,
		Selector:  "fail",
		Tests:     w.testSelection(),
		ExtraArgs: w.config.PytestArgs,
	})
	if err != nil {
		return err
	}

	if forced.ExitCode == 0 {
		return errors.New("tests passed with forced failure active, the suite is not executing the mutated code")
	}

	w.UI.DisplayPhaseDone(ctx)

	return nil
}

// schedule builds the list of mutants to execute, cheapest estimated
// test time first. Mutants with no associated tests are recorded
// immediately and never spawn a test process.
func (w *workflow) schedule(states []*fileState, stats *m.Stats, patterns []string) ([]ScheduledMutant, error) {
	matchers, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	var scheduled []ScheduledMutant

	for _, state := range states {
		changed := false

		for _, key := range sortedKeys(state.meta.ExitCodeByKey) {
			if len(matchers) > 0 {
				if !matchesAny(matchers, key) {
					continue
				}
			} else if !state.meta.StatusOf(key).NeedsRun() {
				continue
			}

			tests := stats.TestsFor(MangledNameFromKey(key))
			estimate := stats.EstimatedTime(tests)
			state.meta.EstimatedDurationsByKey[key] = estimate
			changed = true

			if len(tests) == 0 {
				state.meta.SetResult(key, m.ExitCodeNoTests, 0)
				continue
			}

			sort.Slice(tests, func(i, j int) bool {
				return stats.DurationByTest[tests[i]] < stats.DurationByTest[tests[j]]
			})

			scheduled = append(scheduled, ScheduledMutant{
				Key:           key,
				SourcePath:    state.path,
				Tests:         tests,
				EstimatedTime: estimate,
			})
		}

		if changed {
			if err := w.SaveFileMeta(w.metaPath(state.path), state.meta); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].EstimatedTime < scheduled[j].EstimatedTime
	})

	return scheduled, nil
}

// runMutants drives the worker pool over the schedule, recording each
// result as it lands and then printing the final tallies.
func (w *workflow) runMutants(ctx context.Context, states []*fileState, scheduled []ScheduledMutant) error {
	stateByPath := map[m.Path]*fileState{}
	counts := m.StatusCounts{}

	for _, state := range states {
		stateByPath[state.path] = state
		counts.Merge(state.meta.Counts())
	}

	workers := w.workers()
	w.UI.DisplayConcurrencyInfo(ctx, workers, len(scheduled))
	w.UI.DisplayProgress(ctx, counts)

	mutantArgs := append(append([]string{}, w.config.PytestArgs...),
		"-p", "no:randomly", "-p", "no:random-order")
	orchestrator := NewOrchestrator(w.TestRunnerAdapter, MutantsDirName, mutantArgs)

	spill, err := pkg.NewFileSpill[m.Report]()
	if err != nil {
		return err
	}
	defer func() { _ = spill.Close() }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, mutant := range scheduled {
		g.Go(func() error {
			exitCode, report, err := orchestrator.TestMutant(gctx, mutant)
			if err != nil {
				return err
			}

			return w.recordResult(ctx, stateByPath[mutant.SourcePath], mutant.Key, exitCode, report, &counts, spill)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w.UI.DisplayProgress(ctx, counts)
	w.logSurvivors(spill)
	w.UI.DisplayMutationScore(ctx, MutationScore(counts))

	return nil
}

// recordResult persists one mutant outcome and reports it to the UI.
func (w *workflow) recordResult(
	ctx context.Context,
	state *fileState,
	key string,
	exitCode int,
	report m.Report,
	counts *m.StatusCounts,
	spill pkg.FileSpill[m.Report],
) error {
	w.metaMu.Lock()
	defer w.metaMu.Unlock()

	counts.Remove(state.meta.StatusOf(key))
	counts.Add(report.Status)

	state.meta.SetResult(key, exitCode, report.Duration)
	if err := w.SaveFileMeta(w.metaPath(state.path), state.meta); err != nil {
		return err
	}

	if err := spill.Append(report); err != nil {
		return err
	}

	w.UI.DisplayMutantResult(ctx, key, report.Status)
	w.UI.DisplayProgress(ctx, *counts)

	return nil
}

// logSurvivors replays the run's full reports from the spill and logs
// the output of every surviving mutant at debug level.
func (w *workflow) logSurvivors(spill pkg.FileSpill[m.Report]) {
	err := spill.Range(func(_ uint64, report m.Report) error {
		if report.Status == m.StatusSurvived {
			slog.Debug("mutant survived",
				"key", report.Mutant.Key(),
				"output", report.Output)
		}

		return nil
	})
	if err != nil {
		slog.Warn("could not replay run reports", "error", err)
	}
}

// Results lists every recorded mutant and its status, in file then key
// order. Killed and timed out mutants are omitted unless includeKilled
// is set.
func (w *workflow) Results(_ context.Context, includeKilled bool) ([]MutantResult, error) {
	states, err := w.loadStates()
	if err != nil {
		return nil, err
	}

	var results []MutantResult

	for _, state := range states {
		for _, key := range sortedKeys(state.meta.ExitCodeByKey) {
			status := state.meta.StatusOf(key)
			if !includeKilled && status.IsKilled() {
				continue
			}

			results = append(results, MutantResult{Key: key, Status: status})
		}
	}

	return results, nil
}

// FileResults groups the recorded results per source file, for the
// interactive browser.
func (w *workflow) FileResults(_ context.Context) ([]m.FileResult, error) {
	states, err := w.loadStates()
	if err != nil {
		return nil, err
	}

	var results []m.FileResult

	for _, state := range states {
		result := m.FileResult{
			Source:  m.SourceFile{Path: state.path},
			Reports: map[string]m.Report{},
		}

		for _, key := range sortedKeys(state.meta.ExitCodeByKey) {
			mutant := m.Mutant{
				Name:       mutantName(key, state.path),
				SourceFile: state.path,
			}
			result.Mutants = append(result.Mutants, mutant)
			result.Reports[mutant.Name] = m.Report{
				Mutant:   mutant,
				Status:   state.meta.StatusOf(key),
				Duration: state.meta.DurationsByKey[key],
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// ShowMutant renders a unified diff between the original function and
// the mutant, both under the original name, headed by the mutant's key
// and status.
func (w *workflow) ShowMutant(_ context.Context, key string) (string, error) {
	state, err := w.findMutant(key)
	if err != nil {
		return "", err
	}

	name := mutantName(key, state.path)

	original, mutated, err := w.mutantPair(state.path, name)
	if err != nil {
		return "", err
	}

	diff, err := unifiedDiff(string(state.path), original, mutated)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("# %s: %s\n%s", key, state.meta.StatusOf(key), diff), nil
}

// ApplyMutant rewrites the original source file, replacing the mutated
// function's definition with the mutant's body. Used to inspect a
// survivor in place; the change is meant to be reverted.
func (w *workflow) ApplyMutant(_ context.Context, key string) error {
	state, err := w.findMutant(key)
	if err != nil {
		return err
	}

	name := mutantName(key, state.path)

	funcName, className, err := OrigNameFromMutantName(name)
	if err != nil {
		return err
	}

	generated, err := w.ReadFile(w.JoinPath(MutantsDirName, string(state.path)))
	if err != nil {
		return err
	}

	mutantDef, err := w.FindFunction(string(state.path), generated, name)
	if err != nil {
		return err
	}

	original, err := w.ReadFile(state.path)
	if err != nil {
		return err
	}

	defs, err := w.Functions(string(state.path), original)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if def.Name != funcName || def.ClassName != className {
			continue
		}

		patched := string(original[:def.Start]) + mutantDef.Renamed(funcName) + string(original[def.End:])

		return w.WriteFile(state.path, []byte(patched), 0o600)
	}

	return fmt.Errorf("no function %q in %s", funcName, state.path)
}

// mutantPair extracts the original and mutated definitions for a mutant
// from the generated file, both renamed back to the original name.
func (w *workflow) mutantPair(path m.Path, name string) (original, mutated string, err error) {
	funcName, _, err := OrigNameFromMutantName(name)
	if err != nil {
		return "", "", err
	}

	source, err := w.ReadFile(w.JoinPath(MutantsDirName, string(path)))
	if err != nil {
		return "", "", err
	}

	origDef, err := w.FindFunction(string(path), source, MangledNameFromKey(name)+"__mutmut_orig")
	if err != nil {
		return "", "", err
	}

	mutantDef, err := w.FindFunction(string(path), source, name)
	if err != nil {
		return "", "", err
	}

	return origDef.Renamed(funcName), mutantDef.Renamed(funcName), nil
}

// findMutant locates the file whose meta records the given key.
func (w *workflow) findMutant(key string) (*fileState, error) {
	states, err := w.loadStates()
	if err != nil {
		return nil, err
	}

	for _, state := range states {
		if _, ok := state.meta.ExitCodeByKey[key]; ok {
			return state, nil
		}
	}

	return nil, fmt.Errorf("unknown mutant %q", key)
}

// loadStates loads the meta for every generated source file, in walk
// order.
func (w *workflow) loadStates() ([]*fileState, error) {
	files, err := w.sourceFiles()
	if err != nil {
		return nil, err
	}

	var states []*fileState

	for _, path := range files {
		if w.ignore.shouldIgnore(path) {
			continue
		}

		meta, err := w.LoadFileMeta(w.metaPath(path))
		if err != nil {
			return nil, err
		}

		if len(meta.ExitCodeByKey) == 0 && len(meta.HashByFunctionName) == 0 {
			continue
		}

		states = append(states, &fileState{path: path, meta: meta})
	}

	return states, nil
}

// sourceFiles walks the configured roots and returns every regular file
// under them, relative paths preserved.
func (w *workflow) sourceFiles() ([]m.Path, error) {
	var files []m.Path

	for _, root := range w.config.PathsToMutate {
		err := w.WalkFiles(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			files = append(files, m.Path(path))

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// coveredLines loads the configured coverage report. nil means no report
// is configured and everything gets mutated.
func (w *workflow) coveredLines() (map[m.Path]map[int]bool, error) {
	if w.config.CoverageReport == "" {
		return nil, nil
	}

	return w.CoveredLines(w.config.CoverageReport)
}

func (w *workflow) metaPath(path m.Path) m.Path {
	return w.JoinPath(MutantsDirName, string(path)+".meta")
}

// testSelection is the pytest target list for whole-suite runs.
func (w *workflow) testSelection() []string {
	return append([]string{}, w.config.TestsDir...)
}

func (w *workflow) workers() int {
	if w.config.MaxChildren > 0 {
		return w.config.MaxChildren
	}

	return runtime.NumCPU()
}

// coveredFor resolves the covered line set for one file. A configured
// report that does not mention the file yields an empty, non-nil set, so
// the file produces no mutants.
func coveredFor(covered map[m.Path]map[int]bool, path m.Path) map[int]bool {
	if covered == nil {
		return nil
	}

	if lines, ok := covered[path]; ok {
		return lines
	}

	// Coverage reports often record paths from the project root while
	// roots like "src" are walked relative to it.
	for reported, lines := range covered {
		if strings.HasSuffix(string(reported), "/"+string(path)) {
			return lines
		}
	}

	return map[int]bool{}
}

// mutantName strips the module prefix from a full mutant key.
func mutantName(key string, path m.Path) string {
	module := path.ModuleName()
	if module == "" {
		return key
	}

	return strings.TrimPrefix(key, module+".")
}

func statsPluginModule() string {
	return strings.TrimSuffix(StatsPluginFileName, ".py")
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	var matchers []glob.Glob

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad mutant pattern %q: %w", pattern, err)
		}

		matchers = append(matchers, g)
	}

	return matchers, nil
}

func matchesAny(matchers []glob.Glob, key string) bool {
	for _, g := range matchers {
		if g.Match(key) {
			return true
		}
	}

	return false
}

func mergeTests(existing, fresh []string) []string {
	seen := map[string]bool{}
	for _, test := range existing {
		seen[test] = true
	}

	for _, test := range fresh {
		if !seen[test] {
			existing = append(existing, test)
		}
	}

	return existing
}

func sortedKeys[V any](entries map[string]V) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
