package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "pymut.dev/pkg/pymut/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command

	// progressShown tracks whether the last write was an unterminated
	// progress line that still needs a newline.
	progressShown bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {
	s.finishProgressLine()
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayEstimation prints the per-file mutant counts or the error that
// prevented generating them.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, mutants []m.Mutant, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(buildFileStats(mutants), len(mutants)))

	return nil
}

// DisplayPhase announces a named phase of the run.
func (s *SimpleUI) DisplayPhase(ctx context.Context, name string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.finishProgressLine()
	s.printf("%s\n", name)
}

// DisplayPhaseDone marks the current phase finished.
func (s *SimpleUI) DisplayPhaseDone(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.finishProgressLine()
	s.printf("done\n")
}

// DisplayConcurrencyInfo shows the worker pool size and queue length.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, workers, total int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d mutants with %d worker(s)\n", total, workers)
}

// DisplayProgress rewrites the running tally line in place.
func (s *SimpleUI) DisplayProgress(ctx context.Context, counts m.StatusCounts) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\r%d/%d  %s %d  %s %d  %s %d  %s %d  %s %d  %s %d",
		counts.Checked(), counts.Total(),
		m.StatusKilled.Emoji(), counts.Killed,
		m.StatusTimeout.Emoji(), counts.Timeout,
		m.StatusSuspicious.Emoji(), counts.Suspicious,
		m.StatusSurvived.Emoji(), counts.Survived,
		m.StatusSkipped.Emoji(), counts.Skipped,
		m.StatusNoTests.Emoji(), counts.NoTests)
	s.progressShown = true
}

// DisplayMutantResult reports a single finished mutant. Only mutants
// the suite failed to catch are worth a line of their own.
func (s *SimpleUI) DisplayMutantResult(ctx context.Context, key string, status m.MutantStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	if status.IsKilled() || status == m.StatusNoTests {
		return
	}

	s.finishProgressLine()
	s.printf("%s %s: %s\n", status.Emoji(), key, status)
}

// DisplayMutationScore prints the final mutation score.
func (s *SimpleUI) DisplayMutationScore(ctx context.Context, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.finishProgressLine()
	s.printf("Mutation score: %.2f%%\n", score)
}

func (s *SimpleUI) finishProgressLine() {
	if s.progressShown {
		s.printf("\n")
		s.progressShown = false
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	if format[0] != '\r' {
		s.progressShown = false
	}

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

type fileStat struct {
	path  string
	count int
}

func buildFileStats(mutants []m.Mutant) []fileStat {
	byPath := make(map[string]int)

	for _, mutant := range mutants {
		byPath[string(mutant.SourceFile)]++
	}

	statsList := make([]fileStat, 0, len(byPath))
	for path, count := range byPath {
		statsList = append(statsList, fileStat{path: path, count: count})
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].path < statsList[j].path
	})

	return statsList
}

func renderEstimationTable(statsList []fileStat, totalMutants int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, stat := range statsList {
		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(statsList)),
		fmt.Sprintf("%d", totalMutants),
	})

	table.Render()

	return tableBuffer.String()
}
