package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "pymut.dev/pkg/pymut/internal/model"
)

// DiffFunc lazily renders the diff for one mutant key. The browser only
// asks for a diff when the user drills into a mutant.
type DiffFunc func(key string) (string, error)

// Browser is the interactive results explorer: a file list, the mutants
// of the selected file, and the diff of the selected mutant.
type Browser struct {
	output  io.Writer
	results []m.FileResult
	diff    DiffFunc
}

// NewBrowser creates a Browser over recorded results.
func NewBrowser(output io.Writer, results []m.FileResult, diff DiffFunc) *Browser {
	return &Browser{output: output, results: results, diff: diff}
}

// Run starts the browser and blocks until the user quits.
func (b *Browser) Run() error {
	model := newBrowseModel(b.results, b.diff)

	if f, ok := b.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if len(b.results) == 0 {
		_, err := fmt.Fprint(b.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(b.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

type browsePane int

const (
	filesPane browsePane = iota
	mutantsPane
	diffPane
)

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// browseModel is the Bubble Tea model behind the Browser. Navigation is
// one pane at a time; esc backs out, enter drills in.
type browseModel struct {
	results []m.FileResult
	diff    DiffFunc

	pane        browsePane
	fileIndex   int
	mutantIndex int

	diffView viewport.Model
	diffErr  error

	width  int
	height int
}

func newBrowseModel(results []m.FileResult, diff DiffFunc) browseModel {
	return browseModel{results: results, diff: diff}
}

func (bm browseModel) Init() tea.Cmd {
	return nil
}

func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.width = msg.Width
		bm.height = msg.Height
		bm.diffView.Width = msg.Width
		bm.diffView.Height = bm.pageSize()

		return bm, nil

	case tea.KeyMsg:
		return bm.handleKeyPress(msg)
	}

	return bm, nil
}

func (bm browseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // Only navigation keys are handled.
	switch msg.Type {
	case tea.KeyCtrlC:
		return bm, tea.Quit
	case tea.KeyEsc:
		return bm.back()
	case tea.KeyEnter:
		return bm.drillIn()
	default:
	}

	if bm.pane == diffPane {
		switch msg.String() {
		case "q":
			return bm.back()
		default:
			var cmd tea.Cmd
			bm.diffView, cmd = bm.diffView.Update(msg)

			return bm, cmd
		}
	}

	switch msg.String() {
	case "q":
		return bm.back()

	case "down", "j":
		bm.moveSelection(1)
		return bm, nil

	case "up", "k":
		bm.moveSelection(-1)
		return bm, nil

	case "g", "home":
		bm.setSelection(0)
		return bm, nil

	case "G", "end":
		bm.setSelection(bm.selectionMax())
		return bm, nil

	case "d", "pgdown":
		bm.moveSelection(bm.pageSize())
		return bm, nil

	case "u", "pgup":
		bm.moveSelection(-bm.pageSize())
		return bm, nil
	}

	return bm, nil
}

func (bm browseModel) back() (tea.Model, tea.Cmd) {
	switch bm.pane {
	case filesPane:
		return bm, tea.Quit
	case mutantsPane:
		bm.pane = filesPane
	case diffPane:
		bm.pane = mutantsPane
	}

	return bm, nil
}

func (bm browseModel) drillIn() (tea.Model, tea.Cmd) {
	switch bm.pane {
	case filesPane:
		if len(bm.results) > 0 {
			bm.pane = mutantsPane
			bm.mutantIndex = 0
		}
	case mutantsPane:
		file := bm.results[bm.fileIndex]
		if len(file.Mutants) > 0 {
			mutant := file.Mutants[bm.mutantIndex]

			var diffText string
			diffText, bm.diffErr = bm.diff(mutant.Key())
			bm.diffView = viewport.New(bm.width, bm.pageSize())
			bm.diffView.SetContent(diffText)
			bm.pane = diffPane
		}
	case diffPane:
	}

	return bm, nil
}

func (bm *browseModel) moveSelection(delta int) {
	bm.setSelection(bm.selection() + delta)
}

func (bm *browseModel) setSelection(index int) {
	if index < 0 {
		index = 0
	}

	if limit := bm.selectionMax(); index > limit {
		index = limit
	}

	switch bm.pane {
	case filesPane:
		bm.fileIndex = index
	case mutantsPane:
		bm.mutantIndex = index
	case diffPane:
	}
}

func (bm browseModel) selection() int {
	switch bm.pane {
	case filesPane:
		return bm.fileIndex
	case mutantsPane:
		return bm.mutantIndex
	case diffPane:
	}

	return 0
}

func (bm browseModel) selectionMax() int {
	switch bm.pane {
	case filesPane:
		return len(bm.results) - 1
	case mutantsPane:
		return len(bm.results[bm.fileIndex].Mutants) - 1
	case diffPane:
	}

	return 0
}

// pageSize is the number of content rows that fit between the header
// and the footer.
func (bm browseModel) pageSize() int {
	reserved := 6
	if bm.height <= reserved {
		return 10
	}

	return bm.height - reserved
}

func (bm browseModel) View() string {
	var b strings.Builder

	switch bm.pane {
	case filesPane:
		bm.renderFiles(&b)
	case mutantsPane:
		bm.renderMutants(&b)
	case diffPane:
		bm.renderDiff(&b)
	}

	return b.String()
}

func (bm browseModel) renderFiles(b *strings.Builder) {
	fmt.Fprintf(b, "%s\n\n", headerStyle.Render("Mutation testing results"))

	if len(bm.results) == 0 {
		b.WriteString("  No results recorded. Run the test phase first.\n")
		return
	}

	start, end := window(bm.fileIndex, len(bm.results), bm.pageSize())

	for i := start; i < end; i++ {
		file := bm.results[i]
		line := fmt.Sprintf("  %-40s %s", file.Source.Path, summarizeCounts(fileCounts(file)))

		if i == bm.fileIndex {
			line = selectedStyle.Render(line)
		}

		fmt.Fprintf(b, "%s\n", line)
	}

	bm.renderFooter(b, "enter: mutants | q: quit")
}

func (bm browseModel) renderMutants(b *strings.Builder) {
	file := bm.results[bm.fileIndex]
	fmt.Fprintf(b, "%s\n\n", headerStyle.Render(string(file.Source.Path)))

	start, end := window(bm.mutantIndex, len(file.Mutants), bm.pageSize())

	for i := start; i < end; i++ {
		mutant := file.Mutants[i]
		report := file.Reports[mutant.Name]
		line := fmt.Sprintf("  %s %-60s %s", report.Status.Emoji(), mutant.Name, report.Status)

		if i == bm.mutantIndex {
			line = selectedStyle.Render(line)
		}

		fmt.Fprintf(b, "%s\n", line)
	}

	bm.renderFooter(b, "enter: diff | esc: files | q: back")
}

func (bm browseModel) renderDiff(b *strings.Builder) {
	file := bm.results[bm.fileIndex]
	mutant := file.Mutants[bm.mutantIndex]
	fmt.Fprintf(b, "%s\n\n", headerStyle.Render(mutant.Key()))

	if bm.diffErr != nil {
		fmt.Fprintf(b, "  could not render diff: %v\n", bm.diffErr)
		bm.renderFooter(b, "esc: mutants | q: back")

		return
	}

	b.WriteString(bm.diffView.View())
	b.WriteString("\n")
	bm.renderFooter(b, "j/k: scroll | esc: mutants | q: back")
}

func (bm browseModel) renderFooter(b *strings.Builder, help string) {
	fmt.Fprintf(b, "\n%s\n", faintStyle.Render("  "+help))
}

// window slices a list around the selection so it stays visible.
func window(selected, total, size int) (start, end int) {
	if total <= size {
		return 0, total
	}

	start = selected - size/2
	if start < 0 {
		start = 0
	}

	end = start + size
	if end > total {
		end = total
		start = end - size
	}

	return start, end
}

func fileCounts(file m.FileResult) m.StatusCounts {
	counts := m.StatusCounts{}
	for _, report := range file.Reports {
		counts.Add(report.Status)
	}

	return counts
}

func summarizeCounts(counts m.StatusCounts) string {
	return fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		m.StatusKilled.Emoji(), counts.Killed,
		m.StatusSurvived.Emoji(), counts.Survived,
		m.StatusTimeout.Emoji(), counts.Timeout,
		m.StatusNoTests.Emoji(), counts.NoTests)
}
