// Package tui implements the Bubble Tea results panel: a tree of
// problems grouped by file, severity display toggles, scan progress,
// and jump-to-source navigation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/typeview/typeview/internal/checker"
	"github.com/typeview/typeview/internal/model"
	"github.com/typeview/typeview/internal/tree"
)

const inProgressText = "Scan in progress..."

// ScanFunc runs one full scan, reporting progress as it goes. It is
// called from a background goroutine; all results come back into the
// Update loop as messages.
type ScanFunc func(progress checker.ProgressFunc) (model.Results, error)

// Options configure the panel.
type Options struct {
	Title  string // shown in the header, usually the scan root
	Scan   ScanFunc
	Editor string // editor override; $EDITOR applies when empty
}

// Model is the top-level Bubble Tea model for typeview.
type Model struct {
	opts Options

	// Results state
	resultsTree *tree.Tree
	filter      model.Filter
	rows        []tree.Row
	cursor      int
	collapsed   map[string]bool

	// Scan progress
	scanning      bool
	progressDone  int
	progressTotal int
	prog          progress.Model
	spin          spinner.Model
	events        chan tea.Msg

	// Preview pane
	showPreview bool
	follow      bool
	preview     preview

	// UI state
	width        int
	height       int
	viewHeight   int
	scrollOffset int
	showHelp     bool
	status       string
}

// Messages posted back into the Update loop.
type (
	scanProgressMsg struct{ done, total int }
	scanResultsMsg  model.Results
	scanFailedMsg   struct{ err error }
	statusMsg       string
)

// New creates the panel model. When opts.Scan is set the initial scan
// starts as soon as the program runs.
func New(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(colorYellow)

	m := Model{
		opts:        opts,
		resultsTree: tree.New(),
		filter:      model.AllSeverities(),
		collapsed:   make(map[string]bool),
		prog:        progress.New(progress.WithDefaultGradient()),
		spin:        sp,
		events:      make(chan tea.Msg, 32),
		showPreview: true,
		follow:      true,
	}
	if opts.Scan != nil {
		m.scanning = true
		m.resultsTree.SetMessage(inProgressText)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.opts.Scan != nil {
		cmds = append(cmds, m.runScan(), m.waitEvent())
	}
	return tea.Batch(cmds...)
}

// runScan executes the scan off the UI loop. Progress goes through the
// events channel; the final result is returned as the command's message.
// The channel is closed when the scan finishes so the pending waitEvent
// reader unblocks instead of lingering until the next scan.
func (m Model) runScan() tea.Cmd {
	scan := m.opts.Scan
	events := m.events
	return func() tea.Msg {
		results, err := scan(func(done, total int) {
			events <- scanProgressMsg{done: done, total: total}
		})
		close(events)
		if err != nil {
			return scanFailedMsg{err: err}
		}
		return scanResultsMsg(results)
	}
}

// waitEvent forwards the next queued event into Update. It yields nil
// once the scan's event stream is closed and drained.
func (m Model) waitEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// DisplayingErrors reports whether error problems are shown.
func (m Model) DisplayingErrors() bool { return m.filter.Errors }

// DisplayingWarnings reports whether warning problems are shown.
func (m Model) DisplayingWarnings() bool { return m.filter.Warnings }

// DisplayingNotes reports whether note problems are shown.
func (m Model) DisplayingNotes() bool { return m.filter.Notes }

// SetDisplayingErrors flips the error display flag. Call
// FilterDisplayedResults to apply it.
func (m *Model) SetDisplayingErrors(v bool) { m.filter.Errors = v }

// SetDisplayingWarnings flips the warning display flag.
func (m *Model) SetDisplayingWarnings(v bool) { m.filter.Warnings = v }

// SetDisplayingNotes flips the note display flag.
func (m *Model) SetDisplayingNotes(v bool) { m.filter.Notes = v }

// FilterDisplayedResults re-derives the visible tree from the retained
// results and the current display flags, without re-running the checker.
func (m *Model) FilterDisplayedResults() {
	m.resultsTree.Filter(m.filter)
	m.rebuildRows()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewHeight = m.height - 5 // header + progress + status + borders
		if m.viewHeight < 1 {
			m.viewHeight = 1
		}
		m.prog.Width = m.width / 3
		if m.prog.Width > 40 {
			m.prog.Width = 40
		}
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case scanProgressMsg:
		if !m.scanning {
			return m, m.waitEvent()
		}
		if msg.total >= 0 {
			m.progressTotal = msg.total
		}
		// Clamp: never past the maximum, never backwards.
		done := msg.done
		if done > m.progressTotal {
			done = m.progressTotal
		}
		if done > m.progressDone {
			m.progressDone = done
		}
		return m, m.waitEvent()

	case scanResultsMsg:
		m.scanning = false
		m.clearProgress()
		m.resultsTree.SetResults(model.Results(msg), m.filter)
		m.collapsed = make(map[string]bool)
		m.cursor = 0
		m.scrollOffset = 0
		m.rebuildRows()
		m.status = fmt.Sprintf("Scan finished: %d problem(s) displayed", m.resultsTree.VisibleCount())
		return m, nil

	case scanFailedMsg:
		m.scanning = false
		m.clearProgress()
		m.resultsTree.SetMessage(checker.FriendlyMessage(msg.err))
		m.rebuildRows()
		m.status = "Scan failed"
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureVisible()
			m.refreshPreview(false)
		}

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
			m.refreshPreview(false)
		}

	case key.Matches(msg, keys.Open):
		if row := m.selectedRow(); row != nil {
			if row.Node.Kind == tree.KindFile {
				m.toggleFile(row.Node.File)
			} else {
				return m, m.openSelected()
			}
		}

	case key.Matches(msg, keys.ToggleFile):
		if row := m.selectedRow(); row != nil && row.Node.Kind == tree.KindFile {
			m.toggleFile(row.Node.File)
		}

	case key.Matches(msg, keys.Errors):
		m.SetDisplayingErrors(!m.DisplayingErrors())
		m.FilterDisplayedResults()

	case key.Matches(msg, keys.Warnings):
		m.SetDisplayingWarnings(!m.DisplayingWarnings())
		m.FilterDisplayedResults()

	case key.Matches(msg, keys.Notes):
		m.SetDisplayingNotes(!m.DisplayingNotes())
		m.FilterDisplayedResults()

	case key.Matches(msg, keys.ExpandAll):
		m.collapsed = make(map[string]bool)
		m.rebuildRows()

	case key.Matches(msg, keys.CollapseAll):
		for _, row := range m.resultsTree.Rows(nil) {
			if row.Node.Kind == tree.KindFile {
				m.collapsed[row.Node.File] = true
			}
		}
		m.rebuildRows()

	case key.Matches(msg, keys.Preview):
		m.showPreview = !m.showPreview
		if m.showPreview {
			m.refreshPreview(true)
		}

	case key.Matches(msg, keys.Follow):
		m.follow = !m.follow
		if m.follow {
			m.refreshPreview(true)
		}

	case key.Matches(msg, keys.Rescan):
		if !m.scanning && m.opts.Scan != nil {
			m.scanning = true
			m.progressDone = 0
			m.progressTotal = 0
			// Fresh event stream per scan; the previous one was closed
			// when its scan finished.
			m.events = make(chan tea.Msg, 32)
			m.resultsTree.SetMessage(inProgressText)
			m.rebuildRows()
			m.status = ""
			return m, tea.Batch(m.runScan(), m.waitEvent())
		}
	}

	return m, nil
}

func (m *Model) toggleFile(file string) {
	if m.collapsed[file] {
		delete(m.collapsed, file)
	} else {
		m.collapsed[file] = true
	}
	m.rebuildRows()
}

func (m *Model) rebuildRows() {
	m.rows = m.resultsTree.Rows(m.collapsed)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
	m.refreshPreview(true)
}

func (m *Model) selectedRow() *tree.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// clearProgress hides the indicator and clears any progress text.
func (m *Model) clearProgress() {
	m.progressDone = 0
	m.progressTotal = 0
}

func (m *Model) ensureVisible() {
	if m.viewHeight <= 0 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.viewHeight {
		m.scrollOffset = m.cursor - m.viewHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// refreshPreview reloads the source context for the selected problem.
// With follow mode off, selection changes leave the pane alone unless
// force is set (pane toggled, results replaced).
func (m *Model) refreshPreview(force bool) {
	if !m.showPreview {
		return
	}
	if !force && !m.follow {
		return
	}
	row := m.selectedRow()
	if row == nil || row.Node.Problem == nil {
		return
	}
	p, err := loadPreview(row.Node.File, row.Node.Problem.Line, previewContextLines)
	if err != nil {
		m.preview = preview{}
		return
	}
	m.preview = p
}

// Run starts the panel and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running panel: %w", err)
	}
	return nil
}
