package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/typeview/typeview/internal/model"
	"github.com/typeview/typeview/internal/tree"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	progressLine := m.renderProgressLine()

	paneHeight := m.height - 3 // header + progress + status
	treeWidth := m.width
	var panes string
	if m.showPreview && len(m.preview.lines) > 0 && m.width >= 100 {
		treeWidth = m.width / 2
		previewWidth := m.width - treeWidth - 1
		panes = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderTree(treeWidth, paneHeight),
			" ",
			m.renderPreview(previewWidth, paneHeight),
		)
	} else {
		panes = m.renderTree(treeWidth, paneHeight)
	}

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, progressLine, panes, statusBar)
}

func (m Model) renderHeader() string {
	title := "typeview"
	if m.opts.Title != "" {
		title = fmt.Sprintf("typeview — %s", m.opts.Title)
	}
	if s := m.resultsTree.Summary(); s != "" {
		title = fmt.Sprintf("%s: %s", title, s)
	}
	return summaryStyle.Render(title)
}

// renderProgressLine shows the bounded scan indicator while a scan is
// running and collapses to a blank line otherwise.
func (m Model) renderProgressLine() string {
	if !m.scanning {
		return " "
	}
	if m.progressTotal <= 0 {
		return fmt.Sprintf(" %s %s", m.spin.View(), progressTextStyle.Render("Preparing scan..."))
	}
	pct := float64(m.progressDone) / float64(m.progressTotal)
	label := progressTextStyle.Render(
		fmt.Sprintf("Scanning %d files... %d/%d", m.progressTotal, m.progressDone, m.progressTotal))
	return fmt.Sprintf(" %s %s %s", m.spin.View(), label, m.prog.ViewAs(pct))
}

func (m Model) renderTree(width, height int) string {
	innerHeight := height - 2 // borders

	if len(m.rows) == 0 {
		text := m.resultsTree.Message()
		if text == "" {
			text = "No problems to display."
		}
		return treeStyle.Width(width).Height(innerHeight).Render(messageStyle.Render(text))
	}

	var b strings.Builder
	end := m.scrollOffset + m.viewHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor, width-4))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return treeStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderRow(row tree.Row, selected bool, width int) string {
	var line string
	switch row.Node.Kind {
	case tree.KindFile:
		marker := "▸"
		if row.Expanded {
			marker = "▾"
		}
		line = fmt.Sprintf("%s %s", marker, row.Node.Text)
		if !selected {
			return fileRowStyle.Width(width).Render(truncate(line, width))
		}
	case tree.KindProblem:
		mark := severityMark(row.Node.Problem.Severity)
		line = fmt.Sprintf("   %s %s", mark, row.Node.Text)
		if !selected {
			return rowStyle.Width(width).Render(truncate(line, width))
		}
	default:
		line = row.Node.Text
	}
	return rowSelectedStyle.Width(width).Render(truncate(line, width))
}

func severityMark(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return errorMarkStyle.Render("E")
	case model.SeverityWarning:
		return warningMarkStyle.Render("W")
	default:
		return noteMarkStyle.Render("N")
	}
}

func (m Model) renderPreview(width, height int) string {
	innerHeight := height - 2
	innerWidth := width - 4

	var b strings.Builder
	b.WriteString(previewHeaderStyle.Render(
		truncate(fmt.Sprintf("%s:%d", m.preview.file, m.preview.target), innerWidth)))
	b.WriteByte('\n')

	for i, hl := range m.preview.lines {
		lineNum := m.preview.start + i
		num := lineNumberStyle.Render(fmt.Sprintf("%d", lineNum))

		var text strings.Builder
		for _, t := range hl.tokens {
			if t.color != "" {
				text.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.color)).Render(t.text))
			} else {
				text.WriteString(t.text)
			}
		}

		content := text.String()
		if lineNum == m.preview.target {
			content = targetLineStyle.Render(truncate(hl.plain(), innerWidth-7))
		}
		b.WriteString(fmt.Sprintf("%s  %s", num, content))
		if i < len(m.preview.lines)-1 {
			b.WriteByte('\n')
		}
	}

	return previewStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderStatusBar() string {
	toggle := func(label string, on bool) string {
		if on {
			return toggleOnStyle.Render("[" + label + "]")
		}
		return toggleOffStyle.Render("[ " + label + " ]")
	}

	left := fmt.Sprintf(" %s %s %s",
		toggle("err", m.DisplayingErrors()),
		toggle("warn", m.DisplayingWarnings()),
		toggle("note", m.DisplayingNotes()),
	)
	if m.follow {
		left += "  follow"
	}
	if m.status != "" {
		left += "  " + m.status
	}

	right := fmt.Sprintf("%d shown  ? help ", m.resultsTree.VisibleCount())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(previewHeaderStyle.Render("typeview — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"enter/o", "Open problem in editor / toggle file"},
		{"space", "Expand or collapse file"},
		{"e", "Toggle error display"},
		{"w", "Toggle warning display"},
		{"n", "Toggle note display"},
		{"E", "Expand all files"},
		{"C", "Collapse all files"},
		{"p", "Toggle source preview"},
		{"f", "Toggle follow mode"},
		{"r", "Rescan"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
