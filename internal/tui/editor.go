package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// openSelected opens the selected problem's location in the user's
// editor. It is a no-op when the selection is not a problem row or the
// file no longer exists. The editor launch goes through the command
// cycle, never inside Update.
func (m Model) openSelected() tea.Cmd {
	row := m.selectedRow()
	if row == nil || row.Node.Problem == nil {
		return nil
	}
	path := row.Node.File
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	// Editor CLIs are 1-based for lines; clamp out-of-range positions
	// instead of failing.
	line := row.Node.Problem.Line
	if line < 1 {
		line = 1
	}
	column := row.Node.Problem.Column
	if column < 0 {
		column = 0
	}

	editor := m.opts.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, editorArgs(editor, path, line, column)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return statusMsg(fmt.Sprintf("Error opening editor: %v", err))
		}
		return statusMsg("")
	})
}

// editorArgs builds the jump-to-location arguments for common editors.
func editorArgs(editor, path string, line, column int) []string {
	base := editor
	if idx := strings.LastIndex(editor, "/"); idx != -1 {
		base = editor[idx+1:]
	}

	switch base {
	case "code", "code-insiders":
		return []string{"-g", fmt.Sprintf("%s:%d:%d", path, line, column)}
	case "subl", "sublime_text":
		return []string{fmt.Sprintf("%s:%d:%d", path, line, column)}
	case "emacs", "emacsclient":
		return []string{fmt.Sprintf("+%d:%d", line, column), path}
	case "nano":
		return []string{fmt.Sprintf("+%d,%d", line, column), path}
	case "vi", "vim", "nvim":
		if column > 0 {
			return []string{fmt.Sprintf("+call cursor(%d,%d)", line, column), path}
		}
		return []string{fmt.Sprintf("+%d", line), path}
	default:
		return []string{fmt.Sprintf("+%d", line), path}
	}
}
