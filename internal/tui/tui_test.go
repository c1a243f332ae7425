package tui

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/typeview/typeview/internal/checker"
	"github.com/typeview/typeview/internal/model"
)

func testResults() model.Results {
	return model.Results{
		"pkg/api.py": {
			{Line: 3, Column: 5, Message: "Incompatible return value type", Severity: model.SeverityError, Code: "return-value"},
			{Line: 9, Message: "Unused \"type: ignore\" comment", Severity: model.SeverityWarning},
		},
		"pkg/util.py": {
			{Line: 1, Message: "See https://mypy.readthedocs.io", Severity: model.SeverityNote},
		},
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{Title: "testproject"})
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)
	newM, _ = m.Update(scanResultsMsg(testResults()))
	return newM.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
	if len(m.rows) != 5 {
		t.Errorf("expected 5 rows (2 files + 3 problems), got %d", len(m.rows))
	}
	if !m.DisplayingErrors() || !m.DisplayingWarnings() || !m.DisplayingNotes() {
		t.Error("expected all severities displayed by default")
	}
}

func TestSeverityToggles(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(keyRune('n'))
	m = newM.(Model)
	if m.DisplayingNotes() {
		t.Error("expected notes hidden after toggle")
	}
	// pkg/util.py had only a note, so the file row disappears too.
	if len(m.rows) != 3 {
		t.Errorf("expected 3 rows with notes hidden, got %d", len(m.rows))
	}

	newM, _ = m.Update(keyRune('e'))
	m = newM.(Model)
	newM, _ = m.Update(keyRune('w'))
	m = newM.(Model)
	if len(m.rows) != 0 {
		t.Errorf("expected no rows with every severity hidden, got %d", len(m.rows))
	}

	// Toggling back restores the full projection from retained results.
	for _, r := range []rune{'e', 'w', 'n'} {
		newM, _ = m.Update(keyRune(r))
		m = newM.(Model)
	}
	if len(m.rows) != 5 {
		t.Errorf("expected 5 rows restored, got %d", len(m.rows))
	}
}

func TestToggleIdempotent(t *testing.T) {
	m := setupModel(t)

	m.SetDisplayingErrors(false)
	m.FilterDisplayedResults()
	first := len(m.rows)
	m.FilterDisplayedResults()
	if len(m.rows) != first {
		t.Errorf("repeated filter changed row count: %d vs %d", first, len(m.rows))
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(keyRune('j'))
	m = newM.(Model)
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}

	newM, _ = m.Update(keyRune('k'))
	m = newM.(Model)
	newM, _ = m.Update(keyRune('k'))
	m = newM.(Model)
	if m.cursor != 0 {
		t.Errorf("expected cursor pinned at 0, got %d", m.cursor)
	}
}

func TestCollapseFile(t *testing.T) {
	m := setupModel(t)

	// Cursor starts on the first file row; space collapses it.
	newM, _ := m.Update(keyRune(' '))
	m = newM.(Model)
	if len(m.rows) != 3 {
		t.Errorf("expected 3 rows after collapsing first file, got %d", len(m.rows))
	}

	newM, _ = m.Update(keyRune('C'))
	m = newM.(Model)
	if len(m.rows) != 2 {
		t.Errorf("expected 2 rows with all files collapsed, got %d", len(m.rows))
	}

	newM, _ = m.Update(keyRune('E'))
	m = newM.(Model)
	if len(m.rows) != 5 {
		t.Errorf("expected 5 rows after expand all, got %d", len(m.rows))
	}
}

func TestProgressBounded(t *testing.T) {
	m := New(Options{Scan: func(fn checker.ProgressFunc) (model.Results, error) {
		return nil, nil
	}})
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)

	newM, _ = m.Update(scanProgressMsg{done: 2, total: 10})
	m = newM.(Model)
	if m.progressDone != 2 || m.progressTotal != 10 {
		t.Errorf("progress = %d/%d", m.progressDone, m.progressTotal)
	}

	// Reports beyond the total clamp instead of overflowing.
	newM, _ = m.Update(scanProgressMsg{done: 25, total: 10})
	m = newM.(Model)
	if m.progressDone != 10 {
		t.Errorf("expected done clamped to 10, got %d", m.progressDone)
	}

	// Progress never moves backwards.
	newM, _ = m.Update(scanProgressMsg{done: 4, total: 10})
	m = newM.(Model)
	if m.progressDone != 10 {
		t.Errorf("expected done to stay at 10, got %d", m.progressDone)
	}
}

func TestProgressIgnoredWhenIdle(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(scanProgressMsg{done: 3, total: 10})
	m = newM.(Model)
	if m.progressTotal != 0 {
		t.Errorf("expected stale progress ignored, total = %d", m.progressTotal)
	}
}

func TestScanFailure(t *testing.T) {
	m := setupModel(t)
	m.scanning = true

	newM, _ := m.Update(scanFailedMsg{err: errors.New("Unable to instantiate Checker")})
	m = newM.(Model)
	if m.scanning {
		t.Error("expected scanning cleared after failure")
	}
	view := m.View()
	if !strings.Contains(view, "Could not create an instance of Checker") {
		t.Errorf("expected friendly failure message in view:\n%s", view)
	}
}

func TestOpenOnFileRowTogglesIt(t *testing.T) {
	m := setupModel(t)

	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newM.(Model)
	if cmd != nil {
		t.Error("expected no editor command on a file row")
	}
	if len(m.rows) != 3 {
		t.Errorf("expected enter to collapse the file, got %d rows", len(m.rows))
	}
}

func TestOpenMissingFile(t *testing.T) {
	m := setupModel(t)

	// Move onto the first problem row of a file that does not exist.
	newM, _ := m.Update(keyRune('j'))
	m = newM.(Model)
	if cmd := m.openSelected(); cmd != nil {
		t.Error("expected no-op when the target file is missing")
	}
}

func TestViewRendersResults(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	for _, want := range []string{"pkg/api.py", "pkg/util.py", "Incompatible return value type", "3 problems in 2 file(s)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestViewShowsProgress(t *testing.T) {
	m := New(Options{Scan: func(fn checker.ProgressFunc) (model.Results, error) {
		return nil, nil
	}})
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)
	newM, _ = m.Update(scanProgressMsg{done: 3, total: 12})
	m = newM.(Model)

	view := m.View()
	if !strings.Contains(view, "3/12") {
		t.Errorf("expected bounded progress in view:\n%s", view)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(keyRune('?'))
	m = newM.(Model)
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}

	newM, _ = m.Update(keyRune('?'))
	m = newM.(Model)
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help closed on second toggle")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "he…"},
		{"héllo wörld", 5, "héll…"},
		{"日本語のメッセージ", 4, "日本語…"},
		{"x", 1, "x"},
		{"xy", 1, "…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.max)
		}
	}
}

func TestRescanUsesFreshEventStream(t *testing.T) {
	m := New(Options{Scan: func(fn checker.ProgressFunc) (model.Results, error) {
		return nil, nil
	}})
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)
	newM, _ = m.Update(scanResultsMsg(testResults()))
	m = newM.(Model)

	before := m.events
	newM, cmd := m.Update(keyRune('r'))
	m = newM.(Model)
	if cmd == nil {
		t.Fatal("expected rescan to start a scan")
	}
	if m.events == before {
		t.Error("expected rescan to replace the event channel")
	}
}

func TestWaitEventStopsOnClosedStream(t *testing.T) {
	m := New(Options{})
	close(m.events)
	if msg := m.waitEvent()(); msg != nil {
		t.Errorf("expected nil from a closed event stream, got %v", msg)
	}
}

func TestRescanWhileScanningIgnored(t *testing.T) {
	m := setupModel(t)
	m.scanning = true

	newM, cmd := m.Update(keyRune('r'))
	m = newM.(Model)
	if cmd != nil {
		t.Error("expected rescan ignored while a scan is running")
	}
}
