package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tablereport/internal/render"
	"tablereport/pkg/report"
)

func threeGroupResult(t *testing.T) report.TaskResult {
	t.Helper()
	task := report.Task{
		Name:     "people",
		Stats:    report.TaskStats{Errors: 3},
		Resource: report.Resource{Schema: report.Schema{Fields: []report.Field{{Name: "a"}, {Name: "b"}}}},
		Errors: []report.RawError{
			{Code: "type-error", Name: "Type Error", Message: "t", RowPosition: 2, FieldPosition: 1, Cells: []string{"x", "y"}},
			{Code: "blank-row", Name: "Blank Row", Message: "b", RowPosition: 3},
			{Code: "extra-cell", Name: "Extra Cell", Message: "e", RowPosition: 4, FieldPosition: 3, Cells: []string{"1", "2", "3"}},
		},
	}
	groups, err := report.Aggregate(task, nil)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	return report.TaskResult{Number: 1, Task: task, Groups: groups}
}

func newTestBrowser(t *testing.T) BrowserModel {
	t.Helper()
	return NewBrowserModel(render.New(render.Options{}), threeGroupResult(t), 2)
}

func press(m BrowserModel, key tea.KeyType) BrowserModel {
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	return updated.(BrowserModel)
}

func pressRunes(m BrowserModel, r string) (BrowserModel, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)})
	return updated.(BrowserModel), cmd
}

func TestBrowserNavigatesGroups(t *testing.T) {
	m := newTestBrowser(t)
	if m.Current() != 0 {
		t.Fatalf("expected first group, got %d", m.Current())
	}

	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)
	if m.Current() != 2 {
		t.Fatalf("expected third group, got %d", m.Current())
	}

	m = press(m, tea.KeyRight)
	if m.Current() != 2 {
		t.Errorf("expected to stay on last group, got %d", m.Current())
	}

	m = press(m, tea.KeyLeft)
	if m.Current() != 1 {
		t.Errorf("expected second group, got %d", m.Current())
	}
	if !strings.Contains(m.View(), "Blank Row") {
		t.Errorf("expected Blank Row on screen:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "group 2 of 3") || !strings.Contains(m.View(), "task 1 of 2") {
		t.Errorf("expected position lines:\n%s", m.View())
	}
}

func TestBrowserQuit(t *testing.T) {
	m := newTestBrowser(t)

	m, cmd := pressRunes(m, "q")
	if !m.Done() {
		t.Error("expected Done() after q")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestBrowserReloadClampsSelection(t *testing.T) {
	m := newTestBrowser(t)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)

	smaller := report.Task{Name: "people", Errors: []report.RawError{{Code: "source-error", Name: "Source Error", Message: "s"}}}
	groups, err := report.Aggregate(smaller, nil)
	if err != nil {
		t.Fatal(err)
	}

	updated, _ := m.Update(ReportLoadedMsg{Result: report.TaskResult{Number: 1, Task: smaller, Groups: groups}})
	m = updated.(BrowserModel)
	if m.Current() != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", m.Current())
	}
	if !strings.Contains(m.View(), "Source Error") {
		t.Errorf("expected reloaded group on screen:\n%s", m.View())
	}
}

func TestBrowserEmptyTask(t *testing.T) {
	res := report.TaskResult{Number: 1, Task: report.Task{Valid: true}, Groups: report.NewGroups()}
	m := NewBrowserModel(render.New(render.Options{}), res, 1)

	m = press(m, tea.KeyRight)
	if m.Current() != 0 {
		t.Errorf("expected selection 0, got %d", m.Current())
	}
	if !strings.Contains(m.View(), "no groups") {
		t.Errorf("expected empty marker:\n%s", m.View())
	}
}

func TestBrowserErrorMsg(t *testing.T) {
	m := newTestBrowser(t)

	updated, cmd := m.Update(ErrorMsg{Err: errors.New("report vanished")})
	m = updated.(BrowserModel)
	if !m.Done() || cmd == nil {
		t.Fatal("expected browser to quit on ErrorMsg")
	}
	if !strings.Contains(m.View(), "report vanished") {
		t.Errorf("expected error in view, got %q", m.View())
	}
}

func TestDetectMode(t *testing.T) {
	var buf bytes.Buffer
	if DetectMode(&buf, false, true) != ModeJSON {
		t.Error("expected JSON mode")
	}
	if DetectMode(&buf, true, false) != ModePlain {
		t.Error("expected plain mode when requested")
	}
	if DetectMode(&buf, false, false) != ModePlain {
		t.Error("expected plain mode for non-terminal writer")
	}
}
