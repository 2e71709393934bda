package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tablereport/internal/render"
	"tablereport/pkg/report"
)

// chromeHeight is the number of lines taken by the title and the key help.
const chromeHeight = 4

// BrowserModel is a bubbletea model that pages through the error groups of
// one task, one group per screen.
type BrowserModel struct {
	renderer *render.Renderer
	result   report.TaskResult
	total    int
	groups   []*report.Group
	current  int

	view viewport.Model
	err  error
	done bool
}

// NewBrowserModel creates a browser over res. total is the number of tasks in
// the report and only affects the title.
func NewBrowserModel(renderer *render.Renderer, res report.TaskResult, total int) BrowserModel {
	m := BrowserModel{
		renderer: renderer,
		total:    total,
		view:     viewport.New(80, 20),
	}
	m.setResult(res)
	return m
}

func (m *BrowserModel) setResult(res report.TaskResult) {
	m.result = res
	m.groups = res.Groups.List()
	if m.current >= len(m.groups) {
		m.current = len(m.groups) - 1
	}
	if m.current < 0 {
		m.current = 0
	}
	m.refresh()
}

func (m *BrowserModel) refresh() {
	m.view.SetContent(m.content())
	m.view.GotoTop()
}

func (m BrowserModel) content() string {
	if len(m.groups) == 0 {
		return m.renderer.Summary(m.result.Task)
	}
	return m.renderer.Group(m.groups[m.current])
}

// Current returns the index of the group on screen.
func (m BrowserModel) Current() int {
	return m.current
}

// Done reports whether the browser has quit.
func (m BrowserModel) Done() bool {
	return m.done
}

// Err returns the error that stopped the browser, if any.
func (m BrowserModel) Err() error {
	return m.err
}

// Init satisfies the tea.Model interface.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update satisfies the tea.Model interface.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-chromeHeight, 1)
		return m, nil

	case ReportLoadedMsg:
		m.setResult(msg.Result)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		case "right", "l", "n", "tab":
			if m.current < len(m.groups)-1 {
				m.current++
				m.refresh()
			}
			return m, nil
		case "left", "h", "p", "shift+tab":
			if m.current > 0 {
				m.current--
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// View satisfies the tea.Model interface.
func (m BrowserModel) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var b strings.Builder
	title := m.result.Task.Label()
	if m.total > 1 {
		title += fmt.Sprintf(" · task %d of %d", m.result.Number, m.total)
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderer.Summary(m.result.Task))
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")

	position := "no groups"
	if len(m.groups) > 0 {
		position = fmt.Sprintf("group %d of %d", m.current+1, len(m.groups))
	}
	b.WriteString(helpStyle.Render(position + " · ←/→ switch group · ↑/↓ scroll · q quit"))
	return b.String()
}
