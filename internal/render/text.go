package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tablereport/internal/config"
	"tablereport/pkg/report"
)

// Options controls the text rendering of a task. Zero limits mean unlimited.
type Options struct {
	MaxRows         int
	MaxMessages     int
	ShowSuggestions bool
	Color           bool
}

// OptionsFromConfig maps the display configuration onto render options.
func OptionsFromConfig(d config.DisplayConfig) Options {
	return Options{
		MaxRows:         d.MaxRows,
		MaxMessages:     d.MaxMessages,
		ShowSuggestions: d.ShowSuggestionsValue(),
		Color:           d.ColorValue(),
	}
}

// Renderer turns aggregated groups into terminal text. It never changes the
// groups it is given.
type Renderer struct {
	opts   Options
	styles Styles
}

// New returns a renderer for opts.
func New(opts Options) *Renderer {
	styles := PlainStyles()
	if opts.Color {
		styles = DefaultStyles()
	}
	return &Renderer{opts: opts, styles: styles}
}

// Summary returns the heading line of a task.
func (r *Renderer) Summary(task report.Task) string {
	if task.Valid {
		return r.styles.Valid.Render("✓") + " No formatting issues found in your tabular data file."
	}
	return r.styles.Invalid.Render("✗") + fmt.Sprintf(" Our automated checker found %d formatting issues in your tabular data file.", task.Stats.Errors)
}

// Task renders the summary line followed by one block per group. The task
// position is only shown when total is above one.
func (r *Renderer) Task(res report.TaskResult, total int) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(res.Task.Label()))
	if total > 1 {
		b.WriteString(r.styles.Faint.Render(fmt.Sprintf("  (task %d of %d)", res.Number, total)))
	}
	b.WriteString("\n")
	b.WriteString(r.Summary(res.Task))
	b.WriteString("\n")

	for _, g := range res.Groups.List() {
		b.WriteString("\n")
		b.WriteString(r.Group(g))
	}

	if len(res.Malformed) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Faint.Render(fmt.Sprintf("%d malformed error(s) were skipped; see the log for details.", len(res.Malformed))))
		b.WriteString("\n")
	}
	return b.String()
}

// Group renders a single error group.
func (r *Renderer) Group(g *report.Group) string {
	var b strings.Builder

	title := g.Name
	if title == "" {
		title = g.Code
	}
	b.WriteString(r.styles.Title.Render(title))
	b.WriteString(" ")
	b.WriteString(r.styles.Badge.Render("(" + strconv.Itoa(g.Count) + ")"))
	b.WriteString("\n")

	meta := "code: " + g.Code
	if len(g.Tags) > 0 {
		meta += " · tags: " + strings.Join(g.Tags, " ")
	}
	b.WriteString(r.styles.Faint.Render(meta))
	b.WriteString("\n")
	if desc := strings.TrimSpace(g.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}

	if tbl := r.table(g); tbl != "" {
		b.WriteString("\n")
		b.WriteString(tbl)
		b.WriteString("\n")
	}

	if len(g.Messages) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Label.Render("Messages:"))
		b.WriteString("\n")
		shown := limit(len(g.Messages), r.opts.MaxMessages)
		for _, msg := range g.Messages[:shown] {
			b.WriteString("  • ")
			b.WriteString(msg)
			b.WriteString("\n")
		}
		if rest := len(g.Messages) - shown; rest > 0 {
			b.WriteString(r.styles.Faint.Render(fmt.Sprintf("  … and %d more messages", rest)))
			b.WriteString("\n")
		}
	}

	if r.opts.ShowSuggestions {
		if suggestion := strings.TrimSpace(g.Suggestion); suggestion != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Suggestion.Render(suggestion))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// table lays out the reconstructed rows of g. Flagged cells are wrapped in
// brackets so they stay visible without color.
func (r *Renderer) table(g *report.Group) string {
	keys := g.RowKeys()
	shown := limit(len(keys), r.opts.MaxRows)

	width := len(g.Header)
	for _, key := range keys[:shown] {
		if n := len(g.Data[key].Values); n > width {
			width = n
		}
	}
	if width == 0 {
		return ""
	}

	headers := make([]string, width+1)
	headers[0] = "ROW"
	for i := 0; i < width; i++ {
		if i < len(g.Header) {
			headers[i+1] = g.Header[i]
		} else {
			headers[i+1] = "#" + strconv.Itoa(i+1)
		}
	}

	rows := make([][]string, 0, shown)
	flagged := make([][]bool, 0, shown)
	for _, key := range keys[:shown] {
		data := g.Data[key]
		row := make([]string, width+1)
		marks := make([]bool, width+1)
		row[0] = rowLabel(key)
		for i := 0; i < width; i++ {
			value := ""
			if i < len(data.Values) {
				value = data.Values[i]
			}
			if data.Errors.Has(i + 1) {
				value = "[" + value + "]"
				marks[i+1] = true
			}
			row[i+1] = value
		}
		rows = append(rows, row)
		flagged = append(flagged, marks)
	}

	styles := r.styles
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case row >= 0 && row < len(flagged) && col < len(flagged[row]) && flagged[row][col]:
				return styles.ErrorCell
			}
			return styles.Cell
		})

	out := t.String()
	if rest := len(keys) - shown; rest > 0 {
		out += "\n" + styles.Faint.Render(fmt.Sprintf("… and %d more rows", rest))
	}
	return out
}

func rowLabel(key int) string {
	if key == 0 {
		return "table"
	}
	return strconv.Itoa(key)
}

func limit(n, max int) int {
	if max > 0 && n > max {
		return max
	}
	return n
}
