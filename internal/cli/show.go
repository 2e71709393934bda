package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tablereport/internal/render"
	"tablereport/internal/tui"
	"tablereport/internal/watch"
	"tablereport/pkg/report"
)

var (
	showTasks         []string
	showStrict        bool
	showInteractive   bool
	showNoTUI         bool
	showWatch         bool
	showMaxRows       int
	showMaxMessages   int
	showNoSuggestions bool
	showNoColor       bool
	showFormat        string
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show REPORT",
		Short: "Group the errors of a validation report and display them",
		Long: `Load a validation report (JSON or YAML, "-" for stdin), group its
errors by code and display each group with the affected rows.

On a terminal the groups open in an interactive browser showing the first
selected task. Use --no-tui for plain output or --json for machine-readable
groups.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().StringSliceVar(&showTasks, "task", nil, "Task numbers or ranges to show (e.g. 1,3-4)")
	cmd.Flags().BoolVar(&showStrict, "strict", false, "Fail when the report contains malformed errors (with --watch, the last loaded report decides)")
	cmd.Flags().BoolVar(&showInteractive, "interactive", false, "Always open the interactive browser")
	cmd.Flags().BoolVar(&showNoTUI, "no-tui", false, "Print plain text instead of opening the browser")
	cmd.Flags().BoolVar(&showWatch, "watch", false, "Re-render whenever the report file changes")
	cmd.Flags().IntVar(&showMaxRows, "max-rows", 0, "Rows shown per group (0 = unlimited, default from config)")
	cmd.Flags().IntVar(&showMaxMessages, "max-messages", 0, "Messages shown per group (0 = unlimited, default from config)")
	cmd.Flags().BoolVar(&showNoSuggestions, "no-suggestions", false, "Omit fix suggestions")
	cmd.Flags().BoolVar(&showNoColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&showFormat, "format", "json", "Format of a report read from stdin (json or yaml)")

	cmd.MarkFlagsMutuallyExclusive("interactive", "no-tui")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	proj, err := loadProject()
	if err != nil {
		return err
	}
	defer proj.Close()

	source := proj.Paths.ResolveInput(args[0])
	if showWatch && source == "-" {
		return errors.New("--watch needs a report file, not stdin")
	}

	opts := render.OptionsFromConfig(proj.Config.Display)
	if cmd.Flags().Changed("max-rows") {
		opts.MaxRows = showMaxRows
	}
	if cmd.Flags().Changed("max-messages") {
		opts.MaxMessages = showMaxMessages
	}
	if showNoSuggestions {
		opts.ShowSuggestions = false
	}
	if showNoColor {
		opts.Color = false
	}
	if opts.MaxRows < 0 || opts.MaxMessages < 0 {
		return errors.New("row and message limits must not be negative")
	}

	var suggester report.Suggester
	if opts.ShowSuggestions {
		suggester = proj.Suggestions
	}

	load := func() ([]report.TaskResult, int, error) {
		r, err := readReport(cmd, proj.Paths, args[0], showFormat)
		if err != nil {
			return nil, 0, err
		}
		results, err := filterTasksByIndexArgs(report.AggregateReport(r, suggester), showTasks)
		if err != nil {
			return nil, 0, err
		}
		if n := logMalformed(proj.Logger, results); n > 0 {
			proj.Logger.Printf("skipped %d malformed errors", n)
		}
		return results, len(r.Tasks), nil
	}

	results, total, err := load()
	if err != nil {
		return err
	}
	proj.Logger.Printf("show %s: tasks=%d selected=%d", source, total, len(results))

	// latest is only written by watch callbacks, which run one at a time and
	// have all returned once watching stops.
	latest := results

	renderer := render.New(opts)
	out := cmd.OutOrStdout()

	mode := tui.DetectMode(out, showNoTUI, outputJSON)
	if showInteractive && !outputJSON {
		mode = tui.ModeTUI
	}

	switch mode {
	case tui.ModeTUI:
		if len(results) == 0 {
			return errors.New("report has no tasks to show")
		}
		selected := results[0].Number
		model := tui.NewBrowserModel(renderer, results[0], total)

		var watchFn func(context.Context, func(tea.Msg))
		if showWatch {
			watchFn = func(ctx context.Context, send func(tea.Msg)) {
				err := watchReport(ctx, proj, source, func() error {
					reloaded, _, err := load()
					if err != nil {
						return err
					}
					latest = reloaded
					for _, res := range reloaded {
						if res.Number == selected {
							send(tui.ReportLoadedMsg{Result: res})
							return nil
						}
					}
					return fmt.Errorf("task %d no longer in report", selected)
				})
				if err != nil {
					send(tui.ErrorMsg{Err: err})
				}
			}
		}
		if err := tui.RunBrowser(ctx, out, model, watchFn); err != nil {
			return err
		}

	default:
		write := func(results []report.TaskResult, total int) error {
			if mode == tui.ModeJSON {
				return render.WriteJSON(out, results, total)
			}
			writeText(out, renderer, results, total)
			return nil
		}
		if err := write(results, total); err != nil {
			return err
		}
		if showWatch {
			err := watchReport(ctx, proj, source, func() error {
				reloaded, total, err := load()
				if err != nil {
					return err
				}
				latest = reloaded
				if mode != tui.ModeJSON {
					fmt.Fprintf(out, "\n--- reloaded %s ---\n\n", time.Now().Format("15:04:05"))
				}
				return write(reloaded, total)
			})
			if err != nil {
				return err
			}
		}
	}

	if showStrict {
		return strictMalformed(latest)
	}
	return nil
}

func writeText(out io.Writer, renderer *render.Renderer, results []report.TaskResult, total int) {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, renderer.Task(res, total))
	}
}

func watchReport(ctx context.Context, proj *projectContext, path string, onChange func() error) error {
	fw, err := watch.New(path, proj.Config.Watch.Debounce(), proj.Logger)
	if err != nil {
		return err
	}
	return fw.Watch(ctx, onChange)
}

func strictMalformed(results []report.TaskResult) error {
	var all report.MalformedErrors
	for _, res := range results {
		all = append(all, res.Malformed...)
	}
	if len(all) == 0 {
		return nil
	}
	return fmt.Errorf("report contains %d malformed errors (first: %v)", len(all), all[0])
}
